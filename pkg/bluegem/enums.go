package bluegem

// Item is a skin or weapon finish that can be queried from the API.
// The value is the display name the API expects on the wire.
type Item string

// Queryable items.
const (
	ItemAK47           Item = "AK-47"
	ItemBayonet        Item = "Bayonet"
	ItemBowieKnife     Item = "Bowie Knife"
	ItemButterflyKnife Item = "Butterfly Knife"
	ItemClassicKnife   Item = "Classic Knife"
	ItemFalchionKnife  Item = "Falchion Knife"
	ItemFiveSeveN      Item = "Five-SeveN"
	ItemFlipKnife      Item = "Flip Knife"
	ItemGutKnife       Item = "Gut Knife"
	ItemHuntsmanKnife  Item = "Huntsman Knife"
	ItemHydraGloves    Item = "Hydra Gloves"
	ItemKarambit       Item = "Karambit"
	ItemKukriKnife     Item = "Kukri Knife"
	ItemM9Bayonet      Item = "M9 Bayonet"
	ItemMAC10          Item = "MAC-10"
	ItemNavajaKnife    Item = "Navaja Knife"
	ItemNomadKnife     Item = "Nomad Knife"
	ItemParacordKnife  Item = "Paracord Knife"
	ItemShadowDaggers  Item = "Shadow Daggers"
	ItemSkeletonKnife  Item = "Skeleton Knife"
	ItemStilettoKnife  Item = "Stiletto Knife"
	ItemSurvivalKnife  Item = "Survival Knife"
	ItemTalonKnife     Item = "Talon Knife"
	ItemUrsusKnife     Item = "Ursus Knife"
)

// Items lists every queryable item.
var Items = []Item{
	ItemAK47,
	ItemBayonet,
	ItemBowieKnife,
	ItemButterflyKnife,
	ItemClassicKnife,
	ItemFalchionKnife,
	ItemFiveSeveN,
	ItemFlipKnife,
	ItemGutKnife,
	ItemHuntsmanKnife,
	ItemHydraGloves,
	ItemKarambit,
	ItemKukriKnife,
	ItemM9Bayonet,
	ItemMAC10,
	ItemNavajaKnife,
	ItemNomadKnife,
	ItemParacordKnife,
	ItemShadowDaggers,
	ItemSkeletonKnife,
	ItemStilettoKnife,
	ItemSurvivalKnife,
	ItemTalonKnife,
	ItemUrsusKnife,
}

func (i Item) String() string { return string(i) }

// Valid reports whether i is a known item.
func (i Item) Valid() bool { return enumMember(i, Items) }

// ParseItem resolves s against the known items. It fails with
// ErrBadArgument for anything not in Items.
func ParseItem(s string) (Item, error) {
	return parseEnum(Item(s), Items, "item")
}

// Currency is an ISO 4217 currency code accepted by the API for prices.
type Currency string

// Supported currencies.
const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyJPY Currency = "JPY"
	CurrencyGBP Currency = "GBP"
	CurrencyCNY Currency = "CNY"
	CurrencyAUD Currency = "AUD"
	CurrencyCAD Currency = "CAD"
)

// Currencies lists every supported currency.
var Currencies = []Currency{
	CurrencyUSD,
	CurrencyEUR,
	CurrencyJPY,
	CurrencyGBP,
	CurrencyCNY,
	CurrencyAUD,
	CurrencyCAD,
}

func (c Currency) String() string { return string(c) }

// Valid reports whether c is a supported currency.
func (c Currency) Valid() bool { return enumMember(c, Currencies) }

// ParseCurrency resolves s against the supported currencies.
func ParseCurrency(s string) (Currency, error) {
	return parseEnum(Currency(s), Currencies, "currency")
}

// SortKey selects the column query results are sorted by.
type SortKey string

// Sort keys.
const (
	SortPlaysideBlue          SortKey = "playside_blue"
	SortPlaysidePurple        SortKey = "playside_purple"
	SortPlaysideGold          SortKey = "playside_gold"
	SortBacksideBlue          SortKey = "backside_blue"
	SortBacksidePurple        SortKey = "backside_purple"
	SortBacksideGold          SortKey = "backside_gold"
	SortPlaysideContourBlue   SortKey = "playside_contour_blue"
	SortPlaysideContourPurple SortKey = "playside_contour_purple"
	SortBacksideContourBlue   SortKey = "backside_contour_blue"
	SortBacksideContourPurple SortKey = "backside_contour_purple"
	SortPattern               SortKey = "pattern"
	SortWear                  SortKey = "wear"
	SortDate                  SortKey = "date"
	SortPrice                 SortKey = "price"
)

// SortKeys lists every sort key.
var SortKeys = []SortKey{
	SortPlaysideBlue,
	SortPlaysidePurple,
	SortPlaysideGold,
	SortBacksideBlue,
	SortBacksidePurple,
	SortBacksideGold,
	SortPlaysideContourBlue,
	SortPlaysideContourPurple,
	SortBacksideContourBlue,
	SortBacksideContourPurple,
	SortPattern,
	SortWear,
	SortDate,
	SortPrice,
}

func (k SortKey) String() string { return string(k) }

// Valid reports whether k is a known sort key.
func (k SortKey) Valid() bool { return enumMember(k, SortKeys) }

// ParseSortKey resolves s against the known sort keys.
func ParseSortKey(s string) (SortKey, error) {
	return parseEnum(SortKey(s), SortKeys, "sort key")
}

// Order is the direction query results are returned in.
type Order string

// Orders.
const (
	OrderAsc  Order = "ASC"
	OrderDesc Order = "DESC"
)

// Orders lists both orders.
var Orders = []Order{OrderAsc, OrderDesc}

func (o Order) String() string { return string(o) }

// Valid reports whether o is a known order.
func (o Order) Valid() bool { return enumMember(o, Orders) }

// ParseOrder resolves s against the known orders.
func ParseOrder(s string) (Order, error) {
	return parseEnum(Order(s), Orders, "order")
}

// ItemType distinguishes StatTrak items from normal ones.
type ItemType string

// Item types.
const (
	TypeStatTrak ItemType = "stattrak"
	TypeNormal   ItemType = "normal"
)

// ItemTypes lists both item types.
var ItemTypes = []ItemType{TypeStatTrak, TypeNormal}

func (t ItemType) String() string { return string(t) }

// Valid reports whether t is a known item type.
func (t ItemType) Valid() bool { return enumMember(t, ItemTypes) }

// ParseItemType resolves s against the known item types.
func ParseItemType(s string) (ItemType, error) {
	return parseEnum(ItemType(s), ItemTypes, "item type")
}

// Origin is the marketplace a sale record was observed on.
type Origin string

// Sale origins. OriginC5Game is lowercased on the wire.
const (
	OriginBuff     Origin = "Buff"
	OriginCSFloat  Origin = "CSFloat"
	OriginSkinBid  Origin = "SkinBid"
	OriginBroSkins Origin = "BroSkins"
	OriginSkinport Origin = "Skinport"
	OriginC5Game   Origin = "c5game"
)

// Origins lists every sale origin.
var Origins = []Origin{
	OriginBuff,
	OriginCSFloat,
	OriginSkinBid,
	OriginBroSkins,
	OriginSkinport,
	OriginC5Game,
}

func (o Origin) String() string { return string(o) }

// Valid reports whether o is a known origin.
func (o Origin) Valid() bool { return enumMember(o, Origins) }

// ParseOrigin resolves s against the known origins.
func ParseOrigin(s string) (Origin, error) {
	return parseEnum(Origin(s), Origins, "origin")
}

// FilterType is a gem measurement dimension a Filter can constrain.
// The six color dimensions are percentages of visible area, the four
// contour dimensions are counts of distinct colored sections.
type FilterType string

// Filter dimensions.
const (
	FilterPlaysideBlue          FilterType = "playside_blue"
	FilterPlaysidePurple        FilterType = "playside_purple"
	FilterPlaysideGold          FilterType = "playside_gold"
	FilterBacksideBlue          FilterType = "backside_blue"
	FilterBacksidePurple        FilterType = "backside_purple"
	FilterBacksideGold          FilterType = "backside_gold"
	FilterPlaysideContourBlue   FilterType = "playside_contour_blue"
	FilterPlaysideContourPurple FilterType = "playside_contour_purple"
	FilterBacksideContourBlue   FilterType = "backside_contour_blue"
	FilterBacksideContourPurple FilterType = "backside_contour_purple"
)

// FilterTypes lists every filter dimension.
var FilterTypes = []FilterType{
	FilterPlaysideBlue,
	FilterPlaysidePurple,
	FilterPlaysideGold,
	FilterBacksideBlue,
	FilterBacksidePurple,
	FilterBacksideGold,
	FilterPlaysideContourBlue,
	FilterPlaysideContourPurple,
	FilterBacksideContourBlue,
	FilterBacksideContourPurple,
}

func (f FilterType) String() string { return string(f) }

// Valid reports whether f is a known filter dimension.
func (f FilterType) Valid() bool { return enumMember(f, FilterTypes) }

// IsPercentage reports whether f measures a percentage of visible area.
// The contour dimensions count colored sections instead.
func (f FilterType) IsPercentage() bool {
	switch f {
	case FilterPlaysideBlue, FilterPlaysidePurple, FilterPlaysideGold,
		FilterBacksideBlue, FilterBacksidePurple, FilterBacksideGold:
		return true
	}
	return false
}

// ParseFilterType resolves s against the known filter dimensions.
func ParseFilterType(s string) (FilterType, error) {
	return parseEnum(FilterType(s), FilterTypes, "filter type")
}

func enumMember[T comparable](v T, members []T) bool {
	for _, m := range members {
		if v == m {
			return true
		}
	}
	return false
}

func parseEnum[T ~string](v T, members []T, kind string) (T, error) {
	if enumMember(v, members) {
		return v, nil
	}
	var zero T
	return zero, badArgumentf("unknown %s %q", kind, string(v))
}
