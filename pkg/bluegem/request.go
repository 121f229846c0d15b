package bluegem

import (
	"net/url"
	"strconv"
	"time"
)

// SearchRequest holds the parameters for a sale search. Item is the only
// required field; zero values fall back to the API defaults (USD, sorted
// by date, descending). Pointer fields distinguish "not set" from a
// legitimate zero, pattern 0 being a real paint seed.
type SearchRequest struct {
	Item     Item
	Currency Currency
	Type     ItemType
	Origin   Origin

	Pattern  *int
	PriceMin *float64
	PriceMax *float64
	WearMin  *float64
	WearMax  *float64

	Sort  SortKey
	Order Order

	DateMin *time.Time
	DateMax *time.Time

	// Limit and Offset window the results. Values <= 0 are not sent.
	Limit  int
	Offset int

	// PatternData asks the server to attach pattern measurements to
	// every returned sale.
	PatternData bool

	Filters []Filter
}

func (r *SearchRequest) validate() error {
	if !r.Item.Valid() {
		return badArgumentf("unknown item %q", string(r.Item))
	}
	if r.Currency != "" && !r.Currency.Valid() {
		return badArgumentf("unknown currency %q", string(r.Currency))
	}
	if r.Type != "" && !r.Type.Valid() {
		return badArgumentf("unknown item type %q", string(r.Type))
	}
	if r.Origin != "" && !r.Origin.Valid() {
		return badArgumentf("unknown origin %q", string(r.Origin))
	}
	if r.Sort != "" && !r.Sort.Valid() {
		return badArgumentf("unknown sort key %q", string(r.Sort))
	}
	if r.Order != "" && !r.Order.Valid() {
		return badArgumentf("unknown order %q", string(r.Order))
	}
	if r.Pattern != nil && !ValidPattern(*r.Pattern) {
		return badArgumentf("pattern %d must be between 0 and 1000", *r.Pattern)
	}
	if r.PriceMin != nil && *r.PriceMin < 0 {
		return badArgumentf("price_min must not be negative")
	}
	if r.PriceMax != nil && *r.PriceMax < 0 {
		return badArgumentf("price_max must not be negative")
	}
	if r.WearMin != nil && !ValidWear(*r.WearMin) {
		return badArgumentf("wear_min %v must be in (0, 1]", *r.WearMin)
	}
	if r.WearMax != nil && !ValidWear(*r.WearMax) {
		return badArgumentf("wear_max %v must be in (0, 1]", *r.WearMax)
	}
	for _, f := range r.Filters {
		if err := f.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (r *SearchRequest) encode() url.Values {
	params := url.Values{}
	params.Set("skin", string(r.Item))
	params.Set("currency", string(r.currency()))
	params.Set("sort", string(r.sort()))
	params.Set("order", string(r.order()))

	if r.Type != "" {
		params.Set("type", string(r.Type))
	}
	if r.Origin != "" {
		params.Set("origin", string(r.Origin))
	}
	if r.Pattern != nil {
		params.Set("pattern", strconv.Itoa(*r.Pattern))
	}
	if r.PriceMin != nil {
		params.Set("price_min", formatFloat(*r.PriceMin))
	}
	if r.PriceMax != nil {
		params.Set("price_max", formatFloat(*r.PriceMax))
	}
	if r.WearMin != nil {
		params.Set("wear_min", formatFloat(*r.WearMin))
	}
	if r.WearMax != nil {
		params.Set("wear_max", formatFloat(*r.WearMax))
	}
	if r.DateMin != nil {
		params.Set("date_min", strconv.FormatInt(r.DateMin.Unix(), 10))
	}
	if r.DateMax != nil {
		params.Set("date_max", strconv.FormatInt(r.DateMax.Unix(), 10))
	}
	if r.Limit > 0 {
		params.Set("limit", strconv.Itoa(r.Limit))
	}
	if r.Offset > 0 {
		params.Set("offset", strconv.Itoa(r.Offset))
	}
	if r.PatternData {
		params.Set("pattern_data", "true")
	}
	for _, f := range r.Filters {
		f.apply(params)
	}
	return params
}

func (r *SearchRequest) currency() Currency {
	if r.Currency == "" {
		return CurrencyUSD
	}
	return r.Currency
}

func (r *SearchRequest) sort() SortKey {
	if r.Sort == "" {
		return SortDate
	}
	return r.Sort
}

func (r *SearchRequest) order() Order {
	if r.Order == "" {
		return OrderDesc
	}
	return r.Order
}

// PatternDataRequest holds the parameters for a pattern data query.
// Item is required; results default to sorting by pattern, descending.
type PatternDataRequest struct {
	Item    Item
	Pattern *int

	Sort  SortKey
	Order Order

	// Quantity asks the server to include per-pattern sale counts.
	Quantity bool

	Limit  int
	Offset int

	Filters []Filter
}

func (r *PatternDataRequest) validate() error {
	if !r.Item.Valid() {
		return badArgumentf("unknown item %q", string(r.Item))
	}
	if r.Sort != "" && !r.Sort.Valid() {
		return badArgumentf("unknown sort key %q", string(r.Sort))
	}
	if r.Order != "" && !r.Order.Valid() {
		return badArgumentf("unknown order %q", string(r.Order))
	}
	if r.Pattern != nil && !ValidPattern(*r.Pattern) {
		return badArgumentf("pattern %d must be between 0 and 1000", *r.Pattern)
	}
	for _, f := range r.Filters {
		if err := f.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (r *PatternDataRequest) encode() url.Values {
	params := url.Values{}
	params.Set("skin", string(r.Item))

	sort := r.Sort
	if sort == "" {
		sort = SortPattern
	}
	params.Set("sort", string(sort))

	order := r.Order
	if order == "" {
		order = OrderDesc
	}
	params.Set("order", string(order))

	if r.Pattern != nil {
		params.Set("pattern", strconv.Itoa(*r.Pattern))
	}
	if r.Quantity {
		params.Set("quantity", "true")
	}
	if r.Limit > 0 {
		params.Set("limit", strconv.Itoa(r.Limit))
	}
	if r.Offset > 0 {
		params.Set("offset", strconv.Itoa(r.Offset))
	}
	for _, f := range r.Filters {
		f.apply(params)
	}
	return params
}

// ValidPattern reports whether pattern is a valid paint seed (0 to 1000).
func ValidPattern(pattern int) bool {
	return pattern >= 0 && pattern <= 1000
}

// ValidWear accepts floats in (0, 1]. The lower bound matches the
// smallest wear the market tooling produces rather than zero itself.
func ValidWear(wear float64) bool {
	return wear >= 1e-13 && wear <= 1
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
