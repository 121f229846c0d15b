package bluegem

import "time"

// Sale is one recorded sale of a blue gem item. Instances are built from
// a single API record and not mutated afterwards.
type Sale struct {
	// SaleID identifies the sale record on CSBlueGem.
	SaleID string

	// BuffID is the id of the item on Buff.
	BuffID int64

	// Pattern is the paint seed, 0 through 1000.
	Pattern int

	// Wear is the float value of the item, in (0, 1].
	Wear float64

	// Type reports whether the item is StatTrak or normal.
	Type ItemType

	// Price is the sale price in the currency the search requested.
	Price int

	// Timestamp is when the sale occurred, in UTC.
	Timestamp time.Time

	// DaysSince is the number of whole days between the query and the
	// sale, computed when the response is parsed.
	DaysSince int

	// Origin is the marketplace the sale was observed on.
	Origin Origin

	// InspectLink is the Steam inspect link for the item.
	InspectLink string

	// CSFloatLink links to the item on CSFloat.
	CSFloatLink string

	// Screenshots holds the inspect screenshots for the item.
	Screenshots Screenshots

	// PatternData carries measurements for the item's pattern. Only set
	// when the search requested pattern data.
	PatternData *PatternData
}

// IsStatTrak reports whether the sold item was StatTrak.
func (s *Sale) IsStatTrak() bool { return s.Type == TypeStatTrak }

// Screenshots holds the screenshot links for a Sale. CSFloat-originated
// sales carry separate playside and backside links instead of a single
// inspect screenshot.
type Screenshots struct {
	Inspect         string
	InspectPlayside string
	InspectBackside string
}

// InspectURL returns a screenshot link regardless of where the sale
// originated, preferring Inspect and falling back to the playside link.
func (s Screenshots) InspectURL() string {
	if s.Inspect != "" {
		return s.Inspect
	}
	return s.InspectPlayside
}

// PatternData describes the gem measurements for one pattern: the
// percentage of each color visible per side and the number of distinct
// colored sections per side.
type PatternData struct {
	PlaysideBlue   float64
	PlaysidePurple float64
	PlaysideGold   float64
	BacksideBlue   float64
	BacksidePurple float64
	BacksideGold   float64

	PlaysideContourBlue   int
	PlaysideContourPurple int
	BacksideContourBlue   int
	BacksideContourPurple int

	// Pattern is the paint seed these measurements describe. Only set
	// on pattern data queries.
	Pattern *int

	// Quantity is the number of recorded sales for the pattern. Only
	// set when the query asked for quantities.
	Quantity *int

	Screenshots *PatternDataScreenshots
	Extra       *PatternDataExtra
}

// PatternDataScreenshots are example screenshots for a pattern.
type PatternDataScreenshots struct {
	Screenshot string
	AQOiled    string
}

// PatternDataExtra carries reference links for a pattern.
type PatternDataExtra struct {
	SimilarPlayside string
	SimilarBackside string
	CSFloatLink     string
	Search          string
}

// SearchMeta describes the result window of a query.
type SearchMeta struct {
	// Size is the number of records returned.
	Size int

	// Total is the number of records available on the server.
	Total int

	// Currency is the currency prices are denominated in. When the
	// server omits it, the currency the request asked for is used.
	Currency Currency
}

// SearchResponse is the result of a sale search. Sales preserves the
// server's ordering and may be empty; an empty result is not an error.
type SearchResponse struct {
	Meta  SearchMeta
	Sales []Sale
}

// PatternDataResponse is the result of a pattern data query. Data
// preserves the server's ordering.
type PatternDataResponse struct {
	Meta SearchMeta
	Data []PatternData
}
