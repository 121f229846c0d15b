package bluegem

import (
	"math"
	"net/url"
	"strconv"
)

// Filter constrains one gem measurement dimension to a [Min, Max] range.
// Percentage dimensions take values in [0, 100], contour dimensions take
// non-negative whole counts. Several filters may target the same
// dimension; each is sent to the API as a distinct pair of bounds.
type Filter struct {
	Type FilterType
	Min  float64
	Max  float64
}

// NewFilter builds a validated Filter. It fails with ErrBadArgument when
// the dimension is unknown or the bounds are out of range.
func NewFilter(ft FilterType, min, max float64) (Filter, error) {
	f := Filter{Type: ft, Min: min, Max: max}
	if err := f.Validate(); err != nil {
		return Filter{}, err
	}
	return f, nil
}

// Validate checks the filter's bounds against its dimension.
// Percentage dimensions require 0 <= min < max <= 100. Contour
// dimensions require 0 <= min <= max with whole-number bounds.
func (f Filter) Validate() error {
	if !f.Type.Valid() {
		return badArgumentf("unknown filter type %q", string(f.Type))
	}

	if f.Type.IsPercentage() {
		if f.Min < 0 || f.Max > 100 || f.Min >= f.Max {
			return badArgumentf("filter %s: bounds [%v, %v] must satisfy 0 <= min < max <= 100", f.Type, f.Min, f.Max)
		}
		return nil
	}

	if f.Min != math.Trunc(f.Min) || f.Max != math.Trunc(f.Max) {
		return badArgumentf("filter %s: contour bounds [%v, %v] must be whole numbers", f.Type, f.Min, f.Max)
	}
	if f.Min < 0 || f.Min > f.Max {
		return badArgumentf("filter %s: bounds [%v, %v] must satisfy 0 <= min <= max", f.Type, f.Min, f.Max)
	}
	return nil
}

// apply writes the filter's bounds into query parameters. Percentage
// bounds keep their fractional part, contour bounds are sent as
// integers.
func (f Filter) apply(params url.Values) {
	if f.Type.IsPercentage() {
		params.Add(string(f.Type)+"_min", strconv.FormatFloat(f.Min, 'f', -1, 64))
		params.Add(string(f.Type)+"_max", strconv.FormatFloat(f.Max, 'f', -1, 64))
		return
	}
	params.Add(string(f.Type)+"_min", strconv.Itoa(int(f.Min)))
	params.Add(string(f.Type)+"_max", strconv.Itoa(int(f.Max)))
}
