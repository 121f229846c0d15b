package bluegem

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// parseSearchResponse builds a SearchResponse from a decoded /search
// document. A single malformed record fails the whole parse; callers
// never see partial results.
func parseSearchResponse(doc map[string]any, requested Currency, now time.Time) (*SearchResponse, error) {
	raw, ok := docSlice(doc, "sales")
	if !ok {
		return nil, malformedf("missing sales array")
	}

	sales := make([]Sale, 0, len(raw))
	for i, entry := range raw {
		record, ok := entry.(map[string]any)
		if !ok {
			return nil, malformedf("sale %d: not an object", i)
		}
		sale, err := parseSale(record, now)
		if err != nil {
			return nil, fmt.Errorf("sale %d: %w", i, err)
		}
		sales = append(sales, sale)
	}

	return &SearchResponse{
		Meta:  parseMeta(doc, requested),
		Sales: sales,
	}, nil
}

// parsePatternDataResponse builds a PatternDataResponse from a decoded
// /patterndata document.
func parsePatternDataResponse(doc map[string]any, requested Currency) (*PatternDataResponse, error) {
	raw, ok := docSlice(doc, "data")
	if !ok {
		return nil, malformedf("missing data array")
	}

	data := make([]PatternData, 0, len(raw))
	for i, entry := range raw {
		record, ok := entry.(map[string]any)
		if !ok {
			return nil, malformedf("pattern data %d: not an object", i)
		}
		pd, err := parsePatternData(record)
		if err != nil {
			return nil, fmt.Errorf("pattern data %d: %w", i, err)
		}
		data = append(data, pd)
	}

	return &PatternDataResponse{
		Meta: parseMeta(doc, requested),
		Data: data,
	}, nil
}

// parsePriceCheck reads a /pricecheck body. The endpoint returns a bare
// number, though some gateways wrap it as a quoted string.
func parsePriceCheck(body []byte) (int, error) {
	var n float64
	if err := json.Unmarshal(body, &n); err == nil {
		return int(n), nil
	}

	s := strings.Trim(strings.TrimSpace(string(body)), `"`)
	price, err := strconv.Atoi(s)
	if err != nil {
		return 0, malformedf("price check returned %q", string(body))
	}
	return price, nil
}

func parseMeta(doc map[string]any, requested Currency) SearchMeta {
	meta := SearchMeta{Currency: requested}

	m, ok := docMap(doc, "meta")
	if !ok {
		return meta
	}

	meta.Size = docIntOr(m, "size", 0)
	meta.Total = docIntOr(m, "total", 0)
	if cur, ok := docString(m, "currency"); ok {
		if parsed, err := ParseCurrency(cur); err == nil {
			meta.Currency = parsed
		}
	}
	return meta
}

func parseSale(doc map[string]any, now time.Time) (Sale, error) {
	var sale Sale
	var ok bool

	if sale.SaleID, ok = docString(doc, "sale_id"); !ok {
		return Sale{}, malformedf("missing sale_id")
	}
	if sale.BuffID, ok = docInt64(doc, "buff_id"); !ok {
		return Sale{}, malformedf("missing buff_id")
	}
	if sale.Pattern, ok = docInt(doc, "pattern"); !ok {
		return Sale{}, malformedf("missing pattern")
	}
	if sale.Wear, ok = docFloat(doc, "wear"); !ok {
		return Sale{}, malformedf("missing wear")
	}
	if sale.Price, ok = docInt(doc, "price"); !ok {
		return Sale{}, malformedf("missing price")
	}
	if sale.InspectLink, ok = docString(doc, "steam_inspect_link"); !ok {
		return Sale{}, malformedf("missing steam_inspect_link")
	}
	if sale.CSFloatLink, ok = docString(doc, "csfloat"); !ok {
		return Sale{}, malformedf("missing csfloat")
	}

	epoch, ok := docInt64(doc, "epoch")
	if !ok {
		return Sale{}, malformedf("missing epoch")
	}
	sale.Timestamp = epochTime(epoch)
	sale.DaysSince = daysBetween(now, sale.Timestamp)

	rawType, ok := docString(doc, "type")
	if !ok {
		return Sale{}, malformedf("missing type")
	}
	typ, err := ParseItemType(rawType)
	if err != nil {
		return Sale{}, malformedf("unknown type %q", rawType)
	}
	sale.Type = typ

	rawOrigin, ok := docString(doc, "origin")
	if !ok {
		return Sale{}, malformedf("missing origin")
	}
	origin, err := ParseOrigin(rawOrigin)
	if err != nil {
		return Sale{}, malformedf("unknown origin %q", rawOrigin)
	}
	sale.Origin = origin

	// Screenshot links vary by origin; absent entries stay empty.
	if shots, ok := docMap(doc, "screenshots"); ok {
		sale.Screenshots = Screenshots{
			Inspect:         docStringOr(shots, "inspect", ""),
			InspectPlayside: docStringOr(shots, "inspect_playside", ""),
			InspectBackside: docStringOr(shots, "inspect_backside", ""),
		}
	}

	if pd, ok := docMap(doc, "pattern_data"); ok {
		parsed, err := parsePatternData(pd)
		if err != nil {
			return Sale{}, fmt.Errorf("pattern_data: %w", err)
		}
		sale.PatternData = &parsed
	}

	return sale, nil
}

func parsePatternData(doc map[string]any) (PatternData, error) {
	var pd PatternData

	percentages := []struct {
		key  string
		dest *float64
	}{
		{"playside_blue", &pd.PlaysideBlue},
		{"playside_purple", &pd.PlaysidePurple},
		{"playside_gold", &pd.PlaysideGold},
		{"backside_blue", &pd.BacksideBlue},
		{"backside_purple", &pd.BacksidePurple},
		{"backside_gold", &pd.BacksideGold},
	}
	for _, p := range percentages {
		v, ok := docFloat(doc, p.key)
		if !ok {
			return PatternData{}, malformedf("missing %s", p.key)
		}
		*p.dest = v
	}

	contours := []struct {
		key  string
		dest *int
	}{
		{"playside_contour_blue", &pd.PlaysideContourBlue},
		{"playside_contour_purple", &pd.PlaysideContourPurple},
		{"backside_contour_blue", &pd.BacksideContourBlue},
		{"backside_contour_purple", &pd.BacksideContourPurple},
	}
	for _, c := range contours {
		v, ok := docInt(doc, c.key)
		if !ok {
			return PatternData{}, malformedf("missing %s", c.key)
		}
		*c.dest = v
	}

	if pattern, ok := docInt(doc, "pattern"); ok {
		pd.Pattern = &pattern
	}
	if quantity, ok := docInt(doc, "quantity"); ok {
		pd.Quantity = &quantity
	}

	if shots, ok := docMap(doc, "screenshots"); ok {
		pd.Screenshots = &PatternDataScreenshots{
			Screenshot: docStringOr(shots, "csbluegem_screenshot", ""),
			AQOiled:    docStringOr(shots, "aq_oiled", ""),
		}
	}

	if extra, ok := docMap(doc, "extra"); ok {
		pd.Extra = &PatternDataExtra{
			SimilarPlayside: docStringOr(extra, "similar_playside", ""),
			SimilarBackside: docStringOr(extra, "similar_backside", ""),
			CSFloatLink:     docStringOr(extra, "csfloat_link", ""),
			Search:          docStringOr(extra, "search", ""),
		}
	}

	return pd, nil
}
