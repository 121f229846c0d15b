package bluegem

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeDoc(t *testing.T, raw string) map[string]any {
	t.Helper()
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	return doc
}

const saleRecord = `{
	"sale_id": "sale-001",
	"origin": "Buff",
	"buff_id": 900123456,
	"date": "2024-06-01",
	"pattern": 661,
	"wear": 0.034,
	"price": 42000.75,
	"epoch": 1717200000,
	"steam_inspect_link": "steam://rungame/730/inspect",
	"type": "normal",
	"csfloat": "https://csfloat.com/item/1",
	"screenshots": {
		"inspect": "https://example.test/shot.png",
		"inspect_playside": null,
		"inspect_backside": null
	}
}`

func TestParseSearchResponse(t *testing.T) {
	t.Parallel()

	doc := decodeDoc(t, `{
		"meta": {"size": 1, "total": 37},
		"sales": [`+saleRecord+`]
	}`)

	now := time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC)

	resp, err := parseSearchResponse(doc, CurrencyUSD, now)
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Meta.Size)
	assert.Equal(t, 37, resp.Meta.Total)
	assert.Equal(t, CurrencyUSD, resp.Meta.Currency)

	require.Len(t, resp.Sales, 1)
	sale := resp.Sales[0]
	assert.Equal(t, "sale-001", sale.SaleID)
	assert.Equal(t, int64(900123456), sale.BuffID)
	assert.Equal(t, 661, sale.Pattern)
	assert.InDelta(t, 0.034, sale.Wear, 1e-12)
	assert.Equal(t, 42000, sale.Price, "wire float prices truncate")
	assert.Equal(t, TypeNormal, sale.Type)
	assert.False(t, sale.IsStatTrak())
	assert.Equal(t, OriginBuff, sale.Origin)
	assert.Equal(t, "steam://rungame/730/inspect", sale.InspectLink)
	assert.Equal(t, "https://csfloat.com/item/1", sale.CSFloatLink)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), sale.Timestamp)
	assert.Equal(t, time.UTC, sale.Timestamp.Location())
	assert.Equal(t, 10, sale.DaysSince)
	assert.Nil(t, sale.PatternData)
	assert.Equal(t, "https://example.test/shot.png", sale.Screenshots.InspectURL())
}

func TestParseSearchResponseEmpty(t *testing.T) {
	t.Parallel()

	doc := decodeDoc(t, `{"meta": {"size": 0, "total": 0}, "sales": []}`)

	resp, err := parseSearchResponse(doc, CurrencyEUR, time.Now().UTC())
	require.NoError(t, err)
	assert.Empty(t, resp.Sales)
	assert.Equal(t, 0, resp.Meta.Total)
	assert.Equal(t, CurrencyEUR, resp.Meta.Currency)
}

func TestParseSearchResponseMalformedRecord(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(map[string]any)
		errText string
	}{
		{
			name:    "missing wear",
			mutate:  func(m map[string]any) { delete(m, "wear") },
			errText: "wear",
		},
		{
			name:    "missing epoch",
			mutate:  func(m map[string]any) { delete(m, "epoch") },
			errText: "epoch",
		},
		{
			name:    "unknown origin",
			mutate:  func(m map[string]any) { m["origin"] = "SteamMarket" },
			errText: "origin",
		},
		{
			name:    "unknown type",
			mutate:  func(m map[string]any) { m["type"] = "souvenir" },
			errText: "type",
		},
		{
			name:    "mistyped price",
			mutate:  func(m map[string]any) { m["price"] = "a lot" },
			errText: "price",
		},
	}

	now := time.Now().UTC()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			good := decodeDoc(t, saleRecord)
			bad := decodeDoc(t, saleRecord)
			tt.mutate(bad)

			doc := map[string]any{
				"meta":  map[string]any{"size": float64(2), "total": float64(2)},
				"sales": []any{good, bad},
			}

			_, err := parseSearchResponse(doc, CurrencyUSD, now)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedResponse)
			assert.Contains(t, err.Error(), "sale 1")
			assert.Contains(t, err.Error(), tt.errText)
		})
	}
}

func TestParseSearchResponseMissingSales(t *testing.T) {
	t.Parallel()

	doc := decodeDoc(t, `{"meta": {"size": 0, "total": 0}}`)

	_, err := parseSearchResponse(doc, CurrencyUSD, time.Now().UTC())
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestParseMetaCurrency(t *testing.T) {
	t.Parallel()

	withCurrency := decodeDoc(t, `{"meta": {"size": 2, "total": 9, "currency": "JPY"}}`)
	meta := parseMeta(withCurrency, CurrencyUSD)
	assert.Equal(t, CurrencyJPY, meta.Currency)

	withoutCurrency := decodeDoc(t, `{"meta": {"size": 2, "total": 9}}`)
	meta = parseMeta(withoutCurrency, CurrencyCAD)
	assert.Equal(t, CurrencyCAD, meta.Currency, "request currency is the fallback")

	missingMeta := decodeDoc(t, `{}`)
	meta = parseMeta(missingMeta, CurrencyGBP)
	assert.Equal(t, 0, meta.Size)
	assert.Equal(t, CurrencyGBP, meta.Currency)
}

func TestParseSaleWithPatternData(t *testing.T) {
	t.Parallel()

	doc := decodeDoc(t, `{
		"sale_id": "sale-002",
		"origin": "CSFloat",
		"buff_id": 1,
		"pattern": 387,
		"wear": 0.18,
		"price": 1500,
		"epoch": 1700000000,
		"steam_inspect_link": "steam://inspect",
		"type": "stattrak",
		"csfloat": "https://csfloat.com/item/2",
		"screenshots": {
			"inspect": null,
			"inspect_playside": "https://example.test/play.png",
			"inspect_backside": "https://example.test/back.png"
		},
		"pattern_data": {
			"playside_blue": 88.5,
			"playside_purple": 2.5,
			"playside_gold": 0,
			"backside_blue": 12,
			"backside_purple": 30.25,
			"backside_gold": 0.5,
			"playside_contour_blue": 2,
			"playside_contour_purple": 1,
			"backside_contour_blue": 4,
			"backside_contour_purple": 3
		}
	}`)

	sale, err := parseSale(doc, time.Now().UTC())
	require.NoError(t, err)

	assert.True(t, sale.IsStatTrak())
	assert.Equal(t, OriginCSFloat, sale.Origin)
	assert.Equal(t, "https://example.test/play.png", sale.Screenshots.InspectURL(), "playside link backfills inspect")

	require.NotNil(t, sale.PatternData)
	assert.InDelta(t, 88.5, sale.PatternData.PlaysideBlue, 1e-9)
	assert.Equal(t, 4, sale.PatternData.BacksideContourBlue)
	assert.Nil(t, sale.PatternData.Pattern)
	assert.Nil(t, sale.PatternData.Quantity)
}

func TestParseSaleMalformedPatternData(t *testing.T) {
	t.Parallel()

	doc := decodeDoc(t, saleRecord)
	doc["pattern_data"] = map[string]any{"playside_blue": 50.0}

	_, err := parseSale(doc, time.Now().UTC())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedResponse)
	assert.Contains(t, err.Error(), "pattern_data")
}

func TestParsePatternDataResponse(t *testing.T) {
	t.Parallel()

	doc := decodeDoc(t, `{
		"meta": {"size": 1, "total": 1001},
		"data": [{
			"playside_blue": 92.1,
			"playside_purple": 1.2,
			"playside_gold": 0,
			"backside_blue": 45,
			"backside_purple": 10,
			"backside_gold": 2.75,
			"playside_contour_blue": 1,
			"playside_contour_purple": 0,
			"backside_contour_blue": 3,
			"backside_contour_purple": 2,
			"pattern": 661,
			"quantity": 14,
			"screenshots": {
				"csbluegem_screenshot": "https://example.test/661.png",
				"aq_oiled": "https://example.test/661-oiled.png"
			},
			"extra": {
				"similar_playside": "https://example.test/similar-play.png",
				"similar_backside": "https://example.test/similar-back.png",
				"csfloat_link": "https://csfloat.com/db?pattern=661",
				"search": "https://example.test/search?pattern=661"
			}
		}]
	}`)

	resp, err := parsePatternDataResponse(doc, CurrencyUSD)
	require.NoError(t, err)

	assert.Equal(t, 1001, resp.Meta.Total)
	require.Len(t, resp.Data, 1)

	pd := resp.Data[0]
	require.NotNil(t, pd.Pattern)
	assert.Equal(t, 661, *pd.Pattern)
	require.NotNil(t, pd.Quantity)
	assert.Equal(t, 14, *pd.Quantity)
	require.NotNil(t, pd.Screenshots)
	assert.Equal(t, "https://example.test/661.png", pd.Screenshots.Screenshot)
	require.NotNil(t, pd.Extra)
	assert.Equal(t, "https://csfloat.com/db?pattern=661", pd.Extra.CSFloatLink)
}

func TestParsePatternDataResponseMalformed(t *testing.T) {
	t.Parallel()

	doc := decodeDoc(t, `{
		"meta": {"size": 1, "total": 1},
		"data": [{"playside_blue": "very"}]
	}`)

	_, err := parsePatternDataResponse(doc, CurrencyUSD)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedResponse)
	assert.Contains(t, err.Error(), "pattern data 0")
}

func TestParsePriceCheck(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		want    int
		wantErr bool
	}{
		{name: "bare number", body: `1250`, want: 1250},
		{name: "float number", body: `1250.99`, want: 1250},
		{name: "quoted number", body: `"730"`, want: 730},
		{name: "padded text", body: "  420 \n", want: 420},
		{name: "garbage", body: `{"price": 1}`, wantErr: true},
		{name: "empty", body: ``, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := parsePriceCheck([]byte(tt.body))
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrMalformedResponse)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
