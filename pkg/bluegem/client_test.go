package bluegem_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/csbluegem-go/pkg/bluegem"
)

func saleJSON(id string, epoch int64) string {
	return fmt.Sprintf(`{
		"sale_id": %q,
		"origin": "Buff",
		"buff_id": 42,
		"date": "2024-06-01",
		"pattern": 661,
		"wear": 0.03,
		"price": 1200,
		"epoch": %d,
		"steam_inspect_link": "steam://inspect/%s",
		"type": "normal",
		"csfloat": "https://csfloat.com/item/%s",
		"screenshots": {"inspect": "https://shots.test/%s.png", "inspect_playside": null, "inspect_backside": null}
	}`, id, epoch, id, id, id)
}

func searchBody(total int, sales ...string) string {
	return fmt.Sprintf(
		`{"meta": {"size": %d, "total": %d}, "sales": [%s]}`,
		len(sales), total, strings.Join(sales, ","),
	)
}

func TestClientSearch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		req        bluegem.SearchRequest
		handler    http.HandlerFunc
		wantErr    bool
		errIs      error
		errContain string
		wantSales  int
		wantTotal  int
	}{
		{
			name: "successful search with results",
			req:  bluegem.SearchRequest{Item: bluegem.ItemM9Bayonet, Sort: bluegem.SortPrice},
			handler: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "M9 Bayonet", r.URL.Query().Get("skin"))
				assert.Equal(t, "USD", r.URL.Query().Get("currency"))
				assert.Equal(t, "price", r.URL.Query().Get("sort"))
				assert.Equal(t, "DESC", r.URL.Query().Get("order"))
				assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
				assert.Contains(t, r.Header.Get("User-Agent"), "csbluegem-go/")

				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(searchBody(57,
					saleJSON("a", 1717200000),
					saleJSON("b", 1717100000),
					saleJSON("c", 1717000000),
				)))
			},
			wantSales: 3,
			wantTotal: 57,
		},
		{
			name: "empty results are not an error",
			req:  bluegem.SearchRequest{Item: bluegem.ItemKarambit},
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(searchBody(0)))
			},
			wantSales: 0,
			wantTotal: 0,
		},
		{
			name: "404 maps to not found",
			req:  bluegem.SearchRequest{Item: bluegem.ItemKarambit},
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				_, _ = w.Write([]byte(`{"message": "no sales recorded"}`))
			},
			wantErr: true,
			errIs:   bluegem.ErrNotFound,
		},
		{
			name: "400 maps to invalid request",
			req:  bluegem.SearchRequest{Item: bluegem.ItemKarambit},
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(`{"message": "unsupported parameter"}`))
			},
			wantErr:    true,
			errIs:      bluegem.ErrInvalidRequest,
			errContain: "unsupported parameter",
		},
		{
			name: "500 maps to server error",
			req:  bluegem.SearchRequest{Item: bluegem.ItemKarambit},
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			wantErr: true,
			errIs:   bluegem.ErrServer,
		},
		{
			name: "invalid JSON body",
			req:  bluegem.SearchRequest{Item: bluegem.ItemKarambit},
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "text/html")
				_, _ = w.Write([]byte(`<html>captcha</html>`))
			},
			wantErr: true,
			errIs:   bluegem.ErrMalformedResponse,
		},
		{
			name: "malformed sale fails the whole parse",
			req:  bluegem.SearchRequest{Item: bluegem.ItemKarambit},
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"meta": {"size": 1, "total": 1}, "sales": [{"sale_id": "x"}]}`))
			},
			wantErr:    true,
			errIs:      bluegem.ErrMalformedResponse,
			errContain: "sale 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			client := bluegem.New(bluegem.WithBaseURL(srv.URL))
			defer client.Close()

			resp, err := client.Search(context.Background(), tt.req)

			if tt.wantErr {
				require.Error(t, err)
				if tt.errIs != nil {
					assert.ErrorIs(t, err, tt.errIs)
				}
				if tt.errContain != "" {
					assert.Contains(t, err.Error(), tt.errContain)
				}
				return
			}

			require.NoError(t, err)
			require.NotNil(t, resp)
			assert.Len(t, resp.Sales, tt.wantSales)
			assert.Equal(t, tt.wantTotal, resp.Meta.Total)
		})
	}
}

func TestClientSearch_ValidationBeforeRequest(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(searchBody(0)))
	}))
	defer srv.Close()

	client := bluegem.New(bluegem.WithBaseURL(srv.URL))
	defer client.Close()

	badWear := 1.5
	badPattern := 2000

	tests := []struct {
		name string
		req  bluegem.SearchRequest
	}{
		{
			name: "unknown item",
			req:  bluegem.SearchRequest{Item: bluegem.Item("Glock-18")},
		},
		{
			name: "unknown currency",
			req:  bluegem.SearchRequest{Item: bluegem.ItemKarambit, Currency: bluegem.Currency("BTC")},
		},
		{
			name: "wear out of range",
			req:  bluegem.SearchRequest{Item: bluegem.ItemKarambit, WearMax: &badWear},
		},
		{
			name: "pattern out of range",
			req:  bluegem.SearchRequest{Item: bluegem.ItemKarambit, Pattern: &badPattern},
		},
		{
			name: "invalid filter",
			req: bluegem.SearchRequest{
				Item:    bluegem.ItemKarambit,
				Filters: []bluegem.Filter{{Type: bluegem.FilterPlaysideBlue, Min: 90, Max: 10}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.Search(context.Background(), tt.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, bluegem.ErrBadArgument)
		})
	}

	assert.Equal(t, int32(0), calls.Load(), "validation failures must not reach the server")
}

func TestClientSearch_QueryParams(t *testing.T) {
	t.Parallel()

	pattern := 387
	priceMin := 100.0
	priceMax := 2500.5
	wearMin := 0.01
	wearMax := 0.07
	dateMin := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	dateMax := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	filter, err := bluegem.NewFilter(bluegem.FilterBacksideGold, 0.5, 12)
	require.NoError(t, err)

	req := bluegem.SearchRequest{
		Item:        bluegem.ItemAK47,
		Currency:    bluegem.CurrencyEUR,
		Type:        bluegem.TypeStatTrak,
		Origin:      bluegem.OriginCSFloat,
		Pattern:     &pattern,
		PriceMin:    &priceMin,
		PriceMax:    &priceMax,
		WearMin:     &wearMin,
		WearMax:     &wearMax,
		Sort:        bluegem.SortWear,
		Order:       bluegem.OrderAsc,
		DateMin:     &dateMin,
		DateMax:     &dateMax,
		Limit:       20,
		Offset:      40,
		PatternData: true,
		Filters:     []bluegem.Filter{filter},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "AK-47", q.Get("skin"))
		assert.Equal(t, "EUR", q.Get("currency"))
		assert.Equal(t, "stattrak", q.Get("type"))
		assert.Equal(t, "CSFloat", q.Get("origin"))
		assert.Equal(t, "387", q.Get("pattern"))
		assert.Equal(t, "100", q.Get("price_min"))
		assert.Equal(t, "2500.5", q.Get("price_max"))
		assert.Equal(t, "0.01", q.Get("wear_min"))
		assert.Equal(t, "0.07", q.Get("wear_max"))
		assert.Equal(t, "wear", q.Get("sort"))
		assert.Equal(t, "ASC", q.Get("order"))
		assert.Equal(t, "1672531200", q.Get("date_min"))
		assert.Equal(t, "1704067200", q.Get("date_max"))
		assert.Equal(t, "20", q.Get("limit"))
		assert.Equal(t, "40", q.Get("offset"))
		assert.Equal(t, "true", q.Get("pattern_data"))
		assert.Equal(t, "0.5", q.Get("backside_gold_min"))
		assert.Equal(t, "12", q.Get("backside_gold_max"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(searchBody(0)))
	}))
	defer srv.Close()

	client := bluegem.New(bluegem.WithBaseURL(srv.URL))
	defer client.Close()

	resp, err := client.Search(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, bluegem.CurrencyEUR, resp.Meta.Currency)
}

func TestClientSearch_DaysSince(t *testing.T) {
	t.Parallel()

	// Sold exactly 10.5 days before the pinned clock.
	soldAt := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	now := soldAt.Add(10*24*time.Hour + 12*time.Hour)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(searchBody(1, saleJSON("a", soldAt.Unix()))))
	}))
	defer srv.Close()

	client := bluegem.New(
		bluegem.WithBaseURL(srv.URL),
		bluegem.WithNowFunc(func() time.Time { return now }),
	)
	defer client.Close()

	resp, err := client.Search(context.Background(), bluegem.SearchRequest{Item: bluegem.ItemKarambit})
	require.NoError(t, err)
	require.Len(t, resp.Sales, 1)

	assert.Equal(t, 10, resp.Sales[0].DaysSince)
	assert.Equal(t, soldAt, resp.Sales[0].Timestamp)
}

func TestClientSearchPatterns(t *testing.T) {
	t.Parallel()

	patterns := make([]int, 60)
	for i := range patterns {
		patterns[i] = i + 1
	}

	var mu sync.Mutex
	var gotBatches []string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		batch := r.URL.Query().Get("patterns")

		mu.Lock()
		gotBatches = append(gotBatches, batch)
		n := len(gotBatches)
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(searchBody(10, saleJSON(fmt.Sprintf("batch-%d", n), 1717200000))))
	}))
	defer srv.Close()

	client := bluegem.New(bluegem.WithBaseURL(srv.URL))
	defer client.Close()

	resp, err := client.SearchPatterns(
		context.Background(),
		bluegem.SearchRequest{Item: bluegem.ItemTalonKnife},
		patterns,
	)
	require.NoError(t, err)

	// 60 patterns at the default batch size of 25 means three requests,
	// issued in order.
	require.Len(t, gotBatches, 3)
	assert.Equal(t, joinInts(patterns[:25]), gotBatches[0])
	assert.Equal(t, joinInts(patterns[25:50]), gotBatches[1])
	assert.Equal(t, joinInts(patterns[50:]), gotBatches[2])

	// Results concatenate in batch order and meta is summed.
	require.Len(t, resp.Sales, 3)
	assert.Equal(t, "batch-1", resp.Sales[0].SaleID)
	assert.Equal(t, "batch-2", resp.Sales[1].SaleID)
	assert.Equal(t, "batch-3", resp.Sales[2].SaleID)
	assert.Equal(t, 3, resp.Meta.Size)
	assert.Equal(t, 30, resp.Meta.Total)
}

func TestClientSearchPatterns_BatchSizeOption(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.LessOrEqual(t, len(strings.Split(r.URL.Query().Get("patterns"), ",")), 10)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(searchBody(0)))
	}))
	defer srv.Close()

	client := bluegem.New(
		bluegem.WithBaseURL(srv.URL),
		bluegem.WithPatternBatchSize(10),
	)
	defer client.Close()

	patterns := make([]int, 25)
	for i := range patterns {
		patterns[i] = i
	}

	_, err := client.SearchPatterns(context.Background(), bluegem.SearchRequest{Item: bluegem.ItemBayonet}, patterns)
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClientSearchPatterns_Validation(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	client := bluegem.New(bluegem.WithBaseURL(srv.URL))
	defer client.Close()

	ctx := context.Background()
	base := bluegem.SearchRequest{Item: bluegem.ItemKarambit}

	_, err := client.SearchPatterns(ctx, base, nil)
	assert.ErrorIs(t, err, bluegem.ErrBadArgument)

	_, err = client.SearchPatterns(ctx, base, []int{5, 1001})
	assert.ErrorIs(t, err, bluegem.ErrBadArgument)

	fixed := 661
	conflicting := bluegem.SearchRequest{Item: bluegem.ItemKarambit, Pattern: &fixed}
	_, err = client.SearchPatterns(ctx, conflicting, []int{1, 2})
	assert.ErrorIs(t, err, bluegem.ErrBadArgument)

	assert.Equal(t, int32(0), calls.Load())
}

func TestClientSearchPatterns_FailingBatch(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 2 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(searchBody(1, saleJSON("ok", 1717200000))))
	}))
	defer srv.Close()

	client := bluegem.New(
		bluegem.WithBaseURL(srv.URL),
		bluegem.WithPatternBatchSize(1),
	)
	defer client.Close()

	resp, err := client.SearchPatterns(
		context.Background(),
		bluegem.SearchRequest{Item: bluegem.ItemKarambit},
		[]int{1, 2, 3},
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, bluegem.ErrServer)
	assert.Nil(t, resp, "a failing batch must not yield partial results")
	assert.Equal(t, int32(2), calls.Load(), "later batches are not attempted")
}

func TestClientPatternData(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "Karambit", q.Get("skin"))
		assert.Equal(t, "pattern", q.Get("sort"), "pattern data defaults to sorting by pattern")
		assert.Equal(t, "DESC", q.Get("order"))
		assert.Equal(t, "true", q.Get("quantity"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"meta": {"size": 1, "total": 1001},
			"data": [{
				"playside_blue": 90, "playside_purple": 1, "playside_gold": 0,
				"backside_blue": 30, "backside_purple": 20, "backside_gold": 0,
				"playside_contour_blue": 2, "playside_contour_purple": 0,
				"backside_contour_blue": 3, "backside_contour_purple": 1,
				"pattern": 661, "quantity": 9
			}]
		}`))
	}))
	defer srv.Close()

	client := bluegem.New(bluegem.WithBaseURL(srv.URL))
	defer client.Close()

	resp, err := client.PatternData(context.Background(), bluegem.PatternDataRequest{
		Item:     bluegem.ItemKarambit,
		Quantity: true,
	})
	require.NoError(t, err)

	require.Len(t, resp.Data, 1)
	require.NotNil(t, resp.Data[0].Pattern)
	assert.Equal(t, 661, *resp.Data[0].Pattern)
	require.NotNil(t, resp.Data[0].Quantity)
	assert.Equal(t, 9, *resp.Data[0].Quantity)
	assert.Equal(t, 1001, resp.Meta.Total)
}

func TestClientPatternData_Validation(t *testing.T) {
	t.Parallel()

	client := bluegem.New(bluegem.WithBaseURL("http://unreachable.invalid"))
	defer client.Close()

	_, err := client.PatternData(context.Background(), bluegem.PatternDataRequest{Item: bluegem.Item("Tec-9")})
	assert.ErrorIs(t, err, bluegem.ErrBadArgument)
}

func TestClientPriceCheck(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "M9 Bayonet", q.Get("skin"))
		assert.Equal(t, "601", q.Get("pattern"))
		assert.Equal(t, "0.05", q.Get("wear"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`18500`))
	}))
	defer srv.Close()

	client := bluegem.New(bluegem.WithBaseURL(srv.URL))
	defer client.Close()

	price, err := client.PriceCheck(context.Background(), bluegem.ItemM9Bayonet, 601, 0.05)
	require.NoError(t, err)
	assert.Equal(t, 18500, price)
}

func TestClientPriceCheck_Validation(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	client := bluegem.New(bluegem.WithBaseURL(srv.URL))
	defer client.Close()

	ctx := context.Background()

	tests := []struct {
		name    string
		item    bluegem.Item
		pattern int
		wear    float64
	}{
		{name: "bad item", item: bluegem.Item("P250"), pattern: 1, wear: 0.1},
		{name: "pattern too large", item: bluegem.ItemKarambit, pattern: 1001, wear: 0.1},
		{name: "negative pattern", item: bluegem.ItemKarambit, pattern: -1, wear: 0.1},
		{name: "zero wear", item: bluegem.ItemKarambit, pattern: 1, wear: 0},
		{name: "wear above one", item: bluegem.ItemKarambit, pattern: 1, wear: 1.01},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.PriceCheck(ctx, tt.item, tt.pattern, tt.wear)
			require.Error(t, err)
			assert.ErrorIs(t, err, bluegem.ErrBadArgument)
		})
	}

	assert.Equal(t, int32(0), calls.Load())
}

func TestClientContextCancellation(t *testing.T) {
	t.Parallel()

	started := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	}))
	defer srv.Close()

	client := bluegem.New(bluegem.WithBaseURL(srv.URL))
	defer client.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	_, err := client.Search(ctx, bluegem.SearchRequest{Item: bluegem.ItemKarambit})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClientRateLimit(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(searchBody(0)))
	}))
	defer srv.Close()

	// One token per ~17 minutes with a burst of one: the first call drains
	// the bucket, so the second can only fail on its context.
	client := bluegem.New(
		bluegem.WithBaseURL(srv.URL),
		bluegem.WithRateLimit(0.001, 1),
	)
	defer client.Close()

	_, err := client.Search(context.Background(), bluegem.SearchRequest{Item: bluegem.ItemKarambit})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = client.Search(ctx, bluegem.SearchRequest{Item: bluegem.ItemKarambit})
	require.Error(t, err)
	assert.ErrorContains(t, err, "rate limit")
	assert.Equal(t, int32(1), calls.Load())
}

func TestClientRateLimit_ZeroDisables(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(searchBody(0)))
	}))
	defer srv.Close()

	client := bluegem.New(
		bluegem.WithBaseURL(srv.URL),
		bluegem.WithRateLimit(0, 10),
	)
	defer client.Close()

	for range 5 {
		_, err := client.Search(context.Background(), bluegem.SearchRequest{Item: bluegem.ItemKarambit})
		require.NoError(t, err)
	}
	assert.Equal(t, int32(5), calls.Load())
}

func joinInts(ns []int) string {
	parts := make([]string, 0, len(ns))
	for _, n := range ns {
		parts = append(parts, fmt.Sprintf("%d", n))
	}
	return strings.Join(parts, ",")
}
