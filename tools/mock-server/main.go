// Package main implements a mock CSBlueGem API server for local development.
// It serves canned responses from JSON fixtures to simulate the /search,
// /patterndata, and /pricecheck endpoints without hitting the real service.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/donaldgifford/csbluegem-go/api/openapi"
)

type searchDocument struct {
	Meta  map[string]any   `json:"meta"`
	Sales []map[string]any `json:"sales"`
}

type patternDataDocument struct {
	Meta map[string]any   `json:"meta"`
	Data []map[string]any `json:"data"`
}

func main() {
	port := flag.Int("port", 8089, "port to listen on")
	dataDir := flag.String("data", "tools/mock-server/testdata", "directory with fixture JSON")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	sales, err := loadSearchFixture(filepath.Join(*dataDir, "search_response.json"))
	if err != nil {
		logger.Error("failed to load search fixture", "error", err)
		os.Exit(1)
	}
	patterns, err := loadPatternDataFixture(filepath.Join(*dataDir, "pattern_data.json"))
	if err != nil {
		logger.Error("failed to load pattern data fixture", "error", err)
		os.Exit(1)
	}
	logger.Info("loaded fixtures", "sales", len(sales.Sales), "patterns", len(patterns.Data))

	mux := http.NewServeMux()
	mux.HandleFunc("GET /search", searchHandler(logger, sales, patterns))
	mux.HandleFunc("GET /patterndata", patternDataHandler(logger, patterns))
	mux.HandleFunc("GET /pricecheck", priceCheckHandler(logger, sales))
	openapi.Register(mux)

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("starting mock CSBlueGem server", "addr", addr)

	srv := &http.Server{
		Addr:         addr,
		Handler:      requestLogger(logger, mux),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func loadSearchFixture(path string) (*searchDocument, error) {
	data, err := os.ReadFile(path) //nolint:gosec // fixture path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading fixture: %w", err)
	}
	var doc searchDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}
	return &doc, nil
}

func loadPatternDataFixture(path string) (*patternDataDocument, error) {
	data, err := os.ReadFile(path) //nolint:gosec // fixture path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading fixture: %w", err)
	}
	var doc patternDataDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}
	return &doc, nil
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("request", "method", r.Method, "path", r.URL.Path, "query", r.URL.RawQuery)
		next.ServeHTTP(w, r)
	})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
	json.NewEncoder(w).Encode(map[string]string{"message": msg})
}

func searchHandler(
	logger *slog.Logger,
	fixture *searchDocument,
	patterns *patternDataDocument,
) http.HandlerFunc {
	// Index pattern data by seed so pattern_data=true can attach it.
	byPattern := make(map[int]map[string]any, len(patterns.Data))
	for _, record := range patterns.Data {
		if seed, ok := recordInt(record, "pattern"); ok {
			byPattern[seed] = record
		}
	}

	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("skin") == "" {
			writeError(w, http.StatusBadRequest, "missing skin parameter")
			return
		}

		matched := make([]map[string]any, 0, len(fixture.Sales))
		for _, s := range fixture.Sales {
			if saleMatches(s, q) {
				matched = append(matched, s)
			}
		}

		sortRecords(matched, sortField(q.Get("sort"), "epoch"), q.Get("order") != "ASC")

		total := len(matched)
		matched = window(matched, q.Get("limit"), q.Get("offset"))

		if q.Get("pattern_data") == "true" {
			matched = attachPatternData(matched, byPattern)
		}

		currency := q.Get("currency")
		if currency == "" {
			currency = "USD"
		}

		w.Header().Set("Content-Type", "application/json")
		//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
		json.NewEncoder(w).Encode(searchDocument{
			Meta:  map[string]any{"size": len(matched), "total": total, "currency": currency},
			Sales: matched,
		})
		logger.Info("search",
			"skin", q.Get("skin"), "matched", total, "returned", len(matched))
	}
}

func patternDataHandler(logger *slog.Logger, fixture *patternDataDocument) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("skin") == "" {
			writeError(w, http.StatusBadRequest, "missing skin parameter")
			return
		}

		matched := make([]map[string]any, 0, len(fixture.Data))
		for _, record := range fixture.Data {
			if patternDataMatches(record, q) {
				matched = append(matched, record)
			}
		}

		sortRecords(matched, sortField(q.Get("sort"), "pattern"), q.Get("order") != "ASC")

		total := len(matched)
		matched = window(matched, q.Get("limit"), q.Get("offset"))

		// The real API reports quantities only when asked.
		if q.Get("quantity") != "true" {
			stripped := make([]map[string]any, len(matched))
			for i, record := range matched {
				stripped[i] = withoutKey(record, "quantity")
			}
			matched = stripped
		}

		w.Header().Set("Content-Type", "application/json")
		//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
		json.NewEncoder(w).Encode(patternDataDocument{
			Meta: map[string]any{"size": len(matched), "total": total, "currency": "USD"},
			Data: matched,
		})
		logger.Info("patterndata",
			"skin", q.Get("skin"), "matched", total, "returned", len(matched))
	}
}

func priceCheckHandler(logger *slog.Logger, fixture *searchDocument) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("skin") == "" {
			writeError(w, http.StatusBadRequest, "missing skin parameter")
			return
		}
		pattern, err := strconv.Atoi(q.Get("pattern"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad pattern parameter")
			return
		}
		if _, err := strconv.ParseFloat(q.Get("wear"), 64); err != nil {
			writeError(w, http.StatusBadRequest, "bad wear parameter")
			return
		}

		// Estimate from fixture sales of the same pattern when possible.
		sum, count := 0, 0
		for _, s := range fixture.Sales {
			if seed, ok := recordInt(s, "pattern"); ok && seed == pattern {
				if price, ok := recordInt(s, "price"); ok {
					sum += price
					count++
				}
			}
		}
		price := 1000 + pattern
		if count > 0 {
			price = sum / count
		}

		w.Header().Set("Content-Type", "application/json")
		//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
		fmt.Fprintf(w, "%d", price)
		logger.Info("pricecheck", "skin", q.Get("skin"), "pattern", pattern, "price", price)
	}
}

func saleMatches(s map[string]any, q map[string][]string) bool {
	get := func(key string) string {
		if v, ok := q[key]; ok && len(v) > 0 {
			return v[0]
		}
		return ""
	}

	if p := get("pattern"); p != "" {
		want, err := strconv.Atoi(p)
		if err != nil {
			return false
		}
		if seed, ok := recordInt(s, "pattern"); !ok || seed != want {
			return false
		}
	}
	if t := get("type"); t != "" {
		if s["type"] != t {
			return false
		}
	}
	if o := get("origin"); o != "" {
		if s["origin"] != o {
			return false
		}
	}
	if !inRange(s, "price", get("price_min"), get("price_max")) {
		return false
	}
	if !inRange(s, "wear", get("wear_min"), get("wear_max")) {
		return false
	}
	if !inRange(s, "epoch", get("date_min"), get("date_max")) {
		return false
	}
	return true
}

// patternDataMatches applies <dimension>_min / <dimension>_max query params
// against the record's measurement fields.
func patternDataMatches(record map[string]any, q map[string][]string) bool {
	get := func(key string) string {
		if v, ok := q[key]; ok && len(v) > 0 {
			return v[0]
		}
		return ""
	}

	if p := get("pattern"); p != "" {
		want, err := strconv.Atoi(p)
		if err != nil {
			return false
		}
		if seed, ok := recordInt(record, "pattern"); !ok || seed != want {
			return false
		}
	}

	dimensions := []string{
		"playside_blue", "playside_purple", "playside_gold",
		"backside_blue", "backside_purple", "backside_gold",
		"playside_contour_blue", "playside_contour_purple",
		"backside_contour_blue", "backside_contour_purple",
	}
	for _, dim := range dimensions {
		if !inRange(record, dim, get(dim+"_min"), get(dim+"_max")) {
			return false
		}
	}
	return true
}

func inRange(record map[string]any, key, minStr, maxStr string) bool {
	if minStr == "" && maxStr == "" {
		return true
	}
	v, ok := recordFloat(record, key)
	if !ok {
		return false
	}
	if minStr != "" {
		lo, err := strconv.ParseFloat(minStr, 64)
		if err != nil || v < lo {
			return false
		}
	}
	if maxStr != "" {
		hi, err := strconv.ParseFloat(maxStr, 64)
		if err != nil || v > hi {
			return false
		}
	}
	return true
}

func sortField(key, fallback string) string {
	switch key {
	case "date", "":
		return fallback
	case "price", "wear", "pattern":
		return key
	default:
		// Pattern data dimensions sort by their own field name.
		return key
	}
}

func sortRecords(records []map[string]any, field string, desc bool) {
	sort.SliceStable(records, func(i, j int) bool {
		a, _ := recordFloat(records[i], field)
		b, _ := recordFloat(records[j], field)
		if desc {
			return a > b
		}
		return a < b
	})
}

func window(records []map[string]any, limitStr, offsetStr string) []map[string]any {
	limit := 50
	if v, err := strconv.Atoi(limitStr); err == nil && v > 0 {
		limit = v
	}
	offset := 0
	if v, err := strconv.Atoi(offsetStr); err == nil && v >= 0 {
		offset = v
	}

	if offset >= len(records) {
		return []map[string]any{}
	}
	end := min(offset+limit, len(records))
	return records[offset:end]
}

func attachPatternData(sales []map[string]any, byPattern map[int]map[string]any) []map[string]any {
	out := make([]map[string]any, len(sales))
	for i, s := range sales {
		seed, ok := recordInt(s, "pattern")
		if !ok {
			out[i] = s
			continue
		}
		record, ok := byPattern[seed]
		if !ok {
			out[i] = s
			continue
		}
		enriched := make(map[string]any, len(s)+1)
		for k, v := range s {
			enriched[k] = v
		}
		enriched["pattern_data"] = withoutKey(record, "quantity")
		out[i] = enriched
	}
	return out
}

func withoutKey(record map[string]any, key string) map[string]any {
	out := make(map[string]any, len(record))
	for k, v := range record {
		if k == key {
			continue
		}
		out[k] = v
	}
	return out
}

func recordFloat(record map[string]any, key string) (float64, bool) {
	v, ok := record[key].(float64)
	return v, ok
}

func recordInt(record map[string]any, key string) (int, bool) {
	v, ok := record[key].(float64)
	return int(v), ok
}
