package main

import "errors"

// KnownMetrics is the set of metric names exported by the bluegem watch
// daemon plus recording rule names referenced in dashboards and alerts.
var KnownMetrics = map[string]bool{
	// API client metrics.
	"bluegem_api_calls_total":           true,
	"bluegem_api_call_duration_seconds": true,
	"bluegem_parse_failures_total":      true,
	"bluegem_chunked_searches_total":    true,
	"bluegem_chunked_search_batches":    true,

	// Watch engine metrics.
	"bluegem_watch_runs_total":      true,
	"bluegem_watch_new_sales_total": true,

	// Notification metrics.
	"bluegem_notification_failures_total":   true,
	"bluegem_notification_duration_seconds": true,

	// Recording rules.
	"bluegem:api_calls:rate5m":             true,
	"bluegem:api_errors:rate5m":            true,
	"bluegem:parse_failures:rate5m":        true,
	"bluegem:watch_failures:rate5m":        true,
	"bluegem:new_sales:rate5m":             true,
	"bluegem:notification_duration:p95_5m": true,

	// Standard Prometheus metrics referenced in dashboards.
	"up":                         true,
	"process_start_time_seconds": true,
}

// Config controls which artifacts the generator produces and where they go.
type Config struct {
	OutputDir        string
	DashboardEnabled bool
	RulesEnabled     bool
}

// DefaultConfig returns a Config that generates all artifacts into ../../deploy
// (relative to tools/dashgen/).
func DefaultConfig() Config {
	return Config{
		OutputDir:        "../../deploy",
		DashboardEnabled: true,
		RulesEnabled:     true,
	}
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output directory must be set")
	}
	if !c.DashboardEnabled && !c.RulesEnabled {
		return errors.New("at least one of dashboard or rules must be enabled")
	}
	return nil
}
