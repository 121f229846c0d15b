package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// WatchRunRate returns a timeseries panel showing watch runs per second
// broken down by watch name.
func WatchRunRate() *timeseries.PanelBuilder {
	return TS("Watch Run Rate", "Watch runs per second by watch").
		Span(ThirdWidth).
		WithTarget(PromQuery(
			`sum(rate(bluegem_watch_runs_total{job="bluegem-watch"}[5m])) by (watch)`,
			"{{watch}}", "A",
		)).
		Legend(TableLegend("mean", "max")).
		Thresholds(NeutralThreshold()).
		ColorScheme(FieldColor(dashboard.FieldColorModeIdPaletteClassic))
}

// NewSalesRate returns a timeseries panel showing new sales detected per
// second broken down by watch name.
func NewSalesRate() *timeseries.PanelBuilder {
	return TS("New Sales Rate", "New sales detected per second by watch").
		Span(ThirdWidth).
		WithTarget(PromQuery(
			`sum(rate(bluegem_watch_new_sales_total{job="bluegem-watch"}[5m])) by (watch)`,
			"{{watch}}", "A",
		)).
		Legend(TableLegend("mean", "max")).
		Thresholds(NeutralThreshold()).
		ColorScheme(FieldColor(dashboard.FieldColorModeIdPaletteClassic))
}

// WatchFailureRate returns a timeseries panel showing the rate of failed
// watch runs.
func WatchFailureRate() *timeseries.PanelBuilder {
	return TS("Watch Failure Rate", "Failed watch runs per second").
		Span(ThirdWidth).
		WithTarget(PromQuery(`bluegem:watch_failures:rate5m`, "failures/s", "A")).
		Thresholds(AlertTiers(0.01, 0.1)).
		ColorScheme(FieldColor(dashboard.FieldColorModeIdThresholds))
}
