package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// APICallRate returns a timeseries panel showing the CSBlueGem API call rate.
func APICallRate() *timeseries.PanelBuilder {
	return TS("API Call Rate", "CSBlueGem API calls per second").
		Span(ThirdWidth).
		WithTarget(PromQuery(`bluegem:api_calls:rate5m`, "calls/s", "A")).
		Unit("reqps").
		Legend(TableLegend("mean", "max")).
		Thresholds(NeutralThreshold()).
		ColorScheme(FieldColor(dashboard.FieldColorModeIdPaletteClassic))
}

// APILatencyPercentiles returns a timeseries panel showing p50, p95, and
// p99 CSBlueGem API call latencies.
func APILatencyPercentiles() *timeseries.PanelBuilder {
	return TS("API Latency Percentiles", "CSBlueGem API call duration percentiles").
		Span(ThirdWidth).
		WithTarget(PromQuery(
			`histogram_quantile(0.50, sum(rate(bluegem_api_call_duration_seconds_bucket{job="bluegem-watch"}[5m])) by (le))`,
			"p50",
			"A",
		)).
		WithTarget(PromQuery(
			`histogram_quantile(0.95, sum(rate(bluegem_api_call_duration_seconds_bucket{job="bluegem-watch"}[5m])) by (le))`,
			"p95",
			"B",
		)).
		WithTarget(PromQuery(
			`histogram_quantile(0.99, sum(rate(bluegem_api_call_duration_seconds_bucket{job="bluegem-watch"}[5m])) by (le))`,
			"p99",
			"C",
		)).
		Unit("s").
		Legend(TableLegend("mean", "max")).
		Thresholds(NeutralThreshold()).
		ColorScheme(FieldColor(dashboard.FieldColorModeIdPaletteClassic))
}

// APIErrorRate returns a timeseries panel showing the API 5xx error rate
// as a percentage.
func APIErrorRate() *timeseries.PanelBuilder {
	return TS("API Error Rate %", "API 5xx error rate as percentage of total calls").
		Span(ThirdWidth).
		WithTarget(PromQuery(
			`bluegem:api_errors:rate5m / bluegem:api_calls:rate5m * 100`,
			"error %", "A",
		)).
		Unit("percent").
		Thresholds(AlertTiers(1, 5)).
		ColorScheme(FieldColor(dashboard.FieldColorModeIdThresholds))
}
