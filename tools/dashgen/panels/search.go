package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/bargauge"
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// ChunkedSearchRate returns a timeseries panel showing the rate of
// multi-pattern searches split into batches.
func ChunkedSearchRate() *timeseries.PanelBuilder {
	return TS("Chunked Search Rate", "Multi-pattern searches per second").
		Span(TSWidth).
		WithTarget(PromQuery(
			`sum(rate(bluegem_chunked_searches_total{job="bluegem-watch"}[5m]))`,
			"searches/s", "A",
		)).
		Thresholds(NeutralThreshold()).
		ColorScheme(FieldColor(dashboard.FieldColorModeIdPaletteClassic))
}

// ParseFailures returns a timeseries panel showing the rate of responses
// the client could not decode.
func ParseFailures() *timeseries.PanelBuilder {
	return TS("Parse Failures", "API responses that failed to decode, per second").
		Span(TSWidth).
		WithTarget(PromQuery(`bluegem:parse_failures:rate5m`, "failures/s", "A")).
		Thresholds(AlertTiers(0.1, 1)).
		ColorScheme(FieldColor(dashboard.FieldColorModeIdThresholds))
}

// BatchSizeDistribution returns a bar gauge panel showing how many
// batches chunked searches needed over the past hour.
func BatchSizeDistribution() *bargauge.PanelBuilder {
	return bargauge.NewPanelBuilder().
		Title("Batch Size Distribution").
		Description("Batches per chunked search over the last hour").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(FullWidth).
		WithTarget(PromQuery(
			`sum(increase(bluegem_chunked_search_batches_bucket{job="bluegem-watch"}[1h])) by (le)`,
			"{{le}}", "A",
		)).
		Orientation(common.VizOrientationHorizontal).
		Min(0).
		Thresholds(NeutralThreshold()).
		ColorScheme(FieldColor(dashboard.FieldColorModeIdPaletteClassic))
}
