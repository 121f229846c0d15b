package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// NotificationLatency returns a timeseries panel showing the p95
// notification webhook latency.
func NotificationLatency() *timeseries.PanelBuilder {
	return TS("Notification Latency (p95)", "95th percentile Discord webhook latency").
		Span(TSWidth).
		WithTarget(PromQuery(
			`bluegem:notification_duration:p95_5m`,
			"p95", "A",
		)).
		Unit("s").
		Thresholds(AlertTiers(1, 5)).
		ColorScheme(FieldColor(dashboard.FieldColorModeIdPaletteClassic))
}

// NotificationFailures returns a stat panel showing notification
// failures in the past 24 hours.
func NotificationFailures() *stat.PanelBuilder {
	return Stat("Notification Failures (24h)", "Failed sale alert deliveries in the last 24 hours").
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(`increase(bluegem_notification_failures_total{job="bluegem-watch"}[24h])`, "", "A")).
		Thresholds(AlertTiers(1, 5)).
		ColorScheme(FieldColor(dashboard.FieldColorModeIdThresholds)).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeArea)
}
