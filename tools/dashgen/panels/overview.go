package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
)

// UpStat returns a stat panel showing whether the watch daemon is up.
func UpStat() *stat.PanelBuilder {
	return Stat("Up", "Watch daemon scrape status (1 = up, 0 = down)").
		WithTarget(PromQuery(`up{job="bluegem-watch"}`, "", "A")).
		Thresholds(OkAbove(1)).
		ColorScheme(FieldColor(dashboard.FieldColorModeIdThresholds)).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeNone).
		TextMode(common.BigValueTextModeValue)
}

// UptimeStat returns a stat panel showing process uptime.
func UptimeStat() *stat.PanelBuilder {
	return Stat("Uptime", "Time since process start").
		WithTarget(PromQuery(
			`time() - process_start_time_seconds{job="bluegem-watch"}`,
			"", "A",
		)).
		Unit("s").
		Thresholds(NeutralThreshold()).
		ColorScheme(FieldColor(dashboard.FieldColorModeIdThresholds)).
		GraphMode(common.BigValueGraphModeNone)
}

// NewSalesStat returns a stat panel showing new blue gem sales detected
// in the past 24 hours.
func NewSalesStat() *stat.PanelBuilder {
	return Stat("New Sales (24h)", "New sales detected across all watches in the last 24 hours").
		WithTarget(PromQuery(
			`sum(increase(bluegem_watch_new_sales_total{job="bluegem-watch"}[24h]))`,
			"", "A",
		)).
		Thresholds(NeutralThreshold()).
		ColorScheme(FieldColor(dashboard.FieldColorModeIdThresholds)).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeArea)
}

// WatchFailuresStat returns a stat panel showing failed watch runs in
// the past 24 hours.
func WatchFailuresStat() *stat.PanelBuilder {
	return Stat("Watch Failures (24h)", "Failed watch runs in the last 24 hours").
		WithTarget(PromQuery(
			`sum(increase(bluegem_watch_runs_total{job="bluegem-watch",outcome="error"}[24h]))`,
			"", "A",
		)).
		Thresholds(AlertTiers(1, 5)).
		ColorScheme(FieldColor(dashboard.FieldColorModeIdThresholds)).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeNone)
}
