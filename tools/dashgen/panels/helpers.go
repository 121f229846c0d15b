// Package panels provides the Grafana panel builders for the bluegem
// watch daemon dashboard.
package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/cog"
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/grafana/grafana-foundation-sdk/go/prometheus"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// Panel dimensions on the 24-column grid.
const (
	StatWidth  = 6
	StatHeight = 4

	TSWidth  = 12
	TSHeight = 8

	ThirdWidth = 8

	FullWidth = 24
)

// DSRef returns a datasource reference pointing at the ${datasource}
// template variable.
func DSRef() dashboard.DataSourceRef {
	return dashboard.DataSourceRef{
		Type: cog.ToPtr("prometheus"),
		Uid:  cog.ToPtr("${datasource}"),
	}
}

// PromQuery builds a Prometheus query target.
func PromQuery(expr, legendFormat, refID string) *prometheus.DataqueryBuilder {
	return prometheus.NewDataqueryBuilder().
		Expr(expr).
		LegendFormat(legendFormat).
		RefId(refID)
}

// TS starts a timeseries panel in the house style: line draw, thin fill,
// multi-series tooltip. Callers set the width, targets, and thresholds.
func TS(title, description string) *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title(title).
		Description(description).
		Datasource(DSRef()).
		Height(TSHeight).
		FillOpacity(10).
		LineWidth(2).
		Tooltip(multiTooltip()).
		DrawStyle(common.GraphDrawStyleLine)
}

// Stat starts a stat panel sized for the overview row.
func Stat(title, description string) *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title(title).
		Description(description).
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth)
}

// FieldColor returns a color scheme with the given mode.
func FieldColor(mode dashboard.FieldColorModeId) cog.Builder[dashboard.FieldColor] {
	return dashboard.NewFieldColorBuilder().Mode(mode)
}

// OkAbove returns thresholds that are red below the value and green at
// or above it.
func OkAbove(v float64) cog.Builder[dashboard.ThresholdsConfig] {
	return steps(
		dashboard.Threshold{Color: "red"},
		dashboard.Threshold{Value: cog.ToPtr[float64](v), Color: "green"},
	)
}

// AlertTiers returns green/yellow/red thresholds with the given upper
// bounds for the green and yellow tiers.
func AlertTiers(yellow, red float64) cog.Builder[dashboard.ThresholdsConfig] {
	return steps(
		dashboard.Threshold{Color: "green"},
		dashboard.Threshold{Value: cog.ToPtr[float64](yellow), Color: "yellow"},
		dashboard.Threshold{Value: cog.ToPtr[float64](red), Color: "red"},
	)
}

// NeutralThreshold returns a single green step for panels with no
// alerting meaning.
func NeutralThreshold() cog.Builder[dashboard.ThresholdsConfig] {
	return steps(dashboard.Threshold{Color: "green"})
}

func steps(s ...dashboard.Threshold) cog.Builder[dashboard.ThresholdsConfig] {
	return dashboard.NewThresholdsConfigBuilder().
		Mode(dashboard.ThresholdsModeAbsolute).
		Steps(s)
}

// TableLegend returns a legend displayed as a table at the bottom with
// the given calculation columns.
func TableLegend(calcs ...string) *common.VizLegendOptionsBuilder {
	return common.NewVizLegendOptionsBuilder().
		DisplayMode(common.LegendDisplayModeTable).
		Placement(common.LegendPlacementBottom).
		Calcs(calcs)
}

func multiTooltip() *common.VizTooltipOptionsBuilder {
	return common.NewVizTooltipOptionsBuilder().
		Mode(common.TooltipDisplayModeMulti).
		Sort(common.SortOrderDescending)
}
