// Package dashboards assembles Grafana dashboard definitions from panel builders.
package dashboards

import (
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"

	"github.com/donaldgifford/csbluegem-go/tools/dashgen/panels"
)

// BuildOverview constructs the Blue Gem Watch overview dashboard with all
// metric rows.
func BuildOverview() *dashboard.DashboardBuilder {
	b := dashboard.NewDashboardBuilder("Blue Gem Watch").
		Uid("bluegem-overview").
		Tags([]string{"bluegem", "csbluegem-go"}).
		Refresh("30s").
		Time("now-6h", "now").
		Timezone("browser").
		Editable().
		Tooltip(dashboard.DashboardCursorSyncCrosshair).
		WithVariable(datasourceVar())

	// Row 1: Overview.
	b.WithRow(dashboard.NewRowBuilder("Overview").
		WithPanel(panels.UpStat()).
		WithPanel(panels.UptimeStat()).
		WithPanel(panels.NewSalesStat()).
		WithPanel(panels.WatchFailuresStat()))

	// Row 2: API Client.
	b.WithRow(dashboard.NewRowBuilder("API Client").
		WithPanel(panels.APICallRate()).
		WithPanel(panels.APILatencyPercentiles()).
		WithPanel(panels.APIErrorRate()))

	// Row 3: Searches.
	b.WithRow(dashboard.NewRowBuilder("Searches").
		WithPanel(panels.ChunkedSearchRate()).
		WithPanel(panels.ParseFailures()).
		WithPanel(panels.BatchSizeDistribution()))

	// Row 4: Watches.
	b.WithRow(dashboard.NewRowBuilder("Watches").
		WithPanel(panels.WatchRunRate()).
		WithPanel(panels.NewSalesRate()).
		WithPanel(panels.WatchFailureRate()))

	// Row 5: Notifications.
	b.WithRow(dashboard.NewRowBuilder("Notifications").
		WithPanel(panels.NotificationLatency()).
		WithPanel(panels.NotificationFailures()))

	return b
}

func datasourceVar() *dashboard.DatasourceVariableBuilder {
	return dashboard.NewDatasourceVariableBuilder("datasource").
		Label("Datasource").
		Type("prometheus")
}
