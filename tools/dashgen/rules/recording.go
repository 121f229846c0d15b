package rules

// RecordingRules returns the pre-computed rate expressions used by
// dashboards and alert rules.
func RecordingRules() PrometheusRule {
	return NewCR("bluegem-recording-rules", RuleGroup{
		Name: "bluegem-recording",
		Rules: []Rule{
			Recording("bluegem:api_calls:rate5m",
				`sum(rate(bluegem_api_calls_total[5m]))`),

			// The status label carries the HTTP status code, or "error"
			// when the request never completed.
			Recording("bluegem:api_errors:rate5m",
				`sum(rate(bluegem_api_calls_total{status=~"5..|error"}[5m]))`),

			Recording("bluegem:parse_failures:rate5m",
				`sum(rate(bluegem_parse_failures_total[5m]))`),

			Recording("bluegem:watch_failures:rate5m",
				`sum(rate(bluegem_watch_runs_total{outcome="error"}[5m]))`),

			Recording("bluegem:new_sales:rate5m",
				`sum(rate(bluegem_watch_new_sales_total[5m]))`),

			Recording("bluegem:notification_duration:p95_5m",
				`histogram_quantile(0.95, sum(rate(bluegem_notification_duration_seconds_bucket[5m])) by (le))`),
		},
	})
}
