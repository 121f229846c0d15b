package rules

// AlertRules returns the alert rules for the bluegem watch daemon.
func AlertRules() PrometheusRule {
	return NewCR("bluegem-alerts", RuleGroup{
		Name: "bluegem-alerts",
		Rules: []Rule{
			Critical("BluegemWatchDown",
				`absent(up{job="bluegem-watch"})`, "2m",
				Annotations{
					Summary:     "Blue gem watch daemon is down",
					Description: "The bluegem-watch job has been absent for more than 2 minutes.",
				}),

			Warning("BluegemHighAPIErrorRate",
				`bluegem:api_errors:rate5m / bluegem:api_calls:rate5m > 0.05`, "5m",
				Annotations{
					Summary:     "High CSBlueGem API error rate",
					Description: "More than 5% of CSBlueGem API calls are failing over the last 5 minutes.",
				}),

			Warning("BluegemParseFailures",
				`bluegem:parse_failures:rate5m > 0`, "5m",
				Annotations{
					Summary:     "CSBlueGem responses are failing to decode",
					Description: "The client has been unable to decode API responses for more than 5 minutes. The upstream response format may have changed.",
				}),

			Warning("BluegemWatchFailures",
				`bluegem:watch_failures:rate5m > 0`, "10m",
				Annotations{
					Summary:     "Watch runs are failing",
					Description: "One or more watches have been failing their scheduled runs for more than 10 minutes.",
				}),

			Warning("BluegemNotificationFailures",
				`increase(bluegem_notification_failures_total[5m]) > 0`, "1m",
				Annotations{
					Summary:     "Sale alert delivery failures detected",
					Description: "One or more Discord webhook deliveries have failed to send.",
				}),

			Warning("BluegemSlowNotifications",
				`bluegem:notification_duration:p95_5m > 5`, "5m",
				Annotations{
					Summary:     "Sale alert delivery is slow",
					Description: "95th percentile webhook latency has been above 5 seconds for the last 5 minutes.",
				}),
		},
	})
}
