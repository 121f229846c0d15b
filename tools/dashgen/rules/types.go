// Package rules generates the Prometheus recording and alert rules for
// the bluegem watch daemon, shaped as Prometheus Operator custom
// resources so they deploy alongside the scrape config.
package rules

// PrometheusRule is the monitoring.coreos.com/v1 custom resource.
type PrometheusRule struct {
	APIVersion string                 `yaml:"apiVersion"`
	Kind       string                 `yaml:"kind"`
	Metadata   PrometheusRuleMetadata `yaml:"metadata"`
	Spec       PrometheusRuleSpec     `yaml:"spec"`
}

// PrometheusRuleMetadata holds the CR metadata fields.
type PrometheusRuleMetadata struct {
	Name   string            `yaml:"name"`
	Labels map[string]string `yaml:"labels,omitempty"`
}

// PrometheusRuleSpec holds the rule groups.
type PrometheusRuleSpec struct {
	Groups []RuleGroup `yaml:"groups"`
}

// RuleGroup is a named collection of recording or alerting rules.
type RuleGroup struct {
	Name     string `yaml:"name"`
	Interval string `yaml:"interval,omitempty"`
	Rules    []Rule `yaml:"rules"`
}

// Rule is a single recording or alerting rule. Exactly one of Record
// and Alert is set.
type Rule struct {
	Record      string            `yaml:"record,omitempty"`
	Alert       string            `yaml:"alert,omitempty"`
	Expr        string            `yaml:"expr"`
	For         string            `yaml:"for,omitempty"`
	Labels      map[string]string `yaml:"labels,omitempty"`
	Annotations map[string]string `yaml:"annotations,omitempty"`
}

// Annotations carries the human-facing text attached to an alert.
type Annotations struct {
	Summary     string
	Description string
}

// NewCR wraps rule groups in a PrometheusRule custom resource carrying
// the label our Prometheus instance selects rules by.
func NewCR(name string, groups ...RuleGroup) PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name: name,
			Labels: map[string]string{
				"prometheus": "system-rules-prometheus",
			},
		},
		Spec: PrometheusRuleSpec{Groups: groups},
	}
}

// Recording builds a recording rule.
func Recording(record, expr string) Rule {
	return Rule{Record: record, Expr: expr}
}

// Warning builds an alerting rule at warning severity. holdFor is the
// duration the expression must stay true before the alert fires.
func Warning(alert, expr, holdFor string, ann Annotations) Rule {
	return alerting(alert, expr, holdFor, "warning", ann)
}

// Critical builds an alerting rule at critical severity.
func Critical(alert, expr, holdFor string, ann Annotations) Rule {
	return alerting(alert, expr, holdFor, "critical", ann)
}

func alerting(alert, expr, holdFor, severity string, ann Annotations) Rule {
	return Rule{
		Alert:  alert,
		Expr:   expr,
		For:    holdFor,
		Labels: map[string]string{"severity": severity},
		Annotations: map[string]string{
			"summary":     ann.Summary,
			"description": ann.Description,
		},
	}
}
