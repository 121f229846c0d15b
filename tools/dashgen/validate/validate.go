// Package validate checks generated dashboards and rules against the set of
// metrics the watch daemon actually exports, so a renamed metric fails
// generation instead of shipping an empty panel.
package validate

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/prometheus/prometheus/promql/parser"
)

// Result collects the problems found during validation.
type Result struct {
	Errors   []string
	Warnings []string
}

// Ok reports whether validation found no errors. Warnings do not fail
// validation.
func (r Result) Ok() bool { return len(r.Errors) == 0 }

// Dashboard validates every Prometheus query expression in a built
// dashboard. Each expression must parse as PromQL and reference only
// metrics in known.
func Dashboard(dash dashboard.Dashboard, known map[string]bool) Result {
	var res Result

	// Walking the marshaled form covers every panel type, including ones
	// nested inside rows, without depending on the SDK's panel structs.
	data, err := json.Marshal(dash)
	if err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("marshaling dashboard: %v", err))
		return res
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("decoding dashboard: %v", err))
		return res
	}

	exprs := collectExprs(doc, nil)
	if len(exprs) == 0 {
		res.Warnings = append(res.Warnings, "dashboard contains no query expressions")
	}
	for _, e := range exprs {
		checkExpr(&res, "panel query", e, known)
	}
	return res
}

// RuleExprs validates recording and alert rule expressions.
func RuleExprs(exprs []string, known map[string]bool) Result {
	var res Result
	for _, e := range exprs {
		checkExpr(&res, "rule", e, known)
	}
	return res
}

// collectExprs walks a decoded JSON document and gathers the value of every
// "expr" key.
func collectExprs(node any, out []string) []string {
	switch v := node.(type) {
	case map[string]any:
		for key, val := range v {
			if key == "expr" {
				if s, ok := val.(string); ok && s != "" {
					out = append(out, s)
					continue
				}
			}
			out = collectExprs(val, out)
		}
	case []any:
		for _, val := range v {
			out = collectExprs(val, out)
		}
	}
	return out
}

func checkExpr(res *Result, context, expr string, known map[string]bool) {
	node, err := parser.ParseExpr(expr)
	if err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("%s %q: %v", context, expr, err))
		return
	}

	selectors := 0
	parser.Inspect(node, func(n parser.Node, _ []parser.Node) error {
		vs, ok := n.(*parser.VectorSelector)
		if !ok {
			return nil
		}
		selectors++
		if vs.Name != "" && !knownMetric(vs.Name, known) {
			res.Errors = append(res.Errors, fmt.Sprintf("%s %q: unknown metric %q", context, expr, vs.Name))
		}
		return nil
	})
	if selectors == 0 {
		res.Warnings = append(res.Warnings, fmt.Sprintf("%s %q selects no metrics", context, expr))
	}
}

// knownMetric reports whether name is a known metric, accounting for the
// _bucket, _sum, and _count series that histograms expose.
func knownMetric(name string, known map[string]bool) bool {
	if known[name] {
		return true
	}
	for _, suffix := range []string{"_bucket", "_sum", "_count"} {
		if base, ok := strings.CutSuffix(name, suffix); ok && known[base] {
			return true
		}
	}
	return false
}
