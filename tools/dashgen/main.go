// Command dashgen generates the Grafana dashboard and Prometheus rule files
// for the bluegem watch daemon. Panel queries and rule expressions are
// validated against the daemon's known metric names before anything is
// written.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/donaldgifford/csbluegem-go/tools/dashgen/dashboards"
	"github.com/donaldgifford/csbluegem-go/tools/dashgen/rules"
	"github.com/donaldgifford/csbluegem-go/tools/dashgen/validate"
)

// generatedHeader marks rule files as machine-written so hand edits get
// flagged in review.
const generatedHeader = "# Code generated by dashgen. DO NOT EDIT.\n"

func main() {
	validateOnly := flag.Bool("validate", false, "validate generated artifacts without writing files")
	outputDir := flag.String("output", "", "override output directory")
	flag.Parse()

	cfg := DefaultConfig()
	if *outputDir != "" {
		cfg.OutputDir = *outputDir
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg, *validateOnly); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg Config, validateOnly bool) error {
	dash, err := dashboards.BuildOverview().Build()
	if err != nil {
		return fmt.Errorf("building overview dashboard: %w", err)
	}

	result := validate.Dashboard(dash, KnownMetrics)
	for _, w := range result.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}
	if !result.Ok() {
		return fmt.Errorf("dashboard validation failed:\n  %s", strings.Join(result.Errors, "\n  "))
	}

	recording := rules.RecordingRules()
	alerts := rules.AlertRules()
	ruleResult := validate.RuleExprs(ruleExprs(recording, alerts), KnownMetrics)
	if !ruleResult.Ok() {
		return fmt.Errorf("rule validation failed:\n  %s", strings.Join(ruleResult.Errors, "\n  "))
	}

	if validateOnly {
		fmt.Println("validation passed")
		return nil
	}

	if cfg.DashboardEnabled {
		path := filepath.Join(cfg.OutputDir, "grafana", "data", "bluegem-overview.json")
		data, err := json.MarshalIndent(dash, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling dashboard: %w", err)
		}
		if err := writeFile(path, append(data, '\n')); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", path)
	}

	if cfg.RulesEnabled {
		for name, cr := range map[string]rules.PrometheusRule{
			"bluegem-recording-rules.yaml": recording,
			"bluegem-alerts.yaml":          alerts,
		} {
			path := filepath.Join(cfg.OutputDir, "prometheus", name)
			if err := writeRuleFile(path, cr); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", path)
		}
	}

	return nil
}

// ruleExprs flattens every expression from the given rule CRs.
func ruleExprs(crs ...rules.PrometheusRule) []string {
	var exprs []string
	for _, cr := range crs {
		for _, group := range cr.Spec.Groups {
			for _, rule := range group.Rules {
				exprs = append(exprs, rule.Expr)
			}
		}
	}
	return exprs
}

func writeRuleFile(path string, cr rules.PrometheusRule) error {
	data, err := yaml.Marshal(cr)
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", filepath.Base(path), err)
	}
	return writeFile(path, append([]byte(generatedHeader), data...))
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	//nolint:gosec // generated artifacts are world-readable on purpose
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
