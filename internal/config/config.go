// Package config handles loading and validating the watcher configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	"github.com/donaldgifford/csbluegem-go/pkg/bluegem"
)

// Config is the top-level application configuration.
type Config struct {
	Client        ClientConfig        `yaml:"client"`
	Watches       []WatchConfig       `yaml:"watches"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Metrics       MetricsConfig       `yaml:"metrics"`
	Logging       LoggingConfig       `yaml:"logging"`
}

// ClientConfig defines CSBlueGem API client settings.
type ClientConfig struct {
	BaseURL   string        `yaml:"base_url"`
	Timeout   time.Duration `yaml:"timeout"`
	Currency  string        `yaml:"currency"`
	UserAgent string        `yaml:"user_agent"`

	// RateLimit throttles API calls to this many per second. Zero
	// disables throttling.
	RateLimit float64 `yaml:"rate_limit"`
	RateBurst int     `yaml:"rate_burst"`
}

// WatchConfig defines one scheduled sale watch.
type WatchConfig struct {
	Name     string `yaml:"name"`
	Item     string `yaml:"item"`
	Schedule string `yaml:"schedule"`

	Type   string `yaml:"type"`   // normal, stattrak
	Origin string `yaml:"origin"` // Buff, CSFloat, ...

	// Patterns restricts the watch to specific paint seeds. When set the
	// watch polls each listed pattern instead of the whole item.
	Patterns []int `yaml:"patterns"`

	PriceMin float64 `yaml:"price_min"`
	PriceMax float64 `yaml:"price_max"`
	WearMin  float64 `yaml:"wear_min"`
	WearMax  float64 `yaml:"wear_max"`

	Limit int `yaml:"limit"`

	Filters []FilterConfig `yaml:"filters"`
}

// FilterConfig defines one pattern data filter dimension.
type FilterConfig struct {
	Type string  `yaml:"type"`
	Min  float64 `yaml:"min"`
	Max  float64 `yaml:"max"`
}

// SearchRequest converts the watch definition into an API search request.
// Newest sales come first so the watch can stop at the first seen sale.
func (w *WatchConfig) SearchRequest(currency bluegem.Currency) (bluegem.SearchRequest, error) {
	req := bluegem.SearchRequest{
		Item:     bluegem.Item(w.Item),
		Currency: currency,
		Type:     bluegem.ItemType(w.Type),
		Origin:   bluegem.Origin(w.Origin),
		Sort:     bluegem.SortDate,
		Order:    bluegem.OrderDesc,
		Limit:    w.Limit,
	}

	if w.PriceMin > 0 {
		v := w.PriceMin
		req.PriceMin = &v
	}
	if w.PriceMax > 0 {
		v := w.PriceMax
		req.PriceMax = &v
	}
	if w.WearMin > 0 {
		v := w.WearMin
		req.WearMin = &v
	}
	if w.WearMax > 0 {
		v := w.WearMax
		req.WearMax = &v
	}

	for _, f := range w.Filters {
		ft, err := bluegem.ParseFilterType(f.Type)
		if err != nil {
			return bluegem.SearchRequest{}, err
		}
		filter, err := bluegem.NewFilter(ft, f.Min, f.Max)
		if err != nil {
			return bluegem.SearchRequest{}, err
		}
		req.Filters = append(req.Filters, filter)
	}

	return req, nil
}

// NotificationsConfig defines notification targets.
type NotificationsConfig struct {
	Discord DiscordConfig `yaml:"discord"`
}

// DiscordConfig defines Discord webhook settings.
type DiscordConfig struct {
	Enabled    bool   `yaml:"enabled"`
	WebhookURL string `yaml:"webhook_url"`
}

// MetricsConfig defines the Prometheus metrics endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json, color
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the YAML content.
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	applyClientDefaults(&cfg.Client)
	for i := range cfg.Watches {
		applyWatchDefaults(&cfg.Watches[i])
	}
	applyMetricsDefaults(&cfg.Metrics)
	applyLoggingDefaults(&cfg.Logging)
}

func applyClientDefaults(c *ClientConfig) {
	if c.Timeout == 0 {
		c.Timeout = 30 * time.Second
	}
	if c.Currency == "" {
		c.Currency = string(bluegem.CurrencyUSD)
	}
}

func applyWatchDefaults(w *WatchConfig) {
	if w.Schedule == "" {
		w.Schedule = "@every 1h"
	}
	if w.Limit == 0 {
		w.Limit = 50
	}
}

func applyMetricsDefaults(m *MetricsConfig) {
	if m.Addr == "" {
		m.Addr = ":9090"
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func validate(cfg *Config) error {
	var errs []error

	if _, err := bluegem.ParseCurrency(cfg.Client.Currency); err != nil {
		errs = append(errs, fmt.Errorf("client.currency: %v", err))
	}

	if cfg.Client.RateLimit < 0 {
		errs = append(errs, fmt.Errorf("client.rate_limit must not be negative"))
	}
	if cfg.Client.RateBurst < 0 {
		errs = append(errs, fmt.Errorf("client.rate_burst must not be negative"))
	}

	if len(cfg.Watches) == 0 {
		errs = append(errs, fmt.Errorf("at least one watch is required"))
	}

	seen := make(map[string]bool, len(cfg.Watches))
	for i := range cfg.Watches {
		errs = append(errs, validateWatch(i, &cfg.Watches[i], seen)...)
	}

	if cfg.Notifications.Discord.Enabled && cfg.Notifications.Discord.WebhookURL == "" {
		errs = append(
			errs,
			fmt.Errorf("notifications.discord.webhook_url is required when discord is enabled"),
		)
	}

	return errors.Join(errs...)
}

func validateWatch(i int, w *WatchConfig, seen map[string]bool) []error {
	var errs []error

	if w.Name == "" {
		errs = append(errs, fmt.Errorf("watches[%d].name is required", i))
	} else if seen[w.Name] {
		errs = append(errs, fmt.Errorf("duplicate watch name %q", w.Name))
	} else {
		seen[w.Name] = true
	}

	if _, err := bluegem.ParseItem(w.Item); err != nil {
		errs = append(errs, fmt.Errorf("watches[%d].item: %v", i, err))
	}

	if _, err := cron.ParseStandard(w.Schedule); err != nil {
		errs = append(errs, fmt.Errorf("watches[%d].schedule: %v", i, err))
	}

	if w.Type != "" {
		if _, err := bluegem.ParseItemType(w.Type); err != nil {
			errs = append(errs, fmt.Errorf("watches[%d].type: %v", i, err))
		}
	}
	if w.Origin != "" {
		if _, err := bluegem.ParseOrigin(w.Origin); err != nil {
			errs = append(errs, fmt.Errorf("watches[%d].origin: %v", i, err))
		}
	}

	for _, p := range w.Patterns {
		if !bluegem.ValidPattern(p) {
			errs = append(errs, fmt.Errorf("watches[%d].patterns: %d is out of range", i, p))
		}
	}

	if w.PriceMin < 0 {
		errs = append(errs, fmt.Errorf("watches[%d].price_min must not be negative", i))
	}
	if w.PriceMax > 0 && w.PriceMax < w.PriceMin {
		errs = append(errs, fmt.Errorf("watches[%d].price_max is below price_min", i))
	}
	if w.WearMin > 0 && !bluegem.ValidWear(w.WearMin) {
		errs = append(errs, fmt.Errorf("watches[%d].wear_min must be in (0, 1]", i))
	}
	if w.WearMax > 0 && !bluegem.ValidWear(w.WearMax) {
		errs = append(errs, fmt.Errorf("watches[%d].wear_max must be in (0, 1]", i))
	}

	for j, f := range w.Filters {
		ft, err := bluegem.ParseFilterType(f.Type)
		if err != nil {
			errs = append(errs, fmt.Errorf("watches[%d].filters[%d]: %v", i, j, err))
			continue
		}
		if _, err := bluegem.NewFilter(ft, f.Min, f.Max); err != nil {
			errs = append(errs, fmt.Errorf("watches[%d].filters[%d]: %v", i, j, err))
		}
	}

	return errs
}
