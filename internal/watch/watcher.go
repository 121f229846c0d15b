// Package watch polls CSBlueGem on a schedule and raises notifications
// for newly observed sales.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/donaldgifford/csbluegem-go/internal/config"
	"github.com/donaldgifford/csbluegem-go/internal/metrics"
	"github.com/donaldgifford/csbluegem-go/internal/notify"
	"github.com/donaldgifford/csbluegem-go/pkg/bluegem"
)

// Watcher orchestrates watch execution, sale deduplication, and alerting.
type Watcher struct {
	client   bluegem.API
	notifier notify.Notifier
	watches  []config.WatchConfig
	currency bluegem.Currency
	log      *slog.Logger

	staggerOffset time.Duration

	mu     sync.Mutex
	seen   map[string]map[string]struct{}
	primed map[string]bool
}

// NewWatcher creates a Watcher with injected dependencies.
func NewWatcher(
	client bluegem.API,
	notifier notify.Notifier,
	watches []config.WatchConfig,
	opts ...WatcherOption,
) *Watcher {
	w := &Watcher{
		client:        client,
		notifier:      notifier,
		watches:       watches,
		currency:      bluegem.CurrencyUSD,
		log:           slog.Default(),
		staggerOffset: 5 * time.Second,
		seen:          make(map[string]map[string]struct{}),
		primed:        make(map[string]bool),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// WatcherOption configures the Watcher.
type WatcherOption func(*Watcher)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) WatcherOption {
	return func(w *Watcher) {
		w.log = l
	}
}

// WithCurrency sets the currency for searches and alerts.
func WithCurrency(c bluegem.Currency) WatcherOption {
	return func(w *Watcher) {
		w.currency = c
	}
}

// WithStaggerOffset sets the delay between watches in RunAll.
func WithStaggerOffset(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		w.staggerOffset = d
	}
}

// Watches returns the configured watch definitions.
func (w *Watcher) Watches() []config.WatchConfig {
	return w.watches
}

// RunAll executes every configured watch once, in order. Individual watch
// failures are logged and do not stop the remaining watches.
func (w *Watcher) RunAll(ctx context.Context) error {
	for i := range w.watches {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		wc := &w.watches[i]
		if err := w.Run(ctx, wc); err != nil {
			w.log.Error("watch run failed", "watch", wc.Name, "error", err)
		}

		// Stagger between watches to avoid API bursts.
		if i < len(w.watches)-1 && w.staggerOffset > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(w.staggerOffset):
			}
		}
	}
	return nil
}

// Run executes a single watch: fetch the latest sales, drop the ones
// already seen, and notify about the rest.
func (w *Watcher) Run(ctx context.Context, wc *config.WatchConfig) error {
	outcome := "error"
	defer func() {
		metrics.WatchRuns.WithLabelValues(wc.Name, outcome).Inc()
	}()

	req, err := wc.SearchRequest(w.currency)
	if err != nil {
		return fmt.Errorf("building search request: %w", err)
	}

	var resp *bluegem.SearchResponse
	if len(wc.Patterns) > 0 {
		resp, err = w.client.SearchPatterns(ctx, req, wc.Patterns)
	} else {
		resp, err = w.client.Search(ctx, req)
	}
	if err != nil {
		return fmt.Errorf("searching sales: %w", err)
	}

	fresh := w.record(wc.Name, resp.Sales)
	metrics.WatchNewSales.WithLabelValues(wc.Name).Add(float64(len(fresh)))

	if len(fresh) == 0 {
		w.log.Debug("no new sales", "watch", wc.Name, "fetched", len(resp.Sales))
		outcome = "success"
		return nil
	}

	w.log.Info("new sales observed", "watch", wc.Name, "count", len(fresh))

	if err := w.alert(ctx, wc, fresh); err != nil {
		return err
	}

	outcome = "success"
	return nil
}

// record marks the sales as seen and returns the ones not seen before.
// The first run of a watch primes the seen set without reporting, so a
// fresh process does not announce the whole sale history at once.
func (w *Watcher) record(name string, sales []bluegem.Sale) []bluegem.Sale {
	w.mu.Lock()
	defer w.mu.Unlock()

	ids := w.seen[name]
	if ids == nil {
		ids = make(map[string]struct{})
		w.seen[name] = ids
	}

	priming := !w.primed[name]
	w.primed[name] = true

	var fresh []bluegem.Sale
	for _, s := range sales {
		if _, ok := ids[s.SaleID]; ok {
			continue
		}
		ids[s.SaleID] = struct{}{}
		if !priming {
			fresh = append(fresh, s)
		}
	}
	return fresh
}

func (w *Watcher) alert(ctx context.Context, wc *config.WatchConfig, sales []bluegem.Sale) error {
	item := bluegem.Item(wc.Item)

	if len(sales) == 1 {
		alert := notify.SaleAlert{
			WatchName: wc.Name,
			Item:      item,
			Currency:  w.currency,
			Sale:      sales[0],
		}
		if err := w.notifier.SendSale(ctx, &alert); err != nil {
			return fmt.Errorf("sending sale alert: %w", err)
		}
		return nil
	}

	alerts := make([]notify.SaleAlert, 0, len(sales))
	for _, s := range sales {
		alerts = append(alerts, notify.SaleAlert{
			WatchName: wc.Name,
			Item:      item,
			Currency:  w.currency,
			Sale:      s,
		})
	}
	if err := w.notifier.SendBatch(ctx, alerts, wc.Name); err != nil {
		return fmt.Errorf("sending batch alert: %w", err)
	}
	return nil
}
