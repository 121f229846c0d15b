package watch

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/donaldgifford/csbluegem-go/internal/config"
)

// Scheduler runs each configured watch on its own cron schedule.
type Scheduler struct {
	cron    *cron.Cron
	watcher *Watcher
	log     *slog.Logger
}

// NewScheduler creates a Scheduler with one cron entry per watch.
func NewScheduler(w *Watcher, log *slog.Logger) (*Scheduler, error) {
	c := cron.New()

	s := &Scheduler{
		cron:    c,
		watcher: w,
		log:     log,
	}

	for _, wc := range w.Watches() {
		if _, err := c.AddFunc(wc.Schedule, func() {
			s.runWatch(wc)
		}); err != nil {
			return nil, fmt.Errorf("registering watch %q: %w", wc.Name, err)
		}
	}

	return s, nil
}

// Start begins running scheduled watches.
func (s *Scheduler) Start() {
	s.log.Info("scheduler started", "watches", len(s.watcher.Watches()))
	s.cron.Start()
}

// Stop gracefully stops the scheduler, waiting for running jobs to finish.
func (s *Scheduler) Stop() context.Context {
	s.log.Info("scheduler stopping")
	return s.cron.Stop()
}

// Entries returns the registered cron entries for inspection.
func (s *Scheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}

func (s *Scheduler) runWatch(wc config.WatchConfig) {
	ctx := context.Background()
	s.log.Info("scheduled watch starting", "watch", wc.Name)
	if err := s.watcher.Run(ctx, &wc); err != nil {
		s.log.Error("scheduled watch failed", "watch", wc.Name, "error", err)
	}
}
