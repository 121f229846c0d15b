package notify

import (
	"context"
	"log/slog"
)

// NoOpNotifier implements Notifier by logging discarded alerts. It is used
// when Discord (or another notification backend) is not configured.
type NoOpNotifier struct {
	log *slog.Logger
}

// NewNoOpNotifier creates a notifier that discards alerts with a log message.
func NewNoOpNotifier(log *slog.Logger) *NoOpNotifier {
	return &NoOpNotifier{log: log}
}

// SendSale logs and discards a single sale alert.
func (n *NoOpNotifier) SendSale(_ context.Context, alert *SaleAlert) error {
	n.log.Debug("notification discarded (no backend configured)",
		"watch", alert.WatchName,
		"item", alert.Item,
		"pattern", alert.Sale.Pattern,
	)
	return nil
}

// SendBatch logs and discards a batch of sale alerts.
func (n *NoOpNotifier) SendBatch(_ context.Context, alerts []SaleAlert, watchName string) error {
	n.log.Debug("batch notification discarded (no backend configured)",
		"watch", watchName,
		"count", len(alerts),
	)
	return nil
}
