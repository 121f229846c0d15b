// Package notify defines the notification interface and implementations
// for delivering new-sale alerts raised by watches.
package notify

import (
	"context"

	"github.com/donaldgifford/csbluegem-go/pkg/bluegem"
)

// SaleAlert contains the data needed to announce one newly observed sale.
type SaleAlert struct {
	WatchName string
	Item      bluegem.Item
	Currency  bluegem.Currency
	Sale      bluegem.Sale
}

// Notifier defines the interface for sending new-sale notifications.
type Notifier interface {
	SendSale(ctx context.Context, alert *SaleAlert) error
	SendBatch(ctx context.Context, alerts []SaleAlert, watchName string) error
}
