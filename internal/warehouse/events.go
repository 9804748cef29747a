package warehouse

import "github.com/warekit/warestock/internal/domain"

// Event topics published on the application bus. Subscribers must not block;
// the engines publish after commit, outside any transaction.
const (
	TopicInvoiceCreated = "warehouse.invoice.created"
	TopicStockSupplied  = "warehouse.stock.supplied"
	TopicSnapshotSaved  = "warehouse.snapshot.saved"
)

type InvoiceCreatedEvent struct {
	Invoice *domain.Invoice
	// Source is "order" or "supply".
	Source string
}

type StockSuppliedEvent struct {
	ProductID string
	Added     int
	OnHand    int
}
