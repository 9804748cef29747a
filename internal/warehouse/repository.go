package warehouse

import (
	"context"
	"time"

	"github.com/warekit/warestock/internal/domain"
)

// ProductRepository interface for catalog data access
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) error
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Update(ctx context.Context, p *domain.Product) error
	List(ctx context.Context) ([]*domain.Product, error)
}

// ClientRepository interface for client registry data access
type ClientRepository interface {
	Create(ctx context.Context, c *domain.Client) error
	GetByID(ctx context.Context, id string) (*domain.Client, error)
	Update(ctx context.Context, c *domain.Client) error
	List(ctx context.Context) ([]*domain.Client, error)
}

// WishlistRepository handles the per-client wish items.
type WishlistRepository interface {
	// Add inserts a wish item; a second item for the same (client, product)
	// pair returns domain.ErrDuplicateEntry.
	Add(ctx context.Context, item *domain.WishItem) error

	// Get retrieves one wish item or domain.ErrEntryNotFound.
	Get(ctx context.Context, clientID, productID string) (*domain.WishItem, error)

	// ListByClient returns the client's wish items in insertion order.
	ListByClient(ctx context.Context, clientID string) ([]*domain.WishItem, error)

	// ListAll returns every wish item (snapshot export).
	ListAll(ctx context.Context) ([]*domain.WishItem, error)

	// Remove deletes one wish item or returns domain.ErrEntryNotFound.
	Remove(ctx context.Context, clientID, productID string) error
}

// WaitlistRepository handles the per-product backorder entries.
type WaitlistRepository interface {
	// Add enqueues a backorder; a second entry for the same (product, client)
	// pair returns domain.ErrDuplicateEntry.
	Add(ctx context.Context, entry *domain.WaitEntry) error

	// Get retrieves one entry or domain.ErrEntryNotFound.
	Get(ctx context.Context, productID, clientID string) (*domain.WaitEntry, error)

	// Update rewrites an existing entry (quantity merge).
	Update(ctx context.Context, entry *domain.WaitEntry) error

	// ListByProduct returns the product's entries in enqueue order.
	ListByProduct(ctx context.Context, productID string) ([]*domain.WaitEntry, error)

	// ListAll returns every wait entry (snapshot export).
	ListAll(ctx context.Context) ([]*domain.WaitEntry, error)

	// Remove dequeues one entry or returns domain.ErrEntryNotFound.
	Remove(ctx context.Context, productID, clientID string) error
}

// InvoiceRepository is the append-only ledger.
type InvoiceRepository interface {
	Append(ctx context.Context, inv *domain.Invoice) error
	GetByID(ctx context.Context, id string) (*domain.Invoice, error)
	List(ctx context.Context) ([]*domain.Invoice, error)
	ListByClient(ctx context.Context, clientID string) ([]*domain.Invoice, error)
}

// SettingsRepository stores runtime settings rows.
type SettingsRepository interface {
	Get(ctx context.Context, category, name string) (string, error)
	Set(ctx context.Context, category, name, value string) error
	List(ctx context.Context) ([]*domain.SysConfig, error)
}

// OpLogRepository stores the audit trail.
type OpLogRepository interface {
	Append(ctx context.Context, entry *domain.SysOpLog) error
	List(ctx context.Context, limit int) ([]*domain.SysOpLog, error)
	DeleteBefore(ctx context.Context, cutoff time.Time) error
}

// Store bundles the repositories behind one handle. Atomic runs fn against a
// transactional view: either every write inside fn is applied, or none is.
// The engines depend on this interface only; GORM and in-memory
// implementations are interchangeable.
type Store interface {
	Products() ProductRepository
	Clients() ClientRepository
	Wishlists() WishlistRepository
	Waitlists() WaitlistRepository
	Invoices() InvoiceRepository
	Settings() SettingsRepository
	OpLogs() OpLogRepository

	Atomic(ctx context.Context, fn func(tx Store) error) error

	// Reset wipes all warehouse data (products, clients, wish items, wait
	// entries, invoices). Settings and audit rows survive. Used by snapshot
	// restore.
	Reset(ctx context.Context) error
}
