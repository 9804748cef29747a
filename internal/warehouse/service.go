package warehouse

import (
	"context"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/warekit/warestock/internal/domain"
	"github.com/warekit/warestock/pkg/common"
)

// Service is the warehouse facade: catalog and client registries, wishlist
// and waitlist bookkeeping, the invoice ledger, and the two engines
// (fulfillment.go, supply.go). All state goes through the Store interface.
type Service struct {
	store Store
	bus   EventBus.Bus
}

// NewService creates the warehouse service. bus may be nil; events are then
// dropped.
func NewService(store Store, bus EventBus.Bus) *Service {
	return &Service{store: store, bus: bus}
}

func (s *Service) Store() Store {
	return s.store
}

func (s *Service) publish(topic string, arg interface{}) {
	if s.bus != nil {
		s.bus.Publish(topic, arg)
	}
}

// AddProduct registers a new product. Price must not be negative, initial
// quantity must not be negative.
func (s *Service) AddProduct(ctx context.Context, name string, unitPrice decimal.Decimal, quantity int) (*domain.Product, error) {
	if unitPrice.IsNegative() {
		return nil, errors.Wrap(domain.ErrInvalidPrice, name)
	}
	if quantity < 0 {
		return nil, errors.Wrap(domain.ErrInvalidQuantity, name)
	}
	now := time.Now()
	p := &domain.Product{
		ID:        common.NextID("P"),
		Name:      name,
		UnitPrice: unitPrice,
		Quantity:  quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Products().Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// AddClient registers a new client with a zero balance.
func (s *Service) AddClient(ctx context.Context, name, address, phone string) (*domain.Client, error) {
	now := time.Now()
	c := &domain.Client{
		ID:        common.NextID("C"),
		Name:      name,
		Address:   address,
		Phone:     phone,
		Balance:   decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Clients().Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return s.store.Products().GetByID(ctx, id)
}

func (s *Service) GetClient(ctx context.Context, id string) (*domain.Client, error) {
	return s.store.Clients().GetByID(ctx, id)
}

func (s *Service) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	return s.store.Products().List(ctx)
}

func (s *Service) ListClients(ctx context.Context) ([]*domain.Client, error) {
	return s.store.Clients().List(ctx)
}

// SetClientBalance overwrites the client's balance (operator correction, not
// an invoicing path).
func (s *Service) SetClientBalance(ctx context.Context, clientID string, balance decimal.Decimal) error {
	c, err := s.store.Clients().GetByID(ctx, clientID)
	if err != nil {
		return err
	}
	c.Balance = balance
	return s.store.Clients().Update(ctx, c)
}

// AddToWishlist records a desired purchase. A second entry for the same
// product is rejected with ErrDuplicateEntry rather than merged.
func (s *Service) AddToWishlist(ctx context.Context, clientID, productID string, quantity int) (*domain.WishItem, error) {
	if quantity <= 0 {
		return nil, errors.Wrapf(domain.ErrInvalidQuantity, "wishlist %s/%s", clientID, productID)
	}
	if _, err := s.store.Clients().GetByID(ctx, clientID); err != nil {
		return nil, err
	}
	if _, err := s.store.Products().GetByID(ctx, productID); err != nil {
		return nil, err
	}
	item := &domain.WishItem{
		ClientID:  clientID,
		ProductID: productID,
		Quantity:  quantity,
		CreatedAt: time.Now(),
	}
	if err := s.store.Wishlists().Add(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Service) RemoveFromWishlist(ctx context.Context, clientID, productID string) error {
	if _, err := s.store.Clients().GetByID(ctx, clientID); err != nil {
		return err
	}
	if _, err := s.store.Products().GetByID(ctx, productID); err != nil {
		return err
	}
	return s.store.Wishlists().Remove(ctx, clientID, productID)
}

// Wishlist returns the client's wish items in insertion order.
func (s *Service) Wishlist(ctx context.Context, clientID string) ([]*domain.WishItem, error) {
	if _, err := s.store.Clients().GetByID(ctx, clientID); err != nil {
		return nil, err
	}
	return s.store.Wishlists().ListByClient(ctx, clientID)
}

// AddToWaitlist enqueues a backorder directly. As in the reference system a
// second entry for the same (product, client) pair is rejected with
// ErrDuplicateEntry; only the fulfillment engine merges quantities.
func (s *Service) AddToWaitlist(ctx context.Context, productID, clientID string, quantity int) (*domain.WaitEntry, error) {
	if quantity <= 0 {
		return nil, errors.Wrapf(domain.ErrInvalidQuantity, "waitlist %s/%s", productID, clientID)
	}
	if _, err := s.store.Products().GetByID(ctx, productID); err != nil {
		return nil, err
	}
	if _, err := s.store.Clients().GetByID(ctx, clientID); err != nil {
		return nil, err
	}
	entry := &domain.WaitEntry{
		ProductID: productID,
		ClientID:  clientID,
		Quantity:  quantity,
		CreatedAt: time.Now(),
	}
	if err := s.store.Waitlists().Add(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *Service) RemoveFromWaitlist(ctx context.Context, productID, clientID string) error {
	if _, err := s.store.Products().GetByID(ctx, productID); err != nil {
		return err
	}
	if _, err := s.store.Clients().GetByID(ctx, clientID); err != nil {
		return err
	}
	return s.store.Waitlists().Remove(ctx, productID, clientID)
}

// Waitlist returns the product's backorder entries in enqueue order.
func (s *Service) Waitlist(ctx context.Context, productID string) ([]*domain.WaitEntry, error) {
	if _, err := s.store.Products().GetByID(ctx, productID); err != nil {
		return nil, err
	}
	return s.store.Waitlists().ListByProduct(ctx, productID)
}

func (s *Service) GetInvoice(ctx context.Context, id string) (*domain.Invoice, error) {
	return s.store.Invoices().GetByID(ctx, id)
}

func (s *Service) Invoices(ctx context.Context) ([]*domain.Invoice, error) {
	return s.store.Invoices().List(ctx)
}

func (s *Service) InvoicesForClient(ctx context.Context, clientID string) ([]*domain.Invoice, error) {
	if _, err := s.store.Clients().GetByID(ctx, clientID); err != nil {
		return nil, err
	}
	return s.store.Invoices().ListByClient(ctx, clientID)
}

// newInvoice builds an immutable invoice from committed order lines.
func newInvoice(clientID string, lines []OrderLine) *domain.Invoice {
	inv := &domain.Invoice{
		ID:        common.NextID("INV"),
		ClientID:  clientID,
		Total:     decimal.Zero,
		CreatedAt: time.Now(),
	}
	for _, line := range lines {
		inv.Items = append(inv.Items, domain.InvoiceItem{
			ID:        common.UUIDint64(),
			InvoiceID: inv.ID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			Amount:    line.Amount,
		})
		inv.Total = inv.Total.Add(line.Amount)
	}
	return inv
}
