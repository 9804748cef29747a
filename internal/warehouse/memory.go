package warehouse

import (
	"context"
	"sync"
	"time"

	"github.com/warekit/warestock/internal/domain"
	"github.com/warekit/warestock/pkg/common"
)

// MemoryStore is the in-process implementation of Store, mirroring the
// reference deployment: one logical user, the whole graph in memory,
// durability via snapshots. Atomic runs fn against a deep copy of the state
// and swaps it in only when fn succeeds, so a failed commit leaves nothing
// behind. A mutex serializes access; there is still only one logical writer.
type MemoryStore struct {
	mu sync.Mutex
	st *memoryState
	tx bool
}

type memoryState struct {
	products    []domain.Product
	clients     []domain.Client
	wishItems   []domain.WishItem
	waitEntries []domain.WaitEntry
	invoices    []domain.Invoice
	settings    []domain.SysConfig
	opLogs      []domain.SysOpLog
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{st: &memoryState{}}
}

var _ Store = (*MemoryStore)(nil)

func (st *memoryState) clone() *memoryState {
	cp := &memoryState{
		products:    append([]domain.Product(nil), st.products...),
		clients:     append([]domain.Client(nil), st.clients...),
		wishItems:   append([]domain.WishItem(nil), st.wishItems...),
		waitEntries: append([]domain.WaitEntry(nil), st.waitEntries...),
		invoices:    append([]domain.Invoice(nil), st.invoices...),
		settings:    append([]domain.SysConfig(nil), st.settings...),
		opLogs:      append([]domain.SysOpLog(nil), st.opLogs...),
	}
	for i := range cp.invoices {
		cp.invoices[i].Items = append([]domain.InvoiceItem(nil), cp.invoices[i].Items...)
	}
	return cp
}

func (s *MemoryStore) lock() {
	if !s.tx {
		s.mu.Lock()
	}
}

func (s *MemoryStore) unlock() {
	if !s.tx {
		s.mu.Unlock()
	}
}

func (s *MemoryStore) Products() ProductRepository   { return &memProductRepo{s} }
func (s *MemoryStore) Clients() ClientRepository     { return &memClientRepo{s} }
func (s *MemoryStore) Wishlists() WishlistRepository { return &memWishlistRepo{s} }
func (s *MemoryStore) Waitlists() WaitlistRepository { return &memWaitlistRepo{s} }
func (s *MemoryStore) Invoices() InvoiceRepository   { return &memInvoiceRepo{s} }
func (s *MemoryStore) Settings() SettingsRepository  { return &memSettingsRepo{s} }
func (s *MemoryStore) OpLogs() OpLogRepository       { return &memOpLogRepo{s} }

func (s *MemoryStore) Atomic(ctx context.Context, fn func(tx Store) error) error {
	if s.tx {
		return fn(s)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	view := &MemoryStore{st: s.st.clone(), tx: true}
	if err := fn(view); err != nil {
		return err
	}
	s.st = view.st
	return nil
}

func (s *MemoryStore) Reset(ctx context.Context) error {
	s.lock()
	defer s.unlock()
	s.st.products = nil
	s.st.clients = nil
	s.st.wishItems = nil
	s.st.waitEntries = nil
	s.st.invoices = nil
	return nil
}

type memProductRepo struct {
	s *MemoryStore
}

func (r *memProductRepo) Create(ctx context.Context, p *domain.Product) error {
	r.s.lock()
	defer r.s.unlock()
	r.s.st.products = append(r.s.st.products, *p)
	return nil
}

func (r *memProductRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	r.s.lock()
	defer r.s.unlock()
	for i := range r.s.st.products {
		if r.s.st.products[i].ID == id {
			p := r.s.st.products[i]
			return &p, nil
		}
	}
	return nil, domain.ErrProductNotFound
}

func (r *memProductRepo) Update(ctx context.Context, p *domain.Product) error {
	r.s.lock()
	defer r.s.unlock()
	for i := range r.s.st.products {
		if r.s.st.products[i].ID == p.ID {
			p.UpdatedAt = time.Now()
			r.s.st.products[i] = *p
			return nil
		}
	}
	return domain.ErrProductNotFound
}

func (r *memProductRepo) List(ctx context.Context) ([]*domain.Product, error) {
	r.s.lock()
	defer r.s.unlock()
	rows := make([]*domain.Product, 0, len(r.s.st.products))
	for i := range r.s.st.products {
		p := r.s.st.products[i]
		rows = append(rows, &p)
	}
	return rows, nil
}

type memClientRepo struct {
	s *MemoryStore
}

func (r *memClientRepo) Create(ctx context.Context, c *domain.Client) error {
	r.s.lock()
	defer r.s.unlock()
	r.s.st.clients = append(r.s.st.clients, *c)
	return nil
}

func (r *memClientRepo) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	r.s.lock()
	defer r.s.unlock()
	for i := range r.s.st.clients {
		if r.s.st.clients[i].ID == id {
			c := r.s.st.clients[i]
			return &c, nil
		}
	}
	return nil, domain.ErrClientNotFound
}

func (r *memClientRepo) Update(ctx context.Context, c *domain.Client) error {
	r.s.lock()
	defer r.s.unlock()
	for i := range r.s.st.clients {
		if r.s.st.clients[i].ID == c.ID {
			c.UpdatedAt = time.Now()
			r.s.st.clients[i] = *c
			return nil
		}
	}
	return domain.ErrClientNotFound
}

func (r *memClientRepo) List(ctx context.Context) ([]*domain.Client, error) {
	r.s.lock()
	defer r.s.unlock()
	rows := make([]*domain.Client, 0, len(r.s.st.clients))
	for i := range r.s.st.clients {
		c := r.s.st.clients[i]
		rows = append(rows, &c)
	}
	return rows, nil
}

type memWishlistRepo struct {
	s *MemoryStore
}

func (r *memWishlistRepo) Add(ctx context.Context, item *domain.WishItem) error {
	r.s.lock()
	defer r.s.unlock()
	for i := range r.s.st.wishItems {
		if r.s.st.wishItems[i].ClientID == item.ClientID &&
			r.s.st.wishItems[i].ProductID == item.ProductID {
			return domain.ErrDuplicateEntry
		}
	}
	if item.ID == 0 {
		item.ID = common.UUIDint64()
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}
	r.s.st.wishItems = append(r.s.st.wishItems, *item)
	return nil
}

func (r *memWishlistRepo) Get(ctx context.Context, clientID, productID string) (*domain.WishItem, error) {
	r.s.lock()
	defer r.s.unlock()
	for i := range r.s.st.wishItems {
		if r.s.st.wishItems[i].ClientID == clientID &&
			r.s.st.wishItems[i].ProductID == productID {
			item := r.s.st.wishItems[i]
			return &item, nil
		}
	}
	return nil, domain.ErrEntryNotFound
}

func (r *memWishlistRepo) ListByClient(ctx context.Context, clientID string) ([]*domain.WishItem, error) {
	r.s.lock()
	defer r.s.unlock()
	var rows []*domain.WishItem
	for i := range r.s.st.wishItems {
		if r.s.st.wishItems[i].ClientID == clientID {
			item := r.s.st.wishItems[i]
			rows = append(rows, &item)
		}
	}
	return rows, nil
}

func (r *memWishlistRepo) ListAll(ctx context.Context) ([]*domain.WishItem, error) {
	r.s.lock()
	defer r.s.unlock()
	rows := make([]*domain.WishItem, 0, len(r.s.st.wishItems))
	for i := range r.s.st.wishItems {
		item := r.s.st.wishItems[i]
		rows = append(rows, &item)
	}
	return rows, nil
}

func (r *memWishlistRepo) Remove(ctx context.Context, clientID, productID string) error {
	r.s.lock()
	defer r.s.unlock()
	for i := range r.s.st.wishItems {
		if r.s.st.wishItems[i].ClientID == clientID &&
			r.s.st.wishItems[i].ProductID == productID {
			r.s.st.wishItems = append(r.s.st.wishItems[:i], r.s.st.wishItems[i+1:]...)
			return nil
		}
	}
	return domain.ErrEntryNotFound
}

type memWaitlistRepo struct {
	s *MemoryStore
}

func (r *memWaitlistRepo) Add(ctx context.Context, entry *domain.WaitEntry) error {
	r.s.lock()
	defer r.s.unlock()
	for i := range r.s.st.waitEntries {
		if r.s.st.waitEntries[i].ProductID == entry.ProductID &&
			r.s.st.waitEntries[i].ClientID == entry.ClientID {
			return domain.ErrDuplicateEntry
		}
	}
	if entry.ID == 0 {
		entry.ID = common.UUIDint64()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	r.s.st.waitEntries = append(r.s.st.waitEntries, *entry)
	return nil
}

func (r *memWaitlistRepo) Get(ctx context.Context, productID, clientID string) (*domain.WaitEntry, error) {
	r.s.lock()
	defer r.s.unlock()
	for i := range r.s.st.waitEntries {
		if r.s.st.waitEntries[i].ProductID == productID &&
			r.s.st.waitEntries[i].ClientID == clientID {
			entry := r.s.st.waitEntries[i]
			return &entry, nil
		}
	}
	return nil, domain.ErrEntryNotFound
}

func (r *memWaitlistRepo) Update(ctx context.Context, entry *domain.WaitEntry) error {
	r.s.lock()
	defer r.s.unlock()
	for i := range r.s.st.waitEntries {
		if r.s.st.waitEntries[i].ID == entry.ID {
			r.s.st.waitEntries[i] = *entry
			return nil
		}
	}
	return domain.ErrEntryNotFound
}

func (r *memWaitlistRepo) ListByProduct(ctx context.Context, productID string) ([]*domain.WaitEntry, error) {
	r.s.lock()
	defer r.s.unlock()
	var rows []*domain.WaitEntry
	for i := range r.s.st.waitEntries {
		if r.s.st.waitEntries[i].ProductID == productID {
			entry := r.s.st.waitEntries[i]
			rows = append(rows, &entry)
		}
	}
	return rows, nil
}

func (r *memWaitlistRepo) ListAll(ctx context.Context) ([]*domain.WaitEntry, error) {
	r.s.lock()
	defer r.s.unlock()
	rows := make([]*domain.WaitEntry, 0, len(r.s.st.waitEntries))
	for i := range r.s.st.waitEntries {
		entry := r.s.st.waitEntries[i]
		rows = append(rows, &entry)
	}
	return rows, nil
}

func (r *memWaitlistRepo) Remove(ctx context.Context, productID, clientID string) error {
	r.s.lock()
	defer r.s.unlock()
	for i := range r.s.st.waitEntries {
		if r.s.st.waitEntries[i].ProductID == productID &&
			r.s.st.waitEntries[i].ClientID == clientID {
			r.s.st.waitEntries = append(r.s.st.waitEntries[:i], r.s.st.waitEntries[i+1:]...)
			return nil
		}
	}
	return domain.ErrEntryNotFound
}

type memInvoiceRepo struct {
	s *MemoryStore
}

func (r *memInvoiceRepo) Append(ctx context.Context, inv *domain.Invoice) error {
	r.s.lock()
	defer r.s.unlock()
	cp := *inv
	cp.Items = append([]domain.InvoiceItem(nil), inv.Items...)
	r.s.st.invoices = append(r.s.st.invoices, cp)
	return nil
}

func (r *memInvoiceRepo) GetByID(ctx context.Context, id string) (*domain.Invoice, error) {
	r.s.lock()
	defer r.s.unlock()
	for i := range r.s.st.invoices {
		if r.s.st.invoices[i].ID == id {
			inv := r.s.st.invoices[i]
			inv.Items = append([]domain.InvoiceItem(nil), inv.Items...)
			return &inv, nil
		}
	}
	return nil, domain.ErrInvoiceNotFound
}

func (r *memInvoiceRepo) List(ctx context.Context) ([]*domain.Invoice, error) {
	r.s.lock()
	defer r.s.unlock()
	rows := make([]*domain.Invoice, 0, len(r.s.st.invoices))
	for i := range r.s.st.invoices {
		inv := r.s.st.invoices[i]
		inv.Items = append([]domain.InvoiceItem(nil), inv.Items...)
		rows = append(rows, &inv)
	}
	return rows, nil
}

func (r *memInvoiceRepo) ListByClient(ctx context.Context, clientID string) ([]*domain.Invoice, error) {
	r.s.lock()
	defer r.s.unlock()
	var rows []*domain.Invoice
	for i := range r.s.st.invoices {
		if r.s.st.invoices[i].ClientID == clientID {
			inv := r.s.st.invoices[i]
			inv.Items = append([]domain.InvoiceItem(nil), inv.Items...)
			rows = append(rows, &inv)
		}
	}
	return rows, nil
}

type memSettingsRepo struct {
	s *MemoryStore
}

func (r *memSettingsRepo) Get(ctx context.Context, category, name string) (string, error) {
	r.s.lock()
	defer r.s.unlock()
	for i := range r.s.st.settings {
		if r.s.st.settings[i].Type == category && r.s.st.settings[i].Name == name {
			return r.s.st.settings[i].Value, nil
		}
	}
	return "", domain.ErrEntryNotFound
}

func (r *memSettingsRepo) Set(ctx context.Context, category, name, value string) error {
	r.s.lock()
	defer r.s.unlock()
	for i := range r.s.st.settings {
		if r.s.st.settings[i].Type == category && r.s.st.settings[i].Name == name {
			r.s.st.settings[i].Value = value
			r.s.st.settings[i].UpdatedAt = time.Now()
			return nil
		}
	}
	r.s.st.settings = append(r.s.st.settings, domain.SysConfig{
		ID:        common.UUIDint64(),
		Type:      category,
		Name:      name,
		Value:     value,
		CreatedAt: time.Now(),
	})
	return nil
}

func (r *memSettingsRepo) List(ctx context.Context) ([]*domain.SysConfig, error) {
	r.s.lock()
	defer r.s.unlock()
	rows := make([]*domain.SysConfig, 0, len(r.s.st.settings))
	for i := range r.s.st.settings {
		row := r.s.st.settings[i]
		rows = append(rows, &row)
	}
	return rows, nil
}

type memOpLogRepo struct {
	s *MemoryStore
}

func (r *memOpLogRepo) Append(ctx context.Context, entry *domain.SysOpLog) error {
	r.s.lock()
	defer r.s.unlock()
	if entry.ID == 0 {
		entry.ID = common.UUIDint64()
	}
	if entry.OptTime.IsZero() {
		entry.OptTime = time.Now()
	}
	r.s.st.opLogs = append(r.s.st.opLogs, *entry)
	return nil
}

func (r *memOpLogRepo) List(ctx context.Context, limit int) ([]*domain.SysOpLog, error) {
	r.s.lock()
	defer r.s.unlock()
	var rows []*domain.SysOpLog
	for i := len(r.s.st.opLogs) - 1; i >= 0 && len(rows) < limit; i-- {
		entry := r.s.st.opLogs[i]
		rows = append(rows, &entry)
	}
	return rows, nil
}

func (r *memOpLogRepo) DeleteBefore(ctx context.Context, cutoff time.Time) error {
	r.s.lock()
	defer r.s.unlock()
	kept := r.s.st.opLogs[:0]
	for _, entry := range r.s.st.opLogs {
		if !entry.OptTime.Before(cutoff) {
			kept = append(kept, entry)
		}
	}
	r.s.st.opLogs = kept
	return nil
}
