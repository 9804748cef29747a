package warehouse

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/warekit/warestock/internal/domain"
	"github.com/warekit/warestock/pkg/common"
)

// GormStore is the GORM implementation of Store. Atomic maps to a database
// transaction, so the engine commit guarantees ride on the database.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

var _ Store = (*GormStore)(nil)

func (s *GormStore) Products() ProductRepository   { return &gormProductRepo{db: s.db} }
func (s *GormStore) Clients() ClientRepository     { return &gormClientRepo{db: s.db} }
func (s *GormStore) Wishlists() WishlistRepository { return &gormWishlistRepo{db: s.db} }
func (s *GormStore) Waitlists() WaitlistRepository { return &gormWaitlistRepo{db: s.db} }
func (s *GormStore) Invoices() InvoiceRepository   { return &gormInvoiceRepo{db: s.db} }
func (s *GormStore) Settings() SettingsRepository  { return &gormSettingsRepo{db: s.db} }
func (s *GormStore) OpLogs() OpLogRepository       { return &gormOpLogRepo{db: s.db} }

func (s *GormStore) Atomic(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewGormStore(tx))
	})
}

func (s *GormStore) Reset(ctx context.Context) error {
	return s.Atomic(ctx, func(tx Store) error {
		db := tx.(*GormStore).db
		for _, model := range []interface{}{
			&domain.InvoiceItem{}, &domain.Invoice{},
			&domain.WaitEntry{}, &domain.WishItem{},
			&domain.Client{}, &domain.Product{},
		} {
			if err := db.WithContext(ctx).Where("1 = 1").Delete(model).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

type gormProductRepo struct {
	db *gorm.DB
}

func (r *gormProductRepo) Create(ctx context.Context, p *domain.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *gormProductRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	var p domain.Product
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrProductNotFound
	}
	return &p, err
}

func (r *gormProductRepo) Update(ctx context.Context, p *domain.Product) error {
	p.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *gormProductRepo) List(ctx context.Context) ([]*domain.Product, error) {
	var rows []*domain.Product
	err := r.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&rows).Error
	return rows, err
}

type gormClientRepo struct {
	db *gorm.DB
}

func (r *gormClientRepo) Create(ctx context.Context, c *domain.Client) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *gormClientRepo) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	var c domain.Client
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrClientNotFound
	}
	return &c, err
}

func (r *gormClientRepo) Update(ctx context.Context, c *domain.Client) error {
	c.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *gormClientRepo) List(ctx context.Context) ([]*domain.Client, error) {
	var rows []*domain.Client
	err := r.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&rows).Error
	return rows, err
}

type gormWishlistRepo struct {
	db *gorm.DB
}

func (r *gormWishlistRepo) Add(ctx context.Context, item *domain.WishItem) error {
	var count int64
	r.db.WithContext(ctx).Model(&domain.WishItem{}).
		Where("client_id = ? and product_id = ?", item.ClientID, item.ProductID).
		Count(&count)
	if count > 0 {
		return domain.ErrDuplicateEntry
	}
	if item.ID == 0 {
		item.ID = common.UUIDint64()
	}
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *gormWishlistRepo) Get(ctx context.Context, clientID, productID string) (*domain.WishItem, error) {
	var item domain.WishItem
	err := r.db.WithContext(ctx).
		Where("client_id = ? and product_id = ?", clientID, productID).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrEntryNotFound
	}
	return &item, err
}

func (r *gormWishlistRepo) ListByClient(ctx context.Context, clientID string) ([]*domain.WishItem, error) {
	var rows []*domain.WishItem
	err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("id ASC").
		Find(&rows).Error
	return rows, err
}

func (r *gormWishlistRepo) ListAll(ctx context.Context) ([]*domain.WishItem, error) {
	var rows []*domain.WishItem
	err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error
	return rows, err
}

func (r *gormWishlistRepo) Remove(ctx context.Context, clientID, productID string) error {
	res := r.db.WithContext(ctx).
		Where("client_id = ? and product_id = ?", clientID, productID).
		Delete(&domain.WishItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrEntryNotFound
	}
	return nil
}

type gormWaitlistRepo struct {
	db *gorm.DB
}

func (r *gormWaitlistRepo) Add(ctx context.Context, entry *domain.WaitEntry) error {
	var count int64
	r.db.WithContext(ctx).Model(&domain.WaitEntry{}).
		Where("product_id = ? and client_id = ?", entry.ProductID, entry.ClientID).
		Count(&count)
	if count > 0 {
		return domain.ErrDuplicateEntry
	}
	if entry.ID == 0 {
		entry.ID = common.UUIDint64()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *gormWaitlistRepo) Get(ctx context.Context, productID, clientID string) (*domain.WaitEntry, error) {
	var entry domain.WaitEntry
	err := r.db.WithContext(ctx).
		Where("product_id = ? and client_id = ?", productID, clientID).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrEntryNotFound
	}
	return &entry, err
}

func (r *gormWaitlistRepo) Update(ctx context.Context, entry *domain.WaitEntry) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

func (r *gormWaitlistRepo) ListByProduct(ctx context.Context, productID string) ([]*domain.WaitEntry, error) {
	var rows []*domain.WaitEntry
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at ASC, id ASC").
		Find(&rows).Error
	return rows, err
}

func (r *gormWaitlistRepo) ListAll(ctx context.Context) ([]*domain.WaitEntry, error) {
	var rows []*domain.WaitEntry
	err := r.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&rows).Error
	return rows, err
}

func (r *gormWaitlistRepo) Remove(ctx context.Context, productID, clientID string) error {
	res := r.db.WithContext(ctx).
		Where("product_id = ? and client_id = ?", productID, clientID).
		Delete(&domain.WaitEntry{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrEntryNotFound
	}
	return nil
}

type gormInvoiceRepo struct {
	db *gorm.DB
}

func (r *gormInvoiceRepo) Append(ctx context.Context, inv *domain.Invoice) error {
	return r.db.WithContext(ctx).Create(inv).Error
}

func (r *gormInvoiceRepo) GetByID(ctx context.Context, id string) (*domain.Invoice, error) {
	var inv domain.Invoice
	err := r.db.WithContext(ctx).Preload("Items").Where("id = ?", id).First(&inv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrInvoiceNotFound
	}
	return &inv, err
}

func (r *gormInvoiceRepo) List(ctx context.Context) ([]*domain.Invoice, error) {
	var rows []*domain.Invoice
	err := r.db.WithContext(ctx).Preload("Items").
		Order("created_at ASC, id ASC").Find(&rows).Error
	return rows, err
}

func (r *gormInvoiceRepo) ListByClient(ctx context.Context, clientID string) ([]*domain.Invoice, error) {
	var rows []*domain.Invoice
	err := r.db.WithContext(ctx).Preload("Items").
		Where("client_id = ?", clientID).
		Order("created_at ASC, id ASC").Find(&rows).Error
	return rows, err
}

type gormSettingsRepo struct {
	db *gorm.DB
}

func (r *gormSettingsRepo) Get(ctx context.Context, category, name string) (string, error) {
	var row domain.SysConfig
	err := r.db.WithContext(ctx).
		Where("type = ? and name = ?", category, name).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", domain.ErrEntryNotFound
	}
	return row.Value, err
}

func (r *gormSettingsRepo) Set(ctx context.Context, category, name, value string) error {
	var row domain.SysConfig
	err := r.db.WithContext(ctx).
		Where("type = ? and name = ?", category, name).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.WithContext(ctx).Create(&domain.SysConfig{
			ID:    common.UUIDint64(),
			Type:  category,
			Name:  name,
			Value: value,
		}).Error
	}
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Model(&domain.SysConfig{}).
		Where("id = ?", row.ID).
		Updates(map[string]interface{}{"value": value, "updated_at": time.Now()}).Error
}

func (r *gormSettingsRepo) List(ctx context.Context) ([]*domain.SysConfig, error) {
	var rows []*domain.SysConfig
	err := r.db.WithContext(ctx).Order("sort ASC, id ASC").Find(&rows).Error
	return rows, err
}

type gormOpLogRepo struct {
	db *gorm.DB
}

func (r *gormOpLogRepo) Append(ctx context.Context, entry *domain.SysOpLog) error {
	if entry.ID == 0 {
		entry.ID = common.UUIDint64()
	}
	if entry.OptTime.IsZero() {
		entry.OptTime = time.Now()
	}
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *gormOpLogRepo) List(ctx context.Context, limit int) ([]*domain.SysOpLog, error) {
	var rows []*domain.SysOpLog
	err := r.db.WithContext(ctx).Order("opt_time DESC").Limit(limit).Find(&rows).Error
	return rows, err
}

func (r *gormOpLogRepo) DeleteBefore(ctx context.Context, cutoff time.Time) error {
	return r.db.WithContext(ctx).Where("opt_time < ?", cutoff).Delete(&domain.SysOpLog{}).Error
}
