package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a stock record. Quantity is mutated only by the fulfillment and
// supply engines; the waitlist rows in WaitEntry are owned by the product and
// share its lifetime.
type Product struct {
	ID        string          `gorm:"primaryKey;size:32" json:"id" csv:"id"`
	Name      string          `gorm:"index;size:200" json:"name" csv:"name"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(18,4)" json:"unit_price" csv:"unit_price"`
	Quantity  int             `json:"quantity" csv:"quantity"`
	CreatedAt time.Time       `json:"created_at" csv:"-"`
	UpdatedAt time.Time       `json:"updated_at" csv:"-"`
}

func (Product) TableName() string {
	return "wh_product"
}

// WaitEntry is one backorder on a product waitlist: clientID -> quantity,
// at most one row per (product, client), quantity always > 0. Waitlist order
// is enqueue order (created_at, then id).
type WaitEntry struct {
	ID        int64     `gorm:"primaryKey" json:"id,string"`
	ProductID string    `gorm:"index:idx_wait_product_client,unique;size:32" json:"product_id"`
	ClientID  string    `gorm:"index:idx_wait_product_client,unique;size:32" json:"client_id"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}

func (WaitEntry) TableName() string {
	return "wh_wait_entry"
}
