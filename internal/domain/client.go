package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Client identity plus account balance. Balance is signed and mutated only by
// invoicing; the wish items in WishItem are owned by the client.
type Client struct {
	ID        string          `gorm:"primaryKey;size:32" json:"id" csv:"id"`
	Name      string          `gorm:"index;size:200" json:"name" csv:"name"`
	Address   string          `gorm:"size:500" json:"address" csv:"address"`
	Phone     string          `gorm:"size:50" json:"phone" csv:"phone"`
	Balance   decimal.Decimal `gorm:"type:decimal(18,4)" json:"balance" csv:"balance"`
	CreatedAt time.Time       `json:"created_at" csv:"-"`
	UpdatedAt time.Time       `json:"updated_at" csv:"-"`
}

func (Client) TableName() string {
	return "wh_client"
}

// WishItem is one wishlist entry: productID -> desired quantity, at most one
// row per (client, product), quantity always > 0. Entries are removed rather
// than zeroed. Enumeration order is insertion order (ids are monotonic).
type WishItem struct {
	ID        int64     `gorm:"primaryKey" json:"id,string"`
	ClientID  string    `gorm:"index:idx_wish_client_product,unique;size:32" json:"client_id"`
	ProductID string    `gorm:"index:idx_wish_client_product,unique;size:32" json:"product_id"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}

func (WishItem) TableName() string {
	return "wh_wish_item"
}
