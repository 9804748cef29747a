package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is an immutable record of a completed sale. Invoices are created
// only by the fulfillment and supply engines and never mutated afterwards.
// Client and products are referenced by id only.
type Invoice struct {
	ID        string          `gorm:"primaryKey;size:32" json:"id" csv:"id"`
	ClientID  string          `gorm:"index;size:32" json:"client_id" csv:"client_id"`
	Total     decimal.Decimal `gorm:"type:decimal(18,4)" json:"total" csv:"total"`
	Items     []InvoiceItem   `gorm:"foreignKey:InvoiceID;references:ID" json:"items" csv:"-"`
	CreatedAt time.Time       `json:"created_at" csv:"created_at"`
}

func (Invoice) TableName() string {
	return "wh_invoice"
}

// InvoiceItem is one invoice line. UnitPrice is the product price at time of
// sale; Amount = Quantity x UnitPrice.
type InvoiceItem struct {
	ID        int64           `gorm:"primaryKey" json:"id,string"`
	InvoiceID string          `gorm:"index;size:32" json:"invoice_id"`
	ProductID string          `gorm:"index;size:32" json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(18,4)" json:"unit_price"`
	Amount    decimal.Decimal `gorm:"type:decimal(18,4)" json:"amount"`
}

func (InvoiceItem) TableName() string {
	return "wh_invoice_item"
}
