package domain

import "errors"

// Error kinds shared by the registries and the two engines. Callers classify
// with errors.Is; services add context with pkg/errors wrapping.
var (
	ErrProductNotFound     = errors.New("product not found")
	ErrClientNotFound      = errors.New("client not found")
	ErrEntryNotFound       = errors.New("entry not found")
	ErrInvoiceNotFound     = errors.New("invoice not found")
	ErrInvalidQuantity     = errors.New("quantity must be positive")
	ErrInvalidPrice        = errors.New("price must not be negative")
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrDuplicateEntry      = errors.New("entry already exists")
	ErrAvailabilityChanged = errors.New("stock availability changed before commit")
)
