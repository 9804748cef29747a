package warehouse_test

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warekit/warestock/internal/domain"
)

func TestAddProductValidation(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.AddProduct(ctx, "Broken Lamp", decimal.NewFromInt(-1), 5)
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)

	_, err = svc.AddProduct(ctx, "Broken Lamp", decimal.NewFromInt(1), -5)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	p, err := svc.AddProduct(ctx, "Desk Lamp", decimal.Zero, 0)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(p.ID, "P"))
}

func TestClientStartsWithZeroBalance(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	c, err := svc.AddClient(ctx, "New Account", "", "")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(c.ID, "C"))
	assert.True(t, c.Balance.IsZero())

	// Negative balances are allowed, accounts run on credit.
	require.NoError(t, svc.SetClientBalance(ctx, c.ID, decimal.NewFromInt(-25)))
	c, err = svc.GetClient(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, c.Balance.Equal(decimal.NewFromInt(-25)))
}

func TestWishlistDuplicateRejected(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	client := seedClient(t, svc, 100)
	product := seedProduct(t, svc, 10, 4)

	_, err := svc.AddToWishlist(ctx, client.ID, product.ID, 2)
	require.NoError(t, err)

	_, err = svc.AddToWishlist(ctx, client.ID, product.ID, 3)
	assert.ErrorIs(t, err, domain.ErrDuplicateEntry)

	items, err := svc.Wishlist(ctx, client.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity, "duplicate must not change the stored quantity")
}

func TestWishlistValidation(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	client := seedClient(t, svc, 100)
	product := seedProduct(t, svc, 10, 4)

	_, err := svc.AddToWishlist(ctx, client.ID, product.ID, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = svc.AddToWishlist(ctx, "C000", product.ID, 1)
	assert.ErrorIs(t, err, domain.ErrClientNotFound)

	_, err = svc.AddToWishlist(ctx, client.ID, "P000", 1)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	err = svc.RemoveFromWishlist(ctx, client.ID, product.ID)
	assert.ErrorIs(t, err, domain.ErrEntryNotFound)
}

func TestWaitlistDuplicateRejected(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	client := seedClient(t, svc, 100)
	product := seedProduct(t, svc, 10, 0)

	_, err := svc.AddToWaitlist(ctx, product.ID, client.ID, 2)
	require.NoError(t, err)

	_, err = svc.AddToWaitlist(ctx, product.ID, client.ID, 5)
	assert.ErrorIs(t, err, domain.ErrDuplicateEntry)

	entries, err := svc.Waitlist(ctx, product.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 2, entries[0].Quantity)
}

func TestWaitlistRemove(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	client := seedClient(t, svc, 100)
	product := seedProduct(t, svc, 10, 0)

	_, err := svc.AddToWaitlist(ctx, product.ID, client.ID, 2)
	require.NoError(t, err)
	require.NoError(t, svc.RemoveFromWaitlist(ctx, product.ID, client.ID))

	err = svc.RemoveFromWaitlist(ctx, product.ID, client.ID)
	assert.ErrorIs(t, err, domain.ErrEntryNotFound)
}

func TestInvoiceLookup(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	client := seedClient(t, svc, 100)

	_, err := svc.GetInvoice(ctx, "INV000")
	assert.ErrorIs(t, err, domain.ErrInvoiceNotFound)

	invoices, err := svc.InvoicesForClient(ctx, client.ID)
	require.NoError(t, err)
	assert.Empty(t, invoices)

	_, err = svc.InvoicesForClient(ctx, "C000")
	assert.ErrorIs(t, err, domain.ErrClientNotFound)
}
