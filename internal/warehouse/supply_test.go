package warehouse_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warekit/warestock/internal/domain"
	"github.com/warekit/warestock/internal/warehouse"
)

func TestSupplyDrainsWaitlist(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	product := seedProduct(t, svc, 10, 0)

	c1, err := svc.AddClient(ctx, "First In Line", "", "")
	require.NoError(t, err)
	c2, err := svc.AddClient(ctx, "Second In Line", "", "")
	require.NoError(t, err)

	_, err = svc.AddToWaitlist(ctx, product.ID, c1.ID, 3)
	require.NoError(t, err)
	_, err = svc.AddToWaitlist(ctx, product.ID, c2.ID, 5)
	require.NoError(t, err)

	result, err := svc.SupplyProduct(ctx, product.ID, 10, &warehouse.ScriptedSupplyDecider{
		Decisions: map[string]warehouse.SupplyDecision{
			c1.ID: {Action: warehouse.SupplyExisting},
			c2.ID: {Action: warehouse.SupplyExisting},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 10, result.Added)
	require.Len(t, result.Entries, 2)

	// Enqueue order surfaces first in line first.
	assert.Equal(t, c1.ID, result.Entries[0].ClientID)
	assert.Equal(t, 3, result.Entries[0].Ordered)
	require.NotNil(t, result.Entries[0].Invoice)
	assert.True(t, result.Entries[0].Invoice.Total.Equal(decimal.NewFromInt(30)))

	assert.Equal(t, c2.ID, result.Entries[1].ClientID)
	assert.Equal(t, 5, result.Entries[1].Ordered)
	require.NotNil(t, result.Entries[1].Invoice)
	assert.True(t, result.Entries[1].Invoice.Total.Equal(decimal.NewFromInt(50)))

	product, err = svc.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, product.Quantity)

	waitlist, err := svc.Waitlist(ctx, product.ID)
	require.NoError(t, err)
	assert.Empty(t, waitlist)

	// Balances went negative: accounts run on credit.
	c1, err = svc.GetClient(ctx, c1.ID)
	require.NoError(t, err)
	assert.True(t, c1.Balance.Equal(decimal.NewFromInt(-30)), "balance %s", c1.Balance)
}

func TestSupplyLeaveKeepsEntry(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	client := seedClient(t, svc, 100)
	product := seedProduct(t, svc, 10, 0)

	_, err := svc.AddToWaitlist(ctx, product.ID, client.ID, 4)
	require.NoError(t, err)

	// No decision scripted: the client is left on the waitlist.
	result, err := svc.SupplyProduct(ctx, product.ID, 6, &warehouse.ScriptedSupplyDecider{})
	require.NoError(t, err)
	require.Len(t, result.Entries, 1)
	assert.Equal(t, 0, result.Entries[0].Ordered)
	assert.Nil(t, result.Entries[0].Invoice)

	product, err = svc.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, product.Quantity, "stock increase applies even when nothing is ordered")

	waitlist, err := svc.Waitlist(ctx, product.ID)
	require.NoError(t, err)
	assert.Len(t, waitlist, 1)
}

func TestSupplyCustomQuantityClearsWholeEntry(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	client := seedClient(t, svc, 100)
	product := seedProduct(t, svc, 10, 0)

	_, err := svc.AddToWaitlist(ctx, product.ID, client.ID, 5)
	require.NoError(t, err)

	result, err := svc.SupplyProduct(ctx, product.ID, 10, &warehouse.ScriptedSupplyDecider{
		Decisions: map[string]warehouse.SupplyDecision{
			client.ID: {Action: warehouse.SupplyQuantity, Quantity: 2},
		},
	})
	require.NoError(t, err)
	require.Len(t, result.Entries, 1)
	assert.Equal(t, 2, result.Entries[0].Ordered)

	// The whole entry clears even though only 2 of 5 were ordered.
	waitlist, err := svc.Waitlist(ctx, product.ID)
	require.NoError(t, err)
	assert.Empty(t, waitlist)

	product, err = svc.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, product.Quantity)
}

func TestSupplyRejectsOverdraw(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	client := seedClient(t, svc, 100)
	product := seedProduct(t, svc, 10, 0)

	_, err := svc.AddToWaitlist(ctx, product.ID, client.ID, 5)
	require.NoError(t, err)

	result, err := svc.SupplyProduct(ctx, product.ID, 2, &warehouse.ScriptedSupplyDecider{
		Decisions: map[string]warehouse.SupplyDecision{
			client.ID: {Action: warehouse.SupplyExisting},
		},
	})
	require.NoError(t, err)
	require.Len(t, result.Entries, 1)
	assert.ErrorIs(t, result.Entries[0].Err, domain.ErrInsufficientStock)

	product, err = svc.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, product.Quantity, "stock never goes negative")

	waitlist, err := svc.Waitlist(ctx, product.ID)
	require.NoError(t, err)
	assert.Len(t, waitlist, 1, "rejected entry stays on the waitlist")
}

func TestSupplyInvalidDecisionQuantity(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	client := seedClient(t, svc, 100)
	product := seedProduct(t, svc, 10, 0)

	_, err := svc.AddToWaitlist(ctx, product.ID, client.ID, 5)
	require.NoError(t, err)

	result, err := svc.SupplyProduct(ctx, product.ID, 10, &warehouse.ScriptedSupplyDecider{
		Decisions: map[string]warehouse.SupplyDecision{
			client.ID: {Action: warehouse.SupplyQuantity, Quantity: -3},
		},
	})
	require.NoError(t, err)
	require.Len(t, result.Entries, 1)
	assert.ErrorIs(t, result.Entries[0].Err, domain.ErrInvalidQuantity)

	waitlist, err := svc.Waitlist(ctx, product.ID)
	require.NoError(t, err)
	assert.Len(t, waitlist, 1)
}

func TestSupplyInvalidQuantity(t *testing.T) {
	svc := newTestService(t)
	product := seedProduct(t, svc, 10, 0)

	_, err := svc.SupplyProduct(context.Background(), product.ID, 0, &warehouse.ScriptedSupplyDecider{})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestSupplyUnknownProduct(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.SupplyProduct(context.Background(), "P000", 5, &warehouse.ScriptedSupplyDecider{})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}
