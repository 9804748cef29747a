package warehouse_test

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warekit/warestock/internal/warehouse"
)

func TestMemoryStoreAtomicRollback(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	product := seedProduct(t, svc, 10, 4)
	store := svc.Store()

	boom := errors.New("boom")
	err := store.Atomic(ctx, func(tx warehouse.Store) error {
		p, err := tx.Products().GetByID(ctx, product.ID)
		require.NoError(t, err)
		p.Quantity = 0
		require.NoError(t, tx.Products().Update(ctx, p))
		return boom
	})
	require.ErrorIs(t, err, boom)

	p, err := store.Products().GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, p.Quantity, "failed transaction must not leak writes")
}

func TestMemoryStoreValueIsolation(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	product := seedProduct(t, svc, 10, 4)

	p, err := svc.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	p.Quantity = 999

	again, err := svc.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, again.Quantity, "mutating a returned value must not touch the store")
}

func TestMemoryStoreReset(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	seedProduct(t, svc, 10, 4)
	seedClient(t, svc, 100)
	store := svc.Store()

	require.NoError(t, store.Reset(ctx))

	products, err := store.Products().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)
	clients, err := store.Clients().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, clients)
}
