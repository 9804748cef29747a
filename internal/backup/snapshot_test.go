package backup_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warekit/warestock/internal/backup"
	"github.com/warekit/warestock/internal/warehouse"
)

func seedStore(t *testing.T) warehouse.Store {
	t.Helper()
	ctx := context.Background()
	store := warehouse.NewMemoryStore()
	svc := warehouse.NewService(store, nil)

	product, err := svc.AddProduct(ctx, "Bar Stool", decimal.NewFromInt(25), 8)
	require.NoError(t, err)
	client, err := svc.AddClient(ctx, "Corner Cafe", "8 Mill Ln", "555-0102")
	require.NoError(t, err)
	_, err = svc.AddToWishlist(ctx, client.ID, product.ID, 3)
	require.NoError(t, err)
	_, err = svc.AddToWaitlist(ctx, product.ID, client.ID, 2)
	require.NoError(t, err)
	require.NoError(t, store.Settings().Set(ctx, "backup", "keep", "30"))
	return store
}

func TestSnapshotRoundtrip(t *testing.T) {
	ctx := context.Background()
	store := seedStore(t)

	snap, err := backup.Export(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, backup.SnapshotVersion, snap.Version)
	assert.Len(t, snap.Products, 1)
	assert.Len(t, snap.Clients, 1)
	assert.Len(t, snap.WishItems, 1)
	assert.Len(t, snap.WaitEntries, 1)

	data, err := snap.Encode()
	require.NoError(t, err)
	decoded, err := backup.Decode(data)
	require.NoError(t, err)

	target := warehouse.NewMemoryStore()
	require.NoError(t, backup.Restore(ctx, target, decoded))

	products, err := target.Products().List(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Bar Stool", products[0].Name)
	assert.Equal(t, 8, products[0].Quantity)
	assert.True(t, products[0].UnitPrice.Equal(decimal.NewFromInt(25)))

	entries, err := target.Waitlists().ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 2, entries[0].Quantity)

	keep, err := target.Settings().Get(ctx, "backup", "keep")
	require.NoError(t, err)
	assert.Equal(t, "30", keep)
}

func TestDecodeRejectsUnknownVersion(t *testing.T) {
	_, err := backup.Decode([]byte(`{"version":99}`))
	assert.Error(t, err)
}

func TestRestoreReplacesExistingData(t *testing.T) {
	ctx := context.Background()
	store := seedStore(t)
	snap, err := backup.Export(ctx, store)
	require.NoError(t, err)

	target := warehouse.NewMemoryStore()
	svc := warehouse.NewService(target, nil)
	_, err = svc.AddProduct(ctx, "Stale Product", decimal.NewFromInt(1), 1)
	require.NoError(t, err)

	require.NoError(t, backup.Restore(ctx, target, snap))

	products, err := target.Products().List(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Bar Stool", products[0].Name, "restore replaces, not merges")
}

func TestArchiveSaveLoad(t *testing.T) {
	ctx := context.Background()
	store := seedStore(t)
	archive := backup.NewArchive(filepath.Join(t.TempDir(), "snapshots.db"))

	snap, err := backup.Export(ctx, store)
	require.NoError(t, err)

	key, err := archive.Save(snap)
	require.NoError(t, err)
	require.NotEmpty(t, key)

	entries, err := archive.List()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, key, entries[0].Key)
	assert.Greater(t, entries[0].Size, 0)

	loaded, err := archive.Load(key)
	require.NoError(t, err)
	assert.Len(t, loaded.Products, 1)

	latest, err := archive.LoadLatest()
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Len(t, latest.Clients, 1)
}

func TestArchiveLoadLatestEmpty(t *testing.T) {
	archive := backup.NewArchive(filepath.Join(t.TempDir(), "snapshots.db"))
	latest, err := archive.LoadLatest()
	require.NoError(t, err)
	assert.Nil(t, latest)
}
