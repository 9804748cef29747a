package backup

import (
	"context"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"github.com/warekit/warestock/internal/domain"
	"github.com/warekit/warestock/internal/warehouse"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// SnapshotVersion is bumped whenever the snapshot layout changes.
const SnapshotVersion = 1

// Snapshot is a flat, versioned copy of the whole entity graph. Owned
// collections (wish items, wait entries, invoice items) are stored as plain
// rows and re-linked on restore.
type Snapshot struct {
	Version     int                  `json:"version"`
	CreatedAt   time.Time            `json:"created_at"`
	Products    []*domain.Product    `json:"products"`
	Clients     []*domain.Client     `json:"clients"`
	WishItems   []*domain.WishItem   `json:"wish_items"`
	WaitEntries []*domain.WaitEntry  `json:"wait_entries"`
	Invoices    []*domain.Invoice    `json:"invoices"`
	Settings    []*domain.SysConfig  `json:"settings"`
}

// Export collects the full data set from the store.
func Export(ctx context.Context, store warehouse.Store) (*Snapshot, error) {
	snap := &Snapshot{Version: SnapshotVersion, CreatedAt: time.Now()}
	var err error
	if snap.Products, err = store.Products().List(ctx); err != nil {
		return nil, errors.Wrap(err, "snapshot products")
	}
	if snap.Clients, err = store.Clients().List(ctx); err != nil {
		return nil, errors.Wrap(err, "snapshot clients")
	}
	if snap.WishItems, err = store.Wishlists().ListAll(ctx); err != nil {
		return nil, errors.Wrap(err, "snapshot wish items")
	}
	if snap.WaitEntries, err = store.Waitlists().ListAll(ctx); err != nil {
		return nil, errors.Wrap(err, "snapshot wait entries")
	}
	if snap.Invoices, err = store.Invoices().List(ctx); err != nil {
		return nil, errors.Wrap(err, "snapshot invoices")
	}
	if snap.Settings, err = store.Settings().List(ctx); err != nil {
		return nil, errors.Wrap(err, "snapshot settings")
	}
	return snap, nil
}

// Encode serializes the snapshot.
func (s *Snapshot) Encode() ([]byte, error) {
	return json.Marshal(s)
}

// Decode parses and version-checks a snapshot.
func Decode(data []byte) (*Snapshot, error) {
	snap := new(Snapshot)
	if err := json.Unmarshal(data, snap); err != nil {
		return nil, errors.Wrap(err, "decode snapshot")
	}
	if snap.Version != SnapshotVersion {
		return nil, errors.Errorf("unsupported snapshot version %d", snap.Version)
	}
	return snap, nil
}

// Restore wipes the warehouse data and reinserts the snapshot graph in one
// atomic commit, re-linking owned collections through the repositories.
// Settings rows are upserted, never wiped.
func Restore(ctx context.Context, store warehouse.Store, snap *Snapshot) error {
	return store.Atomic(ctx, func(tx warehouse.Store) error {
		if err := tx.Reset(ctx); err != nil {
			return errors.Wrap(err, "restore reset")
		}
		for _, p := range snap.Products {
			if err := tx.Products().Create(ctx, p); err != nil {
				return errors.Wrapf(err, "restore product %s", p.ID)
			}
		}
		for _, c := range snap.Clients {
			if err := tx.Clients().Create(ctx, c); err != nil {
				return errors.Wrapf(err, "restore client %s", c.ID)
			}
		}
		for _, item := range snap.WishItems {
			if err := tx.Wishlists().Add(ctx, item); err != nil {
				return errors.Wrapf(err, "restore wish item %d", item.ID)
			}
		}
		for _, entry := range snap.WaitEntries {
			if err := tx.Waitlists().Add(ctx, entry); err != nil {
				return errors.Wrapf(err, "restore wait entry %d", entry.ID)
			}
		}
		for _, inv := range snap.Invoices {
			if err := tx.Invoices().Append(ctx, inv); err != nil {
				return errors.Wrapf(err, "restore invoice %s", inv.ID)
			}
		}
		for _, row := range snap.Settings {
			if err := tx.Settings().Set(ctx, row.Type, row.Name, row.Value); err != nil {
				return errors.Wrapf(err, "restore setting %s.%s", row.Type, row.Name)
			}
		}
		return nil
	})
}
