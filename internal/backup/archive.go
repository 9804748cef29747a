package backup

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"
)

var snapshotBucket = []byte("snapshots")

// keyLayout keeps trailing zeros so keys sort chronologically as bytes.
const keyLayout = "20060102150405.000000000"

// Archive stores encoded snapshots in a bbolt file, keyed by creation time.
type Archive struct {
	path string
}

func NewArchive(path string) *Archive {
	return &Archive{path: path}
}

// ArchiveEntry describes one stored snapshot.
type ArchiveEntry struct {
	Key       string    `json:"key"`
	CreatedAt time.Time `json:"created_at"`
	Size      int       `json:"size"`
}

func (a *Archive) open() (*bolt.DB, error) {
	if err := os.MkdirAll(filepath.Dir(a.path), 0755); err != nil {
		return nil, errors.Wrap(err, "archive dir")
	}
	return bolt.Open(a.path, 0600, &bolt.Options{Timeout: 3 * time.Second})
}

// Save encodes and stores a snapshot, returning its archive key.
func (a *Archive) Save(snap *Snapshot) (string, error) {
	data, err := snap.Encode()
	if err != nil {
		return "", err
	}
	db, err := a.open()
	if err != nil {
		return "", errors.Wrap(err, "open archive")
	}
	defer db.Close()

	key := snap.CreatedAt.UTC().Format(keyLayout)
	err = db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(snapshotBucket)
		if err != nil {
			return err
		}
		return b.Put([]byte(key), data)
	})
	if err != nil {
		return "", errors.Wrap(err, "save snapshot")
	}
	return key, nil
}

// List returns all stored snapshots, oldest first.
func (a *Archive) List() ([]ArchiveEntry, error) {
	db, err := a.open()
	if err != nil {
		return nil, errors.Wrap(err, "open archive")
	}
	defer db.Close()

	var entries []ArchiveEntry
	err = db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(snapshotBucket)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			entry := ArchiveEntry{Key: string(k), Size: len(v)}
			if t, err := time.Parse(keyLayout, string(k)); err == nil {
				entry.CreatedAt = t
			}
			entries = append(entries, entry)
			return nil
		})
	})
	return entries, err
}

// Load decodes the snapshot stored under key.
func (a *Archive) Load(key string) (*Snapshot, error) {
	db, err := a.open()
	if err != nil {
		return nil, errors.Wrap(err, "open archive")
	}
	defer db.Close()

	var data []byte
	err = db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(snapshotBucket)
		if b == nil {
			return errors.Errorf("snapshot %s not found", key)
		}
		v := b.Get([]byte(key))
		if v == nil {
			return errors.Errorf("snapshot %s not found", key)
		}
		data = append([]byte(nil), v...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

// LoadLatest decodes the most recent snapshot, or returns nil when the
// archive is empty.
func (a *Archive) LoadLatest() (*Snapshot, error) {
	entries, err := a.List()
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return a.Load(entries[len(entries)-1].Key)
}
