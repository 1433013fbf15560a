package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"
)

const bucketEntries = "entries"

// Store is a small bbolt-backed TTL cache. Values are JSON blobs under a
// caller-chosen key; a read older than the TTL is a miss, and an unparseable
// entry is discarded and treated as a miss so callers fall through to the
// network.
type Store struct {
	db  *bbolt.DB
	ttl time.Duration
	now func() time.Time
}

type entry struct {
	FetchedAt time.Time       `json:"fetched_at"`
	Data      json.RawMessage `json:"data"`
}

// Open creates the database (and its directory) if needed.
func Open(path string, ttl time.Duration) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}

	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketEntries))
		return err
	}); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db, ttl: ttl, now: time.Now}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get unmarshals the cached value for key into dst and reports whether a
// fresh entry was found.
func (s *Store) Get(key string, dst any) (bool, error) {
	var raw []byte

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketEntries))
		if v := bucket.Get([]byte(key)); v != nil {
			raw = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	if raw == nil {
		return false, nil
	}

	var e entry
	if err := json.Unmarshal(raw, &e); err != nil {
		_ = s.Delete(key)
		return false, nil
	}
	if s.now().Sub(e.FetchedAt) > s.ttl {
		return false, nil
	}
	if err := json.Unmarshal(e.Data, dst); err != nil {
		_ = s.Delete(key)
		return false, nil
	}
	return true, nil
}

// Put stores v under key, stamped with the current time.
func (s *Store) Put(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	blob, err := json.Marshal(entry{FetchedAt: s.now(), Data: data})
	if err != nil {
		return err
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketEntries))
		return bucket.Put([]byte(key), blob)
	})
}

// Delete drops the entry for key; deleting an absent key is not an error.
func (s *Store) Delete(key string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketEntries))
		return bucket.Delete([]byte(key))
	})
}
