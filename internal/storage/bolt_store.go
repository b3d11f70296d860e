package storage

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/samvad-hq/hero-data-service/internal/domain"
	bolt "go.etcd.io/bbolt"
)

const (
	heroBucket = "heroes"
	keyBytes   = 8
)

// boltStore implements a Store backed by BoltDB. Keys are big-endian ids so cursor order is id order.
type boltStore struct {
	db *bolt.DB
}

// openBolt initializes a BoltDB-backed Store.
func openBolt(path string) (Store, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage directory: %w", err)
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bbolt db: %w", err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(heroBucket))
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("init bucket: %w", err)
	}

	return &boltStore{db: db}, nil
}

// Close closes the BoltDB store.
func (b *boltStore) Close() error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Close()
}

// List returns all heroes ordered by id.
func (b *boltStore) List() ([]domain.Hero, error) {
	return b.collect(func(domain.Hero) bool { return true })
}

// Search returns heroes whose name contains term, ignoring case.
func (b *boltStore) Search(term string) ([]domain.Hero, error) {
	needle := strings.ToLower(term)
	return b.collect(func(h domain.Hero) bool {
		return strings.Contains(strings.ToLower(h.Name), needle)
	})
}

// Get loads the hero with id.
func (b *boltStore) Get(id int) (domain.Hero, error) {
	var hero domain.Hero
	err := b.db.View(func(tx *bolt.Tx) error {
		bucket, err := heroes(tx)
		if err != nil {
			return err
		}
		raw := bucket.Get(encodeKey(id))
		if raw == nil {
			return ErrNotFound
		}
		return json.Unmarshal(raw, &hero)
	})
	return hero, err
}

// Create assigns the next id (highest stored id plus one) and stores hero.
func (b *boltStore) Create(hero domain.Hero) (domain.Hero, error) {
	err := b.db.Update(func(tx *bolt.Tx) error {
		bucket, err := heroes(tx)
		if err != nil {
			return err
		}
		hero.ID = nextID(bucket)
		return put(bucket, hero)
	})
	if err != nil {
		return domain.Hero{}, err
	}
	return hero, nil
}

// Update replaces an existing hero; ErrNotFound when the id is unknown.
func (b *boltStore) Update(hero domain.Hero) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		bucket, err := heroes(tx)
		if err != nil {
			return err
		}
		if bucket.Get(encodeKey(hero.ID)) == nil {
			return ErrNotFound
		}
		return put(bucket, hero)
	})
}

// Delete removes and returns the hero with id.
func (b *boltStore) Delete(id int) (domain.Hero, error) {
	var hero domain.Hero
	err := b.db.Update(func(tx *bolt.Tx) error {
		bucket, err := heroes(tx)
		if err != nil {
			return err
		}
		key := encodeKey(id)
		raw := bucket.Get(key)
		if raw == nil {
			return ErrNotFound
		}
		if err := json.Unmarshal(raw, &hero); err != nil {
			return err
		}
		return bucket.Delete(key)
	})
	return hero, err
}

// Seed writes heroes into an empty store. Heroes with an id are written first so the ones without
// an id take ids above every explicit one.
func (b *boltStore) Seed(list []domain.Hero) (int, error) {
	written := 0
	err := b.db.Update(func(tx *bolt.Tx) error {
		bucket, err := heroes(tx)
		if err != nil {
			return err
		}
		if k, _ := bucket.Cursor().First(); k != nil {
			return nil
		}

		var unassigned []domain.Hero
		for _, h := range list {
			if h.ID <= 0 {
				unassigned = append(unassigned, h)
				continue
			}
			if bucket.Get(encodeKey(h.ID)) != nil {
				return fmt.Errorf("duplicate hero id %d", h.ID)
			}
			if err := put(bucket, h); err != nil {
				return err
			}
			written++
		}
		for _, h := range unassigned {
			h.ID = nextID(bucket)
			if err := put(bucket, h); err != nil {
				return err
			}
			written++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return written, nil
}

func (b *boltStore) collect(keep func(domain.Hero) bool) ([]domain.Hero, error) {
	out := []domain.Hero{}
	err := b.db.View(func(tx *bolt.Tx) error {
		bucket, err := heroes(tx)
		if err != nil {
			return err
		}
		return bucket.ForEach(func(_, v []byte) error {
			var h domain.Hero
			if err := json.Unmarshal(v, &h); err != nil {
				return err
			}
			if keep(h) {
				out = append(out, h)
			}
			return nil
		})
	})
	return out, err
}

func heroes(tx *bolt.Tx) (*bolt.Bucket, error) {
	bucket := tx.Bucket([]byte(heroBucket))
	if bucket == nil {
		return nil, fmt.Errorf("hero bucket missing")
	}
	return bucket, nil
}

func put(bucket *bolt.Bucket, hero domain.Hero) error {
	raw, err := json.Marshal(hero)
	if err != nil {
		return fmt.Errorf("encode hero %d: %w", hero.ID, err)
	}
	return bucket.Put(encodeKey(hero.ID), raw)
}

// nextID returns the highest stored id plus one, or 1 for an empty bucket.
func nextID(bucket *bolt.Bucket) int {
	k, _ := bucket.Cursor().Last()
	if len(k) != keyBytes {
		return 1
	}
	return int(binary.BigEndian.Uint64(k)) + 1
}

func encodeKey(id int) []byte {
	buf := make([]byte, keyBytes)
	binary.BigEndian.PutUint64(buf, uint64(id))
	return buf
}
