package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	bolt "go.etcd.io/bbolt"

	apperr "github.com/matzehuels/corescene/pkg/errors"
)

const bucketDocuments = "documents"

// BoltStore keeps JSON-encoded records in one bucket of a bbolt file.
type BoltStore struct {
	db *bolt.DB
}

// OpenBolt opens or creates the database at path.
func OpenBolt(path string) (*BoltStore, error) {
	if path == "" {
		return nil, apperr.New(apperr.ErrCodeInvalidInput, "bolt store needs a path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeStorage, err, "create store directory")
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeStorage, err, "open %s", path)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketDocuments))
		return err
	})
	if err != nil {
		db.Close()
		return nil, apperr.Wrap(apperr.ErrCodeStorage, err, "initialize %s", path)
	}
	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Get(_ context.Context, id string) (*Record, error) {
	var r Record
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(bucketDocuments)).Get([]byte(id))
		if v == nil {
			return notFound(id)
		}
		return json.Unmarshal(v, &r)
	})
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *BoltStore) Put(_ context.Context, r *Record) error {
	if err := prepare(r, time.Now()); err != nil {
		return err
	}
	v, err := json.Marshal(r)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketDocuments)).Put([]byte(r.ID), v)
	})
}

func (s *BoltStore) Delete(_ context.Context, id string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketDocuments))
		if b.Get([]byte(id)) == nil {
			return notFound(id)
		}
		return b.Delete([]byte(id))
	})
}

func (s *BoltStore) List(context.Context) ([]Record, error) {
	out := []Record{}
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketDocuments)).ForEach(func(k, v []byte) error {
			var r Record
			if err := json.Unmarshal(v, &r); err != nil {
				return fmt.Errorf("decode %s: %w", k, err)
			}
			out = append(out, summary(r))
			return nil
		})
	})
	slices.SortFunc(out, less)
	return out, err
}

// Path returns the database file.
func (s *BoltStore) Path() string { return s.db.Path() }

func (s *BoltStore) Close() error { return s.db.Close() }

var _ Store = (*BoltStore)(nil)
