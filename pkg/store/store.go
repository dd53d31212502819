// Package store keeps scene documents by id.
//
// Three backends share the [Store] interface:
//
//   - [BoltStore]: a single bbolt file, the default for the CLI
//   - [MongoStore]: a MongoDB collection, for servers sharing documents
//   - [MemoryStore]: process memory, for tests and throwaway servers
//
// Records hold the encoded document bytes together with their [document.Format],
// so a document comes back exactly as it was stored.
package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/corescene/pkg/document"
	apperr "github.com/matzehuels/corescene/pkg/errors"
)

// ErrNotFound is returned by Get and Delete for unknown ids.
var ErrNotFound = errors.New("document not found")

// Record is one stored document.
type Record struct {
	ID      string          `json:"id" bson:"_id"`
	Name    string          `json:"name" bson:"name"`
	Format  document.Format `json:"format" bson:"format"`
	Data    []byte          `json:"data,omitempty" bson:"data,omitempty"`
	Updated time.Time       `json:"updated" bson:"updated"`
}

// Document decodes the stored bytes.
func (r *Record) Document() (*document.Document, error) {
	return document.Parse(r.Data, r.Format)
}

// Store is a document store. List returns records without Data, ordered by
// name and then id.
type Store interface {
	Get(ctx context.Context, id string) (*Record, error)
	// Put inserts or replaces r. An empty ID is replaced by a fresh uuid and
	// Updated is set to the current time.
	Put(ctx context.Context, r *Record) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]Record, error)
	Close() error
}

// Backend names accepted by Open.
const (
	BackendBolt   = "bolt"
	BackendMongo  = "mongo"
	BackendMemory = "memory"
)

// Config selects and configures a backend.
type Config struct {
	Backend       string
	Path          string
	MongoURI      string
	MongoDatabase string
}

// Open creates the store described by cfg.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch strings.ToLower(cfg.Backend) {
	case BackendBolt, "":
		return OpenBolt(cfg.Path)
	case BackendMongo:
		return OpenMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
	case BackendMemory:
		return NewMemoryStore(), nil
	}
	return nil, apperr.New(apperr.ErrCodeInvalidInput,
		"unknown store backend %q (want %s, %s or %s)", cfg.Backend, BackendBolt, BackendMongo, BackendMemory)
}

// prepare fills in defaults and validates r before it is written.
func prepare(r *Record, now time.Time) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if err := apperr.ValidateDocumentID(r.ID); err != nil {
		return err
	}
	f, err := document.ParseFormat(string(r.Format))
	if err != nil {
		return err
	}
	r.Format = f
	if r.Name == "" {
		r.Name = r.ID
	}
	r.Updated = now.UTC().Truncate(time.Millisecond)
	return nil
}

func notFound(id string) error {
	return apperr.Wrap(apperr.ErrCodeDocumentNotFound, ErrNotFound, "document %s", id)
}

// summary strips the payload from r for listings.
func summary(r Record) Record {
	r.Data = nil
	return r
}

func less(a, b Record) int {
	if c := strings.Compare(a.Name, b.Name); c != 0 {
		return c
	}
	return strings.Compare(a.ID, b.ID)
}
