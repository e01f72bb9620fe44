package store

import (
	"context"
	"time"

	"github.com/matzehuels/brainwave/pkg/config"
	"github.com/matzehuels/brainwave/pkg/errors"
	"github.com/matzehuels/brainwave/pkg/mindmap"
	"github.com/matzehuels/brainwave/pkg/observability"
)

// Store is the interface for document storage backends.
type Store interface {
	// Load returns the stored document data.
	// Returns nil, nil if no document with that name exists.
	Load(ctx context.Context, name string) (*mindmap.Data, error)

	// Save stores data under name, replacing any previous version.
	Save(ctx context.Context, name string, data mindmap.Data) error

	// Delete removes a document. Deleting a missing document is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the stored document names in lexical order.
	List(ctx context.Context) ([]string, error)

	// Close releases backend resources.
	Close() error
}

// Open creates the backend selected by cfg.Backend. The returned store
// reports loads and saves to the registered observability hooks.
func Open(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	backend := cfg.Backend
	if backend == "" {
		backend = config.BackendFile
	}
	s, err := open(ctx, backend, cfg)
	if err != nil {
		return nil, err
	}
	return Observed(s, backend), nil
}

func open(ctx context.Context, backend string, cfg config.StoreConfig) (Store, error) {
	switch backend {
	case config.BackendFile:
		return NewFileStore(cfg.Dir)
	case config.BackendSQLite:
		return OpenSQLite(cfg.SQLitePath)
	case config.BackendRedis:
		return NewRedisStore(ctx, RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   cfg.RedisPrefix,
			Timeout:  cfg.Timeout,
		})
	case config.BackendMongo:
		return NewMongoStore(ctx, MongoConfig{
			URI:      cfg.MongoURI,
			Database: cfg.MongoDatabase,
			Timeout:  cfg.Timeout,
		})
	case config.BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown store backend %q", cfg.Backend)
	}
}

// LoadOrDefault loads the named document, or returns the default single-root
// document if it has never been saved. The boolean reports whether the
// document was found.
func LoadOrDefault(ctx context.Context, s Store, name string) (*mindmap.Document, bool, error) {
	data, err := s.Load(ctx, name)
	if err != nil {
		return nil, false, err
	}
	if data == nil {
		return mindmap.NewDefault(), false, nil
	}
	return mindmap.FromData(*data), true, nil
}

type observed struct {
	Store
	backend string
}

// Observed returns s with load and save calls reported to the registered
// observability store hooks under the given backend label.
func Observed(s Store, backend string) Store {
	if _, ok := s.(*observed); ok {
		return s
	}
	return &observed{Store: s, backend: backend}
}

func (o *observed) Load(ctx context.Context, name string) (*mindmap.Data, error) {
	start := time.Now()
	data, err := o.Store.Load(ctx, name)
	observability.Store().OnLoad(ctx, o.backend, name, data != nil, time.Since(start), err)
	return data, err
}

func (o *observed) Save(ctx context.Context, name string, data mindmap.Data) error {
	start := time.Now()
	err := o.Store.Save(ctx, name, data)
	observability.Store().OnSave(ctx, o.backend, name, len(data.Nodes), time.Since(start), err)
	return err
}
