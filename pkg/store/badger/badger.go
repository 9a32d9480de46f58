package badger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/CesarLuchesi/phrasenets/pkg/logger"
	"github.com/CesarLuchesi/phrasenets/pkg/store"

	"github.com/dgraph-io/badger/v4"
)

const defaultTTL = time.Hour

// Store implements store.AnalysisStore on a BadgerDB instance. With no
// directory configured the database lives purely in memory, matching the
// lifetime the analysis text is supposed to have.
type Store struct {
	db  *badger.DB
	ttl time.Duration
}

// NewStoreParams contains configuration for creating a Store.
//
// Dir is the on-disk location of the database; empty means in-memory only.
// TTL is how long an analysis text stays retrievable after Put.
type NewStoreParams struct {
	Dir string
	TTL time.Duration
}

// badgerLoggerAdapter routes badger's internal logging through the logger facade.
type badgerLoggerAdapter struct{}

var _ badger.Logger = badgerLoggerAdapter{}

func (badgerLoggerAdapter) Errorf(msg string, items ...any) {
	logger.Error(fmt.Sprintf(msg, items...))
}

func (badgerLoggerAdapter) Warningf(msg string, items ...any) {
	logger.Warn(fmt.Sprintf(msg, items...))
}

func (badgerLoggerAdapter) Infof(msg string, items ...any) {
	logger.Debug(fmt.Sprintf(msg, items...))
}

func (badgerLoggerAdapter) Debugf(msg string, items ...any) {
	logger.Debug(fmt.Sprintf(msg, items...))
}

// NewStore opens the analysis-text store.
func NewStore(params NewStoreParams) (*Store, error) {
	var opts badger.Options
	if params.Dir == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(params.Dir)
	}
	opts.Logger = badgerLoggerAdapter{}

	ttl := params.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open analysis store: %w", err)
	}

	return &Store{
		db:  db,
		ttl: ttl,
	}, nil
}

// Put stores the analyzed text under the given id with the configured TTL.
func (s *Store) Put(ctx context.Context, id string, text string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry([]byte(id), []byte(text)).WithTTL(s.ttl)
		return txn.SetEntry(entry)
	})
}

// Get returns the analyzed text for the given id, or store.ErrNotFound when
// the id is unknown or the entry has expired.
func (s *Store) Get(ctx context.Context, id string) (string, error) {
	var text string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return store.ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			text = string(val)
			return nil
		})
	})
	if err != nil {
		return "", err
	}
	return text, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
