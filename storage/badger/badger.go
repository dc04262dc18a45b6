// Package badger persists recent queries in an embedded BadgerDB.
package badger

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
	"github.com/letmevibethatforyou/tripsearch/recent"
)

// Storage is a recent.Storage backed by BadgerDB.
type Storage struct {
	db     *badger.DB
	logger *slog.Logger
}

var _ recent.Storage = (*Storage)(nil)

// badgerLoggerAdapter adapts slog.Logger to badger.Logger interface.
type badgerLoggerAdapter struct {
	logger *slog.Logger
}

var _ badger.Logger = (*badgerLoggerAdapter)(nil)

func (bl *badgerLoggerAdapter) Errorf(msg string, items ...any) {
	bl.logger.Error(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Warningf(msg string, items ...any) {
	bl.logger.Warn(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Infof(msg string, items ...any) {
	bl.logger.Debug(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Debugf(msg string, items ...any) {
	bl.logger.Debug(fmt.Sprintf(msg, items...))
}

// Open opens a BadgerDB database at dir, creating the directory if needed.
// An empty dir opens an in-memory database.
func Open(dir string) (*Storage, error) {
	var opts badger.Options
	if dir == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := ensureDir(dir); err != nil {
			return nil, err
		}
		opts = badger.DefaultOptions(dir)
	}

	logger := slog.Default().With("component", "badger")
	opts.Logger = &badgerLoggerAdapter{logger: logger}
	opts.Compression = options.None

	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrapf(err, "open badger at %q", dir)
	}

	return &Storage{db: db, logger: logger}, nil
}

func ensureDir(dir string) error {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "create %q", dir)
		}
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, "stat %q", dir)
	}
	if !info.IsDir() {
		return errors.Newf("%s is not a directory", dir)
	}
	return nil
}

// Get implements recent.Storage.
func (s *Storage) Get(_ context.Context, key string) (string, bool, error) {
	var value []byte
	err := s.db.View(func(tx *badger.Txn) error {
		item, err := tx.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrapf(err, "get %q", key)
	}
	return string(value), true, nil
}

// Set implements recent.Storage.
func (s *Storage) Set(_ context.Context, key, value string) error {
	err := s.db.Update(func(tx *badger.Txn) error {
		return tx.Set([]byte(key), []byte(value))
	})
	return errors.Wrapf(err, "set %q", key)
}

// Remove implements recent.Storage.
func (s *Storage) Remove(_ context.Context, key string) error {
	err := s.db.Update(func(tx *badger.Txn) error {
		return tx.Delete([]byte(key))
	})
	return errors.Wrapf(err, "remove %q", key)
}

// Close closes the database.
func (s *Storage) Close() error {
	return s.db.Close()
}

// IsClosed returns true if the database is closed.
func (s *Storage) IsClosed() bool {
	return s.db.IsClosed()
}
