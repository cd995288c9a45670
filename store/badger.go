// Package store keeps portal snapshots in a badger database, one msgpack value per
// named portal.
package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v3"
	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/Nydauron/cyclingportal/snapshot"
)

const portalEntity = "PORTAL"

var ErrNotFound = errors.New("portal snapshot not found")

type BadgerStore struct {
	entityPrefix []byte
	db           *badger.DB
	log          zerolog.Logger
}

func Open(dir string, log zerolog.Logger) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir).WithLoggingLevel(badger.ERROR)
	return open(opts, log)
}

// OpenInMemory opens a store that lives only as long as the process.
func OpenInMemory(log zerolog.Logger) (*BadgerStore, error) {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLoggingLevel(badger.ERROR)
	return open(opts, log)
}

func open(opts badger.Options, log zerolog.Logger) (*BadgerStore, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	return &BadgerStore{
		entityPrefix: []byte(portalEntity + "/"),
		db:           db,
		log:          log,
	}, nil
}

func (b *BadgerStore) buildKey(name string) []byte {
	return append(append([]byte{}, b.entityPrefix...), name...)
}

func (b *BadgerStore) Put(name string, p *snapshot.Portal) error {
	buf, err := msgpack.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal portal %q: %w", name, err)
	}
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(b.buildKey(name), buf)
	})
}

func (b *BadgerStore) Get(name string) (*snapshot.Portal, error) {
	var p snapshot.Portal
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(b.buildKey(name))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return msgpack.Unmarshal(val, &p)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get portal %q: %w", name, err)
	}
	return &p, nil
}

func (b *BadgerStore) Delete(name string) error {
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(b.buildKey(name))
	})
}

// List returns the names of every stored portal in key order.
func (b *BadgerStore) List() ([]string, error) {
	var names []string
	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Seek(b.entityPrefix); it.ValidForPrefix(b.entityPrefix); it.Next() {
			key := string(it.Item().Key())
			names = append(names, strings.TrimPrefix(key, string(b.entityPrefix)))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list portals: %w", err)
	}
	return names, nil
}

// Close compacts the database before closing it.
func (b *BadgerStore) Close() error {
	if !b.db.Opts().InMemory {
		if err := b.db.Flatten(4); err != nil {
			b.log.Err(err).Msg("flatten on close")
		}
		if err := b.db.RunValueLogGC(0.5); err != nil && !errors.Is(err, badger.ErrNoRewrite) {
			b.log.Err(err).Msg("run value log gc")
		}
	}
	if err := b.db.Close(); err != nil {
		return fmt.Errorf("failed to close badger db: %w", err)
	}
	return nil
}
