// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ManuGH/vuejs/internal/library"
	"github.com/dgraph-io/badger/v4"
)

// badgerPrefix namespaces library keys: "vuejs.settings/libraries/<name>".
const badgerPrefix = ConfigName + "/libraries/"

// BadgerStore keeps one key per library.
type BadgerStore struct {
	db *badger.DB
}

// OpenBadgerStore opens the database directory at path. An empty path opens
// an in-memory database.
func OpenBadgerStore(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger settings store: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

func (s *BadgerStore) Load(_ context.Context) (Record, error) {
	rec := Record{Libraries: map[string]library.LibrarySetting{}}
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(badgerPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			name := strings.TrimPrefix(string(item.Key()), badgerPrefix)
			var ls library.LibrarySetting
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &ls)
			}); err != nil {
				return fmt.Errorf("decode library %s: %w", name, err)
			}
			ls.Name = name
			rec.Libraries[name] = ls
		}
		return nil
	})
	if err != nil {
		return Record{}, err
	}
	if len(rec.Libraries) == 0 {
		return Record{}, nil
	}
	return rec, nil
}

// Save drops every stored library and writes the new set in one transaction.
func (s *BadgerStore) Save(_ context.Context, rec Record) error {
	return s.db.Update(func(txn *badger.Txn) error {
		var stale [][]byte
		it := txn.NewIterator(badger.IteratorOptions{PrefetchValues: false})
		prefix := []byte(badgerPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			stale = append(stale, it.Item().KeyCopy(nil))
		}
		it.Close()

		for _, k := range stale {
			if err := txn.Delete(k); err != nil {
				return err
			}
		}
		for _, name := range rec.Names() {
			buf, err := json.Marshal(rec.Libraries[name])
			if err != nil {
				return fmt.Errorf("encode library %s: %w", name, err)
			}
			if err := txn.Set([]byte(badgerPrefix+name), buf); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *BadgerStore) Ping(_ context.Context) error {
	if s.db.IsClosed() {
		return ErrClosed
	}
	return nil
}

func (s *BadgerStore) Backend() string { return BackendBadger }

func (s *BadgerStore) Close() error { return s.db.Close() }
