// ABOUTME: BadgerDB store used by the local driver and by tests
// ABOUTME: Same byte-level operations as charm/kv without a server

package charm

import (
	"github.com/dgraph-io/badger/v3"
)

// localKV wraps BadgerDB to provide the same interface as charm/kv.KV
// without requiring server connectivity.
type localKV struct {
	db *badger.DB
}

func openLocalKV(dir string) (*localKV, error) {
	opts := badger.DefaultOptions(dir).
		WithLogger(nil) // badger logs are noise on the CLI
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &localKV{db: db}, nil
}

func (l *localKV) Get(key []byte) ([]byte, error) {
	var result []byte
	err := l.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		result, err = item.ValueCopy(nil)
		return err
	})
	return result, err
}

func (l *localKV) Set(key, value []byte) error {
	return l.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	})
}

func (l *localKV) Delete(key []byte) error {
	return l.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key)
	})
}

func (l *localKV) Keys() ([][]byte, error) {
	var keys [][]byte
	err := l.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		return nil
	})
	return keys, err
}

func (l *localKV) Reset() error {
	return l.db.DropAll()
}

func (l *localKV) Close() error {
	return l.db.Close()
}
