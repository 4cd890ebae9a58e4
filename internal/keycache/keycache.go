package keycache

import (
	"errors"

	"github.com/dgraph-io/badger/v4"

	"sealchat/internal/crypto"
	"sealchat/internal/domain"
)

// Cache is a badger-backed domain.KeyCache. Values are passphrase
// sealed at rest, so a stolen cache directory does not leak
// conversation keys.
type Cache struct {
	db         *badger.DB
	passphrase string
}

// Open opens (creating if needed) the cache at dir.
func Open(dir, passphrase string) (*Cache, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Cache{db: db, passphrase: passphrase}, nil
}

// Set writes value under key, overwriting any prior entry.
func (c *Cache) Set(key, value string) error {
	blob, err := crypto.SealWithPassphrase(c.passphrase, []byte(value))
	if err != nil {
		return err
	}
	return c.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), blob)
	})
}

// Get returns the cached value, with an absent marker when unset. A
// wrong passphrase surfaces as crypto.ErrWrongPassphrase rather than a
// silent miss.
func (c *Cache) Get(key string) (string, bool, error) {
	var blob []byte
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		blob, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	raw, err := crypto.OpenWithPassphrase(c.passphrase, blob)
	if err != nil {
		return "", false, err
	}
	return string(raw), true, nil
}

// Close releases the underlying database.
func (c *Cache) Close() error { return c.db.Close() }

// Compile-time assertion that Cache implements domain.KeyCache.
var _ domain.KeyCache = (*Cache)(nil)
