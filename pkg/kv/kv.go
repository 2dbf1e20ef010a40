// Package kv provides the durable key-value store the cart ledger and order
// history persist through. Values are opaque byte strings; a write always
// replaces the whole value.
//
// Three drivers are available:
//   - "file"   — one file per key under STORE_ROOT (default)
//   - "memory" — process-local map, used in tests
//   - "redis"  — shared Redis instance
//
// Quick start:
//
//	store, err := kv.Open()
//	store.Write("cart", data)
//	data, err := store.Read("cart")
package kv

import (
	"errors"
	"fmt"

	"github.com/shashiranjanraj/tindahan/config"
)

// ErrNotFound is returned by Read when the key has never been written.
var ErrNotFound = errors.New("kv: key not found")

// Store is the driver interface. Implementations must be safe for
// concurrent use.
type Store interface {
	// Read returns the full value stored under key, or ErrNotFound.
	Read(key string) ([]byte, error)

	// Write replaces the value stored under key.
	Write(key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error
}

// Open constructs the Store selected by STORE_DRIVER.
func Open() (Store, error) {
	switch driver := config.StoreDriver(); driver {
	case "file":
		return NewFileStore(config.StoreRoot())
	case "memory":
		return NewMemoryStore(), nil
	case "redis":
		return NewRedisStore(config.RedisAddr(), config.RedisPassword())
	default:
		return nil, fmt.Errorf("kv: unsupported STORE_DRIVER %q (supported: file, memory, redis)", driver)
	}
}
