// Package storage provides the key-value backends the persistent store is
// built on. Records are stored one per key under a collection prefix, so a
// backend only needs point operations plus an ordered prefix scan.
package storage

import "errors"

// ErrKeyNotFound is returned by Get when no value exists under a key.
var ErrKeyNotFound = errors.New("storage: key not found")

// KV is a single key-value pair returned by a prefix scan.
type KV struct {
	Key   string
	Value []byte
}

// Backend is a minimal key-value store. Implementations must be safe for
// concurrent use. List returns pairs in ascending key order.
type Backend interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	Delete(key string) (bool, error)
	List(prefix string) ([]KV, error)
	Close() error
}
