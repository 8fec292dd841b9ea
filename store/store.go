package store

import (
	"context"
	"errors"
)

var (
	// ErrKeyNotFound means the document was never written (or was deleted).
	ErrKeyNotFound = errors.New("document not found")

	// ErrCorruptDocument means a document exists but cannot be decoded.
	// Callers must not treat this as absence: a corrupt tournament is a
	// server-side failure, not an empty state.
	ErrCorruptDocument = errors.New("document is corrupt")
)

// DocumentStore is a key-value document store. Documents are written whole;
// there are no partial updates. Serialization of concurrent writers is the
// caller's responsibility (see the per-tournament locks in services).
type DocumentStore interface {
	// Get decodes the document at key into dst.
	Get(ctx context.Context, key string, dst any) error

	// Put encodes doc and overwrites the document at key.
	Put(ctx context.Context, key string, doc any) error

	// Delete removes the document at key. Deleting a missing key returns
	// ErrKeyNotFound.
	Delete(ctx context.Context, key string) error

	// Keys lists every key with the given prefix, in no particular order.
	Keys(ctx context.Context, prefix string) ([]string, error)
}
