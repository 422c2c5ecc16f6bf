// Package store persists analysis history and parameter templates in a
// durable local key-value store.
package store

import "context"

// KV is the minimal persistent store the history and template stores are
// layered on. Implementations must tolerate concurrent readers but are not
// required to guard concurrent writers; the tool is single-user by design.
type KV interface {
	// Get returns the value for key. The second return is false when the
	// key is absent.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}
