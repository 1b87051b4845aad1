package contract

import "context"

// KeyValueStore is a durable string slot per key. Get reports found=false for
// a key that was never written.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
}
