// Package cache provides the process-wide, time-bounded caches shared by the
// data fetchers. Entries are replaced wholesale, never incremented, so
// concurrent writes only ever race in the benign overwrite-with-fresher sense.
package cache

import (
	"context"
	"time"
)

// Clock supplies the current time. Injected so TTL expiry is testable.
type Clock func() time.Time

// TTL is a time-bounded key/value cache. Values are JSON-encoded on Set and
// decoded into dest on Get; Get reports false for a missing or expired key.
type TTL interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}) error
}
