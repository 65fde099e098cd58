package storage

import "errors"

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("no value for key")

// KV is a minimal string key-value persistence surface, the server-side
// analog of the browser's localStorage. Implementations must be safe for
// concurrent use.
type KV interface {
	Get(key string) (string, error)
	Set(key, value string) error
}
