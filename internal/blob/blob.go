// Package blob abstracts the opaque persistence primitive underneath the
// collection store: a keyed byte blob that is always read and written whole.
package blob

import "context"

// Blob reads and writes whole values by key. Read returns (nil, nil) for an
// absent key; absence is not an error at this layer.
type Blob interface {
	Read(ctx context.Context, key string) ([]byte, error)
	Write(ctx context.Context, key string, data []byte) error
}
