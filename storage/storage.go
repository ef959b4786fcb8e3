package storage

import (
	"context"
	"io"
)

// Storage defines the operations the upload intake needs from a backend.
type Storage interface {
	// Upload writes data from reader to the given key.
	Upload(ctx context.Context, key string, reader io.Reader) error

	// Delete removes the object at the given key.
	// Returns nil if the object does not exist.
	Delete(ctx context.Context, key string) error

	// Exists checks whether an object exists at the given key.
	Exists(ctx context.Context, key string) (bool, error)

	// Path returns the filesystem path of the object at key. Media tools
	// and subprocess backends read inputs by path.
	Path(key string) string
}
