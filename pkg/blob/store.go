package blob

import (
	"context"
	"errors"
)

// ErrNotExist is returned by Download when the named object is absent.
var ErrNotExist = errors.New("blob: object does not exist")

// Store is the blob collaborator the loaders consume. Absence of an object is
// an ordinary condition reported through Exists; Download on a missing object
// returns an error wrapping ErrNotExist.
type Store interface {
	Exists(ctx context.Context, name string) (bool, error)
	Download(ctx context.Context, name string) ([]byte, error)
}
