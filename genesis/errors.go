package genesis

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrInvalidAddress   = errors.New("invalid address")
	ErrNegativeBalance  = errors.New("negative balance")
	ErrConcurrentUpdate = errors.New("genesis file changed while it was being updated")
)

// MalformedGenesisError reports a genesis file that is not a JSON object with
// an object-valued alloc.
type MalformedGenesisError struct {
	Path string
	Err  error
}

func (e *MalformedGenesisError) Error() string {
	return fmt.Sprintf("malformed genesis %s: %v", e.Path, e.Err)
}

func (e *MalformedGenesisError) Unwrap() error { return e.Err }
