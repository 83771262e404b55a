package session

import (
	"errors"
	"io/fs"

	"github.com/joshuapare/sysctlkit/pkg/types"
)

// classify wraps an OS error in the matching typed error, keeping the cause.
func classify(err error, op, path string) error {
	kind := types.ErrKindIO
	switch {
	case errors.Is(err, fs.ErrNotExist):
		kind = types.ErrKindNotFound
	case errors.Is(err, fs.ErrPermission):
		kind = types.ErrKindPermission
	}
	return types.Errorf(kind, err, "session: %s %s", op, path)
}
