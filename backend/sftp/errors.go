package sftp

import (
	"errors"
	"io/fs"

	"github.com/c2fo/doclib"
)

// mapError classifies sftp status errors.  The client already normalizes them to the io/fs errors.
func mapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, fs.ErrNotExist):
		return doclib.NotFound(err)
	case errors.Is(err, fs.ErrPermission):
		return doclib.AuthenticationFailed(err)
	}
	return err
}
