package gs

import (
	"errors"
	"net/http"

	"cloud.google.com/go/storage"
	"google.golang.org/api/googleapi"

	"github.com/c2fo/doclib"
)

// mapError classifies storage errors: the not-exist sentinels and 404 are not found, 401 and 403 are authentication
// failures.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, storage.ErrObjectNotExist) || errors.Is(err, storage.ErrBucketNotExist) {
		return doclib.NotFound(err)
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusNotFound:
			return doclib.NotFound(err)
		case http.StatusUnauthorized, http.StatusForbidden:
			return doclib.AuthenticationFailed(err)
		}
	}
	return err
}
