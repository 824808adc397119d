package sharepoint

import (
	"errors"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"

	"github.com/c2fo/doclib"
)

// mapError classifies SharePoint responses: 401 and 403 are authentication failures, 404 is not found.
func mapError(err error) error {
	var respErr *azcore.ResponseError
	if !errors.As(err, &respErr) {
		return err
	}
	switch respErr.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return doclib.AuthenticationFailed(err)
	case http.StatusNotFound:
		return doclib.NotFound(err)
	}
	return err
}
