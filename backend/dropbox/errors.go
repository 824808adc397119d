package dropbox

import (
	"strings"

	"github.com/c2fo/doclib"
)

// mapError classifies Dropbox API errors by their error summary, ie: "path/not_found/..".  The SDK returns a distinct
// error type per endpoint, but every one of them reports the summary as its message.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "not_found"):
		return doclib.NotFound(err)
	case strings.Contains(msg, "invalid_access_token"),
		strings.Contains(msg, "expired_access_token"),
		strings.Contains(msg, "missing_scope"),
		strings.Contains(msg, "invalid_account_type"):
		return doclib.AuthenticationFailed(err)
	}
	return err
}
