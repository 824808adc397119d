package s3

import (
	"errors"

	"github.com/aws/smithy-go"

	"github.com/c2fo/doclib"
)

// mapError classifies S3 API errors by their error code.
func mapError(err error) error {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return err
	}
	switch apiErr.ErrorCode() {
	case "NoSuchKey", "NoSuchBucket", "NotFound":
		return doclib.NotFound(err)
	case "AccessDenied", "Forbidden", "InvalidAccessKeyId", "SignatureDoesNotMatch", "ExpiredToken":
		return doclib.AuthenticationFailed(err)
	}
	return err
}
