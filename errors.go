package doclib

import "fmt"

// Error is a type that allows for error constants below
type Error string

// Error returns a string representation of the error
func (e Error) Error() string { return string(e) }

const (
	// ErrAuthentication - Credentials or site were rejected by the provider
	ErrAuthentication = Error("authentication failed")

	// ErrNotFound - Folder or file does not exist
	ErrNotFound = Error("file or folder does not exist")

	// ErrMalformedRecord - A provider record is missing a required field
	ErrMalformedRecord = Error("malformed file record")

	// ErrEmptyInput - A selection was attempted over an empty set of files
	ErrEmptyInput = Error("no files to select from")

	// ErrFormat - Content could not be parsed as the expected format
	ErrFormat = Error("unsupported or corrupt content format")

	// ErrNotSupported - The provider does not implement the operation
	ErrNotSupported = Error("operation not supported by provider")

	// ErrValidation - Arguments passed to an operation are invalid
	ErrValidation = Error("invalid arguments")
)

// MalformedRecordError reports which record, and which of its fields, could not be normalized.
type MalformedRecordError struct {
	Index int
	Field string
	Err   error
}

func (e *MalformedRecordError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: record %d field %q: %v", ErrMalformedRecord, e.Index, e.Field, e.Err)
	}
	return fmt.Sprintf("%s: record %d missing field %q", ErrMalformedRecord, e.Index, e.Field)
}

// Unwrap returns both ErrMalformedRecord and the parse error, if any, so errors.Is works for either.
func (e *MalformedRecordError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrMalformedRecord, e.Err}
	}
	return []error{ErrMalformedRecord}
}

// NotFound joins ErrNotFound with a provider error so the provider error stays reachable through errors.As.
func NotFound(err error) error {
	return fmt.Errorf("%w: %w", ErrNotFound, err)
}

// AuthenticationFailed joins ErrAuthentication with a provider error.
func AuthenticationFailed(err error) error {
	return fmt.Errorf("%w: %w", ErrAuthentication, err)
}
