package utils

import "fmt"

// WrapAuthenticateError returns a wrapped authenticate error
func WrapAuthenticateError(err error) error {
	return fmt.Errorf("authenticate error: %w", err)
}

// WrapListError returns a wrapped list error
func WrapListError(err error) error {
	return fmt.Errorf("list error: %w", err)
}

// WrapReadError returns a wrapped read error
func WrapReadError(err error) error {
	return fmt.Errorf("read error: %w", err)
}

// WrapWriteError returns a wrapped write error
func WrapWriteError(err error) error {
	return fmt.Errorf("write error: %w", err)
}

// WrapUploadSessionError returns a wrapped upload session error
func WrapUploadSessionError(err error) error {
	return fmt.Errorf("upload session error: %w", err)
}

// WrapListItemsError returns a wrapped list items error
func WrapListItemsError(err error) error {
	return fmt.Errorf("list items error: %w", err)
}

// WrapCloseError returns a wrapped close error
func WrapCloseError(err error) error {
	return fmt.Errorf("close error: %w", err)
}
