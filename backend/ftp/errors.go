package ftp

import (
	"errors"
	"net/textproto"

	"github.com/c2fo/doclib"
)

// mapError classifies FTP replies by their reply code.
func mapError(err error) error {
	var reply *textproto.Error
	if !errors.As(err, &reply) {
		return err
	}
	switch reply.Code {
	case 550:
		return doclib.NotFound(err)
	case 430, 530, 532:
		return doclib.AuthenticationFailed(err)
	}
	return err
}
