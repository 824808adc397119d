package ftp

import (
	"io"

	_ftp "github.com/jlaffaye/ftp"
)

// Client is the subset of the FTP command connection used by this backend.
type Client interface {
	ChangeDir(path string) error
	List(path string) ([]*_ftp.Entry, error)
	MakeDir(path string) error
	// Retr returns the file content.  It must be closed before the next command is sent.
	Retr(path string) (io.ReadCloser, error)
	Stor(path string, r io.Reader) error
	Append(path string, r io.Reader) error
	Delete(path string) error
	Quit() error
}

// serverConn adapts *ftp.ServerConn to Client.
type serverConn struct {
	*_ftp.ServerConn
}

func (c serverConn) Retr(path string) (io.ReadCloser, error) {
	r, err := c.ServerConn.Retr(path)
	if err != nil {
		return nil, err
	}
	return r, nil
}
