package mocks

import (
	"io"

	_ftp "github.com/jlaffaye/ftp"
	"github.com/stretchr/testify/mock"
)

// Client is a mock implementation of ftp.Client.
type Client struct {
	mock.Mock
}

// NewClient returns a Client mock whose expectations are asserted when t finishes.
func NewClient(t interface {
	mock.TestingT
	Cleanup(func())
}) *Client {
	m := &Client{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *Client) ChangeDir(path string) error {
	return m.Called(path).Error(0)
}

func (m *Client) List(path string) ([]*_ftp.Entry, error) {
	args := m.Called(path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*_ftp.Entry), args.Error(1)
}

func (m *Client) MakeDir(path string) error {
	return m.Called(path).Error(0)
}

func (m *Client) Retr(path string) (io.ReadCloser, error) {
	args := m.Called(path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

func (m *Client) Stor(path string, r io.Reader) error {
	return m.Called(path, r).Error(0)
}

func (m *Client) Append(path string, r io.Reader) error {
	return m.Called(path, r).Error(0)
}

func (m *Client) Delete(path string) error {
	return m.Called(path).Error(0)
}

func (m *Client) Quit() error {
	return m.Called().Error(0)
}
