package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/c2fo/doclib"
)

// Session is a mock implementation of doclib.Session.
type Session struct {
	mock.Mock
}

// NewSession returns a Session mock whose expectations are asserted when t finishes.
func NewSession(t interface {
	mock.TestingT
	Cleanup(func())
}) *Session {
	m := &Session{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *Session) ListFolder(ctx context.Context, folderPath string) ([]doclib.Record, error) {
	args := m.Called(ctx, folderPath)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]doclib.Record), args.Error(1)
}

func (m *Session) ReadFile(ctx context.Context, filePath string) ([]byte, error) {
	args := m.Called(ctx, filePath)

	if fn, ok := args.Get(0).(func(context.Context, string) []byte); ok {
		return fn(ctx, filePath), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *Session) WriteFile(ctx context.Context, folderPath, fileName string, content []byte) (*doclib.Receipt, error) {
	args := m.Called(ctx, folderPath, fileName, content)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*doclib.Receipt), args.Error(1)
}

// CreateUploadSession accepts a func(doclib.ChunkUploadedFunc) *doclib.Receipt return value so tests can drive the
// progress callback.
func (m *Session) CreateUploadSession(ctx context.Context, folderPath, localFilePath string, chunkSize int64,
	onChunk doclib.ChunkUploadedFunc) (*doclib.Receipt, error) {
	args := m.Called(ctx, folderPath, localFilePath, chunkSize, onChunk)

	if fn, ok := args.Get(0).(func(doclib.ChunkUploadedFunc) *doclib.Receipt); ok {
		return fn(onChunk), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*doclib.Receipt), args.Error(1)
}

func (m *Session) ListItems(ctx context.Context, listName string) ([]doclib.ListItem, error) {
	args := m.Called(ctx, listName)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]doclib.ListItem), args.Error(1)
}

func (m *Session) Close() error {
	return m.Called().Error(0)
}

var _ doclib.Session = (*Session)(nil)
