package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/c2fo/doclib"
)

// Provider is a mock implementation of doclib.Provider.
type Provider struct {
	mock.Mock
}

// NewProvider returns a Provider mock whose expectations are asserted when t finishes.
func NewProvider(t interface {
	mock.TestingT
	Cleanup(func())
}) *Provider {
	m := &Provider{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Name returns the first argument of the matching expectation, or "mock" when none is set.
func (m *Provider) Name() string {
	if !m.hasExpectation("Name") {
		return "mock"
	}
	return m.Called().String(0)
}

// Scheme returns the first argument of the matching expectation, or "mock" when none is set.
func (m *Provider) Scheme() string {
	if !m.hasExpectation("Scheme") {
		return "mock"
	}
	return m.Called().String(0)
}

func (m *Provider) Authenticate(ctx context.Context, cfg doclib.Config) (doclib.Session, error) {
	args := m.Called(ctx, cfg)

	if fn, ok := args.Get(0).(func(context.Context, doclib.Config) doclib.Session); ok {
		return fn(ctx, cfg), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(doclib.Session), args.Error(1)
}

func (m *Provider) hasExpectation(method string) bool {
	for _, c := range m.ExpectedCalls {
		if c.Method == method {
			return true
		}
	}
	return false
}

var _ doclib.Provider = (*Provider)(nil)
