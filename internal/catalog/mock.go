package catalog

import (
	"context"
	"errors"
	"sync"
)

// ErrMockNotImplemented is returned when a MockClient method lacks an override.
var ErrMockNotImplemented = errors.New("catalog.MockClient: method not implemented")

// MockClient is a test double for Client.
type MockClient struct {
	ListAttributesFn  func(context.Context) ([]Attribute, error)
	CreateAttributeFn func(context.Context, string) (Attribute, error)

	mu              sync.Mutex
	ListCallCount   int
	CreateCallCount int
	CreateCallArgs  []string
}

// NewMockClient returns a MockClient with zeroed handlers.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// ListAttributes invokes the configured stub or returns ErrMockNotImplemented.
func (m *MockClient) ListAttributes(ctx context.Context) ([]Attribute, error) {
	m.mu.Lock()
	m.ListCallCount++
	m.mu.Unlock()

	if m.ListAttributesFn == nil {
		return nil, ErrMockNotImplemented
	}
	return m.ListAttributesFn(ctx)
}

// CreateAttribute invokes the configured stub or returns ErrMockNotImplemented.
func (m *MockClient) CreateAttribute(ctx context.Context, name string) (Attribute, error) {
	m.mu.Lock()
	m.CreateCallCount++
	m.CreateCallArgs = append(m.CreateCallArgs, name)
	m.mu.Unlock()

	if m.CreateAttributeFn == nil {
		return Attribute{}, ErrMockNotImplemented
	}
	return m.CreateAttributeFn(ctx, name)
}

// Creates returns a copy of the names passed to CreateAttribute.
func (m *MockClient) Creates() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.CreateCallArgs...)
}
