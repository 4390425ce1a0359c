package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockObjectStore is a mock implementation of service.ObjectStore
type MockObjectStore struct {
	mock.Mock
}

func (m *MockObjectStore) ObjectExists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockObjectStore) PublicURL(key string) string {
	return "https://media.example.com/" + key
}
