package mocks

import (
	"io"

	"github.com/stretchr/testify/mock"
)

// MockArtifactStore is a mock implementation of ArtifactStore for testing
type MockArtifactStore struct {
	mock.Mock
}

func (m *MockArtifactStore) Save(clientID int64, fileName string, content io.Reader) (string, int64, error) {
	args := m.Called(clientID, fileName, content)
	return args.String(0), args.Get(1).(int64), args.Error(2)
}

func (m *MockArtifactStore) Open(path string) (io.ReadCloser, error) {
	args := m.Called(path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

func (m *MockArtifactStore) Exists(path string) (bool, int64, error) {
	args := m.Called(path)
	return args.Bool(0), args.Get(1).(int64), args.Error(2)
}

func (m *MockArtifactStore) Delete(path string) error {
	args := m.Called(path)
	return args.Error(0)
}
