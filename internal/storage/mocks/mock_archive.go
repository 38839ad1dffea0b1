package mocks

import (
	"context"
	"io"

	"meterflow/internal/storage"

	"github.com/stretchr/testify/mock"
)

type MockArchive struct {
	mock.Mock
}

func (m *MockArchive) Store(ctx context.Context, filename string, r io.Reader, size int64, metadata map[string]string) (storage.ObjectInfo, error) {
	args := m.Called(ctx, filename, r, size, metadata)
	return args.Get(0).(storage.ObjectInfo), args.Error(1)
}

func (m *MockArchive) Open(ctx context.Context, filename string) (io.ReadCloser, storage.ObjectInfo, error) {
	args := m.Called(ctx, filename)
	if args.Get(0) == nil {
		return nil, args.Get(1).(storage.ObjectInfo), args.Error(2)
	}
	return args.Get(0).(io.ReadCloser), args.Get(1).(storage.ObjectInfo), args.Error(2)
}
