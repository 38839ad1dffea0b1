package mocks

import (
	"context"
	"io"

	"meterflow/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockImportService struct {
	mock.Mock
}

func (m *MockImportService) ImportFile(ctx context.Context, path string, dryRun bool) (*service.ImportResult, error) {
	args := m.Called(ctx, path, dryRun)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ImportResult), args.Error(1)
}

func (m *MockImportService) ImportReader(ctx context.Context, r io.Reader, filename string, dryRun bool) (*service.ImportResult, error) {
	args := m.Called(ctx, r, filename, dryRun)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ImportResult), args.Error(1)
}

func (m *MockImportService) ImportFiles(ctx context.Context, paths []string, dryRun bool) []service.FileResult {
	args := m.Called(ctx, paths, dryRun)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]service.FileResult)
}
