package mocks

import (
	"context"

	"meterflow/internal/model"
	"meterflow/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockReadingRepository struct {
	mock.Mock
}

func (m *MockReadingRepository) List(ctx context.Context, f repository.ReadingFilter, pq repository.PageQuery) (*repository.PageResult[model.ReadingDetail], error) {
	args := m.Called(ctx, f, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.ReadingDetail]), args.Error(1)
}

func (m *MockReadingRepository) FindByID(ctx context.Context, id int64) (*model.ReadingDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ReadingDetail), args.Error(1)
}

func (m *MockReadingRepository) Summary(ctx context.Context) (*model.ReadingsSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ReadingsSummary), args.Error(1)
}

type MockMaintenanceRepository struct {
	mock.Mock
}

func (m *MockMaintenanceRepository) ClearAll(ctx context.Context) (*model.ClearCounts, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ClearCounts), args.Error(1)
}
