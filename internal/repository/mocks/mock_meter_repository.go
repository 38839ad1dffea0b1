package mocks

import (
	"context"

	"meterflow/internal/model"
	"meterflow/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockMeterRepository struct {
	mock.Mock
}

func (m *MockMeterRepository) List(ctx context.Context, f repository.MeterFilter, pq repository.PageQuery) (*repository.PageResult[model.MeterDetail], error) {
	args := m.Called(ctx, f, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.MeterDetail]), args.Error(1)
}

func (m *MockMeterRepository) FindByID(ctx context.Context, id int64) (*model.MeterDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MeterDetail), args.Error(1)
}
