package mocks

import (
	"context"

	"meterflow/internal/model"
	"meterflow/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockMeterPointRepository struct {
	mock.Mock
}

func (m *MockMeterPointRepository) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.MeterPointDetail], error) {
	args := m.Called(ctx, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.MeterPointDetail]), args.Error(1)
}

func (m *MockMeterPointRepository) FindByID(ctx context.Context, id int64) (*model.MeterPointDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MeterPointDetail), args.Error(1)
}
