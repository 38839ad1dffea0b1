package mocks

import (
	"context"

	"meterflow/internal/model"
	"meterflow/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockFlowFileRepository struct {
	mock.Mock
}

func (m *MockFlowFileRepository) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.FlowFile], error) {
	args := m.Called(ctx, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.FlowFile]), args.Error(1)
}

func (m *MockFlowFileRepository) FindByID(ctx context.Context, id int64) (*model.FlowFileDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FlowFileDetail), args.Error(1)
}
