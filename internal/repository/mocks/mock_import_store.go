package mocks

import (
	"context"

	"meterflow/internal/model"
	"meterflow/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockImportStore struct {
	mock.Mock
}

func (m *MockImportStore) FlowFileExists(ctx context.Context, filename string) (bool, error) {
	args := m.Called(ctx, filename)
	return args.Bool(0), args.Error(1)
}

func (m *MockImportStore) Begin(ctx context.Context) (repository.ImportTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.ImportTx), args.Error(1)
}

type MockImportTx struct {
	mock.Mock
}

func (m *MockImportTx) CreateFlowFile(ctx context.Context, ff *model.FlowFile) error {
	args := m.Called(ctx, ff)
	return args.Error(0)
}

func (m *MockImportTx) GetOrCreateMeterPoint(ctx context.Context, mpan string) (*model.MeterPoint, error) {
	args := m.Called(ctx, mpan)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MeterPoint), args.Error(1)
}

func (m *MockImportTx) GetOrCreateMeter(ctx context.Context, meterPointID int64, serial, meterType string) (*model.Meter, error) {
	args := m.Called(ctx, meterPointID, serial, meterType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Meter), args.Error(1)
}

func (m *MockImportTx) GetOrCreateReading(ctx context.Context, reading *model.Reading) (bool, error) {
	args := m.Called(ctx, reading)
	return args.Bool(0), args.Error(1)
}

func (m *MockImportTx) FinalizeFlowFile(ctx context.Context, flowFileID int64, recordCount int) error {
	args := m.Called(ctx, flowFileID, recordCount)
	return args.Error(0)
}

func (m *MockImportTx) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockImportTx) Rollback() error {
	args := m.Called()
	return args.Error(0)
}
