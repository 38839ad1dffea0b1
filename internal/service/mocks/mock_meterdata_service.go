package mocks

import (
	"context"
	"io"

	"meterflow/internal/model"
	"meterflow/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockMeterDataService struct {
	mock.Mock
}

func (m *MockMeterDataService) ListFlowFiles(ctx context.Context, limit, offset int) (*service.FlowFileListResult, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.FlowFileListResult), args.Error(1)
}

func (m *MockMeterDataService) GetFlowFile(ctx context.Context, id int64) (*model.FlowFileDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FlowFileDetail), args.Error(1)
}

func (m *MockMeterDataService) DownloadFlowFile(ctx context.Context, id int64) (io.ReadCloser, *model.FlowFileDetail, error) {
	args := m.Called(ctx, id)
	var rc io.ReadCloser
	if args.Get(0) != nil {
		rc = args.Get(0).(io.ReadCloser)
	}
	var d *model.FlowFileDetail
	if args.Get(1) != nil {
		d = args.Get(1).(*model.FlowFileDetail)
	}
	return rc, d, args.Error(2)
}

func (m *MockMeterDataService) ListMeterPoints(ctx context.Context, limit, offset int) (*service.MeterPointListResult, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.MeterPointListResult), args.Error(1)
}

func (m *MockMeterDataService) GetMeterPoint(ctx context.Context, id int64) (*model.MeterPointDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MeterPointDetail), args.Error(1)
}

func (m *MockMeterDataService) ListMeters(ctx context.Context, q service.MeterQuery, limit, offset int) (*service.MeterListResult, error) {
	args := m.Called(ctx, q, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.MeterListResult), args.Error(1)
}

func (m *MockMeterDataService) GetMeter(ctx context.Context, id int64) (*model.MeterDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MeterDetail), args.Error(1)
}

func (m *MockMeterDataService) ListReadings(ctx context.Context, q service.ReadingQuery, limit, offset int) (*service.ReadingListResult, error) {
	args := m.Called(ctx, q, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ReadingListResult), args.Error(1)
}

func (m *MockMeterDataService) GetReading(ctx context.Context, id int64) (*model.ReadingDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ReadingDetail), args.Error(1)
}

func (m *MockMeterDataService) Summary(ctx context.Context) (*model.ReadingsSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ReadingsSummary), args.Error(1)
}

func (m *MockMeterDataService) ClearData(ctx context.Context) (*model.ClearCounts, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ClearCounts), args.Error(1)
}
