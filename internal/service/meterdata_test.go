package service

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"meterflow/internal/model"
	"meterflow/internal/repository"
	repoMocks "meterflow/internal/repository/mocks"
	"meterflow/internal/storage"
	storeMocks "meterflow/internal/storage/mocks"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dataMocks struct {
	flowFiles   *repoMocks.MockFlowFileRepository
	meterPoints *repoMocks.MockMeterPointRepository
	meters      *repoMocks.MockMeterRepository
	readings    *repoMocks.MockReadingRepository
	maintenance *repoMocks.MockMaintenanceRepository
	archive     *storeMocks.MockArchive
}

func newDataService(withArchive bool) (MeterDataService, *dataMocks) {
	m := &dataMocks{
		flowFiles:   new(repoMocks.MockFlowFileRepository),
		meterPoints: new(repoMocks.MockMeterPointRepository),
		meters:      new(repoMocks.MockMeterRepository),
		readings:    new(repoMocks.MockReadingRepository),
		maintenance: new(repoMocks.MockMaintenanceRepository),
		archive:     new(storeMocks.MockArchive),
	}
	repos := MeterDataRepos{
		FlowFiles:   m.flowFiles,
		MeterPoints: m.meterPoints,
		Meters:      m.meters,
		Readings:    m.readings,
		Maintenance: m.maintenance,
	}
	var archive storage.Archive
	if withArchive {
		archive = m.archive
	}
	return NewMeterDataService(repos, archive, zerolog.Nop()), m
}

func TestMeterDataService_GetFlowFile(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		svc, m := newDataService(false)
		m.flowFiles.On("FindByID", ctx, int64(1)).
			Return(&model.FlowFileDetail{FlowFile: model.FlowFile{ID: 1, Filename: "readings.uff"}}, nil)

		d, err := svc.GetFlowFile(ctx, 1)

		require.NoError(t, err)
		assert.Equal(t, "readings.uff", d.Filename)
	})

	t.Run("not found", func(t *testing.T) {
		svc, m := newDataService(false)
		m.flowFiles.On("FindByID", ctx, int64(99)).Return(nil, sql.ErrNoRows)

		_, err := svc.GetFlowFile(ctx, 99)

		assert.ErrorIs(t, err, ErrFlowFileNotFound)
	})

	t.Run("invalid id", func(t *testing.T) {
		svc, _ := newDataService(false)
		_, err := svc.GetFlowFile(ctx, 0)
		assert.ErrorIs(t, err, ErrInvalidID)
	})
}

func TestMeterDataService_DownloadFlowFile(t *testing.T) {
	ctx := context.Background()
	detail := &model.FlowFileDetail{FlowFile: model.FlowFile{ID: 1, Filename: "readings.uff"}}

	t.Run("streams archived original", func(t *testing.T) {
		svc, m := newDataService(true)
		m.flowFiles.On("FindByID", ctx, int64(1)).Return(detail, nil)
		m.archive.On("Open", ctx, "readings.uff").
			Return(io.NopCloser(strings.NewReader("ZHV|...")), storage.ObjectInfo{Key: "flows/readings.uff"}, nil)

		rc, d, err := svc.DownloadFlowFile(ctx, 1)

		require.NoError(t, err)
		defer rc.Close()
		content, _ := io.ReadAll(rc)
		assert.Equal(t, "ZHV|...", string(content))
		assert.Equal(t, "readings.uff", d.Filename)
	})

	t.Run("archive disabled", func(t *testing.T) {
		svc, m := newDataService(false)
		m.flowFiles.On("FindByID", ctx, int64(1)).Return(detail, nil)

		_, _, err := svc.DownloadFlowFile(ctx, 1)

		assert.ErrorIs(t, err, ErrArchiveDisabled)
	})

	t.Run("object missing", func(t *testing.T) {
		svc, m := newDataService(true)
		m.flowFiles.On("FindByID", ctx, int64(1)).Return(detail, nil)
		m.archive.On("Open", ctx, "readings.uff").
			Return(nil, storage.ObjectInfo{}, errors.New("key does not exist"))

		_, _, err := svc.DownloadFlowFile(ctx, 1)

		assert.ErrorIs(t, err, ErrArchiveNotFound)
	})

	t.Run("unknown flow file", func(t *testing.T) {
		svc, m := newDataService(true)
		m.flowFiles.On("FindByID", ctx, int64(9)).Return(nil, sql.ErrNoRows)

		_, _, err := svc.DownloadFlowFile(ctx, 9)

		assert.ErrorIs(t, err, ErrFlowFileNotFound)
	})
}

func TestMeterDataService_ListMeters(t *testing.T) {
	ctx := context.Background()
	svc, m := newDataService(false)

	m.meters.On("List", ctx, repository.MeterFilter{MPAN: "1200023305967", MeterType: "S"},
		repository.PageQuery{Limit: 20, Offset: 0}).
		Return(&repository.PageResult[model.MeterDetail]{
			Items: []model.MeterDetail{{Meter: model.Meter{ID: 3, MeterType: "S"}, MPAN: "1200023305967"}},
			Total: 1,
		}, nil)

	res, err := svc.ListMeters(ctx, MeterQuery{MPAN: "1200023305967", MeterType: "S"}, 0, 0)

	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Standard", res.Items[0].MeterTypeName)
	m.meters.AssertExpectations(t)
}

func TestMeterDataService_GetMeter(t *testing.T) {
	ctx := context.Background()

	t.Run("fills type label", func(t *testing.T) {
		svc, m := newDataService(false)
		m.meters.On("FindByID", ctx, int64(3)).
			Return(&model.MeterDetail{Meter: model.Meter{ID: 3, MeterType: "D"}}, nil)

		d, err := svc.GetMeter(ctx, 3)

		require.NoError(t, err)
		assert.Equal(t, model.MeterTypeLabel("D"), d.MeterTypeName)
	})

	t.Run("not found", func(t *testing.T) {
		svc, m := newDataService(false)
		m.meters.On("FindByID", ctx, int64(9)).Return(nil, sql.ErrNoRows)

		_, err := svc.GetMeter(ctx, 9)

		assert.ErrorIs(t, err, ErrMeterNotFound)
	})
}

func TestMeterDataService_ListReadings(t *testing.T) {
	ctx := context.Background()
	svc, m := newDataService(false)

	from := time.Date(2016, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2016, 3, 1, 0, 0, 0, 0, time.UTC)

	// The service translates its query into the repository filter as-is
	// and clamps oversized pages.
	m.readings.On("List", ctx, repository.ReadingFilter{
		MPAN:        "1200023305967",
		RegisterID:  "S",
		ReadingType: "ACTUAL",
		DateFrom:    from,
		DateTo:      to,
	}, repository.PageQuery{Limit: 100, Offset: 0}).
		Return(&repository.PageResult[model.ReadingDetail]{
			Items: []model.ReadingDetail{{Reading: model.Reading{ID: 42, ReadingType: "ACTUAL"}}},
			Total: 1,
		}, nil)

	res, err := svc.ListReadings(ctx, ReadingQuery{
		MPAN:        "1200023305967",
		RegisterID:  "S",
		ReadingType: "ACTUAL",
		DateFrom:    from,
		DateTo:      to,
	}, 500, -3)

	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)
	assert.Equal(t, "Actual", res.Items[0].ReadingTypeName)
	m.readings.AssertExpectations(t)
}

func TestMeterDataService_GetReading(t *testing.T) {
	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		svc, m := newDataService(false)
		m.readings.On("FindByID", ctx, int64(9)).Return(nil, sql.ErrNoRows)

		_, err := svc.GetReading(ctx, 9)

		assert.ErrorIs(t, err, ErrReadingNotFound)
	})

	t.Run("repository error passes through", func(t *testing.T) {
		svc, m := newDataService(false)
		m.readings.On("FindByID", ctx, int64(9)).Return(nil, errors.New("boom"))

		_, err := svc.GetReading(ctx, 9)

		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrReadingNotFound)
	})
}

func TestMeterDataService_GetMeterPoint(t *testing.T) {
	ctx := context.Background()

	t.Run("found with meters", func(t *testing.T) {
		svc, m := newDataService(false)
		m.meterPoints.On("FindByID", ctx, int64(7)).
			Return(&model.MeterPointDetail{
				MeterPoint: model.MeterPoint{ID: 7, MPAN: "1200023305967"},
				MeterCount: 1,
				Meters:     []model.Meter{{ID: 3, SerialNumber: "F75A 00802"}},
			}, nil)

		d, err := svc.GetMeterPoint(ctx, 7)

		require.NoError(t, err)
		assert.Len(t, d.Meters, 1)
	})

	t.Run("not found", func(t *testing.T) {
		svc, m := newDataService(false)
		m.meterPoints.On("FindByID", ctx, int64(1)).Return(nil, sql.ErrNoRows)

		_, err := svc.GetMeterPoint(ctx, 1)

		assert.ErrorIs(t, err, ErrMeterPointNotFound)
	})
}

func TestMeterDataService_Summary(t *testing.T) {
	ctx := context.Background()
	svc, m := newDataService(false)

	m.readings.On("Summary", ctx).Return(&model.ReadingsSummary{TotalReadings: 35}, nil)

	s, err := svc.Summary(ctx)

	require.NoError(t, err)
	assert.Equal(t, int64(35), s.TotalReadings)
}

func TestMeterDataService_ClearData(t *testing.T) {
	ctx := context.Background()
	svc, m := newDataService(false)

	m.maintenance.On("ClearAll", ctx).
		Return(&model.ClearCounts{Readings: 35, Meters: 12, MeterPoints: 11, FlowFiles: 1}, nil)

	counts, err := svc.ClearData(ctx)

	require.NoError(t, err)
	assert.Equal(t, int64(35), counts.Readings)
	assert.Equal(t, int64(1), counts.FlowFiles)
	m.maintenance.AssertExpectations(t)
}

func TestMeterDataService_ListFlowFiles_DefaultsPaging(t *testing.T) {
	ctx := context.Background()
	svc, m := newDataService(false)

	m.flowFiles.On("List", ctx, repository.PageQuery{Limit: 20, Offset: 0}).
		Return(&repository.PageResult[model.FlowFile]{Items: []model.FlowFile{}, Total: 0}, nil)

	res, err := svc.ListFlowFiles(ctx, -1, -1)

	require.NoError(t, err)
	assert.Equal(t, 0, res.Total)
	m.flowFiles.AssertExpectations(t)
}
