package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"meterflow/internal/model"
	"meterflow/internal/repository"
	"meterflow/internal/storage"
)

var (
	ErrInvalidID          = errors.New("id must be a positive integer")
	ErrFlowFileNotFound   = errors.New("flow file not found")
	ErrMeterPointNotFound = errors.New("meter point not found")
	ErrMeterNotFound      = errors.New("meter not found")
	ErrReadingNotFound    = errors.New("reading not found")
	ErrArchiveDisabled    = errors.New("flow file archive is not enabled")
	ErrArchiveNotFound    = errors.New("archived copy not found")
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// FlowFileListResult is the service-level DTO for paginated flow files.
type FlowFileListResult struct {
	Items []model.FlowFile `json:"data"`
	Total int              `json:"total"`
}

// MeterPointListResult is the service-level DTO for paginated meter points.
type MeterPointListResult struct {
	Items []model.MeterPointDetail `json:"data"`
	Total int                      `json:"total"`
}

// MeterListResult is the service-level DTO for paginated meters.
type MeterListResult struct {
	Items []model.MeterDetail `json:"data"`
	Total int                 `json:"total"`
}

// ReadingListResult is the service-level DTO for paginated readings.
type ReadingListResult struct {
	Items []model.ReadingDetail `json:"data"`
	Total int                   `json:"total"`
}

// MeterQuery narrows a meter listing.
type MeterQuery struct {
	MPAN      string
	MeterType string
}

// ReadingQuery narrows a reading listing. DateFrom is inclusive, DateTo
// exclusive; zero values mean unfiltered.
type ReadingQuery struct {
	MeterID      int64
	MeterPointID int64
	MPAN         string
	MeterSerial  string
	RegisterID   string
	ReadingType  string
	DateFrom     time.Time
	DateTo       time.Time
}

// MeterDataService defines the read-side use cases over imported data,
// plus the destructive reset used by operators between test runs.
type MeterDataService interface {
	ListFlowFiles(ctx context.Context, limit, offset int) (*FlowFileListResult, error)
	GetFlowFile(ctx context.Context, id int64) (*model.FlowFileDetail, error)

	// DownloadFlowFile streams the archived original content of a flow
	// file.
	DownloadFlowFile(ctx context.Context, id int64) (io.ReadCloser, *model.FlowFileDetail, error)

	ListMeterPoints(ctx context.Context, limit, offset int) (*MeterPointListResult, error)
	GetMeterPoint(ctx context.Context, id int64) (*model.MeterPointDetail, error)

	ListMeters(ctx context.Context, q MeterQuery, limit, offset int) (*MeterListResult, error)
	GetMeter(ctx context.Context, id int64) (*model.MeterDetail, error)

	ListReadings(ctx context.Context, q ReadingQuery, limit, offset int) (*ReadingListResult, error)
	GetReading(ctx context.Context, id int64) (*model.ReadingDetail, error)
	Summary(ctx context.Context) (*model.ReadingsSummary, error)

	// ClearData deletes every imported row and reports how many went.
	ClearData(ctx context.Context) (*model.ClearCounts, error)
}

// MeterDataRepos bundles the repositories the read side is built on.
type MeterDataRepos struct {
	FlowFiles   repository.FlowFileRepository
	MeterPoints repository.MeterPointRepository
	Meters      repository.MeterRepository
	Readings    repository.ReadingRepository
	Maintenance repository.MaintenanceRepository
}

// meterDataService is a concrete implementation of MeterDataService.
type meterDataService struct {
	repos   MeterDataRepos
	archive storage.Archive
	logger  zerolog.Logger
}

// NewMeterDataService constructs a new MeterDataService. archive may be
// nil; downloading originals is then unavailable.
func NewMeterDataService(repos MeterDataRepos, archive storage.Archive, logger zerolog.Logger) MeterDataService {
	return &meterDataService{repos: repos, archive: archive, logger: logger}
}

func clampPage(limit, offset int) repository.PageQuery {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return repository.PageQuery{Limit: limit, Offset: offset}
}

func (s *meterDataService) ListFlowFiles(ctx context.Context, limit, offset int) (*FlowFileListResult, error) {
	res, err := s.repos.FlowFiles.List(ctx, clampPage(limit, offset))
	if err != nil {
		return nil, err
	}
	return &FlowFileListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *meterDataService) GetFlowFile(ctx context.Context, id int64) (*model.FlowFileDetail, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}
	d, err := s.repos.FlowFiles.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFlowFileNotFound
		}
		return nil, err
	}
	return d, nil
}

func (s *meterDataService) DownloadFlowFile(ctx context.Context, id int64) (io.ReadCloser, *model.FlowFileDetail, error) {
	d, err := s.GetFlowFile(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if s.archive == nil {
		return nil, nil, ErrArchiveDisabled
	}
	rc, _, err := s.archive.Open(ctx, d.Filename)
	if err != nil {
		s.logger.Debug().Err(err).Str("filename", d.Filename).Msg("archived flow file unavailable")
		return nil, nil, fmt.Errorf("%s: %w", d.Filename, ErrArchiveNotFound)
	}
	return rc, d, nil
}

func (s *meterDataService) ListMeterPoints(ctx context.Context, limit, offset int) (*MeterPointListResult, error) {
	res, err := s.repos.MeterPoints.List(ctx, clampPage(limit, offset))
	if err != nil {
		return nil, err
	}
	return &MeterPointListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *meterDataService) GetMeterPoint(ctx context.Context, id int64) (*model.MeterPointDetail, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}
	d, err := s.repos.MeterPoints.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMeterPointNotFound
		}
		return nil, err
	}
	return d, nil
}

func (s *meterDataService) ListMeters(ctx context.Context, q MeterQuery, limit, offset int) (*MeterListResult, error) {
	f := repository.MeterFilter{MPAN: q.MPAN, MeterType: q.MeterType}
	res, err := s.repos.Meters.List(ctx, f, clampPage(limit, offset))
	if err != nil {
		return nil, err
	}
	for i := range res.Items {
		res.Items[i].MeterTypeName = model.MeterTypeLabel(res.Items[i].MeterType)
	}
	return &MeterListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *meterDataService) GetMeter(ctx context.Context, id int64) (*model.MeterDetail, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}
	d, err := s.repos.Meters.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMeterNotFound
		}
		return nil, err
	}
	d.MeterTypeName = model.MeterTypeLabel(d.MeterType)
	return d, nil
}

func (s *meterDataService) ListReadings(ctx context.Context, q ReadingQuery, limit, offset int) (*ReadingListResult, error) {
	f := repository.ReadingFilter{
		MeterID:      q.MeterID,
		MeterPointID: q.MeterPointID,
		MPAN:         q.MPAN,
		MeterSerial:  q.MeterSerial,
		RegisterID:   q.RegisterID,
		ReadingType:  q.ReadingType,
		DateFrom:     q.DateFrom,
		DateTo:       q.DateTo,
	}
	res, err := s.repos.Readings.List(ctx, f, clampPage(limit, offset))
	if err != nil {
		return nil, err
	}
	for i := range res.Items {
		res.Items[i].ReadingTypeName = model.ReadingTypeLabel(res.Items[i].ReadingType)
	}
	return &ReadingListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *meterDataService) GetReading(ctx context.Context, id int64) (*model.ReadingDetail, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}
	d, err := s.repos.Readings.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReadingNotFound
		}
		return nil, err
	}
	d.ReadingTypeName = model.ReadingTypeLabel(d.ReadingType)
	return d, nil
}

func (s *meterDataService) Summary(ctx context.Context) (*model.ReadingsSummary, error) {
	return s.repos.Readings.Summary(ctx)
}

func (s *meterDataService) ClearData(ctx context.Context) (*model.ClearCounts, error) {
	counts, err := s.repos.Maintenance.ClearAll(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Warn().
		Int64("readings", counts.Readings).
		Int64("meters", counts.Meters).
		Int64("meter_points", counts.MeterPoints).
		Int64("flow_files", counts.FlowFiles).
		Msg("cleared all imported data")
	return counts, nil
}
