package repository

import (
	"context"
	"time"

	"meterflow/internal/model"
)

// FlowFileRepository reads imported-file provenance.
type FlowFileRepository interface {
	// List returns flow files, newest import first.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.FlowFile], error)

	// FindByID returns one flow file with its reading count.
	FindByID(ctx context.Context, id int64) (*model.FlowFileDetail, error)
}

// MeterPointRepository reads meter points.
type MeterPointRepository interface {
	// List returns meter points ordered by MPAN, with meter and reading
	// counts.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.MeterPointDetail], error)

	// FindByID returns one meter point with counts and its meters.
	FindByID(ctx context.Context, id int64) (*model.MeterPointDetail, error)
}

// MeterFilter narrows meter listings. Zero values mean "any".
type MeterFilter struct {
	MPAN      string
	MeterType string
}

// MeterRepository reads meters.
type MeterRepository interface {
	List(ctx context.Context, f MeterFilter, pq PageQuery) (*PageResult[model.MeterDetail], error)
	FindByID(ctx context.Context, id int64) (*model.MeterDetail, error)
}

// ReadingFilter narrows reading listings. Zero values mean "any".
// DateFrom is an inclusive instant and DateTo an exclusive one; callers
// translating calendar dates are responsible for the day boundaries.
type ReadingFilter struct {
	MeterID      int64
	MeterPointID int64
	MPAN         string
	MeterSerial  string
	RegisterID   string
	ReadingType  string
	DateFrom     time.Time
	DateTo       time.Time
}

// ReadingRepository reads readings and their aggregates.
type ReadingRepository interface {
	// List returns readings matching f, newest reading date first.
	List(ctx context.Context, f ReadingFilter, pq PageQuery) (*PageResult[model.ReadingDetail], error)

	FindByID(ctx context.Context, id int64) (*model.ReadingDetail, error)

	// Summary returns whole-store aggregates for the dashboard.
	Summary(ctx context.Context) (*model.ReadingsSummary, error)
}

// MaintenanceRepository holds destructive whole-store operations. These
// are deliberately outside the import path, which never deletes anything.
type MaintenanceRepository interface {
	// ClearAll deletes every imported row, children first, in one
	// transaction.
	ClearAll(ctx context.Context) (*model.ClearCounts, error)
}
