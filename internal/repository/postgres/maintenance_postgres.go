package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"meterflow/internal/model"
	"meterflow/internal/repository"
)

// MaintenancePostgres implements repository.MaintenanceRepository.
type MaintenancePostgres struct {
	db *sql.DB
}

// NewMaintenancePostgres creates a new MaintenancePostgres repository.
func NewMaintenancePostgres(db *sql.DB) *MaintenancePostgres {
	return &MaintenancePostgres{db: db}
}

var _ repository.MaintenanceRepository = (*MaintenancePostgres)(nil)

// ClearAll deletes every imported row in one transaction, children first
// so the foreign keys never block.
func (r *MaintenancePostgres) ClearAll(ctx context.Context) (*model.ClearCounts, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	counts := &model.ClearCounts{}
	for _, step := range []struct {
		table string
		dst   *int64
	}{
		{"readings", &counts.Readings},
		{"meters", &counts.Meters},
		{"meter_points", &counts.MeterPoints},
		{"flow_files", &counts.FlowFiles},
	} {
		res, err := tx.ExecContext(ctx, "DELETE FROM "+step.table)
		if err != nil {
			return nil, fmt.Errorf("clear %s: %w", step.table, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return nil, err
		}
		*step.dst = n
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return counts, nil
}
