// Package postgres implements the repository interfaces on database/sql
// with parameterized queries. No business logic lives here.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"meterflow/internal/model"
	"meterflow/internal/repository"
)

// ImportStorePostgres is the PostgreSQL implementation of
// repository.ImportStore.
type ImportStorePostgres struct {
	db *sql.DB
}

// NewImportStorePostgres creates a new ImportStorePostgres.
func NewImportStorePostgres(db *sql.DB) *ImportStorePostgres {
	return &ImportStorePostgres{db: db}
}

var _ repository.ImportStore = (*ImportStorePostgres)(nil)

// FlowFileExists checks the duplicate-detection key ahead of parsing.
func (s *ImportStorePostgres) FlowFileExists(ctx context.Context, filename string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM flow_files WHERE filename = $1)`
	var exists bool
	if err := s.db.QueryRowContext(ctx, q, filename).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// Begin opens the transaction one file is loaded in.
func (s *ImportStorePostgres) Begin(ctx context.Context) (repository.ImportTx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &importTx{tx: tx}, nil
}

// importTx implements repository.ImportTx on one sql.Tx. Get-or-create
// runs select-first; the insert path is guarded by a savepoint so that a
// unique-constraint race degrades to a re-select instead of poisoning the
// whole transaction, which Postgres otherwise aborts on any statement
// error.
type importTx struct {
	tx *sql.Tx
}

var _ repository.ImportTx = (*importTx)(nil)

func (t *importTx) Commit() error   { return t.tx.Commit() }
func (t *importTx) Rollback() error { return t.tx.Rollback() }

// CreateFlowFile inserts the provenance row. A unique violation here means
// a concurrent import of the same filename won the race past the
// pre-check; it surfaces as ErrDuplicateFlowFile, never as a plain
// database error.
func (t *importTx) CreateFlowFile(ctx context.Context, ff *model.FlowFile) error {
	const q = `
		INSERT INTO flow_files (filename, file_reference, record_count)
		VALUES ($1, $2, $3)
		RETURNING id, imported_at
	`
	err := t.tx.QueryRowContext(ctx, q, ff.Filename, ff.FileReference, ff.RecordCount).
		Scan(&ff.ID, &ff.ImportedAt)
	if IsUniqueViolation(err) {
		return fmt.Errorf("flow file %s: %w", ff.Filename, repository.ErrDuplicateFlowFile)
	}
	return err
}

// GetOrCreateMeterPoint returns the row for mpan, inserting it when
// absent. The MPAN shape is validated before the insert so no partial row
// is created for a bad value.
func (t *importTx) GetOrCreateMeterPoint(ctx context.Context, mpan string) (*model.MeterPoint, error) {
	const qSel = `
		SELECT id, mpan, created_at, updated_at
		FROM meter_points
		WHERE mpan = $1
	`
	var mp model.MeterPoint
	scan := func(row *sql.Row) error {
		return row.Scan(&mp.ID, &mp.MPAN, &mp.CreatedAt, &mp.UpdatedAt)
	}

	err := scan(t.tx.QueryRowContext(ctx, qSel, mpan))
	if err == nil {
		return &mp, nil
	}
	if !IsNoRowsError(err) {
		return nil, err
	}

	mp = model.MeterPoint{MPAN: mpan}
	if err := mp.Validate(); err != nil {
		return nil, err
	}

	const qIns = `
		INSERT INTO meter_points (mpan)
		VALUES ($1)
		RETURNING id, mpan, created_at, updated_at
	`
	err = t.insertOrReselect(ctx, "sp_meter_point",
		func() error { return scan(t.tx.QueryRowContext(ctx, qIns, mpan)) },
		func() error { return scan(t.tx.QueryRowContext(ctx, qSel, mpan)) },
	)
	if err != nil {
		return nil, err
	}
	return &mp, nil
}

// GetOrCreateMeter returns the meter for (meterPointID, serial), creating
// it with meterType when absent. An existing meter keeps its stored type;
// flows re-announcing a meter do not update it.
func (t *importTx) GetOrCreateMeter(ctx context.Context, meterPointID int64, serial, meterType string) (*model.Meter, error) {
	const qSel = `
		SELECT id, meter_point_id, serial_number, meter_type, created_at, updated_at
		FROM meters
		WHERE meter_point_id = $1 AND serial_number = $2
	`
	var m model.Meter
	scan := func(row *sql.Row) error {
		return row.Scan(&m.ID, &m.MeterPointID, &m.SerialNumber, &m.MeterType, &m.CreatedAt, &m.UpdatedAt)
	}

	err := scan(t.tx.QueryRowContext(ctx, qSel, meterPointID, serial))
	if err == nil {
		return &m, nil
	}
	if !IsNoRowsError(err) {
		return nil, err
	}

	m = model.Meter{MeterPointID: meterPointID, SerialNumber: serial, MeterType: meterType}
	if err := m.Validate(); err != nil {
		return nil, err
	}

	const qIns = `
		INSERT INTO meters (meter_point_id, serial_number, meter_type)
		VALUES ($1, $2, $3)
		RETURNING id, meter_point_id, serial_number, meter_type, created_at, updated_at
	`
	err = t.insertOrReselect(ctx, "sp_meter",
		func() error { return scan(t.tx.QueryRowContext(ctx, qIns, meterPointID, serial, meterType)) },
		func() error { return scan(t.tx.QueryRowContext(ctx, qSel, meterPointID, serial)) },
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// GetOrCreateReading inserts reading unless its (meter, register, reading
// date) triple exists. An existing row is left untouched: its value and
// flow-file attribution stay with the file that created it first.
func (t *importTx) GetOrCreateReading(ctx context.Context, reading *model.Reading) (bool, error) {
	const qSel = `
		SELECT id
		FROM readings
		WHERE meter_id = $1 AND register_id = $2 AND reading_date = $3
	`
	err := t.tx.QueryRowContext(ctx, qSel, reading.MeterID, reading.RegisterID, reading.ReadingDate).
		Scan(&reading.ID)
	if err == nil {
		return false, nil
	}
	if !IsNoRowsError(err) {
		return false, err
	}

	if err := reading.Validate(); err != nil {
		return false, err
	}

	const qIns = `
		INSERT INTO readings (meter_id, flow_file_id, register_id, reading_date, reading_value, reading_type)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	created := false
	err = t.insertOrReselect(ctx, "sp_reading",
		func() error {
			err := t.tx.QueryRowContext(ctx, qIns,
				reading.MeterID,
				reading.FlowFileID,
				reading.RegisterID,
				reading.ReadingDate,
				reading.ReadingValue,
				reading.ReadingType,
			).Scan(&reading.ID, &reading.CreatedAt)
			if err == nil {
				created = true
			}
			return err
		},
		func() error {
			return t.tx.QueryRowContext(ctx, qSel, reading.MeterID, reading.RegisterID, reading.ReadingDate).
				Scan(&reading.ID)
		},
	)
	if err != nil {
		return false, err
	}
	return created, nil
}

// FinalizeFlowFile records the number of newly imported readings.
func (t *importTx) FinalizeFlowFile(ctx context.Context, flowFileID int64, recordCount int) error {
	const q = `UPDATE flow_files SET record_count = $1 WHERE id = $2`
	_, err := t.tx.ExecContext(ctx, q, recordCount, flowFileID)
	return err
}

// insertOrReselect runs insert under a named savepoint. On a unique
// violation it rolls back to the savepoint and runs reselect; any other
// failure propagates unchanged.
func (t *importTx) insertOrReselect(ctx context.Context, name string, insert, reselect func() error) error {
	if _, err := t.tx.ExecContext(ctx, "SAVEPOINT "+name); err != nil {
		return err
	}
	err := insert()
	if err == nil {
		_, err = t.tx.ExecContext(ctx, "RELEASE SAVEPOINT "+name)
		return err
	}
	if !IsUniqueViolation(err) {
		return err
	}
	if _, rbErr := t.tx.ExecContext(ctx, "ROLLBACK TO SAVEPOINT "+name); rbErr != nil {
		return rbErr
	}
	return reselect()
}
