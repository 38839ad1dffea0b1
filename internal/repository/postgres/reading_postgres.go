package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"meterflow/internal/model"
	"meterflow/internal/repository"
)

// ReadingPostgres is the PostgreSQL implementation of
// repository.ReadingRepository.
type ReadingPostgres struct {
	db *sql.DB
}

// NewReadingPostgres creates a new ReadingPostgres repository.
func NewReadingPostgres(db *sql.DB) *ReadingPostgres {
	return &ReadingPostgres{db: db}
}

var _ repository.ReadingRepository = (*ReadingPostgres)(nil)

const readingJoins = `
		FROM readings rd
		JOIN meters m ON m.id = rd.meter_id
		JOIN meter_points mp ON mp.id = m.meter_point_id
		JOIN flow_files ff ON ff.id = rd.flow_file_id`

func readingConds(f repository.ReadingFilter) (string, []any) {
	var conds []string
	var args []any
	add := func(expr string, val any) {
		args = append(args, val)
		conds = append(conds, fmt.Sprintf(expr, len(args)))
	}

	if f.MeterID != 0 {
		add("rd.meter_id = $%d", f.MeterID)
	}
	if f.MeterPointID != 0 {
		add("m.meter_point_id = $%d", f.MeterPointID)
	}
	if f.MPAN != "" {
		add("mp.mpan = $%d", f.MPAN)
	}
	if f.MeterSerial != "" {
		add("m.serial_number = $%d", f.MeterSerial)
	}
	if f.RegisterID != "" {
		add("rd.register_id = $%d", f.RegisterID)
	}
	if f.ReadingType != "" {
		add("rd.reading_type = $%d", f.ReadingType)
	}
	if !f.DateFrom.IsZero() {
		add("rd.reading_date >= $%d", f.DateFrom)
	}
	if !f.DateTo.IsZero() {
		add("rd.reading_date < $%d", f.DateTo)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// List returns readings matching f, newest reading date first, with meter,
// meter point, and flow-file context attached.
func (r *ReadingPostgres) List(ctx context.Context, f repository.ReadingFilter, pq repository.PageQuery) (*repository.PageResult[model.ReadingDetail], error) {
	where, args := readingConds(f)

	qCount := `SELECT COUNT(*)` + readingJoins + where
	var total int
	if err := r.db.QueryRowContext(ctx, qCount, args...).Scan(&total); err != nil {
		return nil, err
	}

	qList := `
		SELECT rd.id, rd.meter_id, rd.flow_file_id, rd.register_id, rd.reading_date,
		       rd.reading_value, rd.reading_type, rd.created_at,
		       m.serial_number, mp.mpan, ff.filename` +
		readingJoins + where + `
		ORDER BY rd.reading_date DESC, rd.id DESC
		LIMIT $` + fmt.Sprint(len(args)+1) + ` OFFSET $` + fmt.Sprint(len(args)+2)

	rows, err := r.db.QueryContext(ctx, qList, append(args, pq.Limit, pq.Offset)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.ReadingDetail, 0)
	for rows.Next() {
		var d model.ReadingDetail
		if err := rows.Scan(
			&d.ID,
			&d.MeterID,
			&d.FlowFileID,
			&d.RegisterID,
			&d.ReadingDate,
			&d.ReadingValue,
			&d.ReadingType,
			&d.CreatedAt,
			&d.MeterSerial,
			&d.MPAN,
			&d.Filename,
		); err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.ReadingDetail]{Items: items, Total: total}, nil
}

// FindByID fetches one reading with its full context.
func (r *ReadingPostgres) FindByID(ctx context.Context, id int64) (*model.ReadingDetail, error) {
	q := `
		SELECT rd.id, rd.meter_id, rd.flow_file_id, rd.register_id, rd.reading_date,
		       rd.reading_value, rd.reading_type, rd.created_at,
		       m.serial_number, mp.mpan, ff.filename` +
		readingJoins + `
		WHERE rd.id = $1`

	var d model.ReadingDetail
	if err := r.db.QueryRowContext(ctx, q, id).Scan(
		&d.ID,
		&d.MeterID,
		&d.FlowFileID,
		&d.RegisterID,
		&d.ReadingDate,
		&d.ReadingValue,
		&d.ReadingType,
		&d.CreatedAt,
		&d.MeterSerial,
		&d.MPAN,
		&d.Filename,
	); err != nil {
		return nil, err
	}
	return &d, nil
}

// Summary aggregates whole-store totals, the reading date range, and the
// per-type breakdown.
func (r *ReadingPostgres) Summary(ctx context.Context) (*model.ReadingsSummary, error) {
	const qTotals = `
		SELECT
			(SELECT COUNT(*) FROM readings)     AS total_readings,
			(SELECT COUNT(*) FROM meter_points) AS total_meter_points,
			(SELECT COUNT(*) FROM meters)       AS total_meters,
			(SELECT COUNT(*) FROM flow_files)   AS total_flow_files,
			(SELECT MIN(reading_date) FROM readings) AS earliest,
			(SELECT MAX(reading_date) FROM readings) AS latest
	`
	s := &model.ReadingsSummary{ReadingTypes: map[string]int64{}}
	var earliest, latest sql.NullTime
	if err := r.db.QueryRowContext(ctx, qTotals).Scan(
		&s.TotalReadings,
		&s.TotalMeterPoints,
		&s.TotalMeters,
		&s.TotalFlowFiles,
		&earliest,
		&latest,
	); err != nil {
		return nil, err
	}
	if earliest.Valid {
		s.EarliestReading = &earliest.Time
	}
	if latest.Valid {
		s.LatestReading = &latest.Time
	}

	const qTypes = `
		SELECT reading_type, COUNT(*)
		FROM readings
		GROUP BY reading_type
		ORDER BY reading_type
	`
	rows, err := r.db.QueryContext(ctx, qTypes)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var typ string
		var count int64
		if err := rows.Scan(&typ, &count); err != nil {
			return nil, err
		}
		s.ReadingTypes[typ] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return s, nil
}
