package postgres

import (
	"context"
	"database/sql"

	"meterflow/internal/model"
	"meterflow/internal/repository"
)

// MeterPointPostgres is the PostgreSQL implementation of
// repository.MeterPointRepository.
type MeterPointPostgres struct {
	db *sql.DB
}

// NewMeterPointPostgres creates a new MeterPointPostgres repository.
func NewMeterPointPostgres(db *sql.DB) *MeterPointPostgres {
	return &MeterPointPostgres{db: db}
}

var _ repository.MeterPointRepository = (*MeterPointPostgres)(nil)

// List returns meter points ordered by MPAN with aggregate counts.
func (r *MeterPointPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.MeterPointDetail], error) {
	const qCount = `SELECT COUNT(*) FROM meter_points`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT mp.id, mp.mpan, mp.created_at, mp.updated_at,
		       COUNT(DISTINCT m.id) AS meter_count,
		       COUNT(rd.id)         AS reading_count
		FROM meter_points mp
		LEFT JOIN meters m ON m.meter_point_id = mp.id
		LEFT JOIN readings rd ON rd.meter_id = m.id
		GROUP BY mp.id
		ORDER BY mp.mpan
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.MeterPointDetail, 0)
	for rows.Next() {
		var d model.MeterPointDetail
		if err := rows.Scan(
			&d.ID,
			&d.MPAN,
			&d.CreatedAt,
			&d.UpdatedAt,
			&d.MeterCount,
			&d.ReadingCount,
		); err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.MeterPointDetail]{Items: items, Total: total}, nil
}

// FindByID fetches one meter point with counts and its meters.
func (r *MeterPointPostgres) FindByID(ctx context.Context, id int64) (*model.MeterPointDetail, error) {
	const q = `
		SELECT mp.id, mp.mpan, mp.created_at, mp.updated_at,
		       COUNT(DISTINCT m.id) AS meter_count,
		       COUNT(rd.id)         AS reading_count
		FROM meter_points mp
		LEFT JOIN meters m ON m.meter_point_id = mp.id
		LEFT JOIN readings rd ON rd.meter_id = m.id
		WHERE mp.id = $1
		GROUP BY mp.id
	`
	var d model.MeterPointDetail
	if err := r.db.QueryRowContext(ctx, q, id).Scan(
		&d.ID,
		&d.MPAN,
		&d.CreatedAt,
		&d.UpdatedAt,
		&d.MeterCount,
		&d.ReadingCount,
	); err != nil {
		return nil, err
	}

	const qMeters = `
		SELECT id, meter_point_id, serial_number, meter_type, created_at, updated_at
		FROM meters
		WHERE meter_point_id = $1
		ORDER BY serial_number
	`
	rows, err := r.db.QueryContext(ctx, qMeters, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var m model.Meter
		if err := rows.Scan(
			&m.ID,
			&m.MeterPointID,
			&m.SerialNumber,
			&m.MeterType,
			&m.CreatedAt,
			&m.UpdatedAt,
		); err != nil {
			return nil, err
		}
		d.Meters = append(d.Meters, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &d, nil
}
