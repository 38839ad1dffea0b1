package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"meterflow/internal/model"
	"meterflow/internal/repository"
)

// MeterPostgres is the PostgreSQL implementation of
// repository.MeterRepository.
type MeterPostgres struct {
	db *sql.DB
}

// NewMeterPostgres creates a new MeterPostgres repository.
func NewMeterPostgres(db *sql.DB) *MeterPostgres {
	return &MeterPostgres{db: db}
}

var _ repository.MeterRepository = (*MeterPostgres)(nil)

func meterConds(f repository.MeterFilter) (string, []any) {
	var conds []string
	var args []any
	if f.MPAN != "" {
		args = append(args, f.MPAN)
		conds = append(conds, fmt.Sprintf("mp.mpan = $%d", len(args)))
	}
	if f.MeterType != "" {
		args = append(args, f.MeterType)
		conds = append(conds, fmt.Sprintf("m.meter_type = $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// List returns meters matching f, ordered by MPAN then serial, with the
// owning MPAN and reading counts attached.
func (r *MeterPostgres) List(ctx context.Context, f repository.MeterFilter, pq repository.PageQuery) (*repository.PageResult[model.MeterDetail], error) {
	where, args := meterConds(f)

	qCount := `
		SELECT COUNT(*)
		FROM meters m
		JOIN meter_points mp ON mp.id = m.meter_point_id` + where
	var total int
	if err := r.db.QueryRowContext(ctx, qCount, args...).Scan(&total); err != nil {
		return nil, err
	}

	qList := `
		SELECT m.id, m.meter_point_id, m.serial_number, m.meter_type, m.created_at, m.updated_at,
		       mp.mpan,
		       COUNT(rd.id) AS reading_count
		FROM meters m
		JOIN meter_points mp ON mp.id = m.meter_point_id
		LEFT JOIN readings rd ON rd.meter_id = m.id` + where + `
		GROUP BY m.id, mp.mpan
		ORDER BY mp.mpan, m.serial_number
		LIMIT $` + fmt.Sprint(len(args)+1) + ` OFFSET $` + fmt.Sprint(len(args)+2)

	rows, err := r.db.QueryContext(ctx, qList, append(args, pq.Limit, pq.Offset)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.MeterDetail, 0)
	for rows.Next() {
		var d model.MeterDetail
		if err := rows.Scan(
			&d.ID,
			&d.MeterPointID,
			&d.SerialNumber,
			&d.MeterType,
			&d.CreatedAt,
			&d.UpdatedAt,
			&d.MPAN,
			&d.ReadingCount,
		); err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.MeterDetail]{Items: items, Total: total}, nil
}

// FindByID fetches one meter with its MPAN and reading count.
func (r *MeterPostgres) FindByID(ctx context.Context, id int64) (*model.MeterDetail, error) {
	const q = `
		SELECT m.id, m.meter_point_id, m.serial_number, m.meter_type, m.created_at, m.updated_at,
		       mp.mpan,
		       COUNT(rd.id) AS reading_count
		FROM meters m
		JOIN meter_points mp ON mp.id = m.meter_point_id
		LEFT JOIN readings rd ON rd.meter_id = m.id
		WHERE m.id = $1
		GROUP BY m.id, mp.mpan
	`
	var d model.MeterDetail
	if err := r.db.QueryRowContext(ctx, q, id).Scan(
		&d.ID,
		&d.MeterPointID,
		&d.SerialNumber,
		&d.MeterType,
		&d.CreatedAt,
		&d.UpdatedAt,
		&d.MPAN,
		&d.ReadingCount,
	); err != nil {
		return nil, err
	}
	return &d, nil
}
