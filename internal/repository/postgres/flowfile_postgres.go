package postgres

import (
	"context"
	"database/sql"

	"meterflow/internal/model"
	"meterflow/internal/repository"
)

// FlowFilePostgres is the PostgreSQL implementation of
// repository.FlowFileRepository.
type FlowFilePostgres struct {
	db *sql.DB
}

// NewFlowFilePostgres creates a new FlowFilePostgres repository.
func NewFlowFilePostgres(db *sql.DB) *FlowFilePostgres {
	return &FlowFilePostgres{db: db}
}

var _ repository.FlowFileRepository = (*FlowFilePostgres)(nil)

// List returns flow files using LIMIT/OFFSET pagination, newest import
// first, and a total count.
func (r *FlowFilePostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.FlowFile], error) {
	const qCount = `SELECT COUNT(*) FROM flow_files`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT id, filename, file_reference, imported_at, record_count
		FROM flow_files
		ORDER BY imported_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.FlowFile, 0)
	for rows.Next() {
		var ff model.FlowFile
		if err := rows.Scan(
			&ff.ID,
			&ff.Filename,
			&ff.FileReference,
			&ff.ImportedAt,
			&ff.RecordCount,
		); err != nil {
			return nil, err
		}
		items = append(items, ff)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.FlowFile]{Items: items, Total: total}, nil
}

// FindByID fetches one flow file with the number of readings attributed to
// it.
func (r *FlowFilePostgres) FindByID(ctx context.Context, id int64) (*model.FlowFileDetail, error) {
	const q = `
		SELECT f.id, f.filename, f.file_reference, f.imported_at, f.record_count,
		       COUNT(rd.id) AS reading_count
		FROM flow_files f
		LEFT JOIN readings rd ON rd.flow_file_id = f.id
		WHERE f.id = $1
		GROUP BY f.id
	`
	var d model.FlowFileDetail
	if err := r.db.QueryRowContext(ctx, q, id).Scan(
		&d.ID,
		&d.Filename,
		&d.FileReference,
		&d.ImportedAt,
		&d.RecordCount,
		&d.ReadingCount,
	); err != nil {
		return nil, err
	}
	return &d, nil
}
