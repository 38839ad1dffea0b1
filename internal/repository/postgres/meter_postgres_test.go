package postgres

import (
	"context"
	"testing"
	"time"

	"meterflow/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestMeterPostgres_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewMeterPostgres(db)
	ctx := context.Background()

	cols := []string{"id", "meter_point_id", "serial_number", "meter_type", "created_at", "updated_at", "mpan", "reading_count"}

	t.Run("unfiltered", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM meters m").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery("SELECT (.+) FROM meters m").
			WithArgs(20, 0).
			WillReturnRows(sqlmock.NewRows(cols).
				AddRow(int64(3), int64(7), "F75A 00802", "S", time.Now(), time.Now(), "1200023305967", int64(12)))

		res, err := repo.List(ctx, repository.MeterFilter{}, repository.PageQuery{Limit: 20, Offset: 0})

		assert.NoError(t, err)
		assert.Equal(t, 1, res.Total)
		assert.Len(t, res.Items, 1)
		assert.Equal(t, "1200023305967", res.Items[0].MPAN)
	})

	t.Run("filtered by mpan and type", func(t *testing.T) {
		f := repository.MeterFilter{MPAN: "1200023305967", MeterType: "S"}

		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM meters m").
			WithArgs("1200023305967", "S").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery("SELECT (.+) FROM meters m").
			WithArgs("1200023305967", "S", 20, 0).
			WillReturnRows(sqlmock.NewRows(cols).
				AddRow(int64(3), int64(7), "F75A 00802", "S", time.Now(), time.Now(), "1200023305967", int64(12)))

		res, err := repo.List(ctx, f, repository.PageQuery{Limit: 20, Offset: 0})

		assert.NoError(t, err)
		assert.Equal(t, 1, res.Total)
		assert.Len(t, res.Items, 1)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMeterPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewMeterPostgres(db)
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"id", "meter_point_id", "serial_number", "meter_type", "created_at", "updated_at", "mpan", "reading_count"}).
		AddRow(int64(3), int64(7), "F75A 00802", "D", time.Now(), time.Now(), "1200023305967", int64(12))

	mock.ExpectQuery("SELECT (.+) FROM meters m").
		WithArgs(int64(3)).
		WillReturnRows(rows)

	d, err := repo.FindByID(ctx, 3)

	assert.NoError(t, err)
	assert.NotNil(t, d)
	assert.Equal(t, "F75A 00802", d.SerialNumber)
	assert.Equal(t, "D", d.MeterType)
	assert.Equal(t, int64(12), d.ReadingCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}
