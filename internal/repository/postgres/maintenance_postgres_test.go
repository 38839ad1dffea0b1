package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestMaintenancePostgres_ClearAll(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes children before parents", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
		}
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM readings").WillReturnResult(sqlmock.NewResult(0, 35))
		mock.ExpectExec("DELETE FROM meters").WillReturnResult(sqlmock.NewResult(0, 12))
		mock.ExpectExec("DELETE FROM meter_points").WillReturnResult(sqlmock.NewResult(0, 11))
		mock.ExpectExec("DELETE FROM flow_files").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		counts, err := NewMaintenancePostgres(db).ClearAll(ctx)

		assert.NoError(t, err)
		assert.Equal(t, int64(35), counts.Readings)
		assert.Equal(t, int64(12), counts.Meters)
		assert.Equal(t, int64(11), counts.MeterPoints)
		assert.Equal(t, int64(1), counts.FlowFiles)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failure rolls back", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
		}
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM readings").WillReturnResult(sqlmock.NewResult(0, 35))
		mock.ExpectExec("DELETE FROM meters").WillReturnError(errors.New("deadlock detected"))
		mock.ExpectRollback()

		counts, err := NewMaintenancePostgres(db).ClearAll(ctx)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "clear meters")
		assert.Nil(t, counts)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
