package postgres

import (
	"context"
	"testing"
	"time"

	"meterflow/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var readingCols = []string{
	"id", "meter_id", "flow_file_id", "register_id", "reading_date",
	"reading_value", "reading_type", "created_at",
	"serial_number", "mpan", "filename",
}

func TestReadingPostgres_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewReadingPostgres(db)
	ctx := context.Background()
	readingDate := time.Date(2016, 2, 22, 0, 0, 0, 0, time.UTC)

	t.Run("unfiltered", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM readings rd").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery("SELECT (.+) FROM readings rd").
			WithArgs(20, 0).
			WillReturnRows(sqlmock.NewRows(readingCols).
				AddRow(int64(42), int64(3), int64(1), "S", readingDate, "56311.0", "ACTUAL", time.Now(),
					"F75A 00802", "1200023305967", "readings.uff"))

		res, err := repo.List(ctx, repository.ReadingFilter{}, repository.PageQuery{Limit: 20, Offset: 0})

		assert.NoError(t, err)
		assert.Equal(t, 1, res.Total)
		assert.Len(t, res.Items, 1)
		assert.Equal(t, "1200023305967", res.Items[0].MPAN)
		assert.True(t, decimal.RequireFromString("56311.0").Equal(res.Items[0].ReadingValue))
	})

	t.Run("filters become positional args in declaration order", func(t *testing.T) {
		from := time.Date(2016, 1, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2016, 3, 1, 0, 0, 0, 0, time.UTC)
		f := repository.ReadingFilter{
			MPAN:        "1200023305967",
			RegisterID:  "S",
			ReadingType: "ACTUAL",
			DateFrom:    from,
			DateTo:      to,
		}

		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM readings rd").
			WithArgs("1200023305967", "S", "ACTUAL", from, to).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery("SELECT (.+) FROM readings rd").
			WithArgs("1200023305967", "S", "ACTUAL", from, to, 20, 0).
			WillReturnRows(sqlmock.NewRows(readingCols))

		res, err := repo.List(ctx, f, repository.PageQuery{Limit: 20, Offset: 0})

		assert.NoError(t, err)
		assert.Equal(t, 0, res.Total)
		assert.NotNil(t, res.Items)
		assert.Len(t, res.Items, 0)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReadingPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewReadingPostgres(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT (.+) FROM readings rd").
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows(readingCols).
			AddRow(int64(42), int64(3), int64(1), "S", time.Now(), "56311.0", "ACTUAL", time.Now(),
				"F75A 00802", "1200023305967", "readings.uff"))

	d, err := repo.FindByID(ctx, 42)

	assert.NoError(t, err)
	assert.NotNil(t, d)
	assert.Equal(t, "readings.uff", d.Filename)
	assert.Equal(t, "F75A 00802", d.MeterSerial)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReadingPostgres_Summary(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewReadingPostgres(db)
	ctx := context.Background()

	t.Run("populated store", func(t *testing.T) {
		earliest := time.Date(2016, 2, 22, 0, 0, 0, 0, time.UTC)
		latest := time.Date(2016, 3, 4, 0, 0, 0, 0, time.UTC)

		totals := sqlmock.NewRows([]string{"total_readings", "total_meter_points", "total_meters", "total_flow_files", "earliest", "latest"}).
			AddRow(int64(35), int64(11), int64(12), int64(1), earliest, latest)
		mock.ExpectQuery("SELECT").WillReturnRows(totals)

		types := sqlmock.NewRows([]string{"reading_type", "count"}).
			AddRow("ACTUAL", int64(30)).
			AddRow("ESTIMATED", int64(5))
		mock.ExpectQuery("SELECT reading_type, COUNT\\(\\*\\) FROM readings").
			WillReturnRows(types)

		s, err := repo.Summary(ctx)

		assert.NoError(t, err)
		assert.Equal(t, int64(35), s.TotalReadings)
		assert.Equal(t, int64(11), s.TotalMeterPoints)
		assert.Equal(t, int64(12), s.TotalMeters)
		assert.Equal(t, int64(1), s.TotalFlowFiles)
		if assert.NotNil(t, s.EarliestReading) {
			assert.Equal(t, earliest, *s.EarliestReading)
		}
		if assert.NotNil(t, s.LatestReading) {
			assert.Equal(t, latest, *s.LatestReading)
		}
		assert.Equal(t, map[string]int64{"ACTUAL": 30, "ESTIMATED": 5}, s.ReadingTypes)
	})

	t.Run("empty store yields nil bounds", func(t *testing.T) {
		totals := sqlmock.NewRows([]string{"total_readings", "total_meter_points", "total_meters", "total_flow_files", "earliest", "latest"}).
			AddRow(int64(0), int64(0), int64(0), int64(0), nil, nil)
		mock.ExpectQuery("SELECT").WillReturnRows(totals)
		mock.ExpectQuery("SELECT reading_type, COUNT\\(\\*\\) FROM readings").
			WillReturnRows(sqlmock.NewRows([]string{"reading_type", "count"}))

		s, err := repo.Summary(ctx)

		assert.NoError(t, err)
		assert.Equal(t, int64(0), s.TotalReadings)
		assert.Nil(t, s.EarliestReading)
		assert.Nil(t, s.LatestReading)
		assert.Empty(t, s.ReadingTypes)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
