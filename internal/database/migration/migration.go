// Package migration creates the meter-reading schema on first start. The
// presence of the flow_files table is the sentinel; when it exists the
// whole migration is skipped.
package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_table_flow_files",
		SQL: `CREATE TABLE IF NOT EXISTS flow_files (
  id             BIGINT      GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
  filename       TEXT        NOT NULL UNIQUE,
  file_reference TEXT        NOT NULL DEFAULT '',
  imported_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
  record_count   INTEGER     NOT NULL DEFAULT 0
);`,
	},
	{
		Name: "create_table_meter_points",
		SQL: `CREATE TABLE IF NOT EXISTS meter_points (
  id         BIGINT      GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
  mpan       TEXT        NOT NULL UNIQUE CHECK (mpan ~ '^[0-9]{13}$'),
  created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_meters",
		SQL: `CREATE TABLE IF NOT EXISTS meters (
  id             BIGINT      GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
  meter_point_id BIGINT      NOT NULL REFERENCES meter_points (id) ON DELETE CASCADE,
  serial_number  TEXT        NOT NULL CHECK (btrim(serial_number) <> ''),
  meter_type     TEXT        NOT NULL DEFAULT 'S',
  created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
  UNIQUE (meter_point_id, serial_number)
);`,
	},
	{
		Name: "create_table_readings",
		SQL: `CREATE TABLE IF NOT EXISTS readings (
  id            BIGINT        GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
  meter_id      BIGINT        NOT NULL REFERENCES meters (id) ON DELETE CASCADE,
  flow_file_id  BIGINT        NOT NULL REFERENCES flow_files (id) ON DELETE CASCADE,
  register_id   TEXT          NOT NULL DEFAULT '',
  reading_date  TIMESTAMPTZ   NOT NULL,
  reading_value NUMERIC(12,3) NOT NULL CHECK (reading_value >= 0),
  reading_type  TEXT          NOT NULL DEFAULT 'ACTUAL',
  created_at    TIMESTAMPTZ   NOT NULL DEFAULT now(),
  UNIQUE (meter_id, register_id, reading_date)
);`,
	},
	{
		Name: "create_index_meters_meter_point_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_meters_meter_point_id ON meters (meter_point_id);`,
	},
	{
		Name: "create_index_readings_meter_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_readings_meter_id ON readings (meter_id);`,
	},
	{
		Name: "create_index_readings_flow_file_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_readings_flow_file_id ON readings (flow_file_id);`,
	},
	{
		Name: "create_index_readings_reading_date",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_readings_reading_date ON readings (reading_date);`,
	},
}

// EnsureMigrated checks whether the flow_files table exists and runs the
// schema migration when it does not.
func EnsureMigrated(ctx context.Context, db *sql.DB, logger zerolog.Logger) error {
	start := time.Now()

	var exists bool
	const sentinel = "SELECT to_regclass('public.flow_files') IS NOT NULL"
	if err := db.QueryRowContext(ctx, sentinel).Scan(&exists); err != nil {
		logger.Error().Err(err).Msg("failed to check sentinel table")
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		logger.Info().
			Dur("duration", time.Since(start)).
			Msg("schema already exists, skipping migration")
		return nil
	}

	logger.Info().Msg("creating meter-reading schema")

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			logger.Error().
				Err(err).
				Str("migration_step", step.Name).
				Msg("migration step failed")
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		logger.Debug().
			Str("migration_step", step.Name).
			Dur("duration", time.Since(stepStart)).
			Msg("migration step applied")
	}

	logger.Info().
		Dur("duration", time.Since(start)).
		Msg("schema migration complete")

	return nil
}
