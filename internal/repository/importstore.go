package repository

import (
	"context"

	"meterflow/internal/model"
)

// ImportStore is the persistence surface the loader needs: a duplicate
// check ahead of parsing, and a transaction for the load itself.
type ImportStore interface {
	// FlowFileExists reports whether a flow file with this exact filename
	// has already been imported.
	FlowFileExists(ctx context.Context, filename string) (bool, error)

	// Begin opens the transaction a single file is loaded in. Either the
	// whole file commits or nothing does.
	Begin(ctx context.Context) (ImportTx, error)
}

// ImportTx is one file's load transaction. Implementations enforce the
// uniqueness constraints on filename, MPAN, (meter point, serial), and
// (meter, register, reading date); the get-or-create calls resolve races
// on those constraints internally so the caller never sees a unique
// violation for them.
type ImportTx interface {
	// CreateFlowFile inserts the provenance row with its provisional
	// record count and fills in the generated ID and import timestamp.
	// A filename collision returns ErrDuplicateFlowFile.
	CreateFlowFile(ctx context.Context, ff *model.FlowFile) error

	// GetOrCreateMeterPoint returns the meter point for mpan, creating it
	// when absent. The MPAN shape is validated before any insert.
	GetOrCreateMeterPoint(ctx context.Context, mpan string) (*model.MeterPoint, error)

	// GetOrCreateMeter returns the meter for (meterPointID, serial),
	// creating it with meterType when absent. An existing meter keeps its
	// stored type.
	GetOrCreateMeter(ctx context.Context, meterPointID int64, serial, meterType string) (*model.Meter, error)

	// GetOrCreateReading inserts reading unless a row with the same
	// (meter, register, reading date) already exists. It reports whether a
	// new row was created; an existing row is left untouched, keeping its
	// original value and flow-file attribution.
	GetOrCreateReading(ctx context.Context, reading *model.Reading) (created bool, err error)

	// FinalizeFlowFile sets the flow file's record count once every
	// candidate has been processed.
	FinalizeFlowFile(ctx context.Context, flowFileID int64, recordCount int) error

	Commit() error
	Rollback() error
}
