package model

import "time"

// FlowFile is the provenance record for one imported source file.
// Filename is the duplicate-detection key: a file is imported at most once
// under a given name. RecordCount is provisional at creation and finalized
// to the number of newly imported readings once the load commits.
type FlowFile struct {
	ID            int64     `json:"id"`
	Filename      string    `json:"filename"`
	FileReference string    `json:"file_reference"`
	ImportedAt    time.Time `json:"imported_at"`
	RecordCount   int       `json:"record_count"`
}

// FlowFileDetail pairs a flow file with the number of readings that
// reference it, for API detail responses.
type FlowFileDetail struct {
	FlowFile
	ReadingCount int64 `json:"reading_count"`
}
