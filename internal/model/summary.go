package model

import "time"

// ReadingsSummary is the aggregate view served by the summary endpoint.
// The date range pointers are nil while the store holds no readings.
type ReadingsSummary struct {
	TotalReadings    int64            `json:"total_readings"`
	TotalMeterPoints int64            `json:"total_meter_points"`
	TotalMeters      int64            `json:"total_meters"`
	TotalFlowFiles   int64            `json:"total_flow_files"`
	EarliestReading  *time.Time       `json:"earliest_reading"`
	LatestReading    *time.Time       `json:"latest_reading"`
	ReadingTypes     map[string]int64 `json:"reading_types"`
}

// ClearCounts reports how many rows a bulk clear removed per table.
type ClearCounts struct {
	Readings    int64 `json:"readings"`
	Meters      int64 `json:"meters"`
	MeterPoints int64 `json:"meter_points"`
	FlowFiles   int64 `json:"flow_files"`
}
