package model

import (
	"fmt"
	"strings"
	"time"
)

// Meter type codes carried in field 2 of 028 records.
const (
	MeterTypeStandard   = "S"
	MeterTypeCheck      = "C"
	MeterTypeDumb       = "D"
	MeterTypePrepayment = "P"
	MeterTypeUnknown    = "U"
)

var meterTypeLabels = map[string]string{
	MeterTypeStandard:   "Standard",
	MeterTypeCheck:      "Check",
	MeterTypeDumb:       "Dumb",
	MeterTypePrepayment: "Prepayment",
	MeterTypeUnknown:    "Unknown",
}

// MeterTypeLabel returns the display name for a meter type code.
// Codes outside the documented set come back unchanged; flows occasionally
// carry types the documentation lags behind.
func MeterTypeLabel(code string) string {
	if label, ok := meterTypeLabels[code]; ok {
		return label
	}
	return code
}

// Meter is a physical meter installed under a meter point.
// (MeterPointID, SerialNumber) is unique; reimporting the same serial under
// the same point reuses the existing row and keeps its stored type.
type Meter struct {
	ID           int64     `json:"id"`
	MeterPointID int64     `json:"meter_point_id"`
	SerialNumber string    `json:"serial_number"`
	MeterType    string    `json:"meter_type"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Validate enforces the non-empty serial invariant.
func (m *Meter) Validate() error {
	if strings.TrimSpace(m.SerialNumber) == "" {
		return fmt.Errorf("meter serial number must not be empty")
	}
	return nil
}

// MeterDetail adds the owning MPAN and aggregate data to a meter for API
// responses.
type MeterDetail struct {
	Meter
	MPAN          string `json:"mpan"`
	MeterTypeName string `json:"meter_type_name"`
	ReadingCount  int64  `json:"reading_count"`
}
