package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Reading types. Flow imports always record ACTUAL; the other codes exist
// for data arriving through channels other than D0010 flows.
const (
	ReadingTypeActual    = "ACTUAL"
	ReadingTypeEstimated = "ESTIMATED"
	ReadingTypeCustomer  = "CUSTOMER"
	ReadingTypeWithdrawn = "WITHDRAWN"
)

var readingTypeLabels = map[string]string{
	ReadingTypeActual:    "Actual",
	ReadingTypeEstimated: "Estimated",
	ReadingTypeCustomer:  "Customer",
	ReadingTypeWithdrawn: "Withdrawn",
}

// ReadingTypeLabel returns the display name for a reading type code,
// falling back to the code itself.
func ReadingTypeLabel(code string) string {
	if label, ok := readingTypeLabels[code]; ok {
		return label
	}
	return code
}

var registerLabels = map[string]string{
	"S":  "Standard",
	"01": "Day",
	"02": "Night",
	"03": "Evening/Weekend",
	"A1": "Anytime",
	"TO": "Total",
	"DY": "Day",
	"NT": "Night",
	"WK": "Weekend",
	"OT": "Other",
}

// RegisterLabel returns the display name for a register id. Registers are
// stored as given; unknown ids come back unchanged.
func RegisterLabel(id string) string {
	if label, ok := registerLabels[id]; ok {
		return label
	}
	return id
}

// Reading is one measurement taken from a meter register.
// (MeterID, RegisterID, ReadingDate) is unique; a re-encountered triple is
// left untouched and keeps its original flow-file attribution.
type Reading struct {
	ID           int64           `json:"id"`
	MeterID      int64           `json:"meter_id"`
	FlowFileID   int64           `json:"flow_file_id"`
	RegisterID   string          `json:"register_id"`
	ReadingDate  time.Time       `json:"reading_date"`
	ReadingValue decimal.Decimal `json:"reading_value"`
	ReadingType  string          `json:"reading_type"`
	CreatedAt    time.Time       `json:"created_at"`
}

// Validate enforces the persistence-layer value invariant. The field
// validators accept any decimal shape; this is the authoritative gate for
// sign.
func (r *Reading) Validate() error {
	if r.ReadingValue.IsNegative() {
		return fmt.Errorf("reading value must not be negative: %s", r.ReadingValue)
	}
	return nil
}

// ReadingDetail flattens the meter, meter point, and flow-file context onto
// a reading for API responses.
type ReadingDetail struct {
	Reading
	MeterSerial     string `json:"meter_serial"`
	MPAN            string `json:"mpan"`
	ReadingTypeName string `json:"reading_type_name"`
	Filename        string `json:"filename"`
}
