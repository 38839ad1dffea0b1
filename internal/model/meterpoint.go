package model

import (
	"fmt"
	"regexp"
	"time"
)

var mpanPattern = regexp.MustCompile(`^\d{13}$`)

// MeterPoint is one electricity supply point, identified by its MPAN.
// The MPAN is unique and immutable once the row exists.
type MeterPoint struct {
	ID        int64     `json:"id"`
	MPAN      string    `json:"mpan"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate checks the MPAN shape. It runs before any row referencing the
// meter point is written, so a bad value never leaves a partial record.
func (mp *MeterPoint) Validate() error {
	if !mpanPattern.MatchString(mp.MPAN) {
		return fmt.Errorf("invalid MPAN format: %s (must be 13 digits)", mp.MPAN)
	}
	return nil
}

// MeterPointDetail carries a meter point with aggregate counts and,
// on detail responses, its meters.
type MeterPointDetail struct {
	MeterPoint
	MeterCount   int64   `json:"meter_count"`
	ReadingCount int64   `json:"reading_count"`
	Meters       []Meter `json:"meters,omitempty"`
}
