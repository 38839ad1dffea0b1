package d0010

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	// Flow timestamps must resolve Europe/London even on hosts without a
	// system zone database.
	_ "time/tzdata"

	"github.com/shopspring/decimal"
)

// Reading dates are UK local time, not UTC and not the process zone.
var londonTZ = mustLoadLondon()

func mustLoadLondon() *time.Location {
	loc, err := time.LoadLocation("Europe/London")
	if err != nil {
		panic(fmt.Sprintf("d0010: load Europe/London: %v", err))
	}
	return loc
}

// Location returns the zone flow timestamps are interpreted in.
func Location() *time.Location { return londonTZ }

const timestampLayout = "20060102150405"

// defaultMeterType is recorded when a 028 record omits the type field.
const defaultMeterType = "S"

var mpanPattern = regexp.MustCompile(`^\d{13}$`)

// ValidateMPAN trims the MPAN field and checks the 13-digit shape,
// returning the trimmed value.
func ValidateMPAN(field string) (string, error) {
	mpan := strings.TrimSpace(field)
	if !mpanPattern.MatchString(mpan) {
		return "", fmt.Errorf("invalid MPAN format: %s (must be 13 digits)", mpan)
	}
	return mpan, nil
}

// ParseTimestamp converts a YYYYMMDDHHMMSS field into Europe/London time.
// A wrong length and a non-calendar value fail the same way.
func ParseTimestamp(field string) (time.Time, error) {
	s := strings.TrimSpace(field)
	if len(s) != 14 {
		return time.Time{}, fmt.Errorf("could not parse reading date: %s", s)
	}
	t, err := time.ParseInLocation(timestampLayout, s, londonTZ)
	if err != nil {
		return time.Time{}, fmt.Errorf("could not parse reading date: %s", s)
	}
	return t, nil
}

// ParseReadingValue converts the value field into an exact decimal. Sign
// is not checked here; the entity invariant is the authoritative gate for
// negative values.
func ParseReadingValue(field string) (decimal.Decimal, error) {
	s := strings.TrimSpace(field)
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid reading value: %s", s)
	}
	return v, nil
}

// NormalizeSerial trims the serial field; an empty serial is invalid.
func NormalizeSerial(field string) (string, error) {
	serial := strings.TrimSpace(field)
	if serial == "" {
		return "", fmt.Errorf("empty meter serial number")
	}
	return serial, nil
}

// NormalizeMeterType trims the type field, defaulting blanks to the
// standard code. Codes outside the documented set pass through unchanged.
func NormalizeMeterType(field string) string {
	mt := strings.TrimSpace(field)
	if mt == "" {
		return defaultMeterType
	}
	return mt
}
