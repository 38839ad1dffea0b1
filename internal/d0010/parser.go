// Package d0010 implements the parsing side of the flow-file import
// pipeline: a record tokenizer, pure field validators, a context-carrying
// parser, and the error taxonomy shared with the loader.
//
// D0010 is the UK electricity-industry flow conveying meter readings
// between market participants. Files are pipe-delimited, one record per
// line. Identity context set by 026 (meter point) and 028 (meter) records
// carries forward onto the 030 reading records that follow them.
package d0010

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Lines beyond this length indicate the input is not a flow file.
const maxLineBytes = 1 << 20

var (
	errNoReadingScope    = errors.New("reading record without preceding MPAN/meter data")
	errUnknownRecordType = errors.New("unrecognized record type")
)

// Header is the ZHV record's metadata.
type Header struct {
	FileReference string
	FlowReference string
}

// Trailer is the ZPT record's metadata. DeclaredCount is informational
// only; it is never reconciled against parsed or imported counts.
type Trailer struct {
	FileReference string
	DeclaredCount int
}

// Reading is a fully-contextualized reading candidate: the 030 fields plus
// the meter point and meter identity in scope when the record appeared.
type Reading struct {
	MPAN        string
	MeterSerial string
	MeterType   string
	RegisterID  string
	ReadingDate time.Time
	Value       decimal.Decimal
}

// File is the product of one parse pass over a flow file.
type File struct {
	Filename string
	Header   *Header
	Readings []Reading
	Trailer  *Trailer
}

// FileReference returns the header's file reference, or "" when the file
// carried no header record.
func (f *File) FileReference() string {
	if f.Header == nil {
		return ""
	}
	return f.Header.FileReference
}

// scope is the carried-forward parse state: the identity established by
// the most recent 026 and 028 records. A 030 record is invalid until both
// are set.
type scope struct {
	mpan      string
	serial    string
	meterType string
}

func (s scope) ready() bool { return s.mpan != "" && s.serial != "" }

// ParseFile opens path and parses it. The filename recorded on the result,
// which duplicate detection keys on, is the path's base name.
func ParseFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open flow file: %w", err)
	}
	defer f.Close()
	return Parse(f, filepath.Base(path))
}

// Parse consumes r line by line, strictly in order with no lookahead, and
// returns the parsed file. The first line-level failure aborts the parse.
// A file that yields no reading candidates is invalid even when every line
// parsed cleanly.
func Parse(r io.Reader, filename string) (*File, error) {
	file := &File{Filename: filename}
	var sc scope

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		raw := strings.TrimSpace(scanner.Text())
		rec, ok := SplitRecord(raw)
		if !ok {
			continue
		}
		next, err := file.apply(rec, sc, raw, lineNum)
		if err != nil {
			return nil, err
		}
		sc = next
	}
	if err := scanner.Err(); err != nil {
		return nil, NewFormatError(filename, fmt.Sprintf("failed to read flow file: %v", err))
	}

	if len(file.Readings) == 0 {
		return nil, NewFormatError(filename, "no readings found in file")
	}
	return file, nil
}

// apply folds one record into the file under the current scope and returns
// the scope for the next record.
func (f *File) apply(rec Record, sc scope, raw string, line int) (scope, error) {
	switch rec.Type {
	case TagHeader:
		f.Header = &Header{
			FileReference: rec.Field(0),
			FlowReference: rec.Field(1),
		}
		return sc, nil

	case TagMeterPoint:
		mpan, err := ValidateMPAN(rec.Field(0))
		if err != nil {
			return sc, NewValidationError(f.Filename, line, rec.Type, raw, err)
		}
		// A new meter point clears any meter context in scope.
		return scope{mpan: mpan}, nil

	case TagMeter:
		serial, err := NormalizeSerial(rec.Field(0))
		if err != nil {
			return sc, NewValidationError(f.Filename, line, rec.Type, raw, err)
		}
		sc.serial = serial
		sc.meterType = NormalizeMeterType(rec.Field(1))
		return sc, nil

	case TagReading:
		if !sc.ready() {
			return sc, NewParseError(f.Filename, line, rec.Type, raw, errNoReadingScope)
		}
		reading, err := parseReading(rec, sc)
		if err != nil {
			return sc, NewValidationError(f.Filename, line, rec.Type, raw, err)
		}
		f.Readings = append(f.Readings, reading)
		return sc, nil

	case TagTrailer:
		f.Trailer = parseTrailer(rec)
		return sc, nil

	default:
		return sc, NewParseError(f.Filename, line, rec.Type, raw, errUnknownRecordType)
	}
}

func parseReading(rec Record, sc scope) (Reading, error) {
	date, err := ParseTimestamp(rec.Field(1))
	if err != nil {
		return Reading{}, err
	}
	value, err := ParseReadingValue(rec.Field(2))
	if err != nil {
		return Reading{}, err
	}
	return Reading{
		MPAN:        sc.mpan,
		MeterSerial: sc.serial,
		MeterType:   sc.meterType,
		RegisterID:  strings.TrimSpace(rec.Field(0)),
		ReadingDate: date,
		Value:       value,
	}, nil
}

func parseTrailer(rec Record) *Trailer {
	t := &Trailer{FileReference: rec.Field(0)}
	count := strings.TrimSpace(rec.Field(1))
	if digitsOnly(count) {
		if n, err := strconv.Atoi(count); err == nil {
			t.DeclaredCount = n
		}
	}
	return t
}

func digitsOnly(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
