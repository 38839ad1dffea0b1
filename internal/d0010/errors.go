package d0010

import (
	"errors"
	"fmt"
)

// ErrorKind classifies import pipeline failures. The zero value means "not
// a pipeline error".
type ErrorKind int

const (
	// KindFormat marks a file-level structural problem, such as a file
	// with no reading records at all. No line number applies.
	KindFormat ErrorKind = iota + 1
	// KindParse marks a single line that could not be decoded.
	KindParse
	// KindValidation marks a field that failed its semantic check. It
	// aborts the file exactly like a parse failure; only the message
	// differs.
	KindValidation
	// KindDuplicateFile marks a filename that has already been imported.
	KindDuplicateFile
	// KindPersistence marks a store rejection during the load transaction.
	KindPersistence
)

func (k ErrorKind) String() string {
	switch k {
	case KindFormat:
		return "format"
	case KindParse:
		return "parse"
	case KindValidation:
		return "validation"
	case KindDuplicateFile:
		return "duplicate_file"
	case KindPersistence:
		return "persistence"
	default:
		return "unknown"
	}
}

// Error is the single error type for the whole import pipeline. Kind
// discriminates the failure class; the remaining fields carry whatever
// context was known at the failure site. Zero-valued fields mean unknown.
type Error struct {
	Kind       ErrorKind
	Filename   string
	Line       int // 1-based, 0 when the failure is not line-scoped
	RecordType string
	Raw        string // offending line, untruncated
	Err        error  // underlying cause, if any

	msg string
}

func (e *Error) Error() string {
	msg := e.msg
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Filename != "" {
		msg += " | file: " + e.Filename
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(" | line: %d", e.Line)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// NewFormatError reports a file-level structural problem.
func NewFormatError(filename, msg string) *Error {
	return &Error{Kind: KindFormat, Filename: filename, msg: msg}
}

// NewParseError reports a line that could not be decoded. The raw line is
// truncated to 50 characters in the message but kept whole on the error.
func NewParseError(filename string, line int, recordType, raw string, cause error) *Error {
	return &Error{
		Kind:       KindParse,
		Filename:   filename,
		Line:       line,
		RecordType: recordType,
		Raw:        raw,
		Err:        cause,
		msg:        fmt.Sprintf("failed to parse %s record: %.50s...", recordType, raw),
	}
}

// NewValidationError reports a field that failed its semantic check on an
// otherwise well-shaped line.
func NewValidationError(filename string, line int, recordType, raw string, cause error) *Error {
	return &Error{
		Kind:       KindValidation,
		Filename:   filename,
		Line:       line,
		RecordType: recordType,
		Raw:        raw,
		Err:        cause,
		msg:        fmt.Sprintf("failed to parse %s record: %.50s...", recordType, raw),
	}
}

// NewDuplicateFileError reports a filename that has already been imported.
func NewDuplicateFileError(filename string) *Error {
	return &Error{
		Kind:     KindDuplicateFile,
		Filename: filename,
		msg:      "file has already been imported",
	}
}

// NewPersistenceError reports a store rejection while loading a parsed
// file.
func NewPersistenceError(filename string, cause error) *Error {
	return &Error{
		Kind:     KindPersistence,
		Filename: filename,
		Err:      cause,
		msg:      "database error",
	}
}

// KindOf returns the pipeline error kind carried by err, or 0 when err is
// not a pipeline error.
func KindOf(err error) ErrorKind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return 0
}

// IsDuplicateFile reports whether err is a duplicate-file rejection.
// Duplicates are reported per file and never stop a batch.
func IsDuplicateFile(err error) bool {
	return KindOf(err) == KindDuplicateFile
}

// IsInvalidFile reports whether err means the file content itself cannot
// be imported (structural, parse, or validation failure).
func IsInvalidFile(err error) bool {
	switch KindOf(err) {
	case KindFormat, KindParse, KindValidation:
		return true
	}
	return false
}
