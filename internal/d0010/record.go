package d0010

import "strings"

// Record tags defined by the flow. Any other tag on a non-blank line is a
// parse failure.
const (
	TagHeader     = "ZHV"
	TagMeterPoint = "026"
	TagMeter      = "028"
	TagReading    = "030"
	TagTrailer    = "ZPT"
)

// Record is one tokenized line: the record-type tag and the fields that
// follow it, in order.
type Record struct {
	Type   string
	Fields []string
}

// Field returns the i-th field after the tag, or "" when the record is too
// short. Flows routinely omit or pad trailing fields.
func (r Record) Field(i int) string {
	if i < 0 || i >= len(r.Fields) {
		return ""
	}
	return r.Fields[i]
}

// SplitRecord tokenizes one line. ok is false for lines that are blank
// after trimming; blank lines are legal filler anywhere in a file.
func SplitRecord(line string) (rec Record, ok bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Record{}, false
	}
	parts := strings.Split(line, "|")
	return Record{Type: parts[0], Fields: parts[1:]}, true
}
