// Delimited record encoding: field quoting, quote-aware splitting, and
// secondary-delimiter lists.

package csvdb

import (
	"log/slog"
	"strconv"
	"strings"
	"time"
)

const (
	fieldSep = ","
	listSep  = ";"
	quote    = '"'

	// DateLayout is the wire format of date-only columns.
	DateLayout = "2006-01-02"
	// DateTimeLayout is the wire format of timestamp columns.
	DateTimeLayout = "2006-01-02T15:04:05"
)

// EscapeField quotes s when it contains the field delimiter, the quote
// character or a newline, doubling interior quotes. Other values pass
// through untouched.
func EscapeField(s string) string {
	if strings.ContainsAny(s, fieldSep+string(quote)+"\n") {
		return QuoteField(s)
	}
	return s
}

// QuoteField unconditionally wraps s in quotes, doubling interior quotes.
func QuoteField(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte(quote)
	for i := 0; i < len(s); i++ {
		if s[i] == quote {
			b.WriteByte(quote)
		}
		b.WriteByte(s[i])
	}
	b.WriteByte(quote)
	return b.String()
}

// SplitRecord splits one record line on delimiters that fall outside quoted
// regions, then strips one layer of quoting from each field and un-doubles
// interior quotes.
func SplitRecord(line string) []string {
	var fields []string
	start := 0
	inQuotes := false
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case quote:
			inQuotes = !inQuotes
		case fieldSep[0]:
			if !inQuotes {
				fields = append(fields, unquoteField(line[start:i]))
				start = i + 1
			}
		}
	}
	return append(fields, unquoteField(line[start:]))
}

func unquoteField(s string) string {
	if len(s) >= 2 && s[0] == quote && s[len(s)-1] == quote {
		return strings.ReplaceAll(s[1:len(s)-1], `""`, `"`)
	}
	return s
}

// JoinList flattens a multi-valued field into one secondary-delimited string.
// The result still needs quoting as a unit; [Record.AddList] does both.
func JoinList(elems []string) string {
	return strings.Join(elems, listSep)
}

// SplitList splits a secondary-delimited field back into its elements.
// Empty input and empty elements yield nothing.
func SplitList(s string) []string {
	if s == "" {
		return nil
	}
	var elems []string
	for part := range strings.SplitSeq(s, listSep) {
		if part != "" {
			elems = append(elems, part)
		}
	}
	return elems
}

// Record accumulates one entity's fields in column order and renders them as
// a single encoded line.
type Record struct {
	fields []string
}

// Add appends one scalar field, quoting it as needed.
func (r *Record) Add(s string) {
	r.fields = append(r.fields, EscapeField(s))
}

// AddList appends a multi-valued field: elements joined with the secondary
// delimiter and quoted as a unit. An empty list encodes as an empty column.
func (r *Record) AddList(elems []string) {
	if len(elems) == 0 {
		r.fields = append(r.fields, "")
		return
	}
	r.fields = append(r.fields, QuoteField(JoinList(elems)))
}

// AddInt appends an integer field.
func (r *Record) AddInt(v int) {
	r.fields = append(r.fields, strconv.Itoa(v))
}

// AddFloat appends a monetary/measure field with two decimals.
func (r *Record) AddFloat(v float64) {
	r.fields = append(r.fields, strconv.FormatFloat(v, 'f', 2, 64))
}

// AddBool appends a boolean field as "true"/"false".
func (r *Record) AddBool(v bool) {
	r.fields = append(r.fields, strconv.FormatBool(v))
}

// AddDate appends a date-only field; the zero time encodes as empty.
func (r *Record) AddDate(t time.Time) {
	if t.IsZero() {
		r.fields = append(r.fields, "")
		return
	}
	r.fields = append(r.fields, t.Format(DateLayout))
}

// AddDateTime appends a timestamp field; the zero time encodes as empty.
func (r *Record) AddDateTime(t time.Time) {
	if t.IsZero() {
		r.fields = append(r.fields, "")
		return
	}
	r.fields = append(r.fields, t.Format(DateTimeLayout))
}

// String renders the accumulated fields as one record line.
func (r *Record) String() string {
	return strings.Join(r.fields, fieldSep)
}

// Fields is a forward cursor over the decoded columns of one record.
//
// Accessors past the last column return the type's default instead of
// failing, so records written by an older, shorter schema still load. A
// column that is present but unparseable logs a warning and likewise falls
// back to the default. Only a missing identifier column is a hard failure,
// and that check belongs to the entity decoder.
type Fields struct {
	cols []string
	next int
	log  *slog.Logger
}

// NewFields wraps decoded columns. A nil logger falls back to slog.Default.
func NewFields(cols []string, log *slog.Logger) *Fields {
	if log == nil {
		log = slog.Default()
	}
	return &Fields{cols: cols, log: log}
}

// Next returns the next column, or "" when exhausted.
func (f *Fields) Next() string {
	if f.next >= len(f.cols) {
		return ""
	}
	s := f.cols[f.next]
	f.next++
	return s
}

// NextList returns the next column split on the secondary delimiter.
func (f *Fields) NextList() []string {
	return SplitList(f.Next())
}

// NextInt parses the next column as an integer; empty or malformed yields 0.
func (f *Fields) NextInt(name string) int {
	s := f.Next()
	if s == "" {
		return 0
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		f.log.Warn("unparseable integer column", "column", name, "value", s)
		return 0
	}
	return v
}

// NextFloat parses the next column as a float; empty or malformed yields 0.
func (f *Fields) NextFloat(name string) float64 {
	s := f.Next()
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		f.log.Warn("unparseable numeric column", "column", name, "value", s)
		return 0
	}
	return v
}

// NextBool parses the next column as a boolean; anything but "true" is false.
func (f *Fields) NextBool() bool {
	return strings.EqualFold(f.Next(), "true")
}

// NextDate parses the next column as a date; empty or malformed yields the
// zero time.
func (f *Fields) NextDate(name string) time.Time {
	return f.parseTime(name, DateLayout)
}

// NextDateTime parses the next column as a timestamp; empty or malformed
// yields the zero time.
func (f *Fields) NextDateTime(name string) time.Time {
	return f.parseTime(name, DateTimeLayout)
}

func (f *Fields) parseTime(name, layout string) time.Time {
	s := f.Next()
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		f.log.Warn("unparseable time column", "column", name, "value", s)
		return time.Time{}
	}
	return t
}
