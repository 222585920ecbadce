package keyword

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Competition is the coarse auction competition tier of a keyword
type Competition string

const (
	CompetitionLow    Competition = "low"
	CompetitionMedium Competition = "medium"
	CompetitionHigh   Competition = "high"
)

// Title returns the capitalised tier name used in CSV exports
func (c Competition) Title() string {
	if c == "" {
		return ""
	}
	return strings.ToUpper(string(c[:1])) + string(c[1:])
}

// Record holds the metrics of a single keyword
type Record struct {
	Keyword     string      `json:"keyword" yaml:"keyword" validate:"required"`
	Volume      int         `json:"volume" yaml:"volume" validate:"min=0"`
	CPC         float64     `json:"cpc" yaml:"cpc" validate:"min=0"`
	Competition Competition `json:"competition" yaml:"competition" validate:"oneof=low medium high"`
}

// Table is an ordered, read-only set of keyword records.
// The zero value is an empty table.
type Table struct {
	records []Record
}

var validate = validator.New()

// ValidationError reports a record that cannot be part of a table
type ValidationError struct {
	Index   int
	Keyword string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("keyword %d (%q): %s", e.Index, e.Keyword, e.Message)
}

// NewTable validates records and returns a table holding a private copy of them.
// Keywords must be unique, volume and cpc must not be negative.
func NewTable(records []Record) (Table, error) {
	seen := make(map[string]bool, len(records))
	copied := make([]Record, len(records))

	for i, r := range records {
		if err := validate.Struct(r); err != nil {
			return Table{}, &ValidationError{Index: i, Keyword: r.Keyword, Message: describe(err)}
		}
		if seen[r.Keyword] {
			return Table{}, &ValidationError{Index: i, Keyword: r.Keyword, Message: "duplicate keyword"}
		}
		seen[r.Keyword] = true
		copied[i] = r
	}

	return Table{records: copied}, nil
}

// MustTable is NewTable for compiled-in data; it panics on invalid records
func MustTable(records []Record) Table {
	t, err := NewTable(records)
	if err != nil {
		panic(err)
	}
	return t
}

// Records returns a copy of the records in table order
func (t Table) Records() []Record {
	out := make([]Record, len(t.records))
	copy(out, t.records)
	return out
}

// Len returns the number of records
func (t Table) Len() int {
	return len(t.records)
}

// Lookup finds a record by its exact keyword text
func (t Table) Lookup(text string) (Record, bool) {
	for _, r := range t.records {
		if r.Keyword == text {
			return r, true
		}
	}
	return Record{}, false
}

// Extend returns a new table with extra records appended after the existing ones
func (t Table) Extend(extra []Record) (Table, error) {
	all := make([]Record, 0, len(t.records)+len(extra))
	all = append(all, t.records...)
	all = append(all, extra...)
	return NewTable(all)
}

func describe(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err.Error()
	}

	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required":
		return strings.ToLower(fe.Field()) + " is required"
	case "min":
		return strings.ToLower(fe.Field()) + " must not be negative"
	case "oneof":
		return fmt.Sprintf("competition must be one of low, medium, high (got %q)", fe.Value())
	default:
		return fmt.Sprintf("%s failed %s", strings.ToLower(fe.Field()), fe.Tag())
	}
}
