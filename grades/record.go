package grades

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	ErrMissing = errors.New("missing value")
	ErrEmpty   = errors.New("no data in spreadsheet/range")
)

// Record is one student row: absences and the three component scores. Err is set
// (and the numeric fields are meaningless) when the row could not be parsed.
type Record struct {
	Fouls   int
	ScoreA  int
	ScoreB  int
	ScoreC  int
	Average float64
	Err     error
}

// ParseError identifies the row and column of a malformed worksheet value. Row is
// the 0-based index into the fetched rows.
type ParseError struct {
	Row    int
	Column string
	Value  any
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("row %d: invalid %s '%v' (%v)", e.Row+1, e.Column, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

var columns = []string{"fouls", "score A", "score B", "score C"}

func NewRecord(fouls, a, b, c int) Record {
	return Record{
		Fouls:   fouls,
		ScoreA:  a,
		ScoreB:  b,
		ScoreC:  c,
		Average: (float64(a) + float64(b) + float64(c)) / 3.0,
	}
}

// MakeRecords converts the worksheet rows to student records, one record per row and
// in the same order. Rows that cannot be parsed are kept in position with Err set and
// the returned error joins all the row errors.
func MakeRecords(rows [][]any) ([]Record, error) {
	records := make([]Record, 0, len(rows))
	errs := []error{}

	for i, row := range rows {
		record, err := ParseRow(i, row)
		if err != nil {
			record = Record{Err: err}
			errs = append(errs, err)
		}

		records = append(records, record)
	}

	return records, errors.Join(errs...)
}

// ParseRow parses a single (fouls, score A, score B, score C) row.
func ParseRow(index int, row []any) (Record, error) {
	values := [4]int{}

	for i, column := range columns {
		var v any
		if i < len(row) {
			v = row[i]
		}

		n, err := parseInt(v)
		if err != nil {
			return Record{}, &ParseError{Row: index, Column: column, Value: v, Err: err}
		}

		values[i] = n
	}

	return NewRecord(values[0], values[1], values[2], values[3]), nil
}

// parseInt accepts the formatted strings returned by the Sheets API as well as the
// JSON numbers returned for unformatted values. Decimals are truncated toward zero.
func parseInt(v any) (int, error) {
	var f float64

	switch value := v.(type) {
	case nil:
		return 0, ErrMissing

	case int:
		f = float64(value)

	case float64:
		f = value

	case string:
		s := strings.TrimSpace(value)
		if s == "" {
			return 0, ErrMissing
		}

		if i, err := strconv.ParseInt(s, 10, 32); err == nil {
			f = float64(i)
		} else if x, err := strconv.ParseFloat(s, 64); err == nil {
			f = x
		} else {
			return 0, fmt.Errorf("not a number")
		}

	default:
		return 0, fmt.Errorf("unsupported type %T", v)
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("not a number")
	}

	if f < 0 {
		return 0, fmt.Errorf("negative value")
	}

	if f > math.MaxInt32 {
		return 0, fmt.Errorf("value out of range")
	}

	return int(math.Trunc(f)), nil
}
