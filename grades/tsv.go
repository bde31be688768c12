package grades

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

var header = []string{"Fouls", "P1", "P2", "P3", "Average", "Situation", "Make-up"}

// MakeTSV writes the classified results as a tab separated file, one line per result
// in worksheet order.
func MakeTSV(f io.Writer, results []Result, labels Labels) error {
	w := csv.NewWriter(f)
	w.Comma = '\t'

	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range results {
		record := []string{"", "", "", "", "", "", ""}

		if r.Record.Err == nil {
			record[0] = fmt.Sprintf("%v", r.Record.Fouls)
			record[1] = fmt.Sprintf("%v", r.Record.ScoreA)
			record[2] = fmt.Sprintf("%v", r.Record.ScoreB)
			record[3] = fmt.Sprintf("%v", r.Record.ScoreC)
			record[4] = formatNumber(r.Record.Average)
		}

		if r.Situation != Unclassified {
			record[5] = labels.Label(r.Situation)
			record[6] = formatTarget(r.MakeupTarget)
		}

		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()

	return w.Error()
}

// ParseTSV extracts the (situation, make-up) columns from a TSV file created by
// MakeTSV. The columns are located by header name so the file may have been edited
// and reordered.
func ParseTSV(f io.Reader) ([][]string, error) {
	r := csv.NewReader(f)
	r.Comma = '\t'
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("TSV file is empty")
	}

	// ... build index
	index := map[string]int{}
	for i, v := range records[0] {
		k := normalise(v)
		if _, ok := index[k]; ok {
			return nil, fmt.Errorf("duplicate column name '%s'", v)
		}

		index[k] = i
	}

	situation, ok := index["situation"]
	if !ok {
		return nil, fmt.Errorf("missing 'situation' column")
	}

	makeup, ok := index["makeup"]
	if !ok {
		return nil, fmt.Errorf("missing 'make-up' column")
	}

	// ... records
	rows := [][]string{}
	for _, record := range records[1:] {
		rows = append(rows, []string{
			field(record, situation),
			field(record, makeup),
		})
	}

	return rows, nil
}

func field(record []string, index int) string {
	if index < len(record) {
		return clean(record[index])
	}

	return ""
}

func clean(v string) string {
	return strings.TrimSpace(v)
}

func normalise(v string) string {
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(strings.ToLower(v))
}
