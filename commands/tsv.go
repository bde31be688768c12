package commands

import (
	"fmt"
	"io"

	"google.golang.org/api/sheets/v4"

	"github.com/gradebook/gradebook-app-sheets/grades"
)

// sheetToTSV classifies the worksheet rows and writes them to a TSV file. Malformed rows
// are kept (with empty fields) so that the file lines up with the worksheet.
func sheetToTSV(f io.Writer, data *sheets.ValueRange, policy grades.Policy, labels grades.Labels) (grades.Summary, error) {
	records, err := grades.MakeRecords(data.Values)
	if err != nil {
		for _, r := range records {
			if r.Err != nil {
				warnf("%v", r.Err)
			}
		}
	}

	results := grades.ClassifyAll(policy, records)

	if err := grades.MakeTSV(f, results, labels); err != nil {
		return grades.Summary{}, err
	}

	return grades.Summarize(results), nil
}

// tsvToSheet converts the situation and make-up columns of a TSV file to a value range
// for the target area, padded to the height of the area.
func tsvToSheet(f io.Reader, dest *area) (*sheets.ValueRange, error) {
	records, err := grades.ParseTSV(f)
	if err != nil {
		return nil, err
	}

	rows := make([][]any, 0, len(records))
	for _, record := range records {
		row := make([]any, len(record))
		for i, v := range record {
			row[i] = v
		}

		rows = append(rows, row)
	}

	if h := dest.height(); h > 0 && len(rows) > h {
		return nil, fmt.Errorf("TSV file has %v rows - target range %v only has %v rows", len(rows), dest, h)
	}

	return &sheets.ValueRange{
		Range:          dest.String(),
		MajorDimension: "ROWS",
		Values:         pad(rows, dest.height()),
	}, nil
}
