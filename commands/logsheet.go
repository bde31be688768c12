package commands

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/gradebook/gradebook-app-sheets/grades"
)

const TIMESTAMP = "2006-01-02 15:04:05"

var logColumns = map[string]int{
	"timestamp":         0,
	"runid":             1,
	"students":          2,
	"passed":            3,
	"makeup":            4,
	"failedforgrade":    5,
	"failedforabsences": 6,
	"invalid":           7,
}

// updateLogSheet appends a summary row for the run to the log sheet. If the log range
// starts with a header row the values are placed by column name, otherwise in the
// default column order.
func updateLogSheet(ctx context.Context, s *spreadsheet, a *area, runID string, summary grades.Summary) error {
	values, err := s.get(ctx, a.String())
	if err != nil {
		return fmt.Errorf("unable to retrieve column headers from log sheet (%w)", err)
	}

	index := logIndex(values)
	columns := 0
	for _, v := range index {
		if v >= columns {
			columns = v + 1
		}
	}

	row := make([]any, columns)
	for i := range row {
		row[i] = ""
	}

	set := func(key string, v any) {
		if ix, ok := index[key]; ok {
			row[ix] = v
		}
	}

	set("timestamp", time.Now().Format(TIMESTAMP))
	set("runid", runID)
	set("students", summary.Students)
	set("passed", summary.Passed)
	set("makeup", summary.MakeupExam)
	set("failedforgrade", summary.FailedForGrade)
	set("failedforabsences", summary.FailedForAbsences)
	set("invalid", summary.Invalid)

	if err := s.append(ctx, a.String(), [][]any{row}); err != nil {
		return fmt.Errorf("error writing log to Google Sheets (%w)", err)
	}

	return nil
}

// logIndex builds the column index from the header row, falling back to the default
// layout for an empty or headerless log sheet.
func logIndex(values [][]any) map[string]int {
	if len(values) == 0 {
		return logColumns
	}

	index := map[string]int{}
	for i, v := range values[0] {
		k := normalise(fmt.Sprintf("%v", v))
		if k == "makeupexam" {
			k = "makeup"
		}

		if _, ok := logColumns[k]; ok {
			index[k] = i
		}
	}

	if len(index) == 0 {
		return logColumns
	}

	debugf("Log sheet column index: %v", index)

	return index
}

// pruneLogSheet deletes the log rows with a timestamp before the retention cutoff. A
// retention of 0 keeps all the records.
func pruneLogSheet(ctx context.Context, s *spreadsheet, a *area, retention uint) error {
	if retention == 0 {
		return nil
	}

	sheet, err := s.sheet(ctx, a)
	if err != nil {
		return err
	}

	values, err := s.get(ctx, a.String())
	if err != nil {
		return fmt.Errorf("unable to retrieve data from log sheet (%w)", err)
	}

	cutoff := logCutoff(time.Now(), retention)
	column := logIndex(values)["timestamp"]

	infof("Pruning log records from before %v", cutoff.Format("2006-01-02"))

	list := []int{}
	for i, record := range values {
		if column >= len(record) {
			continue
		}

		v, ok := record[column].(string)
		if !ok {
			continue
		}

		timestamp, err := time.ParseInLocation(TIMESTAMP, v, time.Local)
		if err == nil && timestamp.Before(cutoff) {
			list = append(list, a.top-1+i)
		}
	}

	blocks := contiguous(list)
	if len(blocks) > 0 {
		if err := s.deleteRows(ctx, sheet.Properties.SheetId, blocks); err != nil {
			return fmt.Errorf("error pruning log sheet (%w)", err)
		}
	}

	infof("Pruned %d log records from log sheet", len(list))

	return nil
}

// logCutoff is midnight (local time) at the start of the oldest day that is kept.
func logCutoff(now time.Time, retention uint) time.Time {
	now = now.In(time.Local)

	return time.Date(now.Year(), now.Month(), now.Day()-int(retention)+1, 0, 0, 0, 0, time.Local)
}

// contiguous groups the (0-based) row indices into start:end blocks.
func contiguous(rows []int) map[int]int {
	blocks := map[int]int{}
	if len(rows) == 0 {
		return blocks
	}

	sort.Ints(rows)

	start := rows[0]
	last := rows[0]
	for _, row := range rows[1:] {
		if row != last+1 {
			blocks[start] = last
			start = row
		}

		last = row
	}

	blocks[start] = last

	return blocks
}
