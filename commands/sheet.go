package commands

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

type spreadsheet struct {
	google *sheets.Service
	id     string
}

func newSpreadsheet(ctx context.Context, client *http.Client, id string, opts ...option.ClientOption) (*spreadsheet, error) {
	opts = append([]option.ClientOption{option.WithHTTPClient(client)}, opts...)

	google, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to create new Sheets client (%w)", err)
	}

	return &spreadsheet{
		google: google,
		id:     id,
	}, nil
}

func (s *spreadsheet) get(ctx context.Context, area string) ([][]any, error) {
	response, err := s.google.Spreadsheets.Values.Get(s.id, area).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve data from sheet (%w)", err)
	}

	return response.Values, nil
}

// update writes all the value ranges in a single request i.e. either all or none of
// the ranges are updated.
func (s *spreadsheet) update(ctx context.Context, data ...*sheets.ValueRange) error {
	rq := sheets.BatchUpdateValuesRequest{
		ValueInputOption: "USER_ENTERED",
		Data:             data,
	}

	if _, err := s.google.Spreadsheets.Values.BatchUpdate(s.id, &rq).Context(ctx).Do(); err != nil {
		return err
	}

	return nil
}

func (s *spreadsheet) clear(ctx context.Context, ranges ...string) error {
	rq := sheets.BatchClearValuesRequest{
		Ranges: ranges,
	}

	if _, err := s.google.Spreadsheets.Values.BatchClear(s.id, &rq).Context(ctx).Do(); err != nil {
		return err
	}

	return nil
}

func (s *spreadsheet) append(ctx context.Context, area string, rows [][]any) error {
	values := sheets.ValueRange{
		Values: rows,
	}

	if _, err := s.google.Spreadsheets.Values.Append(s.id, area, &values).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do(); err != nil {
		return err
	}

	return nil
}

func (s *spreadsheet) sheet(ctx context.Context, a *area) (*sheets.Sheet, error) {
	spreadsheet, err := s.google.Spreadsheets.Get(s.id).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch spreadsheet (%w)", err)
	}

	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties != nil && strings.EqualFold(strings.TrimSpace(sheet.Properties.Title), strings.TrimSpace(a.sheet)) {
			return sheet, nil
		}
	}

	return nil, fmt.Errorf("unable to identify worksheet for '%s'", a)
}

// deleteRows deletes the (0-based, inclusive) blocks of rows, starting from the
// bottom of the worksheet so that the earlier indices are not shifted.
func (s *spreadsheet) deleteRows(ctx context.Context, sheetID int64, blocks map[int]int) error {
	starts := []int{}
	for start := range blocks {
		starts = append(starts, start)
	}

	sort.Sort(sort.Reverse(sort.IntSlice(starts)))

	rq := sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{},
	}

	for _, start := range starts {
		rq.Requests = append(rq.Requests, &sheets.Request{
			DeleteDimension: &sheets.DeleteDimensionRequest{
				Range: &sheets.DimensionRange{
					SheetId:    sheetID,
					Dimension:  "ROWS",
					StartIndex: int64(start),
					EndIndex:   int64(blocks[start] + 1),
				},
			},
		})
	}

	if len(rq.Requests) == 0 {
		return nil
	}

	if _, err := s.google.Spreadsheets.BatchUpdate(s.id, &rq).Context(ctx).Do(); err != nil {
		return err
	}

	return nil
}
