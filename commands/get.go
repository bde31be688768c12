package commands

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"google.golang.org/api/sheets/v4"

	"github.com/gradebook/gradebook-app-sheets/grades"
)

var GetCmd = Get{
	command: command{
		workdir:     DEFAULT_WORKDIR,
		credentials: DEFAULT_CREDENTIALS,
		tokens:      "",
		url:         "",
		debug:       false,
	},

	source: DEFAULT_SOURCE_RANGE,
	file:   time.Now().Format("grades-2006-01-02T150405.tsv"),
	policy: grades.DefaultPolicy(),
	labels: grades.DefaultLabels(),
}

type Get struct {
	command
	source string
	file   string

	policy grades.Policy
	labels grades.Labels
}

func (cmd *Get) Name() string {
	return "get"
}

func (cmd *Get) Description() string {
	return "Retrieves and classifies the grades in a Google Sheets worksheet and stores them to a local TSV file"
}

func (cmd *Get) Usage() string {
	return "--credentials <file> --url <url> --file <file>"
}

func (cmd *Get) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] get [options] --url <URL> --source <range> --file <file>\n", APP)
	fmt.Println()
	fmt.Println("  Downloads the fouls and scores from a Google Sheets worksheet and stores them, along with")
	fmt.Println("  the calculated average, situation and make-up target, to a TSV file")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Printf("    %s --debug get --credentials \"credentials.json\" \\\n", APP)
	fmt.Println(`                   --url "https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms" \`)
	fmt.Println(`                   --source "engenharia_de_software!C4:F27" \`)
	fmt.Println(`                   --file "grades.tsv"`)
	fmt.Println()
}

func (cmd *Get) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("get")

	flagset.StringVar(&cmd.source, "source", cmd.source, "Spreadsheet range with the fouls and scores e.g. 'Grades!C4:F27'")
	flagset.StringVar(&cmd.file, "file", cmd.file, "TSV file name. Defaults to 'grades-<yyyy-mm-ddTHHmmss>.tsv'")

	return flagset
}

func (cmd *Get) Execute(args ...any) error {
	options := args[0].(*Options)

	conf, err := cmd.load(options)
	if err != nil {
		return err
	}

	if !cmd.isSet("source") && conf.Source != "" {
		cmd.source = conf.Source
	}

	cmd.policy = conf.Policy
	cmd.labels = conf.Labels

	// ... check parameters
	if err := cmd.validate(); err != nil {
		return err
	}

	src, err := parseArea(cmd.source)
	if err != nil {
		return err
	}

	if src.width() != 4 {
		return fmt.Errorf("invalid source range '%s' - expected 4 columns (fouls, P1, P2, P3)", src)
	}

	id, _ := spreadsheetID(cmd.url)

	if cmd.debug {
		debugf("Spreadsheet - ID:%s  range:%s", id, src)
	}

	// ... authorise
	ctx := context.Background()

	client, err := authorize(ctx, cmd.credentials, SHEETS, cmd.tokenDir())
	if err != nil {
		return fmt.Errorf("authentication/authorization error (%w)", err)
	}

	s, err := newSpreadsheet(ctx, client, id)
	if err != nil {
		return err
	}

	return cmd.execute(ctx, s, src)
}

func (cmd *Get) execute(ctx context.Context, s *spreadsheet, src *area) error {
	values, err := s.get(ctx, src.String())
	if err != nil {
		return err
	}

	if len(values) == 0 {
		return grades.ErrEmpty
	}

	tmp, err := os.CreateTemp(os.TempDir(), "grades")
	if err != nil {
		return err
	}

	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	summary, err := sheetToTSV(tmp, &sheets.ValueRange{Values: values}, cmd.policy, cmd.labels)
	if err != nil {
		return fmt.Errorf("error creating TSV file (%w)", err)
	}

	tmp.Close()

	dir := filepath.Dir(cmd.file)
	if err := os.MkdirAll(dir, 0770); err != nil {
		return err
	}

	if err := os.Rename(tmp.Name(), cmd.file); err != nil {
		return err
	}

	infof("Retrieved %v students to file %s", summary.Students, cmd.file)

	return nil
}
