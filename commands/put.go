package commands

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
)

var PutCmd = Put{
	command: command{
		workdir:     DEFAULT_WORKDIR,
		credentials: DEFAULT_CREDENTIALS,
		tokens:      "",
		url:         "",
		debug:       false,
	},

	target: DEFAULT_TARGET_RANGE,
	file:   "",
}

type Put struct {
	command
	target string
	file   string
}

func (cmd *Put) Name() string {
	return "put"
}

func (cmd *Put) Description() string {
	return "Uploads the situation and make-up columns of a TSV file to a Google Sheets worksheet"
}

func (cmd *Put) Usage() string {
	return "--credentials <file> --url <url> --file <file>"
}

func (cmd *Put) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] put [options] --url <URL> --target <range> --file <file>\n", APP)
	fmt.Println()
	fmt.Println("  Uploads the 'situation' and 'make-up' columns of a TSV file (e.g. created with 'get' and")
	fmt.Println("  then edited) to the target range of a Google Sheets worksheet")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Printf("    %s --debug put --credentials \"credentials.json\" \\\n", APP)
	fmt.Println(`                   --url "https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms" \`)
	fmt.Println(`                   --target "engenharia_de_software!G4:H27" \`)
	fmt.Println(`                   --file "grades.tsv"`)
	fmt.Println()
}

func (cmd *Put) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("put")

	flagset.StringVar(&cmd.target, "target", cmd.target, "Spreadsheet range for the situation and make-up target e.g. 'Grades!G4:H27'")
	flagset.StringVar(&cmd.file, "file", cmd.file, "TSV file")

	return flagset
}

func (cmd *Put) Execute(args ...any) error {
	options := args[0].(*Options)

	conf, err := cmd.load(options)
	if err != nil {
		return err
	}

	if !cmd.isSet("target") && conf.Target != "" {
		cmd.target = conf.Target
	}

	// ... check parameters
	if err := cmd.validate(); err != nil {
		return err
	}

	if strings.TrimSpace(cmd.file) == "" {
		return fmt.Errorf("--file is a required option")
	}

	dest, err := parseArea(cmd.target)
	if err != nil {
		return err
	}

	if dest.width() != 2 {
		return fmt.Errorf("invalid target range '%s' - expected 2 columns (situation, make-up)", dest)
	}

	id, _ := spreadsheetID(cmd.url)

	if cmd.debug {
		debugf("Spreadsheet - ID:%s  range:%s", id, dest)
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

	return cmd.execute(ctx, s, dest)
}

func (cmd *Put) execute(ctx context.Context, s *spreadsheet, dest *area) error {
	f, err := os.Open(cmd.file)
	if err != nil {
		return err
	}

	defer f.Close()

	data, err := tsvToSheet(f, dest)
	if err != nil {
		return fmt.Errorf("invalid TSV file %v (%w)", cmd.file, err)
	}

	if err := s.update(ctx, data); err != nil {
		return fmt.Errorf("error uploading %v (%w)", cmd.file, err)
	}

	if dest.height() == 0 {
		if err := s.clear(ctx, dest.below(len(data.Values)).String()); err != nil {
			warnf("error clearing %v (%v)", dest.below(len(data.Values)), err)
		}
	}

	infof("Uploaded TSV file %v to Google Sheets %v", cmd.file, dest)

	return nil
}
