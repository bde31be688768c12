package commands

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/uuid"
	"google.golang.org/api/sheets/v4"

	"github.com/gradebook/gradebook-app-sheets/grades"
)

var GradeCmd = Grade{
	command: command{
		workdir:     DEFAULT_WORKDIR,
		credentials: DEFAULT_CREDENTIALS,
		tokens:      "",
		url:         "",
		debug:       false,
	},

	source:       DEFAULT_SOURCE_RANGE,
	target:       DEFAULT_TARGET_RANGE,
	logRange:     "",
	logRetention: DEFAULT_LOG_RETENTION,
	lenient:      false,
	dryrun:       false,

	policy: grades.DefaultPolicy(),
	labels: grades.DefaultLabels(),
}

type Grade struct {
	command

	source       string
	target       string
	logRange     string
	logRetention uint
	lenient      bool
	dryrun       bool

	policy grades.Policy
	labels grades.Labels
}

func (cmd *Grade) Name() string {
	return "grade"
}

func (cmd *Grade) Description() string {
	return "Classifies the students in a Google Sheets worksheet and writes back the final situation"
}

func (cmd *Grade) Usage() string {
	return "--credentials <file> --url <url> [--source <range>] [--target <range>]"
}

func (cmd *Grade) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] [--config <file>] grade [options] --url <URL>\n", APP)
	fmt.Println()
	fmt.Println("  Reads the absences and scores (fouls, P1, P2, P3) from the source range, classifies each")
	fmt.Println("  student and writes the situation and make-up exam target to the target range.")
	fmt.Println("  Scores with decimals are truncated to whole numbers.")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Printf("    %s --debug grade --credentials \"credentials.json\" \\\n", APP)
	fmt.Println(`                     --url "https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms" \`)
	fmt.Println(`                     --source "engenharia_de_software!C4:F27" \`)
	fmt.Println(`                     --target "engenharia_de_software!G4:H27" \`)
	fmt.Println(`                     --log-range "Log!A1:H"`)
	fmt.Println()
}

func (cmd *Grade) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("grade")

	flagset.StringVar(&cmd.source, "source", cmd.source, "Spreadsheet range with the fouls and scores e.g. 'Grades!C4:F27'")
	flagset.StringVar(&cmd.target, "target", cmd.target, "Spreadsheet range for the situation and make-up target e.g. 'Grades!G4:H27'")
	flagset.StringVar(&cmd.logRange, "log-range", cmd.logRange, "Spreadsheet range for the run log e.g. 'Log!A1:H'. Disabled if empty")
	flagset.UintVar(&cmd.logRetention, "log-retention", cmd.logRetention, "Log sheet records older than 'log-retention' days are pruned (0 keeps everything)")
	flagset.BoolVar(&cmd.lenient, "lenient", cmd.lenient, "Writes an empty result for malformed rows instead of aborting the update")
	flagset.BoolVar(&cmd.dryrun, "dryrun", cmd.dryrun, "Classifies the students without updating the worksheet")

	return flagset
}

func (cmd *Grade) Execute(args ...any) error {
	options := args[0].(*Options)

	conf, err := cmd.load(options)
	if err != nil {
		return err
	}

	cmd.configure(conf)

	// ... check parameters
	if err := cmd.validate(); err != nil {
		return err
	}

	src, dest, err := checkAlignment(cmd.source, cmd.target)
	if err != nil {
		return err
	}

	var logArea *area
	if cmd.logRange != "" {
		if logArea, err = parseArea(cmd.logRange); err != nil {
			return fmt.Errorf("invalid log-range (%w)", err)
		}
	}

	id, _ := spreadsheetID(cmd.url)

	if cmd.debug {
		debugf("Spreadsheet - ID:%s  source:%s  target:%s  log:%s", id, src, dest, cmd.logRange)
	}

	lockfile, err := lock(cmd.workdir)
	if err != nil {
		return err
	}

	defer lockfile.release()

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

	return cmd.execute(ctx, s, src, dest, logArea)
}

// configure applies the grade specific settings that were not set on the command line.
func (cmd *Grade) configure(conf *Config) {
	if !cmd.isSet("source") && conf.Source != "" {
		cmd.source = conf.Source
	}

	if !cmd.isSet("target") && conf.Target != "" {
		cmd.target = conf.Target
	}

	if !cmd.isSet("log-range") && conf.LogRange != "" {
		cmd.logRange = conf.LogRange
	}

	if !cmd.isSet("log-retention") {
		cmd.logRetention = conf.LogRetention
	}

	cmd.policy = conf.Policy
	cmd.labels = conf.Labels
}

// execute runs a single fetch -> classify -> write pass. Only authorisation, fetch and
// (strict mode) parse errors are returned: an empty source range and a failed write are
// logged and the run ends normally.
func (cmd *Grade) execute(ctx context.Context, s *spreadsheet, src, dest *area, logArea *area) error {
	runID := uuid.NewString()

	infof("%v  requesting values from %v", runID, src)

	values, err := s.get(ctx, src.String())
	if err != nil {
		return err
	}

	if len(values) == 0 {
		infof("%v  %v", runID, grades.ErrEmpty)
		return nil
	}

	infof("%v  retrieved %v rows", runID, len(values))

	records, err := grades.MakeRecords(values)
	if err != nil {
		invalid := 0
		for _, r := range records {
			if r.Err != nil {
				invalid++
				warnf("%v  %v", runID, r.Err)
			}
		}

		if !cmd.lenient {
			return fmt.Errorf("%v invalid rows in %v - worksheet not updated", invalid, src)
		}
	}

	results := grades.ClassifyAll(cmd.policy, records)
	summary := grades.Summarize(results)
	rows := pad(grades.Rows(results, cmd.labels), dest.height())

	if cmd.debug {
		for i, r := range results {
			debugf("%v  row %-3v %-40v %v", runID, src.top+i, fmt.Sprintf("%+v", r.Record), rows[i])
		}
	}

	infof("%v  classified %v students", runID, len(results))

	if cmd.dryrun {
		infof("%v  dry run - %v not updated", runID, dest)
		report(runID, summary)
		return nil
	}

	data := sheets.ValueRange{
		Range:          dest.String(),
		MajorDimension: "ROWS",
		Values:         rows,
	}

	if err := s.update(ctx, &data); err != nil {
		errorf("%v  error writing results to %v (%v)", runID, dest, err)
		return nil
	}

	infof("%v  updated %v rows in %v", runID, len(rows), dest)

	if dest.height() == 0 {
		if err := s.clear(ctx, dest.below(len(rows)).String()); err != nil {
			warnf("%v  error clearing %v (%v)", runID, dest.below(len(rows)), err)
		}
	}

	report(runID, summary)

	if logArea != nil {
		if err := updateLogSheet(ctx, s, logArea, runID, summary); err != nil {
			warnf("%v  %v", runID, err)
		} else if err := pruneLogSheet(ctx, s, logArea, cmd.logRetention); err != nil {
			warnf("%v  %v", runID, err)
		}
	}

	return nil
}

// pad extends the rows with empty rows to the height of the target range so that results
// left over from a longer previous run are cleared by the same write.
func pad(rows [][]any, height int) [][]any {
	for len(rows) < height {
		rows = append(rows, []any{"", ""})
	}

	return rows
}

func report(runID string, summary grades.Summary) {
	format := "%v  students:%v  passed:%v  make-up:%v  failed-for-grade:%v  failed-for-absences:%v  invalid:%v"

	infof(format,
		runID,
		summary.Students,
		summary.Passed,
		summary.MakeupExam,
		summary.FailedForGrade,
		summary.FailedForAbsences,
		summary.Invalid)
}
