package grades

import (
	"strconv"
)

// Labels are the texts written to the worksheet for each situation.
type Labels struct {
	Passed            string `yaml:"passed"`
	MakeupExam        string `yaml:"makeup-exam"`
	FailedForGrade    string `yaml:"failed-for-grade"`
	FailedForAbsences string `yaml:"failed-for-absences"`
}

func DefaultLabels() Labels {
	return Labels{
		Passed:            Passed.String(),
		MakeupExam:        MakeupExam.String(),
		FailedForGrade:    FailedForGrade.String(),
		FailedForAbsences: FailedForAbsences.String(),
	}
}

func (l Labels) Label(s Situation) string {
	label := ""

	switch s {
	case Passed:
		label = l.Passed
	case MakeupExam:
		label = l.MakeupExam
	case FailedForGrade:
		label = l.FailedForGrade
	case FailedForAbsences:
		label = l.FailedForAbsences
	}

	if label == "" {
		return s.String()
	}

	return label
}

// Rows formats the results as (situation, make-up target) worksheet rows, in result
// order. An absent make-up target is written as an empty string and unclassified
// results are written as an empty row.
func Rows(results []Result, labels Labels) [][]any {
	rows := make([][]any, 0, len(results))

	for _, r := range results {
		if r.Situation == Unclassified {
			rows = append(rows, []any{"", ""})
		} else {
			rows = append(rows, []any{labels.Label(r.Situation), formatTarget(r.MakeupTarget)})
		}
	}

	return rows
}

func formatTarget(v *float64) string {
	if v == nil {
		return ""
	}

	return formatNumber(*v)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
