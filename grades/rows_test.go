package grades

import (
	"fmt"
	"reflect"
	"testing"
)

func TestRows(t *testing.T) {
	expected := [][]any{
		{"Failed for Absences", ""},
		{"Passed", ""},
		{"Subject to Make-up Exam", "40"},
		{"Failed for Grade", ""},
	}

	records := []Record{
		NewRecord(16, 80, 80, 80),
		NewRecord(0, 90, 90, 90),
		NewRecord(0, 60, 60, 60),
		NewRecord(0, 30, 30, 30),
	}

	rows := Rows(ClassifyAll(DefaultPolicy(), records), DefaultLabels())

	if !reflect.DeepEqual(rows, expected) {
		t.Errorf("Incorrect rows\n   expected: %v\n   got:      %v\n", expected, rows)
	}
}

func TestRowsWithFractionalTarget(t *testing.T) {
	expected := [][]any{
		{"Subject to Make-up Exam", "49.666666666666664"},
	}

	rows := Rows(ClassifyAll(DefaultPolicy(), []Record{NewRecord(0, 50, 50, 51)}), DefaultLabels())

	if !reflect.DeepEqual(rows, expected) {
		t.Errorf("Incorrect rows\n   expected: %v\n   got:      %v\n", expected, rows)
	}
}

func TestRowsWithCustomLabels(t *testing.T) {
	expected := [][]any{
		{"Reprovado por Falta", ""},
		{"Aprovado", ""},
		{"Exame Final", "40"},
		{"Reprovado por Nota", ""},
	}

	labels := Labels{
		Passed:            "Aprovado",
		MakeupExam:        "Exame Final",
		FailedForGrade:    "Reprovado por Nota",
		FailedForAbsences: "Reprovado por Falta",
	}

	records := []Record{
		NewRecord(16, 80, 80, 80),
		NewRecord(0, 90, 90, 90),
		NewRecord(0, 60, 60, 60),
		NewRecord(0, 30, 30, 30),
	}

	rows := Rows(ClassifyAll(DefaultPolicy(), records), labels)

	if !reflect.DeepEqual(rows, expected) {
		t.Errorf("Incorrect rows\n   expected: %v\n   got:      %v\n", expected, rows)
	}
}

func TestRowsWithMissingLabel(t *testing.T) {
	labels := Labels{Passed: "Aprovado"}

	if v := labels.Label(FailedForGrade); v != "Failed for Grade" {
		t.Errorf("Expected default label for missing label, got %q", v)
	}
}

func TestRowsWithInvalidRecord(t *testing.T) {
	expected := [][]any{
		{"Passed", ""},
		{"", ""},
		{"Failed for Grade", ""},
	}

	records := []Record{
		NewRecord(0, 90, 90, 90),
		{Err: fmt.Errorf("qwerty")},
		NewRecord(0, 30, 30, 30),
	}

	rows := Rows(ClassifyAll(DefaultPolicy(), records), DefaultLabels())

	if !reflect.DeepEqual(rows, expected) {
		t.Errorf("Incorrect rows\n   expected: %v\n   got:      %v\n", expected, rows)
	}
}

func TestSummarize(t *testing.T) {
	expected := Summary{
		Students:          6,
		Passed:            2,
		MakeupExam:        1,
		FailedForGrade:    1,
		FailedForAbsences: 1,
		Invalid:           1,
	}

	records := []Record{
		NewRecord(16, 80, 80, 80),
		NewRecord(0, 90, 90, 90),
		NewRecord(1, 75, 75, 75),
		NewRecord(0, 60, 60, 60),
		NewRecord(0, 30, 30, 30),
		{Err: fmt.Errorf("qwerty")},
	}

	summary := Summarize(ClassifyAll(DefaultPolicy(), records))

	if summary != expected {
		t.Errorf("Incorrect summary\n   expected: %+v\n   got:      %+v\n", expected, summary)
	}
}
