package commands

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPut(t *testing.T) {
	f, s := newFakeSheets(t)

	file := filepath.Join(t.TempDir(), "grades.tsv")
	tsv := "Fouls\tP1\tP2\tP3\tAverage\tSituation\tMake-up\n" +
		"0\t60\t60\t60\t60\tSubject to Make-up Exam\t40\n" +
		"0\t60\t60\t60\t60\tPassed\t\n"

	require.NoError(t, os.WriteFile(file, []byte(tsv), 0600))

	dest, err := parseArea(TARGET)
	require.NoError(t, err)

	cmd := Put{file: file}

	require.NoError(t, cmd.execute(context.Background(), s, dest))
	require.Len(t, f.updates, 1)
	assert.Equal(t, "USER_ENTERED", f.updates[0].ValueInputOption)
	assert.Equal(t, TARGET, f.updates[0].Data[0].Range)
	assert.Equal(t, expectedRows(
		[]any{"Subject to Make-up Exam", "40"},
		[]any{"Passed", ""},
	), f.updates[0].Data[0].Values)
}

func TestPutWithWriteError(t *testing.T) {
	f, s := newFakeSheets(t)
	f.fail = true

	file := filepath.Join(t.TempDir(), "grades.tsv")
	require.NoError(t, os.WriteFile(file, []byte("Situation\tMake-up\nPassed\t\n"), 0600))

	dest, err := parseArea(TARGET)
	require.NoError(t, err)

	cmd := Put{file: file}

	assert.Error(t, cmd.execute(context.Background(), s, dest))
}
