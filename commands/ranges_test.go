package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArea(t *testing.T) {
	a, err := parseArea("engenharia_de_software!C4:F27")
	require.NoError(t, err)

	assert.Equal(t, area{sheet: "engenharia_de_software", left: "C", top: 4, right: "F", bottom: 27}, *a)
	assert.Equal(t, 4, a.width())
	assert.Equal(t, 24, a.height())
	assert.Equal(t, "engenharia_de_software!C4:F27", a.String())
}

func TestParseOpenEndedArea(t *testing.T) {
	a, err := parseArea("Log Sheet!a1:h")
	require.NoError(t, err)

	assert.Equal(t, "Log Sheet", a.sheet)
	assert.Equal(t, 8, a.width())
	assert.Equal(t, 0, a.height())
	assert.Equal(t, "'Log Sheet'!A1:H", a.String())
}

func TestParseInvalidArea(t *testing.T) {
	tests := []string{
		"",
		"C4:F27",
		"Grades!C4",
		"Grades!4C:F27",
		"Grades!C0:F27",
		"Grades!C27:F4",
		"Grades!F4:C27",
	}

	for _, v := range tests {
		_, err := parseArea(v)
		assert.Errorf(t, err, "expected error for range '%v'", v)
	}
}

func TestColumn(t *testing.T) {
	assert.Equal(t, 1, column("A"))
	assert.Equal(t, 26, column("Z"))
	assert.Equal(t, 27, column("AA"))
	assert.Equal(t, 52, column("az"))
}

func TestCheckAlignment(t *testing.T) {
	src, dest, err := checkAlignment("Grades!C4:F27", "Grades!G4:H27")
	require.NoError(t, err)
	assert.Equal(t, 24, src.height())
	assert.Equal(t, 24, dest.height())

	_, _, err = checkAlignment("Grades!C4:F", "Grades!G4:H")
	assert.NoError(t, err)

}

func TestCheckAlignmentWithMisalignedRanges(t *testing.T) {
	tests := map[string][2]string{
		"source too narrow":   {"Grades!C4:E27", "Grades!G4:H27"},
		"target too wide":     {"Grades!C4:F27", "Grades!G4:I27"},
		"different top row":   {"Grades!C4:F27", "Grades!G5:H28"},
		"target too short":    {"Grades!C4:F27", "Grades!G4:H20"},
		"open source, closed": {"Grades!C4:F", "Grades!G4:H27"},
		"closed source, open": {"Grades!C4:F27", "Grades!G4:H"},
		"target too tall":     {"Grades!C4:F20", "Grades!G4:H27"},
	}

	for k, v := range tests {
		_, _, err := checkAlignment(v[0], v[1])
		assert.Errorf(t, err, "%v: expected error", k)
	}
}

func TestSpreadsheetID(t *testing.T) {
	id, err := spreadsheetID("https://docs.google.com/spreadsheets/d/1SVpmjx7ElYpOA7Xrgx26VeRo6zRplvI6Xe9f57KKkhE/edit#gid=0")
	require.NoError(t, err)
	assert.Equal(t, "1SVpmjx7ElYpOA7Xrgx26VeRo6zRplvI6Xe9f57KKkhE", id)

	id, err = spreadsheetID(" 1SVpmjx7ElYpOA7Xrgx26VeRo6zRplvI6Xe9f57KKkhE ")
	require.NoError(t, err)
	assert.Equal(t, "1SVpmjx7ElYpOA7Xrgx26VeRo6zRplvI6Xe9f57KKkhE", id)

	_, err = spreadsheetID("https://example.com/spreadsheets/d/1SVpmjx7ElYpOA7Xrgx26VeRo6zRplvI6Xe9f57KKkhE")
	assert.Error(t, err)

	_, err = spreadsheetID("qwerty")
	assert.Error(t, err)
}

func TestBelow(t *testing.T) {
	a, err := parseArea("Grades!G4:H")
	require.NoError(t, err)

	assert.Equal(t, "Grades!G9:H", a.below(5).String())
}

func TestParseQuotedArea(t *testing.T) {
	a, err := parseArea("'Turma A'!a1:h")
	require.NoError(t, err)

	assert.Equal(t, "Turma A", a.sheet)
	assert.Equal(t, "'Turma A'!A1:H", a.String())

	a, err = parseArea("'O''Brien'!A1:H")
	require.NoError(t, err)

	assert.Equal(t, "O'Brien", a.sheet)
	assert.Equal(t, "'O''Brien'!A1:H", a.String())
}
