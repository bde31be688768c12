package commands

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// area is a parsed A1 notation range e.g. 'Grades!C4:F27'. bottom is 0 for an open
// ended range like 'Grades!C4:F'.
type area struct {
	sheet  string
	left   string
	top    int
	right  string
	bottom int
}

func parseArea(s string) (*area, error) {
	match := regexp.MustCompile(`^(.+?)!([a-zA-Z]+)([0-9]+):([a-zA-Z]+)([0-9]+)?$`).FindStringSubmatch(strings.TrimSpace(s))
	if len(match) < 5 {
		return nil, fmt.Errorf("invalid spreadsheet range '%s' - expected something like 'Grades!C4:F27'", s)
	}

	top, _ := strconv.Atoi(match[3])
	bottom := 0
	if match[5] != "" {
		bottom, _ = strconv.Atoi(match[5])
	}

	a := area{
		sheet:  unquote(match[1]),
		left:   strings.ToUpper(match[2]),
		top:    top,
		right:  strings.ToUpper(match[4]),
		bottom: bottom,
	}

	if a.top < 1 {
		return nil, fmt.Errorf("invalid spreadsheet range '%s' - rows start at 1", s)
	}

	if a.bottom != 0 && a.bottom < a.top {
		return nil, fmt.Errorf("invalid spreadsheet range '%s' - bottom row is above top row", s)
	}

	if column(a.right) < column(a.left) {
		return nil, fmt.Errorf("invalid spreadsheet range '%s' - right column is before left column", s)
	}

	return &a, nil
}

func (a area) String() string {
	if a.bottom > 0 {
		return fmt.Sprintf("%v!%v%v:%v%v", quote(a.sheet), a.left, a.top, a.right, a.bottom)
	}

	return fmt.Sprintf("%v!%v%v:%v", quote(a.sheet), a.left, a.top, a.right)
}

// unquote strips the single quotes around a sheet name e.g. 'Turma A'.
func unquote(name string) string {
	if len(name) > 1 && strings.HasPrefix(name, "'") && strings.HasSuffix(name, "'") {
		return strings.ReplaceAll(name[1:len(name)-1], "''", "'")
	}

	return name
}

// quote quotes sheet names that are not plain identifiers.
func quote(name string) string {
	if regexp.MustCompile(`^[a-zA-Z0-9_]+$`).MatchString(name) {
		return name
	}

	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}

func (a area) width() int {
	return column(a.right) - column(a.left) + 1
}

// height is the number of rows in the range, or 0 for an open ended range.
func (a area) height() int {
	if a.bottom == 0 {
		return 0
	}

	return a.bottom - a.top + 1
}

// below is the open ended range under the first n rows of the area.
func (a area) below(n int) area {
	return area{
		sheet:  a.sheet,
		left:   a.left,
		top:    a.top + n,
		right:  a.right,
		bottom: 0,
	}
}

// column converts a column name to a 1-based column number i.e. A=1, Z=26, AA=27.
func column(name string) int {
	n := 0
	for _, ch := range strings.ToUpper(name) {
		n = n*26 + int(ch-'A') + 1
	}

	return n
}

// checkAlignment verifies that the source (fouls, P1, P2, P3) and target (situation,
// make-up) ranges are the expected widths and line up row for row.
func checkAlignment(source, target string) (*area, *area, error) {
	src, err := parseArea(source)
	if err != nil {
		return nil, nil, err
	}

	dest, err := parseArea(target)
	if err != nil {
		return nil, nil, err
	}

	if src.width() != 4 {
		return nil, nil, fmt.Errorf("invalid source range '%s' - expected 4 columns (fouls, P1, P2, P3)", source)
	}

	if dest.width() != 2 {
		return nil, nil, fmt.Errorf("invalid target range '%s' - expected 2 columns (situation, make-up)", target)
	}

	if src.top != dest.top {
		return nil, nil, fmt.Errorf("source range '%s' and target range '%s' do not start on the same row", source, target)
	}

	if (src.bottom == 0) != (dest.bottom == 0) {
		return nil, nil, fmt.Errorf("source range '%s' and target range '%s' must both be open ended or both have an end row", source, target)
	}

	if src.height() != dest.height() {
		return nil, nil, fmt.Errorf("source range '%s' and target range '%s' do not have the same number of rows", source, target)
	}

	return src, dest, nil
}
