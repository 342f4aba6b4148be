package classify

import (
	"strconv"
	"strings"
)

// Matcher reports whether a cell value equals an expected value.
type Matcher func(cell string) bool

// MatchString matches on exact, case-sensitive string equality.
func MatchString(target string) Matcher {
	return func(cell string) bool {
		return cell == target
	}
}

// MatchPrice matches on numeric equality, so "59.99", "59.990" and
// " 59.99 " all match a target of 59.99. Cells that do not parse as a
// number never match.
func MatchPrice(target float64) Matcher {
	return func(cell string) bool {
		v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
		return err == nil && v == target
	}
}

// ClassifyColumn labels every row of a column from startRow to the last
// row of the sheet as Match or Mismatch.
func ClassifyColumn(s *Sheet, col int, match Matcher, startRow int) {
	for row := startRow; row <= s.MaxRow(); row++ {
		if match(s.Value(col, row)) {
			s.Mark(col, row, Match)
		} else {
			s.Mark(col, row, Mismatch)
		}
	}
}

// AppendExpected writes the expected value itself one row past the next
// empty row of the column, marked Match. Run after ClassifyColumn, this
// keeps the expected value visible in the output even when no record
// matched it. Returns the row written.
func AppendExpected(s *Sheet, col int, value string, startRow int) int {
	row := s.NextEmptyRow(col, startRow) + 1
	s.SetValue(col, row, value)
	s.Mark(col, row, Match)
	return row
}
