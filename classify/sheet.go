package classify

// Cell addresses one cell of a Sheet. Both coordinates are 1-based,
// matching spreadsheet row/column numbering.
type Cell struct {
	Col int
	Row int
}

// Sheet is an in-memory worksheet under classification. Values and
// classification marks are kept separately so a writer can map marks to
// whatever visual encoding it wants.
type Sheet struct {
	Name  string
	rows  [][]string
	marks map[Cell]Result
}

// NewSheet creates an empty sheet. Rows are added with Append; by
// convention the first appended row is the header.
func NewSheet(name string) *Sheet {
	return &Sheet{Name: name, marks: make(map[Cell]Result)}
}

// Append adds one row after the last existing row.
func (s *Sheet) Append(row []string) {
	s.rows = append(s.rows, append([]string(nil), row...))
}

// MaxRow returns the number of the last row, or 0 for an empty sheet.
func (s *Sheet) MaxRow() int {
	return len(s.rows)
}

// Value returns the cell value, or "" when the cell is outside the
// populated area.
func (s *Sheet) Value(col, row int) string {
	if row < 1 || row > len(s.rows) {
		return ""
	}
	r := s.rows[row-1]
	if col < 1 || col > len(r) {
		return ""
	}
	return r[col-1]
}

// SetValue writes a cell, growing the sheet as needed.
func (s *Sheet) SetValue(col, row int, value string) {
	if col < 1 || row < 1 {
		return
	}
	for len(s.rows) < row {
		s.rows = append(s.rows, nil)
	}
	r := s.rows[row-1]
	for len(r) < col {
		r = append(r, "")
	}
	r[col-1] = value
	s.rows[row-1] = r
}

// Mark records the classification of a cell.
func (s *Sheet) Mark(col, row int, result Result) {
	s.marks[Cell{Col: col, Row: row}] = result
}

// MarkAt returns the recorded classification of a cell, Unclassified
// when the cell was never marked.
func (s *Sheet) MarkAt(col, row int) Result {
	return s.marks[Cell{Col: col, Row: row}]
}

// Rows exposes the populated rows for rendering. The slice must not be
// mutated by callers.
func (s *Sheet) Rows() [][]string {
	return s.rows
}

// Marks exposes every recorded classification for rendering.
func (s *Sheet) Marks() map[Cell]Result {
	return s.marks
}

// NextEmptyRow returns the first row at or after startRow whose cell in
// the given column is blank, or one past the last row when the column
// is fully populated.
func (s *Sheet) NextEmptyRow(col, startRow int) int {
	for row := startRow; row <= s.MaxRow(); row++ {
		if s.Value(col, row) == "" {
			return row
		}
	}
	return s.MaxRow() + 1
}
