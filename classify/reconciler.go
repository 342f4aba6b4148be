package classify

// Reference is the ordered master list of canonical corp codes. Order
// is preserved for the append pass; membership checks are O(1).
type Reference struct {
	values []string
	index  map[string]struct{}
}

// NewReference builds a reference from the master list, keeping order.
func NewReference(values []string) *Reference {
	r := &Reference{
		values: append([]string(nil), values...),
		index:  make(map[string]struct{}, len(values)),
	}
	for _, v := range values {
		r.index[v] = struct{}{}
	}
	return r
}

// Contains reports whether a value is canonical.
func (r *Reference) Contains(value string) bool {
	_, ok := r.index[value]
	return ok
}

// Values returns the master list in its original order.
func (r *Reference) Values() []string {
	return r.values
}

// Len returns the size of the master list.
func (r *Reference) Len() int {
	return len(r.values)
}

// Reconcile runs the two-sided corp audit over one column.
//
// Pass A classifies every populated value from startRow down by set
// membership; blank cells stay unclassified. Pass B then appends the
// entire master list below the last populated row, separated by one
// blank row, every appended value marked Match. The append row is
// computed once, before either pass writes, so the passes cannot
// collide. Reconcile is not idempotent: a second run finds the same
// separator blank and overwrites the block, so each sheet goes through
// the audit exactly once.
//
// Returns the row the appended master block starts at.
func (r *Reference) Reconcile(s *Sheet, col, startRow int) int {
	appendRow := s.NextEmptyRow(col, startRow) + 1

	for row := startRow; row <= s.MaxRow(); row++ {
		v := s.Value(col, row)
		if v == "" {
			continue
		}
		if r.Contains(v) {
			s.Mark(col, row, Match)
		} else {
			s.Mark(col, row, Mismatch)
		}
	}

	for i, v := range r.values {
		s.SetValue(col, appendRow+i, v)
		s.Mark(col, appendRow+i, Match)
	}

	return appendRow
}

// ReconcileColumns audits two columns of the same sheet against each
// other. A populated value in one column is a Match when it appears
// anywhere in the other column's populated range; the two directions
// are independent, so the cells of one row can end up with different
// results. The search spans whole columns, not row pairs, which makes
// the audit insensitive to reordering between the columns.
func ReconcileColumns(s *Sheet, colA, colB, startRow int) {
	maxRow := s.MaxRow()

	collect := func(col int) map[string]struct{} {
		seen := make(map[string]struct{})
		for row := startRow; row <= maxRow; row++ {
			if v := s.Value(col, row); v != "" {
				seen[v] = struct{}{}
			}
		}
		return seen
	}
	inA := collect(colA)
	inB := collect(colB)

	mark := func(col, row int, found bool) {
		if found {
			s.Mark(col, row, Match)
		} else {
			s.Mark(col, row, Mismatch)
		}
	}

	for row := startRow; row <= maxRow; row++ {
		if v := s.Value(colA, row); v != "" {
			_, ok := inB[v]
			mark(colA, row, ok)
		}
		if v := s.Value(colB, row); v != "" {
			_, ok := inA[v]
			mark(colB, row, ok)
		}
	}
}
