package classify

import "testing"

func TestReconcilePartition(t *testing.T) {
	ref := NewReference([]string{"1001", "1002", "1003"})

	s := NewSheet("HD - TEST")
	s.Append([]string{"h1", "h2"})
	s.Append([]string{"x", "1001"}) // canonical
	s.Append([]string{"x", "9999"}) // unknown
	s.Append([]string{"x", ""})     // blank, no classification

	appendRow := ref.Reconcile(s, 2, 2)

	// Observed zone.
	if got := s.MarkAt(2, 2); got != Match {
		t.Errorf("canonical observed value = %v, want match", got)
	}
	if got := s.MarkAt(2, 3); got != Mismatch {
		t.Errorf("unknown observed value = %v, want mismatch", got)
	}
	if got := s.MarkAt(2, 4); got != Unclassified {
		t.Errorf("blank cell = %v, want unclassified", got)
	}

	// One fully blank separator row between the zones.
	if appendRow != 5 {
		t.Fatalf("append block starts at row %d, want 5", appendRow)
	}
	if got := s.Value(2, appendRow-1); got != "" {
		t.Errorf("separator row holds %q, want blank", got)
	}

	// Canonical-appended zone: the full master list, in order, every
	// value a match.
	for i, want := range ref.Values() {
		row := appendRow + i
		if got := s.Value(2, row); got != want {
			t.Errorf("appended row %d = %q, want %q", row, got, want)
		}
		if got := s.MarkAt(2, row); got != Match {
			t.Errorf("appended row %d marked %v, want match", row, got)
		}
	}

	// The partition is exhaustive: nothing beyond the appended block.
	if got := s.MaxRow(); got != appendRow+ref.Len()-1 {
		t.Errorf("max row = %d, want %d", got, appendRow+ref.Len()-1)
	}
}

func TestReconcileIsNotIdempotent(t *testing.T) {
	// The append pointer is recomputed from the first blank cell, not
	// from a sentinel, so a rerun writes straight into the zone the
	// first pass produced. Callers run each sheet through the audit
	// exactly once; this pins why.
	ref := NewReference([]string{"1001", "1002"})

	s := NewSheet("SD - TEST")
	s.Append([]string{"h"})
	s.Append([]string{"1001"})

	first := ref.Reconcile(s, 1, 2)
	second := ref.Reconcile(s, 1, 2)

	if second != first {
		t.Errorf("rerun append block at row %d, first at %d: pointer no longer derived from first blank", second, first)
	}
}

func TestReconcileColumnsIsSymmetricAndUnaligned(t *testing.T) {
	s := NewSheet("HD Availabilities")
	s.Append([]string{"Corp:9001", "Corp:9002"})
	s.Append([]string{"Corp:9002", "Corp:9001"})
	s.Append([]string{"Corp:9003", "Corp:9004"})
	s.Append([]string{"", "Corp:9003"})

	ReconcileColumns(s, 1, 2, 1)

	// Rows 1-2 are cross-matched despite the reordering.
	for row := 1; row <= 2; row++ {
		if got := s.MarkAt(1, row); got != Match {
			t.Errorf("column A row %d = %v, want match", row, got)
		}
		if got := s.MarkAt(2, row); got != Match {
			t.Errorf("column B row %d = %v, want match", row, got)
		}
	}

	// Row 3: A's value exists in B (row 4), B's value exists nowhere
	// in A — the two cells of one row diverge.
	if got := s.MarkAt(1, 3); got != Match {
		t.Errorf("column A row 3 = %v, want match", got)
	}
	if got := s.MarkAt(2, 3); got != Mismatch {
		t.Errorf("column B row 3 = %v, want mismatch", got)
	}

	// Blank cells stay unclassified.
	if got := s.MarkAt(1, 4); got != Unclassified {
		t.Errorf("blank cell = %v, want unclassified", got)
	}
}
