package classify

import "testing"

func newTierSheet(dataRows ...[]string) *Sheet {
	s := NewSheet("HD - TEST")
	s.Append([]string{"Billing Event Id", "Price"})
	for _, row := range dataRows {
		s.Append(row)
	}
	return s
}

func TestClassifyColumnMarksEveryDataRow(t *testing.T) {
	s := newTierSheet(
		[]string{"A1", "59.99"},
		[]string{"B2", "59.99"},
		[]string{"A1", "49.99"},
	)

	ClassifyColumn(s, 1, MatchString("A1"), 2)

	want := []Result{Match, Mismatch, Match}
	for i, expected := range want {
		if got := s.MarkAt(1, i+2); got != expected {
			t.Errorf("row %d = %v, want %v", i+2, got, expected)
		}
	}
	if got := s.MarkAt(1, 1); got != Unclassified {
		t.Errorf("header row classified as %v, want unclassified", got)
	}
}

func TestMatchPriceIsNumeric(t *testing.T) {
	tests := []struct {
		name string
		cell string
		want bool
	}{
		{name: "exact", cell: "59.99", want: true},
		{name: "trailing zero", cell: "59.990", want: true},
		{name: "padded", cell: " 59.99 ", want: true},
		{name: "different value", cell: "60", want: false},
		{name: "not a number", cell: "n/a", want: false},
		{name: "blank", cell: "", want: false},
	}

	match := MatchPrice(59.99)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := match(tt.cell); got != tt.want {
				t.Errorf("MatchPrice(59.99)(%q) = %v, want %v", tt.cell, got, tt.want)
			}
		})
	}
}

func TestAppendExpectedAlwaysWritesTarget(t *testing.T) {
	// Even with zero extracted rows the expected value must appear,
	// marked as a match, so an empty subset is diagnosable.
	s := newTierSheet()

	ClassifyColumn(s, 1, MatchString("ABC123"), 2)
	row := AppendExpected(s, 1, "ABC123", 2)

	if got := s.Value(1, row); got != "ABC123" {
		t.Fatalf("expected value row holds %q, want ABC123", got)
	}
	if got := s.MarkAt(1, row); got != Match {
		t.Errorf("expected value marked %v, want match", got)
	}

	// Exactly one populated data cell in the column.
	populated := 0
	for r := 2; r <= s.MaxRow(); r++ {
		if s.Value(1, r) != "" {
			populated++
		}
	}
	if populated != 1 {
		t.Errorf("populated data cells = %d, want 1", populated)
	}
}

func TestAppendExpectedLeavesSeparator(t *testing.T) {
	s := newTierSheet(
		[]string{"A1", "59.99"},
		[]string{"A1", "59.99"},
	)

	ClassifyColumn(s, 1, MatchString("A1"), 2)
	row := AppendExpected(s, 1, "A1", 2)

	// Data occupies rows 2-3, so the target lands at row 5 with a
	// blank row 4 between the zones.
	if row != 5 {
		t.Fatalf("expected value written at row %d, want 5", row)
	}
	if got := s.Value(1, 4); got != "" {
		t.Errorf("separator row holds %q, want blank", got)
	}
}
