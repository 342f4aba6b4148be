package workbook

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"ppvcheck/classify"
)

// Review colours: the green/red pair reviewers already read as pass and
// fail in the legacy workbooks.
const (
	matchFontColor    = "006100"
	matchFillColor    = "C6EFCE"
	mismatchFontColor = "9C0006"
	mismatchFillColor = "FFC7CE"
)

// Writer renders classified sheets into an output workbook, mapping
// classification results onto cell styles. The engine never sees
// colours; this is the presentation edge.
type Writer struct {
	f             *excelize.File
	matchStyle    int
	mismatchStyle int
}

// NewWriter prepares a writer over an open workbook.
func NewWriter(f *excelize.File) (*Writer, error) {
	matchStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Color: matchFontColor},
		Fill: excelize.Fill{Type: "pattern", Color: []string{matchFillColor}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create match style: %w", err)
	}

	mismatchStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Color: mismatchFontColor},
		Fill: excelize.Fill{Type: "pattern", Color: []string{mismatchFillColor}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create mismatch style: %w", err)
	}

	return &Writer{f: f, matchStyle: matchStyle, mismatchStyle: mismatchStyle}, nil
}

// WriteSheet adds a classified sheet to the workbook: values first,
// then a style per marked cell.
func (w *Writer) WriteSheet(s *classify.Sheet) error {
	if _, err := w.f.NewSheet(s.Name); err != nil {
		return fmt.Errorf("failed to create sheet %q: %w", s.Name, err)
	}

	for i, row := range s.Rows() {
		for j, value := range row {
			if value == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return fmt.Errorf("bad cell coordinates in %q: %w", s.Name, err)
			}
			if err := w.f.SetCellValue(s.Name, cell, value); err != nil {
				return fmt.Errorf("failed to write cell %s in %q: %w", cell, s.Name, err)
			}
		}
	}

	for ref, result := range s.Marks() {
		styleID := 0
		switch result {
		case classify.Match:
			styleID = w.matchStyle
		case classify.Mismatch:
			styleID = w.mismatchStyle
		default:
			continue
		}
		cell, err := excelize.CoordinatesToCellName(ref.Col, ref.Row)
		if err != nil {
			return fmt.Errorf("bad mark coordinates in %q: %w", s.Name, err)
		}
		if err := w.f.SetCellStyle(s.Name, cell, cell, styleID); err != nil {
			return fmt.Errorf("failed to style cell %s in %q: %w", cell, s.Name, err)
		}
	}

	return nil
}
