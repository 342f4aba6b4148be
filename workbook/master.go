package workbook

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

const (
	masterCorpSheet         = "Corp"
	masterAvailabilitySheet = "Corp Availability"
)

// MasterCorp is the operator-maintained reference workbook content: the
// canonical corp list and the availability seed table.
type MasterCorp struct {
	CorpValues   []string
	Availability [][]string
}

// LoadMasterCorp reads the master reference workbook. The corp list is
// column A of the "Corp" sheet, read until the first blank row, so its
// size is driven by the data. A missing sheet is a shape error.
func LoadMasterCorp(path string) (*MasterCorp, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open master corp workbook: %w", err)
	}
	defer f.Close()

	corpRows, err := f.GetRows(masterCorpSheet)
	if err != nil {
		return nil, fmt.Errorf("master corp workbook is missing the %q sheet: %w", masterCorpSheet, err)
	}

	var corpValues []string
	for _, row := range corpRows {
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			break
		}
		corpValues = append(corpValues, row[0])
	}
	if len(corpValues) == 0 {
		return nil, fmt.Errorf("master corp sheet %q has no values", masterCorpSheet)
	}

	availability, err := f.GetRows(masterAvailabilitySheet)
	if err != nil {
		return nil, fmt.Errorf("master corp workbook is missing the %q sheet: %w", masterAvailabilitySheet, err)
	}

	return &MasterCorp{CorpValues: corpValues, Availability: availability}, nil
}
