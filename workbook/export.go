package workbook

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"ppvcheck/extract"
)

// FindExportCSV expects exactly one CSV in dir and returns its path.
// Any other count means the directory is in an ambiguous state and the
// run cannot proceed.
func FindExportCSV(dir string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return "", fmt.Errorf("failed to scan %s: %w", dir, err)
	}
	if len(matches) != 1 {
		return "", fmt.Errorf("expected exactly one CSV file in %s, but found %d", dir, len(matches))
	}
	return matches[0], nil
}

// ConvertExport converts the raw CSV export into the named validation
// workbook ("IP PPV <event>_<fileNumber>.xlsx") and returns the
// workbook path. The file number is the fifth underscore-separated
// token of the CSV name, the archive's sequence counter.
func ConvertExport(csvPath, outDir, eventName string) (string, error) {
	base := filepath.Base(csvPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	parts := strings.Split(stem, "_")
	if len(parts) < 5 {
		return "", fmt.Errorf("export file name %q does not carry a sequence number", base)
	}
	fileNumber := parts[4]

	rows, err := readCSV(csvPath)
	if err != nil {
		return "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := sheetNameFor(stem)
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return "", fmt.Errorf("failed to name export sheet: %w", err)
	}

	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return "", fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	outPath := filepath.Join(outDir, fmt.Sprintf("IP PPV %s_%s.xlsx", eventName, fileNumber))
	if err := f.SaveAs(outPath); err != nil {
		return "", fmt.Errorf("failed to save workbook: %w", err)
	}
	return outPath, nil
}

// ReadExport loads the first sheet of the validation workbook as a
// billing export.
func ReadExport(path string) (*extract.Export, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in %s", path)
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheetName, err)
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("sheet %q has no header row", sheetName)
	}
	return extract.NewExport(rows[0], rows[1:])
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("export %s is empty", path)
	}
	return rows, nil
}

// sheetNameFor trims a file stem to the 31 characters a sheet name may
// hold.
func sheetNameFor(stem string) string {
	if len(stem) > 31 {
		return stem[:31]
	}
	return stem
}
