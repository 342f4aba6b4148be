package workbook

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"ppvcheck/extract"
)

const exportCSV = "Billing Event Id,Source Id,Corp,Price\nEVT100,13503,9001,59.99\nEVT100,12162,9002,49.99\n"

func TestFindExportCSV(t *testing.T) {
	dir := t.TempDir()

	_, err := FindExportCSV(dir)
	require.Error(t, err, "empty directory is a shape error")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.csv"), []byte(exportCSV), 0644))
	path, err := FindExportCSV(dir)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "a.csv"), path)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.csv"), []byte(exportCSV), 0644))
	_, err = FindExportCSV(dir)
	require.Error(t, err, "two exports is a shape error")
}

func TestConvertExportRoundTrip(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "vcwh_ppv_export_full_0042.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(exportCSV), 0644))

	outPath, err := ConvertExport(csvPath, dir, "Big Fight Night")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "IP PPV Big Fight Night_0042.xlsx"), outPath)

	exp, err := ReadExport(outPath)
	require.NoError(t, err)
	require.Len(t, exp.Rows, 2)

	idx, ok := exp.ColumnIndex(extract.ColBillingEventID)
	require.True(t, ok)
	require.Equal(t, "EVT100", exp.Rows[0][idx])
}

func TestConvertExportBadName(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "export.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(exportCSV), 0644))

	_, err := ConvertExport(csvPath, dir, "Big Fight Night")
	require.Error(t, err, "name without a sequence number is a shape error")
}
