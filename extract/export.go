package extract

import (
	"fmt"
	"strconv"
	"strings"
)

// Column names the extraction contract depends on. The export may carry
// any number of additional columns; they ride along untouched.
const (
	ColBillingEventID = "Billing Event Id"
	ColSourceID       = "Source Id"
	ColCorp           = "Corp"
)

// reservedCorpPrefixes mark corp codes that never take part in
// validation, regardless of any other match.
var reservedCorpPrefixes = []string{"8069", "8045"}

// ReservedCorp reports whether a corp code starts with a reserved prefix.
func ReservedCorp(code string) bool {
	for _, prefix := range reservedCorpPrefixes {
		if strings.HasPrefix(code, prefix) {
			return true
		}
	}
	return false
}

// Export is the billing export materialized in memory. Rows are never
// mutated; extraction only selects.
type Export struct {
	Header []string
	Rows   [][]string
	cols   map[string]int
}

// NewExport wraps raw export rows, verifying the columns extraction
// needs are present.
func NewExport(header []string, rows [][]string) (*Export, error) {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{ColBillingEventID, ColSourceID, ColCorp} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("export is missing required column %q", required)
		}
	}
	return &Export{Header: header, Rows: rows, cols: cols}, nil
}

// ColumnIndex returns the 0-based index of a named column.
func (e *Export) ColumnIndex(name string) (int, bool) {
	i, ok := e.cols[name]
	return i, ok
}

// Filter selects, in original order, the rows belonging to a tier: the
// billing event id equals the tier's target exactly, the source id
// equals the tier's fixed constant, and the corp code carries no
// reserved prefix. An inactive tier yields nothing.
func (e *Export) Filter(t Tier) [][]string {
	if !t.Active() {
		return nil
	}

	billingIdx := e.cols[ColBillingEventID]
	sourceIdx := e.cols[ColSourceID]
	corpIdx := e.cols[ColCorp]

	var out [][]string
	for _, row := range e.Rows {
		if field(row, billingIdx) != t.BillingID {
			continue
		}
		if sourceID(field(row, sourceIdx)) != t.SourceID {
			continue
		}
		if ReservedCorp(field(row, corpIdx)) {
			continue
		}
		out = append(out, row)
	}
	return out
}

func field(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// sourceID parses the category identifier, tolerating a decimal
// rendering such as "13503.0". Unparseable values return -1, which
// matches no tier.
func sourceID(text string) int {
	if n, err := strconv.Atoi(text); err == nil {
		return n
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || f != float64(int(f)) {
		return -1
	}
	return int(f)
}
