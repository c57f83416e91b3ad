// Package refsheet loads the authoritative order list from an xlsx export.
// Column headers vary between marketplace exports (and between Italian and
// English templates), so columns are located by a case-insensitive alias
// table rather than by position.
package refsheet

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"labelsort/internal/models"
)

// ErrMissingColumns is returned when a required column cannot be located.
var ErrMissingColumns = errors.New("missing required columns")

// columnAliases maps each required column to the header spellings seen in
// real exports.
var columnAliases = map[string][]string{
	"order_id": {"id ordine marketplace", "order id", "id_ordine", "orderid", "id ordine"},
	"tracking": {"tracking", "tracking number", "trackingnumber", "tracking_number"},
	"carrier":  {"corriere", "carrier", "courier", "vettore"},
}

// ReferenceData is the parsed order list plus parse diagnostics.
type ReferenceData struct {
	Records   []models.ReferenceRecord
	TotalRows int
	Columns   []string
	Warnings  []string
}

// Load reads the order list from an xlsx file on disk.
func Load(path string) (*ReferenceData, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer func() { _ = f.Close() }()

	return parse(f)
}

// LoadReader reads the order list from an in-memory xlsx stream, e.g. an
// HTTP upload.
func LoadReader(r io.Reader) (*ReferenceData, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer func() { _ = f.Close() }()

	return parse(f)
}

func parse(f *excelize.File) (*ReferenceData, error) {
	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: sheet %q is empty", ErrMissingColumns, sheet)
	}

	header := rows[0]
	orderIDCol := findColumn(header, "order_id")
	trackingCol := findColumn(header, "tracking")
	carrierCol := findColumn(header, "carrier")

	var missing []string
	if orderIDCol < 0 {
		missing = append(missing, "order id")
	}
	if trackingCol < 0 {
		missing = append(missing, "tracking")
	}
	if carrierCol < 0 {
		missing = append(missing, "carrier")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s (found: %s)",
			ErrMissingColumns, strings.Join(missing, ", "), strings.Join(header, ", "))
	}

	data := &ReferenceData{
		TotalRows: len(rows) - 1,
		Columns:   header,
	}

	for i, row := range rows[1:] {
		tracking := models.NormalizeTracking(cell(row, trackingCol))
		if tracking == "" {
			// Excel rows are 1-based and the header occupies row 1.
			data.Warnings = append(data.Warnings, fmt.Sprintf("row %d: empty tracking, skipped", i+2))
			continue
		}

		orderID := strings.TrimSpace(cell(row, orderIDCol))
		rec := models.ReferenceRecord{
			RowIndex: i,
			OrderID:  orderID,
			Tracking: tracking,
			Carrier:  strings.TrimSpace(cell(row, carrierCol)),
		}
		if n, ok := models.ParseNumericSuffix(orderID); ok {
			rec.NumericSuffix = &n
		}

		data.Records = append(data.Records, rec)
	}

	return data, nil
}

// findColumn locates a required column by its alias table.
func findColumn(header []string, kind string) int {
	for i, name := range header {
		normalized := strings.ToLower(strings.TrimSpace(name))
		for _, alias := range columnAliases[kind] {
			if normalized == alias {
				return i
			}
		}
	}
	return -1
}

// cell returns the trimmed cell value, tolerating short rows.
func cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}
