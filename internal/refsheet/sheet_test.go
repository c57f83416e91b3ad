package refsheet

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// buildSheet writes an xlsx with the given rows to an in-memory buffer.
func buildSheet(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		for j, value := range row {
			cellName, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cellName, value))
		}
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return &buf
}

func TestLoadReader(t *testing.T) {
	buf := buildSheet(t, [][]interface{}{
		{"ID Ordine Marketplace", "Tracking Number", "Corriere"},
		{"3501512414_ORIGINS_5", "633 270 2261", "MyDHL"},
		{"3501512414_ORIGINS_99", "1ZFC25776800341731", "UPS"},
	})

	data, err := LoadReader(buf)
	require.NoError(t, err)

	assert.Equal(t, 2, data.TotalRows)
	assert.Empty(t, data.Warnings)
	require.Len(t, data.Records, 2)

	first := data.Records[0]
	assert.Equal(t, 0, first.RowIndex)
	assert.Equal(t, "3501512414_ORIGINS_5", first.OrderID)
	assert.Equal(t, "6332702261", first.Tracking) // normalized
	assert.Equal(t, "MyDHL", first.Carrier)
	require.NotNil(t, first.NumericSuffix)
	assert.Equal(t, 5, *first.NumericSuffix)

	second := data.Records[1]
	require.NotNil(t, second.NumericSuffix)
	assert.Equal(t, 99, *second.NumericSuffix)
}

func TestLoadReaderEnglishHeaders(t *testing.T) {
	buf := buildSheet(t, [][]interface{}{
		{"Order ID", "Tracking", "Carrier"},
		{"ORD-1", "6332702261", "DHL"},
	})

	data, err := LoadReader(buf)
	require.NoError(t, err)
	require.Len(t, data.Records, 1)
	assert.Equal(t, "ORD-1", data.Records[0].OrderID)
}

func TestLoadReaderHeaderAliasesAreCaseInsensitive(t *testing.T) {
	buf := buildSheet(t, [][]interface{}{
		{"  ORDER ID ", "TRACKING_NUMBER", "vettore"},
		{"ORD-1", "6332702261", "DHL"},
	})

	data, err := LoadReader(buf)
	require.NoError(t, err)
	require.Len(t, data.Records, 1)
}

func TestLoadReaderMissingColumns(t *testing.T) {
	buf := buildSheet(t, [][]interface{}{
		{"Order ID", "Destination"},
		{"ORD-1", "Roma"},
	})

	_, err := LoadReader(buf)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingColumns)
	assert.Contains(t, err.Error(), "tracking")
	assert.Contains(t, err.Error(), "carrier")
}

func TestLoadReaderSkipsEmptyTrackings(t *testing.T) {
	buf := buildSheet(t, [][]interface{}{
		{"Order ID", "Tracking", "Carrier"},
		{"ORD-1", "6332702261", "DHL"},
		{"ORD-2", "", "DHL"},
		{"ORD-3", "1ZFC25776800341731", "UPS"},
	})

	data, err := LoadReader(buf)
	require.NoError(t, err)

	assert.Equal(t, 3, data.TotalRows)
	require.Len(t, data.Records, 2)
	require.Len(t, data.Warnings, 1)
	// Warnings use Excel row numbers: header is row 1, the empty row is 3.
	assert.Contains(t, data.Warnings[0], "row 3")

	// RowIndex still counts data rows including the skipped one.
	assert.Equal(t, 0, data.Records[0].RowIndex)
	assert.Equal(t, 2, data.Records[1].RowIndex)
}

func TestLoadReaderNumericTrackingCell(t *testing.T) {
	// Spreadsheets often store bare digit trackings as numbers.
	buf := buildSheet(t, [][]interface{}{
		{"Order ID", "Tracking", "Carrier"},
		{"ORD-1", 6332702261, "DHL"},
	})

	data, err := LoadReader(buf)
	require.NoError(t, err)
	require.Len(t, data.Records, 1)
	assert.Equal(t, "6332702261", data.Records[0].Tracking)
}

func TestLoadReaderNoSuffix(t *testing.T) {
	buf := buildSheet(t, [][]interface{}{
		{"Order ID", "Tracking", "Carrier"},
		{"ORIGINS_FINAL", "6332702261", "DHL"},
	})

	data, err := LoadReader(buf)
	require.NoError(t, err)
	require.Len(t, data.Records, 1)
	assert.Nil(t, data.Records[0].NumericSuffix)
}

func TestLoadReaderNotASpreadsheet(t *testing.T) {
	_, err := LoadReader(bytes.NewReader([]byte("%PDF-1.7 not a zip")))
	require.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("testdata/does-not-exist.xlsx")
	require.Error(t, err)
}
