package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	shareddomain "tienda/internal/shared/domain"
)

func testRange(t *testing.T) shareddomain.DateRange {
	t.Helper()
	dateRange, err := shareddomain.NewDateRangeFromDays(7)
	require.NoError(t, err)
	return dateRange
}

func TestNewExportJobValidatesFormatAndType(t *testing.T) {
	dateRange := testRange(t)

	job, err := NewExportJob(ExportFormatParquet, ExportTypeSales, dateRange)
	require.NoError(t, err)
	assert.Equal(t, ExportFormatParquet, job.Format())
	assert.Equal(t, ExportTypeSales, job.ExportType())

	_, err = NewExportJob("xml", ExportTypeSales, dateRange)
	assert.Error(t, err)

	_, err = NewExportJob(ExportFormatCSV, "inventory", dateRange)
	assert.Error(t, err)
}

func TestSaleExportRowCSVColumnsMatchHeaders(t *testing.T) {
	saleDate := time.Date(2026, 8, 28, 14, 30, 0, 0, time.UTC)
	row := NewSaleExportRow(
		"sale-1", "order-1", "owner-1", "article-1",
		"Teclado mecánico", "Periféricos",
		2, 10.50, 21.00, 25.00,
		saleDate,
	)

	csvRow := row.ToCSVRow()
	assert.Len(t, csvRow, len(CSVHeaders()))

	assert.Equal(t, "sale-1", csvRow[0])
	assert.Equal(t, "Teclado mecánico", csvRow[4])
	assert.Equal(t, "2", csvRow[6])
	assert.Equal(t, "10.50", csvRow[7])
	assert.Equal(t, "21.00", csvRow[8])
	assert.Equal(t, "25.00", csvRow[9])
	assert.Equal(t, "2026-08-28 14:30:00", csvRow[10], "millisecond timestamp round-trips to UTC")
}

func TestSaleExportRowStoresMillisecondTimestamp(t *testing.T) {
	saleDate := time.Date(2026, 8, 28, 14, 30, 0, 0, time.UTC)
	row := NewSaleExportRow("s", "o", "w", "a", "n", "c", 1, 1, 1, 1, saleDate)

	assert.Equal(t, saleDate.UnixMilli(), row.SaleDate)
}
