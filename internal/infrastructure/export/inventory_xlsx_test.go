package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/stockroom-api/internal/application/ports"
)

func TestExportInventory(t *testing.T) {
	e := NewXLSXExporter()
	e.now = func() time.Time { return time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC) }

	data, err := e.ExportInventory("Bodega Norte", []ports.SnapshotRow{
		{VariantID: "v1", SKU: "TSH-M", QRCode: "INV-000000000001", Size: "M", Status: "active", Quantity: 30},
		{VariantID: "v2", SKU: "TSH-L", QRCode: "INV-000000000002", Size: "L", Status: "active", Quantity: 12},
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	title, _ := f.GetCellValue(sheetName, "A1")
	assert.Equal(t, "Inventario Bodega Norte - 2026-03-01 09:30", title)

	header, _ := f.GetCellValue(sheetName, "B3")
	assert.Equal(t, "SKU", header)

	sku, _ := f.GetCellValue(sheetName, "B4")
	assert.Equal(t, "TSH-M", sku)

	total, _ := f.GetCellValue(sheetName, "G6")
	assert.Equal(t, "42", total)
}
