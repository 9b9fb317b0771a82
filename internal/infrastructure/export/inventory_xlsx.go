// Package export genera la foto de inventario de una tienda en XLSX.
package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/stockroom-api/internal/application/ports"
)

const sheetName = "Inventario"

var headers = []string{"Variante", "SKU", "Código QR", "Talla", "Color", "Estado", "Cantidad", "Actualizado"}

var _ ports.SnapshotExporter = (*XLSXExporter)(nil)

// XLSXExporter implementa ports.SnapshotExporter con excelize.
type XLSXExporter struct {
	now func() time.Time
}

func NewXLSXExporter() *XLSXExporter {
	return &XLSXExporter{now: time.Now}
}

// ExportInventory escribe una fila por variante y un total al final.
func (e *XLSXExporter) ExportInventory(storeName string, rows []ports.SnapshotRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("export: renombrar hoja: %w", err)
	}

	titleStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 13}})
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})

	_ = f.SetCellValue(sheetName, "A1", fmt.Sprintf("Inventario %s - %s", storeName, e.now().Format("2006-01-02 15:04")))
	_ = f.SetCellStyle(sheetName, "A1", "A1", titleStyle)

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 3)
		_ = f.SetCellValue(sheetName, cell, h)
		_ = f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	var total int64
	for i, r := range rows {
		row := i + 4
		values := []any{r.VariantID, r.SKU, r.QRCode, r.Size, r.Color, r.Status, r.Quantity, r.UpdatedAt.Format(time.RFC3339)}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, fmt.Errorf("export: escribir celda %s: %w", cell, err)
			}
		}
		total += r.Quantity
	}

	totalRow := len(rows) + 4
	boldStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	_ = f.SetCellValue(sheetName, fmt.Sprintf("A%d", totalRow), "Total")
	_ = f.SetCellValue(sheetName, fmt.Sprintf("G%d", totalRow), total)
	_ = f.SetCellStyle(sheetName, fmt.Sprintf("A%d", totalRow), fmt.Sprintf("H%d", totalRow), boldStyle)

	widths := []float64{38, 24, 20, 8, 12, 10, 10, 22}
	for i, w := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetColWidth(sheetName, col, col, w)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("export: generar xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
