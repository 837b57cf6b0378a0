// Package excel genera y lee planillas xlsx: existencias por ubicación y conteo físico.
package excel

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/stockmaster-api/internal/application/dto"
)

const (
	stockSheetName = "Existencias"
	countSheetName = "Conteo"
)

var stockHeader = []interface{}{"sku", "product_name", "uom", "location_code", "location_name", "quantity"}

// La columna counted_qty la completa quien cuenta; las demás no se modifican.
var countHeader = []interface{}{
	"location_id",
	"location_code",
	"product_id",
	"sku",
	"product_name",
	"uom",
	"system_qty",
	"counted_qty",
}

const (
	colLocationID = 0
	colProductID  = 2
	colCounted    = 7
)

// Sheets implementa la exportación de planillas y operations.CountSheetParser.
type Sheets struct{}

// NewSheets construye el adaptador.
func NewSheets() *Sheets { return &Sheets{} }

// StockExport escribe la planilla de existencias y devuelve los bytes del xlsx.
func (s *Sheets) StockExport(rows []dto.StockExportRow) ([]byte, error) {
	data := make([][]interface{}, 0, len(rows))
	for _, r := range rows {
		data = append(data, []interface{}{r.SKU, r.ProductName, r.UnitMeasure, r.LocationCode, r.LocationName, r.Quantity})
	}
	return writeSheet(stockSheetName, stockHeader, data)
}

// CountSheet escribe la planilla de conteo de una ubicación. counted_qty viene precargada con la
// cantidad del sistema: si no se toca, el ajuste resultante no mueve nada para ese producto.
func (s *Sheets) CountSheet(loc dto.LocationResponse, rows []dto.CountSheetRow) ([]byte, error) {
	data := make([][]interface{}, 0, len(rows))
	for _, r := range rows {
		data = append(data, []interface{}{
			loc.ID,
			loc.Code,
			r.ProductID,
			r.SKU,
			r.ProductName,
			r.UnitMeasure,
			r.SystemQty,
			r.SystemQty,
		})
	}
	return writeSheet(countSheetName, countHeader, data)
}

// ParseCountSheet lee una planilla generada por CountSheet. Filas sin product_id o con
// counted_qty vacío se ignoran. Todas las filas deben ser de la misma ubicación.
func (s *Sheets) ParseCountSheet(data []byte) (string, []dto.LineRequest, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return "", nil, fmt.Errorf("no se pudo leer el archivo (¿no es .xlsx?): %w", err)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	rows, err := f.GetRows(sheet)
	if err != nil {
		return "", nil, fmt.Errorf("leer hoja %q: %w", sheet, err)
	}
	if len(rows) < 2 {
		return "", nil, fmt.Errorf("la planilla no tiene filas de productos")
	}
	if len(rows[0]) < len(countHeader) {
		return "", nil, fmt.Errorf("formato inválido: se esperan %d columnas (location_id ... counted_qty)", len(countHeader))
	}

	var (
		locationID string
		lines      []dto.LineRequest
		seen       = map[string]int{}
	)
	for i, row := range rows[1:] {
		rowNum := i + 2
		productID := cell(row, colProductID)
		counted := cell(row, colCounted)
		if productID == "" || counted == "" {
			continue
		}
		loc := cell(row, colLocationID)
		switch {
		case loc == "":
			return "", nil, fmt.Errorf("fila %d: location_id vacío", rowNum)
		case locationID == "":
			locationID = loc
		case loc != locationID:
			return "", nil, fmt.Errorf("fila %d: la planilla mezcla ubicaciones (%s, %s)", rowNum, locationID, loc)
		}
		qty, err := strconv.ParseInt(counted, 10, 64)
		if err != nil || qty < 0 {
			return "", nil, fmt.Errorf("fila %d: counted_qty %q debe ser un entero >= 0", rowNum, counted)
		}
		if prev, dup := seen[productID]; dup {
			return "", nil, fmt.Errorf("fila %d: producto %s repetido (fila %d)", rowNum, productID, prev)
		}
		seen[productID] = rowNum
		lines = append(lines, dto.LineRequest{ProductID: productID, Quantity: qty})
	}
	if len(lines) == 0 {
		return "", nil, fmt.Errorf("la planilla no tiene cantidades contadas")
	}
	return locationID, lines, nil
}

func writeSheet(name string, header []interface{}, rows [][]interface{}) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	if err := f.SetSheetName(sheet, name); err != nil {
		return nil, fmt.Errorf("excel: renombrar hoja: %w", err)
	}
	if err := f.SetSheetRow(name, "A1", &header); err != nil {
		return nil, fmt.Errorf("excel: encabezado: %w", err)
	}
	for i, r := range rows {
		addr, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("excel: celda: %w", err)
		}
		if err := f.SetSheetRow(name, addr, &r); err != nil {
			return nil, fmt.Errorf("excel: fila %d: %w", i+2, err)
		}
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("excel: escribir: %w", err)
	}
	return buf.Bytes(), nil
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
