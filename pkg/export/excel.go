package export

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"
)

const excelSheet = "Report"

// ExcelExporter renders datasets into an .xlsx workbook with a single sheet.
type ExcelExporter struct{}

// NewExcelExporter constructs an Excel exporter.
func NewExcelExporter() *ExcelExporter {
	return &ExcelExporter{}
}

func (e *ExcelExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}
func (e *ExcelExporter) Extension() string { return "xlsx" }

// Render writes headers on row 1 and values below. Numeric strings are stored as numbers.
func (e *ExcelExporter) Render(data Dataset) ([]byte, error) {
	if err := requireHeaders(data, "excel"); err != nil {
		return nil, err
	}
	f := excelize.NewFile()
	defer f.Close() //nolint:errcheck

	if err := f.SetSheetName("Sheet1", excelSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]interface{}, len(data.Headers))
	for i, h := range data.Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(excelSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("write excel headers: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		last, _ := excelize.CoordinatesToCellName(len(data.Headers), 1)
		_ = f.SetCellStyle(excelSheet, "A1", last, bold)
	}

	for r, row := range data.Rows {
		values := make([]interface{}, len(data.Headers))
		for i, h := range data.Headers {
			values[i] = cellValue(row[h])
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return nil, fmt.Errorf("resolve excel cell: %w", err)
		}
		if err := f.SetSheetRow(excelSheet, cell, &values); err != nil {
			return nil, fmt.Errorf("write excel row: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("render excel: %w", err)
	}
	return buf.Bytes(), nil
}

func cellValue(raw string) interface{} {
	if raw == "" {
		return raw
	}
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		return n
	}
	return raw
}
