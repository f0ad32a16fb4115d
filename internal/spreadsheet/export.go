package spreadsheet

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/JonMunkholm/schooladmin/internal/core"
)

// CSVExporter writes a tab's columns as CSV. The header row holds the
// column labels and each cell the column's rendered value.
type CSVExporter struct {
	Columns []core.Column
	// Comma overrides the delimiter; zero means ','.
	Comma rune
	// BOM prefixes the output with a UTF-8 byte order mark so Excel opens
	// accented text correctly.
	BOM bool
}

// NewCSVExporter returns a CSV exporter with a BOM.
func NewCSVExporter(columns []core.Column) *CSVExporter {
	return &CSVExporter{Columns: columns, BOM: true}
}

// FileExtension implements core.Exporter.
func (e *CSVExporter) FileExtension() string { return string(FormatCSV) }

// ContentType implements core.Exporter.
func (e *CSVExporter) ContentType() string { return "text/csv; charset=utf-8" }

// Export implements core.Exporter.
func (e *CSVExporter) Export(w io.Writer, items []core.Entity) error {
	if e.BOM {
		if _, err := w.Write(byteOrderMark); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
	}

	cw := csv.NewWriter(w)
	if e.Comma != 0 {
		cw.Comma = e.Comma
	}
	if err := cw.Write(headerRow(e.Columns)); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	for _, item := range items {
		if err := cw.Write(cells(e.Columns, item)); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

const exportSheet = "Sheet1"

// XLSXExporter writes a tab's columns as a single-sheet Excel workbook.
type XLSXExporter struct {
	Columns []core.Column
}

// NewXLSXExporter returns an Excel exporter over columns.
func NewXLSXExporter(columns []core.Column) *XLSXExporter {
	return &XLSXExporter{Columns: columns}
}

// FileExtension implements core.Exporter.
func (e *XLSXExporter) FileExtension() string { return string(FormatXLSX) }

// ContentType implements core.Exporter.
func (e *XLSXExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Export implements core.Exporter.
func (e *XLSXExporter) Export(w io.Writer, items []core.Entity) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	header := headerRow(e.Columns)
	if err := setRow(f, 1, header); err != nil {
		return err
	}
	for i, item := range items {
		if err := setRow(f, i+2, cells(e.Columns, item)); err != nil {
			return err
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	if err := f.SetRowStyle(exportSheet, 1, 1, bold); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	vals := make([]interface{}, len(values))
	for i, v := range values {
		vals[i] = v
	}
	if err := f.SetSheetRow(exportSheet, cell, &vals); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func headerRow(columns []core.Column) []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = c.Label
	}
	return out
}

func cells(columns []core.Column, item core.Entity) []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = c.Cell(item)
	}
	return out
}
