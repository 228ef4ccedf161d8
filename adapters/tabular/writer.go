package tabular

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"vitrine/domain/sales"
	"vitrine/internal/errors"

	"github.com/xuri/excelize/v2"
)

const factSheet = "fact_orders"

// XLSXSink exports fact tables to a workbook path.
type XLSXSink struct {
	Path string
}

// NewXLSXSink creates a sink writing to path.
func NewXLSXSink(path string) *XLSXSink {
	return &XLSXSink{Path: path}
}

// Store writes the table to the configured path.
func (s *XLSXSink) Store(_ context.Context, table *sales.Table) error {
	return WriteFactXLSX(table, s.Path)
}

// WriteFactXLSX writes the fact table to path as a single-sheet workbook
// with a header row. Parent directories are created; write errors are fatal.
func WriteFactXLSX(table *sales.Table, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.ExportFailed("could not create output directory", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", factSheet); err != nil {
		return errors.ExportFailed("could not prepare workbook", err)
	}

	headers := sales.FactColumnNames(table.Enriched)
	cells := make([]interface{}, len(headers))
	for i, h := range headers {
		cells[i] = h
	}
	if err := f.SetSheetRow(factSheet, "A1", &cells); err != nil {
		return errors.ExportFailed("could not write header row", err)
	}

	for i := range table.Rows {
		vals := table.Rows[i].Values(table.Enriched)
		ref := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(factSheet, ref, &vals); err != nil {
			return errors.ExportFailed(fmt.Sprintf("could not write row %d", i+1), err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return errors.ExportFailed(fmt.Sprintf("could not save workbook to %s", path), err)
	}
	return nil
}
