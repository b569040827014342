package excel

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"hypokit/domain/dataset"
)

// WriteTable saves a table as .xlsx, .csv or .tsv depending on the file extension
func WriteTable(path string, table *dataset.Table) error {
	if table == nil {
		return fmt.Errorf("table cannot be nil")
	}
	records := make([][]string, 0, len(table.Rows)+1)
	records = append(records, table.Headers)
	for _, row := range table.Rows {
		record := make([]string, len(table.Headers))
		for i, h := range table.Headers {
			record[i] = row[h]
		}
		records = append(records, record)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		return writeDelimited(path, ',', records)
	case ".tsv":
		return writeDelimited(path, '\t', records)
	case ".xlsx":
		return writeWorkbook(path, records)
	default:
		return fmt.Errorf("unsupported output extension %q (use .xlsx, .csv or .tsv)", filepath.Ext(path))
	}
}

func writeDelimited(path string, comma rune, records [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Comma = comma
	if err := w.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

func writeWorkbook(path string, records [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, record := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := make([]interface{}, len(record))
		for j, v := range record {
			values[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}
