package excel

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"homerange/domain/dataset"

	"github.com/xuri/excelize/v2"
)

// WriteRecords writes records as a two-column table. The format follows the
// file extension, as with NewDataReader.
func WriteRecords(path, groupColumn, valueColumn string, records []dataset.Record) error {
	if strings.ToLower(filepath.Ext(path)) == ".csv" {
		return writeCSV(path, groupColumn, valueColumn, records)
	}
	return writeXLSX(path, groupColumn, valueColumn, records)
}

func writeCSV(path, groupColumn, valueColumn string, records []dataset.Record) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write([]string{groupColumn, valueColumn}); err != nil {
		return err
	}
	for _, r := range records {
		if err := w.Write([]string{string(r.Group), strconv.FormatFloat(r.Value, 'f', -1, 64)}); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to write CSV file: %w", err)
	}
	return nil
}

func writeXLSX(path, groupColumn, valueColumn string, records []dataset.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"
	if err := f.SetSheetRow(sheet, "A1", &[]interface{}{groupColumn, valueColumn}); err != nil {
		return err
	}
	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &[]interface{}{string(r.Group), r.Value}); err != nil {
			return err
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save Excel file: %w", err)
	}
	return nil
}
