package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"homerange/domain/dataset"
	"homerange/internal"

	"github.com/xuri/excelize/v2"
)

// DataReader handles reading Excel and CSV files
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
	sheet    string
	logger   *internal.Logger
}

// NewDataReader creates a new data reader that handles both Excel and CSV files
func NewDataReader(filePath string) *DataReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &DataReader{
		filePath: filePath,
		fileType: fileType,
		logger:   internal.DefaultLogger.WithComponent("DataReader"),
	}
}

// ReadData reads data from Excel or CSV files into structured format
func (r *DataReader) ReadData() (*ExcelData, error) {
	r.logger.Debug("Starting to read %s file: %s", r.fileType, r.filePath)

	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}

	switch r.fileType {
	case "csv":
		return r.readCSVData()
	case "xlsx":
		return r.readExcelData()
	default:
		return nil, fmt.Errorf("unsupported file type: %s", r.fileType)
	}
}

// readExcelData reads the configured sheet, or the first one
func (r *DataReader) readExcelData() (*ExcelData, error) {
	startTime := time.Now()
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheet := r.sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("Excel file has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	r.logger.Debug("Sheet %s read in %.2fms (%d rows)", sheet, float64(time.Since(startTime).Nanoseconds())/1e6, len(rows))

	if len(rows) < 2 {
		return nil, fmt.Errorf("Excel file must have at least a header row and one data row")
	}

	return r.processRows(rows)
}

// readCSVData reads CSV data into structured format
func (r *DataReader) readCSVData() (*ExcelData, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	readStart := time.Now()
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	r.logger.Debug("CSV file read in %.2fms (%d rows)", float64(time.Since(readStart).Nanoseconds())/1e6, len(rows))

	if len(rows) < 2 {
		return nil, fmt.Errorf("CSV file must have at least a header row and one data row")
	}

	return r.processRows(rows)
}

// processRows converts raw string rows into ExcelData format
func (r *DataReader) processRows(rows [][]string) (*ExcelData, error) {
	headerRow := rows[0]
	headers := make([]string, len(headerRow))
	for i, header := range headerRow {
		// Strip a UTF-8 byte order mark left by spreadsheet exports
		headers[i] = strings.TrimSpace(strings.TrimPrefix(header, "\ufeff"))
	}

	dataRows := make([]RawRowData, 0, len(rows)-1)
	for i := 1; i < len(rows); i++ {
		rowData := make(RawRowData, len(headers))
		for j, cell := range rows[i] {
			if j < len(headers) {
				rowData[headers[j]] = strings.TrimSpace(cell)
			}
		}
		dataRows = append(dataRows, rowData)
	}

	r.logger.Debug("%s file processed (%d columns, %d rows)",
		strings.ToUpper(r.fileType), len(headers), len(dataRows))

	return &ExcelData{
		Headers: headers,
		Rows:    dataRows,
	}, nil
}

// FileSource loads a home-range Dataset from a local CSV or XLSX file
type FileSource struct {
	config ExcelConfig
}

// NewFileSource creates a file source; empty column names fall back to the defaults
func NewFileSource(config ExcelConfig) *FileSource {
	defaults := DefaultExcelConfig()
	if config.GroupColumn == "" {
		config.GroupColumn = defaults.GroupColumn
	}
	if config.ValueColumn == "" {
		config.ValueColumn = defaults.ValueColumn
	}
	return &FileSource{config: config}
}

// Name returns the file path
func (s *FileSource) Name() string {
	return s.config.FilePath
}

// Load reads the file and builds a Dataset from the group and value columns
func (s *FileSource) Load(ctx context.Context) (*dataset.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.config.FilePath == "" {
		return nil, fmt.Errorf("no data file configured")
	}

	reader := NewDataReader(s.config.FilePath)
	reader.sheet = s.config.Sheet
	data, err := reader.ReadData()
	if err != nil {
		return nil, err
	}
	return ToDataset(data, s.config.GroupColumn, s.config.ValueColumn)
}

// ToDataset extracts the group and value columns. Row numbers in errors are
// 1-based file rows, so the header is row 1.
func ToDataset(data *ExcelData, groupColumn, valueColumn string) (*dataset.Dataset, error) {
	for _, col := range []string{groupColumn, valueColumn} {
		if !data.HasColumn(col) {
			return nil, fmt.Errorf("missing required column %q (found %s)", col, strings.Join(data.Headers, ", "))
		}
	}

	records := make([]dataset.Record, 0, len(data.Rows))
	for i, row := range data.Rows {
		line := i + 2
		group := row[groupColumn]
		if group == "" {
			return nil, fmt.Errorf("row %d: blank %s", line, groupColumn)
		}
		raw := row[valueColumn]
		if raw == "" {
			return nil, fmt.Errorf("row %d: blank %s", line, valueColumn)
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: %s %q is not a number", line, valueColumn, raw)
		}
		records = append(records, dataset.Record{Group: dataset.GroupLabel(group), Value: value})
	}

	ds, err := dataset.New(records)
	if err != nil {
		return nil, fmt.Errorf("invalid data file: %w", err)
	}
	return ds, nil
}
