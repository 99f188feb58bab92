package excel

// ExcelConfig holds configuration for a home-range file source
type ExcelConfig struct {
	FilePath    string `json:"file_path"`
	GroupColumn string `json:"group_column"`
	ValueColumn string `json:"value_column"`
	Sheet       string `json:"sheet"` // empty means the first sheet
}

// DefaultExcelConfig returns the column names used by the monkey home-range table
func DefaultExcelConfig() ExcelConfig {
	return ExcelConfig{
		GroupColumn: "sex",
		ValueColumn: "kernel95",
	}
}
