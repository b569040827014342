package excel

// ExcelConfig holds configuration for a spreadsheet data source
type ExcelConfig struct {
	FilePath string `json:"file_path"`
	Sheet    string `json:"sheet"`    // XLSX sheet to read; empty means the first sheet
	Comma    rune   `json:"comma"`    // CSV field delimiter; zero means ','
	MaxRows  int    `json:"max_rows"` // 0 means unlimited
}

// DefaultExcelConfig returns sensible defaults for spreadsheet loading
func DefaultExcelConfig(path string) ExcelConfig {
	return ExcelConfig{
		FilePath: path,
		Comma:    ',',
	}
}
