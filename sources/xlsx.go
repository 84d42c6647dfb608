package sources

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

func init() {
	Register(".xlsx", xlsxDriver{})
}

type xlsxDriver struct{}

func (xlsxDriver) Open(path string) (Reader, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel source: %w", err)
	}
	r, err := NewXLSXReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return r, nil
}

// XLSXReader reads the rows of the first sheet of a workbook.
// Blank rows are skipped and data rows are padded or truncated to the header width,
// since excelize drops trailing empty cells.
type XLSXReader struct {
	file  *excelize.File
	rows  *excelize.Rows
	width int
}

var _ Reader = (*XLSXReader)(nil)

// NewXLSXReader reads the first sheet of f. Closing the reader closes f.
func NewXLSXReader(f *excelize.File) (*XLSXReader, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets found in Excel file")
	}
	rows, err := f.Rows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to get rows iterator for sheet %s: %w", sheets[0], err)
	}
	return &XLSXReader{file: f, rows: rows}, nil
}

// Read implements Reader.
func (x *XLSXReader) Read() ([]string, error) {
	for x.rows.Next() {
		cols, err := x.rows.Columns()
		if err != nil {
			return nil, fmt.Errorf("failed to read Excel row: %w", err)
		}
		if isBlank(cols) {
			continue
		}
		if x.width == 0 {
			x.width = len(cols)
			return cols, nil
		}
		return padRow(cols, x.width), nil
	}
	if err := x.rows.Error(); err != nil {
		return nil, fmt.Errorf("failed to iterate Excel rows: %w", err)
	}
	if x.width == 0 {
		return nil, ErrEmptySource
	}
	return nil, io.EOF
}

// Close implements Reader.
func (x *XLSXReader) Close() error {
	x.rows.Close()
	return x.file.Close()
}

func isBlank(cols []string) bool {
	for _, c := range cols {
		if c != "" {
			return false
		}
	}
	return true
}

// padRow pads or truncates the row to match the target length.
func padRow(row []string, targetLen int) []string {
	if len(row) < targetLen {
		row = append(row, make([]string, targetLen-len(row))...)
	} else if len(row) > targetLen {
		row = row[:targetLen]
	}
	return row
}
