package sources

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

const utf8BOM = "\ufeff"

func init() {
	Register(".csv", csvDriver{})
}

type csvDriver struct{}

func (csvDriver) Open(path string) (Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open source: %w", err)
	}
	return newCSVReader(f, f), nil
}

// CSVReader reads comma separated records.
// Data records are padded or truncated to the width of the header, so a short row reads as blank trailing fields.
type CSVReader struct {
	reader *csv.Reader
	closer io.Closer
	width  int
}

var _ Reader = (*CSVReader)(nil)

// NewCSVReader wraps r. The header row is the first record; a leading UTF-8 BOM is dropped.
func NewCSVReader(r io.Reader) *CSVReader {
	return newCSVReader(r, nil)
}

func newCSVReader(r io.Reader, closer io.Closer) *CSVReader {
	reader := csv.NewReader(bufio.NewReaderSize(r, 65536))
	reader.FieldsPerRecord = -1
	return &CSVReader{reader: reader, closer: closer}
}

// Read implements Reader.
func (c *CSVReader) Read() ([]string, error) {
	record, err := c.reader.Read()
	if err != nil {
		if err == io.EOF {
			if c.width == 0 {
				return nil, ErrEmptySource
			}
			return nil, io.EOF
		}
		return nil, fmt.Errorf("failed to read CSV row: %w", err)
	}
	if c.width == 0 {
		c.width = len(record)
		record[0] = strings.TrimPrefix(record[0], utf8BOM)
		return record, nil
	}
	return padRow(record, c.width), nil
}

// Close implements Reader.
func (c *CSVReader) Close() error {
	if c.closer == nil {
		return nil
	}
	return c.closer.Close()
}
