package sources

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func readAll(t *testing.T, r Reader) [][]string {
	t.Helper()
	var out [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			return out
		}
		require.NoError(t, err)
		out = append(out, rec)
	}
}

func TestCSVReader(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected [][]string
	}{
		{"HeaderOnly", "a,b\n", [][]string{{"a", "b"}}},
		{"Rows", "a,b\n1,2\n3,4\n", [][]string{{"a", "b"}, {"1", "2"}, {"3", "4"}}},
		{"BOM", "\ufeffKey,Name\n1,x\n", [][]string{{"Key", "Name"}, {"1", "x"}}},
		{"EmptyLinesSkipped", "a,b\n\n1,2\n\n", [][]string{{"a", "b"}, {"1", "2"}}},
		{"BlankFieldsKept", "a,b\n,\n", [][]string{{"a", "b"}, {"", ""}}},
		{"Quoted", "a,b\n\"x, y\",2\n", [][]string{{"a", "b"}, {"x, y", "2"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewCSVReader(strings.NewReader(tt.input))
			assert.Equal(t, tt.expected, readAll(t, r))
			assert.NoError(t, r.Close())
		})
	}
}

func TestCSVReaderEmpty(t *testing.T) {
	_, err := NewCSVReader(strings.NewReader("")).Read()
	assert.ErrorIs(t, err, ErrEmptySource)
}

func TestCSVReaderRowWidth(t *testing.T) {
	r := NewCSVReader(strings.NewReader("a,b,c\n1,2,3\n4\n5,6,7,8\n,\n"))

	assert.Equal(t, [][]string{
		{"a", "b", "c"},
		{"1", "2", "3"},
		{"4", "", ""},
		{"5", "6", "7"},
		{"", "", ""},
	}, readAll(t, r))
}

func TestCSVReaderMalformedRow(t *testing.T) {
	r := NewCSVReader(strings.NewReader("a,b\n1,x\"y\n"))

	_, err := r.Read()
	require.NoError(t, err)
	_, err = r.Read()
	assert.ErrorIs(t, err, csv.ErrBareQuote)
	assert.ErrorContains(t, err, "failed to read CSV row")
}

func TestOpenByExtension(t *testing.T) {
	assert.Equal(t, []string{".csv", ".xlsx"}, Extensions())

	dir := t.TempDir()
	path := filepath.Join(dir, "Territory.CSV")
	require.NoError(t, os.WriteFile(path, []byte("SalesTerritoryKey,Region\n1,Northwest\n"), 0644))

	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()
	assert.Equal(t, [][]string{{"SalesTerritoryKey", "Region"}, {"1", "Northwest"}}, readAll(t, r))

	_, err = Open(filepath.Join(dir, "data.json"))
	assert.ErrorIs(t, err, ErrUnsupportedSource)

	_, err = Open(filepath.Join(dir, "missing.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRegisterPanics(t *testing.T) {
	assert.Panics(t, func() { Register(".csv", csvDriver{}) })
	assert.Panics(t, func() { Register(".tsv", nil) })
}

func TestXLSXReader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "territory.xlsx")

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"SalesTerritoryKey", "Region", "Country", "Continent"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{1, "Northwest", "United States", "North America"}))
	// Row 3 left blank on purpose.
	require.NoError(t, f.SetSheetRow("Sheet1", "A4", &[]interface{}{2, "Northeast"}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, [][]string{
		{"SalesTerritoryKey", "Region", "Country", "Continent"},
		{"1", "Northwest", "United States", "North America"},
		{"2", "Northeast", "", ""},
	}, readAll(t, r))
}

func TestXLSXReaderEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()

	_, err = r.Read()
	assert.ErrorIs(t, err, ErrEmptySource)
}

func TestPadRow(t *testing.T) {
	assert.Equal(t, []string{"a", "", ""}, padRow([]string{"a"}, 3))
	assert.Equal(t, []string{"a", "b"}, padRow([]string{"a", "b", "c"}, 2))
	assert.Equal(t, []string{"a"}, padRow([]string{"a"}, 1))
}
