package tabular

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"vitrine/internal/errors"

	"github.com/xuri/excelize/v2"
)

// Extract is one raw tabular file projected onto its required columns.
// Cells stay strings; typed parsing happens in the fact-table loader.
type Extract struct {
	File    string
	Columns []string
	Rows    [][]string
}

// Col returns the index of a column in the projection, or -1.
func (e *Extract) Col(name string) int {
	for i, c := range e.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Reader reads CSV and XLSX extracts. Extra columns in the file are
// ignored; a missing required column is fatal.
type Reader struct{}

// NewReader creates an extract reader.
func NewReader() *Reader {
	return &Reader{}
}

// Read loads the file at path and projects it onto the required columns.
func (r *Reader) Read(path string, required []string) (*Extract, error) {
	name := filepath.Base(path)

	if _, err := os.Stat(path); err != nil {
		return nil, errors.DataLoadFailed(fmt.Sprintf("extract %s not found", name), err)
	}

	var raw [][]string
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		raw, err = readCSVRows(path)
	case ".xlsx":
		raw, err = readXLSXRows(path)
	default:
		return nil, errors.DataLoadFailed(fmt.Sprintf("extract %s: unsupported file type", name), nil)
	}
	if err != nil {
		return nil, errors.DataLoadFailed(fmt.Sprintf("extract %s could not be read", name), err)
	}

	if len(raw) < 1 {
		return nil, errors.DataLoadFailed(fmt.Sprintf("extract %s has no header row", name), nil)
	}

	return project(name, raw, required)
}

func readCSVRows(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return csv.NewReader(file).ReadAll()
}

func readXLSXRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	return f.GetRows(sheets[0])
}

// project keeps only the required columns, in required order. Short rows
// (possible in XLSX output) pad with empty cells.
func project(name string, raw [][]string, required []string) (*Extract, error) {
	header := raw[0]
	index := make([]int, len(required))
	for i, col := range required {
		index[i] = -1
		for j, h := range header {
			if strings.TrimSpace(h) == col {
				index[i] = j
				break
			}
		}
		if index[i] == -1 {
			return nil, errors.ColumnMissing(name, col)
		}
	}

	rows := make([][]string, 0, len(raw)-1)
	for _, src := range raw[1:] {
		row := make([]string, len(required))
		for i, j := range index {
			if j < len(src) {
				row[i] = strings.TrimSpace(src[j])
			}
		}
		rows = append(rows, row)
	}

	return &Extract{File: name, Columns: required, Rows: rows}, nil
}
