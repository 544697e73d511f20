// Package source reads spreadsheet exports into argument rows.
//
// Each row becomes one sheetfmt.Args, one argument per column. CSV and
// XLSX cells are strings; a cell containing the array separator becomes an
// array argument split on it. JSON and YAML documents are a list of rows,
// each a list of values, where nested lists are array arguments.
package source

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/randalmurphal/sheetfmt/pkg/sheetfmt"
)

// Sentinel errors for source reading.
var (
	// ErrUnsupportedFormat indicates a file extension with no reader.
	ErrUnsupportedFormat = errors.New("unsupported source format")

	// ErrInvalidRow indicates a JSON or YAML row that is not a list.
	ErrInvalidRow = errors.New("row is not a list")

	// ErrSheetNotFound indicates an XLSX sheet name that does not exist.
	ErrSheetNotFound = errors.New("sheet not found")
)

// Options controls how rows are read.
type Options struct {
	// ArraySeparator splits CSV and XLSX cells into array arguments.
	// Empty disables splitting.
	ArraySeparator string

	// Header skips the first CSV or XLSX row.
	Header bool

	// Comma is the CSV field delimiter. Zero means ','.
	Comma rune

	// Sheet names the XLSX sheet. Empty means the first sheet.
	Sheet string

	// RawValues reads XLSX cells without number formats applied, so dates
	// arrive as serials for the exceldate kind.
	RawValues bool
}

// Load reads the file at path, choosing the reader by extension:
// .csv, .tsv, .json, .yaml, .yml or .xlsx.
func Load(path string, opts Options) ([]sheetfmt.Args, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open source: %w", err)
	}
	defer f.Close()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return ReadCSV(f, opts)
	case ".tsv":
		opts.Comma = '\t'
		return ReadCSV(f, opts)
	case ".json":
		return ReadJSON(f)
	case ".yaml", ".yml":
		return ReadYAML(f)
	case ".xlsx":
		return ReadXLSX(f, opts)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// cellArg converts one text cell.
func cellArg(cell, sep string) sheetfmt.Arg {
	if sep == "" || !strings.Contains(cell, sep) {
		return sheetfmt.Scalar(cell)
	}
	parts := strings.Split(cell, sep)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return sheetfmt.Array(parts...)
}

// Cells converts one record of text cells into arguments. A cell
// containing sep becomes an array of its trimmed parts.
func Cells(cells []string, sep string) sheetfmt.Args {
	args := make(sheetfmt.Args, len(cells))
	for i, cell := range cells {
		args[i] = cellArg(cell, sep)
	}
	return args
}

// cellRows converts text records, skipping the header if asked.
func cellRows(records [][]string, opts Options) []sheetfmt.Args {
	if opts.Header && len(records) > 0 {
		records = records[1:]
	}
	rows := make([]sheetfmt.Args, len(records))
	for i, rec := range records {
		rows[i] = Cells(rec, opts.ArraySeparator)
	}
	return rows
}

// valueRows converts decoded JSON or YAML rows.
func valueRows(doc []any) ([]sheetfmt.Args, error) {
	rows := make([]sheetfmt.Args, len(doc))
	for i, item := range doc {
		values, ok := item.([]any)
		if !ok {
			return nil, fmt.Errorf("row %d: %w (got %T)", i, ErrInvalidRow, item)
		}
		args, err := sheetfmt.ArgsOf(values...)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		rows[i] = args
	}
	return rows, nil
}
