package source

import (
	"fmt"
	"io"
	"slices"

	"github.com/xuri/excelize/v2"

	"github.com/randalmurphal/sheetfmt/pkg/sheetfmt"
)

// ReadXLSX reads the rows of one worksheet. Trailing empty cells are
// dropped by the workbook reader, so rows may differ in length.
func ReadXLSX(r io.Reader, opts Options) ([]sheetfmt.Args, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheet := opts.Sheet
	sheets := f.GetSheetList()
	switch {
	case sheet == "" && len(sheets) > 0:
		sheet = sheets[0]
	case !slices.Contains(sheets, sheet):
		return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, sheet)
	}

	records, err := f.GetRows(sheet, excelize.Options{RawCellValue: opts.RawValues})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return cellRows(records, opts), nil
}
