package source

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/randalmurphal/sheetfmt/pkg/sheetfmt"
)

// ReadCSV reads comma-separated rows. Rows may differ in length.
func ReadCSV(r io.Reader, opts Options) ([]sheetfmt.Args, error) {
	cr := csv.NewReader(r)
	if opts.Comma != 0 {
		cr.Comma = opts.Comma
	}
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return cellRows(records, opts), nil
}
