package source

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/randalmurphal/sheetfmt/pkg/sheetfmt"
)

// ReadJSON reads a JSON list of rows. Numbers keep their literal text.
func ReadJSON(r io.Reader) ([]sheetfmt.Args, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var doc []any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	return valueRows(doc)
}

// ReadYAML reads a YAML list of rows.
func ReadYAML(r io.Reader) ([]sheetfmt.Args, error) {
	var doc []any
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return []sheetfmt.Args{}, nil
		}
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return valueRows(doc)
}
