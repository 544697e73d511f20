/*
Package config loads sheetfmt settings from YAML, JSON or TOML files.

# Overview

A configuration document is decoded into a Config, a map wrapper whose
typed accessors fall back to defaults on missing keys or type mismatches.
FromConfig turns it into Settings, which Validate checks and Options turns
into Expander options.

	settings, err := config.Load("sheetfmt.yaml")
	if err != nil {
	    return err
	}
	opts, err := settings.Options()
	if err != nil {
	    return err
	}
	exp := sheetfmt.NewExpander(opts...)

# Keys

	delimiter             string  text between array iteration results (" ")
	strict_positions      bool    fail on out-of-range positions (false)
	strict_array_lengths  bool    fail on differing array lengths (false)
	max_depth             int     placeholder nesting bound (32)
	locale                string  BCP 47 tag for number separators ("en-US")
	timezone              string  IANA zone for dates ("UTC")
	date_1904             bool    1904 spreadsheet date system (false)
	array_separator       string  splits row cells into arrays ("|")
	templates             table   named templates

Example YAML:

	delimiter: ", "
	timezone: Europe/Berlin
	templates:
	  label: "{0:upper} ({1:date:dd.MM.yyyy})"

# Type Coercion

Int accepts the integer types each decoder produces: int (YAML), int64
(TOML) and whole float64 values (JSON).
*/
package config
