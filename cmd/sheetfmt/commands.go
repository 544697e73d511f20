package main

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"
	"time"
	"unicode/utf8"

	"github.com/randalmurphal/sheetfmt/pkg/sheetfmt/render"
	"github.com/randalmurphal/sheetfmt/pkg/sheetfmt/source"
	"github.com/randalmurphal/sheetfmt/pkg/sheetfmt/value"
)

var (
	errRowsFailed     = errors.New("rows failed")
	errInvalidSyntax  = errors.New("invalid template syntax")
	errNothingToCheck = errors.New("no templates to check")
)

// expandCmd expands one template.
type expandCmd struct {
	Template string   `arg:"" help:"Template text."`
	Args     []string `arg:"" help:"Positional arguments. Arguments containing the array separator become arrays." optional:""`
}

// Run executes the expand command.
func (c *expandCmd) Run(ctx context.Context, env *environment) error {
	args := source.Cells(c.Args, env.settings.ArraySeparator)
	out, err := env.expander.ExpandContext(ctx, c.Template, args)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(env.out, out)
	return err
}

// renderCmd renders a configured template over a source file.
type renderCmd struct {
	Template string `arg:"" help:"Name of a template from the configuration."`
	Source   string `arg:"" help:"Rows file (.csv, .tsv, .json, .yaml or .xlsx)." type:"existingfile"`

	Header bool   `help:"Skip the first CSV or XLSX row."`
	Sheet  string `help:"XLSX sheet name. Defaults to the first sheet."`
	Raw    bool   `help:"Read XLSX cells without number formats."`
	Comma  string `help:"CSV field delimiter." default:","`
}

// Run executes the render command.
func (c *renderCmd) Run(ctx context.Context, env *environment) error {
	opts := source.Options{
		ArraySeparator: env.settings.ArraySeparator,
		Header:         c.Header,
		Sheet:          c.Sheet,
		RawValues:      c.Raw,
	}
	if c.Comma != "" {
		opts.Comma, _ = utf8.DecodeRuneInString(c.Comma)
	}

	rows, err := source.Load(c.Source, opts)
	if err != nil {
		return err
	}

	r := render.New(env.catalog, env.store, render.WithLogger(env.logger))
	batch, err := r.Render(ctx, c.Template, rows)
	if err != nil {
		return err
	}

	for _, row := range batch.Rows {
		if row.Error != "" {
			fmt.Fprintf(env.errOut, "row %d: %s\n", row.Index, row.Error)
			continue
		}
		fmt.Fprintln(env.out, row.Output)
	}

	if failed := batch.Failed(); failed > 0 {
		return fmt.Errorf("batch %s: %d of %d %w", batch.ID, failed, len(batch.Rows), errRowsFailed)
	}
	return nil
}

// checkCmd validates templates.
type checkCmd struct {
	Templates []string `arg:"" help:"Template texts. Defaults to every configured template." optional:""`
}

// Run executes the check command.
func (c *checkCmd) Run(env *environment) error {
	type entry struct{ label, text string }

	var entries []entry
	for _, t := range c.Templates {
		entries = append(entries, entry{label: t, text: t})
	}
	if len(entries) == 0 {
		for _, name := range env.catalog.Names() {
			tmpl, _ := env.catalog.Get(name)
			entries = append(entries, entry{label: name, text: tmpl.Text})
		}
	}
	if len(entries) == 0 {
		return errNothingToCheck
	}

	bad := 0
	for _, e := range entries {
		if err := env.expander.Validate(e.text); err != nil {
			bad++
			fmt.Fprintf(env.out, "FAIL %s: %v\n", e.label, err)
			continue
		}
		fmt.Fprintf(env.out, "ok   %s\n", e.label)
	}
	if bad > 0 {
		return fmt.Errorf("%d of %d: %w", bad, len(entries), errInvalidSyntax)
	}
	return nil
}

// kindsCmd lists placeholder kinds.
type kindsCmd struct{}

// Run executes the kinds command.
func (kindsCmd) Run(env *environment) error {
	for _, k := range value.Kinds() {
		if _, err := fmt.Fprintln(env.out, k); err != nil {
			return err
		}
	}
	return nil
}

// historyCmd lists stored batches, or prints the rows of one.
type historyCmd struct {
	ID       string `arg:"" help:"Batch ID to show." optional:""`
	Template string `help:"Only list batches of this template." short:"t"`
}

// Run executes the history command.
func (c *historyCmd) Run(env *environment) error {
	if c.ID != "" {
		batch, err := env.store.Load(c.ID)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(env.out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ROW\tOUTPUT\tERROR")
		for _, row := range batch.Rows {
			fmt.Fprintf(w, "%d\t%s\t%s\n", row.Index, row.Output, row.Error)
		}
		return w.Flush()
	}

	infos, err := env.store.List(c.Template)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(env.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTEMPLATE\tROWS\tFAILED\tCREATED")
	for _, info := range infos {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n",
			info.ID, info.Template, info.Rows, info.Failed, info.CreatedAt.Format(time.RFC3339))
	}
	return w.Flush()
}
