package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/alecthomas/kong"

	"github.com/randalmurphal/sheetfmt/pkg/sheetfmt"
	"github.com/randalmurphal/sheetfmt/pkg/sheetfmt/catalog"
	"github.com/randalmurphal/sheetfmt/pkg/sheetfmt/config"
	"github.com/randalmurphal/sheetfmt/pkg/sheetfmt/observability"
	"github.com/randalmurphal/sheetfmt/pkg/sheetfmt/store"
)

// CLI is the top-level command-line interface for sheetfmt.
type CLI struct {
	Config    string `help:"Configuration file (.yaml, .json or .toml)." short:"c" type:"existingfile"`
	DB        string `help:"SQLite database for batch history. Empty keeps history in memory." name:"db"`
	Delimiter string `help:"Override the array iteration delimiter." name:"delimiter"`
	Strict    bool   `help:"Fail on out-of-range positions and mismatched array lengths."`

	LogLevel  string `default:"warn" enum:"debug,info,warn,error" help:"Log level (${enum})." name:"log-level"`
	LogFormat string `default:"text" enum:"text,json"             help:"Log format (${enum})." name:"log-format"`

	Expand  expandCmd  `cmd:"" help:"Expand a template with positional arguments."`
	Render  renderCmd  `cmd:"" help:"Render a configured template once per row of a source file."`
	Check   checkCmd   `cmd:"" help:"Validate template syntax."`
	Kinds   kindsCmd   `cmd:"" help:"List the placeholder kinds."`
	History historyCmd `cmd:"" help:"List rendered batches or show one batch."`
}

// environment is what every command runs against.
type environment struct {
	settings config.Settings
	logger   *slog.Logger
	out      io.Writer
	errOut   io.Writer
	expander *sheetfmt.Expander
	catalog  *catalog.Catalog
	store    store.Store
}

func (e *environment) close() error {
	if e.store == nil {
		return nil
	}
	return e.store.Close()
}

// run parses args and executes the selected command. The exit function is
// called by kong for --help and usage errors.
func run(
	ctx context.Context,
	exit func(code int),
	stdout, stderr io.Writer,
	args ...string,
) (err error) {
	var cli CLI

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	parser, err := kong.New(&cli,
		kong.Name("sheetfmt"),
		kong.Description("Expand spreadsheet-style format templates."),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.Writers(stdout, stderr),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact: true,
				Summary: true,
			}),
	)
	if err != nil {
		return err
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	env, err := cli.environment(stdout, stderr)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, env.close())
	}()

	return kctx.Run(env)
}

// environment resolves settings, logging and storage from the global flags.
func (c *CLI) environment(stdout, stderr io.Writer) (*environment, error) {
	settings := config.Defaults()
	if c.Config != "" {
		var err error
		if settings, err = config.Load(c.Config); err != nil {
			return nil, err
		}
	}
	if c.Delimiter != "" {
		settings.Delimiter = c.Delimiter
	}
	if c.Strict {
		settings.StrictPositions = true
		settings.StrictArrayLengths = true
	}

	logger, err := newLogger(stderr, c.LogLevel, c.LogFormat)
	if err != nil {
		return nil, err
	}

	opts, err := settings.Options()
	if err != nil {
		return nil, err
	}
	opts = append(opts,
		sheetfmt.WithLogger(logger),
		sheetfmt.WithMetrics(observability.NewMetricsRecorder()),
		sheetfmt.WithSpanManager(observability.NewSpanManager()),
	)
	exp := sheetfmt.NewExpander(opts...)

	cat := catalog.New(exp)
	if err := cat.RegisterMany(settings.Templates); err != nil {
		return nil, err
	}

	var st store.Store
	if c.DB != "" {
		if st, err = store.NewSQLiteStore(c.DB); err != nil {
			return nil, err
		}
	} else {
		st = store.NewMemoryStore()
	}

	return &environment{
		settings: settings,
		logger:   logger,
		out:      stdout,
		errOut:   stderr,
		expander: exp,
		catalog:  cat,
		store:    st,
	}, nil
}

func newLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}
