// Command sheetfmt expands spreadsheet-style format templates from the
// command line and over tabular source files.
package main

import (
	"context"
	"log/slog"
	"os"
)

func main() {
	err := run(context.Background(), os.Exit, os.Stdout, os.Stderr, os.Args[1:]...)
	if err != nil {
		slog.Error("run failed", slog.Any("error", err))
		os.Exit(1)
	}
}
