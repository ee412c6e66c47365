package main

import (
	"io"
	"os"

	"github.com/devdumpling/traverse-sub000/internal/render"
)

// writeResult opens outPath (or stdout, if empty) and invokes emit
// with the resolved render.Format, shared by every subcommand that
// produces a result record.
func writeResult(outPath, formatStr string, emit func(io.Writer, render.Format) error) error {
	format := render.Format(formatStr)
	if outPath == "" {
		return emit(os.Stdout, format)
	}
	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()
	return emit(f, format)
}
