package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/devdumpling/traverse-sub000/internal/browser"
	"github.com/devdumpling/traverse-sub000/internal/engine"
	"github.com/devdumpling/traverse-sub000/internal/render"
)

func (a *App) buildBenchCommand() *cobra.Command {
	var runs int
	var outPath string

	cmd := &cobra.Command{
		Use:   "bench <url>",
		Short: "Run a repeated benchmark against a URL and emit a RuntimeBenchmark",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("runs") {
				cfg.Runs = runs
			}

			endpoint, _ := cmd.Flags().GetString("chrome")
			driver := browser.NewCDPDriver(endpoint)

			result, err := engine.Benchmark(cmd.Context(), driver, engine.BenchmarkOptions{
				URL: args[0], Runs: cfg.Runs, Device: cfg.Device(),
			})
			if err != nil {
				return err
			}
			defer func() { _ = driver.Close(cmd.Context()) }()

			return writeResult(outPath, cfg.Format, func(w io.Writer, format render.Format) error {
				return render.Benchmark(w, result, format)
			})
		},
	}

	cmd.Flags().IntVar(&runs, "runs", 0, "Number of repeated runs (overrides config)")
	cmd.Flags().StringVar(&outPath, "out", "", "Write result to this file instead of stdout")
	return cmd
}
