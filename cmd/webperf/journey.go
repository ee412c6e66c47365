package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/devdumpling/traverse-sub000/internal/browser"
	"github.com/devdumpling/traverse-sub000/internal/journey"
	"github.com/devdumpling/traverse-sub000/internal/render"
)

func (a *App) buildJourneyCommand() *cobra.Command {
	var runs int
	var outPath string

	cmd := &cobra.Command{
		Use:   "journey <journey-file.json>",
		Short: "Run a declarative multi-step journey and emit a JourneyResult",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("runs") {
				cfg.Runs = runs
			}

			spec, def, err := journey.LoadDefinition(args[0])
			if err != nil {
				return err
			}

			endpoint, _ := cmd.Flags().GetString("chrome")
			driver := browser.NewCDPDriver(endpoint)

			result, err := journey.Run(cmd.Context(), driver, def, journey.RunOptions{
				BaseURL: spec.BaseURL, Runs: cfg.Runs, Device: cfg.Device(),
			})
			if err != nil {
				return err
			}
			defer func() { _ = driver.Close(cmd.Context()) }()

			return writeResult(outPath, cfg.Format, func(w io.Writer, format render.Format) error {
				return render.Journey(w, result, format)
			})
		},
	}

	cmd.Flags().IntVar(&runs, "runs", 0, "Number of journey repetitions (overrides config)")
	cmd.Flags().StringVar(&outPath, "out", "", "Write result to this file instead of stdout")
	return cmd
}
