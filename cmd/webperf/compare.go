package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/devdumpling/traverse-sub000/internal/capturefile"
	"github.com/devdumpling/traverse-sub000/internal/compare"
	"github.com/devdumpling/traverse-sub000/internal/render"
)

func (a *App) buildCompareCommand() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "compare <baseline.json> <current.json>",
		Short: "Diff two capture files of the same kind",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			baseline, err := capturefile.Load(args[0])
			if err != nil {
				return err
			}
			current, err := capturefile.Load(args[1])
			if err != nil {
				return err
			}

			result, err := compare.Compare(baseline, current)
			if err != nil {
				return err
			}

			return writeResult(outPath, cfg.Format, func(w io.Writer, format render.Format) error {
				return render.Comparison(w, result, format)
			})
		},
	}

	cmd.Flags().StringVar(&outPath, "out", "", "Write result to this file instead of stdout")
	return cmd
}
