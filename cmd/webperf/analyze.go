package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/devdumpling/traverse-sub000/internal/buildtimer"
	"github.com/devdumpling/traverse-sub000/internal/staticanalyze"
)

func (a *App) buildAnalyzeCommand() *cobra.Command {
	var buildCmd string
	var timeout time.Duration
	var outPath string

	cmd := &cobra.Command{
		Use:   "analyze <build-dir>",
		Short: "Analyze a production build's bundle sizes and, optionally, time a cold build",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			var timed *buildtimer.Result
			if buildCmd != "" {
				result, err := buildtimer.NewCommandTimer().Time(cmd.Context(), buildtimer.Options{
					Command: buildCmd, Dir: args[0], Timeout: timeout,
				})
				if err != nil {
					return err
				}
				timed = &result
			}

			capture, err := staticanalyze.NewFSAnalyzer().Analyze(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := os.Stdout
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
			}

			if timed != nil && cfg.Format != "json" {
				fmt.Fprintf(out, "Cold build: %s (exit %d)\n\n", timed.Duration, timed.ExitCode)
			}

			if cfg.Format == "json" {
				payload := struct {
					Build   *buildtimer.Result `json:"build,omitempty"`
					Static  any                 `json:"static"`
				}{Build: timed, Static: capture}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(payload)
			}

			fmt.Fprintf(out, "Framework: %s\nTotal: %d bytes (gzip %d, brotli %d)\nJS: %d bytes (gzip %d)\nCSS: %d bytes (gzip %d)\nRoutes: %d\n",
				capture.Meta.Framework,
				capture.Bundles.Total.Raw, capture.Bundles.Total.Gzip, capture.Bundles.Total.Brotli,
				capture.Bundles.JS.Raw, capture.Bundles.JS.Gzip,
				capture.Bundles.CSS.Raw, capture.Bundles.CSS.Gzip,
				len(capture.Routes),
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&buildCmd, "build-cmd", "", "Build command to time (e.g. \"npm run build\")")
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "Wall-clock cap for --build-cmd")
	cmd.Flags().StringVar(&outPath, "out", "", "Write result to this file instead of stdout")
	return cmd
}
