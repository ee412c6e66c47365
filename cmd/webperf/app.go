package main

import (
	"github.com/spf13/cobra"

	"github.com/devdumpling/traverse-sub000/internal/config"
)

// App bundles the cobra command tree so each build* method can close
// over shared construction helpers without package-level state.
type App struct {
	rootCmd *cobra.Command
}

func newApp() *App {
	app := &App{}
	app.rootCmd = app.buildRootCommand()
	return app
}

func (a *App) buildRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "webperf",
		Short:         "Measure and compare web-application runtime performance",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("chrome", "http://127.0.0.1:9222", "Chrome DevTools remote-debugging endpoint")
	rootCmd.PersistentFlags().String("format", "", "Output format: json or markdown (overrides config)")

	rootCmd.AddCommand(a.buildBenchCommand())
	rootCmd.AddCommand(a.buildJourneyCommand())
	rootCmd.AddCommand(a.buildCompareCommand())
	rootCmd.AddCommand(a.buildAnalyzeCommand())

	return rootCmd
}

// loadConfig resolves the cascade for the current working directory,
// applying any --format flag as the highest-priority override.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	var overrides config.FlagOverrides
	if format, _ := cmd.Flags().GetString("format"); format != "" {
		overrides.Format = &format
	}
	return config.Load(".", &overrides)
}
