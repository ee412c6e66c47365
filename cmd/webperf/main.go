// Command webperf measures and compares web-application runtime
// performance and static bundle size from the command line.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/devdumpling/traverse-sub000/internal/werr"
)

func main() {
	app := newApp()
	if err := app.rootCmd.Execute(); err != nil {
		var werrErr *werr.Error
		if errors.As(err, &werrErr) {
			fmt.Fprintf(os.Stderr, "%s: %s\n", werrErr.Code, werrErr.Message)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
