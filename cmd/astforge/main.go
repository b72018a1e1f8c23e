// Command astforge is the CLI driver: it resolves a path/ignore-glob
// list into driver.Input values, fans them across internal/driver's
// worker pool, and renders the resulting *logger.Log to stderr. It
// carries no parsing or analysis logic of its own.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Exit codes: 0 clean, 1 findings (any diagnostic recorded), 2 usage
// error (bad flags, unreadable path, nothing matched).
const (
	exitClean    = 0
	exitFindings = 1
	exitUsage    = 2
)

var (
	flagPaths   []string
	flagIgnore  []string
	flagThreads int
)

func main() {
	root := &cobra.Command{
		Use:           "astforge",
		Short:         "A JavaScript/TypeScript/JSX analysis toolchain",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringSliceVar(&flagPaths, "path", nil, "file or directory to process (repeatable)")
	root.PersistentFlags().StringSliceVar(&flagIgnore, "ignore", nil, "glob pattern to exclude (repeatable)")
	root.PersistentFlags().IntVar(&flagThreads, "threads", 0, "worker count (default: GOMAXPROCS)")

	root.AddCommand(newLintCmd(), newFormatCmd(), newBuildCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitUsage)
	}
}
