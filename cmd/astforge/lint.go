package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/astforge/astforge/internal/driver"
	"github.com/astforge/astforge/internal/logger"
)

func newLintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lint",
		Short: "Run the lint rule catalog over every matched file",
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := resolveInputs(flagPaths, flagIgnore)
			if err != nil {
				return err
			}
			log := logger.NewLog()
			if _, err := driver.Run(cmd.Context(), inputs, threadCount(flagThreads), log); err != nil {
				return err
			}
			renderLog(os.Stderr, log)
			if len(log.Msgs()) > 0 {
				os.Exit(exitFindings)
			}
			return nil
		},
	}
}
