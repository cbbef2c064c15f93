package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/i474232898/plant-weather/internal/logging"
)

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	var debug bool

	rootCmd := &cobra.Command{
		Use:   "plant-weather",
		Short: "plant-weather reports current weather for plant care",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Init(debug)
		},
	}
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(reportCmd())
	rootCmd.AddCommand(careCmd())
	rootCmd.AddCommand(askCmd())
	return rootCmd
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
}
