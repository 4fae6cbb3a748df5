// Command cfpsim runs the playoff scenario engine, either as an HTTP
// service or as a one-shot simulation on the command line.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cfpsim",
	Short: "College football playoff scenario engine",
	Long:  `cfpsim recomputes rankings and the 12-team playoff field for what-if scenarios over historical season data`,
}

func main() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simulateCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
