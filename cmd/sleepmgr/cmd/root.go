// Package cmd provides the command-line interface for the sleep manager.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sleepmgr",
	Short: "sleepmgr arbitrates low-power modes for a microcontroller runtime.",
	Long: `sleepmgr decides, on every idle opportunity, whether the processor may ` +
		`enter the deep low-power mode or must fall back to the shallow one, based ` +
		`on deep-sleep locks held by drivers. The CLI currently provides a ` +
		`simulated run (demo) for exercising and observing the arbitration.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
