// Javelin CLI - symbolic exploration of lifted bytecode images.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

var verbosity int

var rootCmd = &cobra.Command{
	Use:   "javelin",
	Short: "Symbolic execution engine for lifted Java-style bytecode",
	Long: `Javelin symbolically executes programs lifted to its stack-bytecode IR,
exploring every feasible control-flow path and bridging calls into
native (foreign convention) code.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		commonlog.Configure(verbosity, nil)
	},
}

func main() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase log verbosity")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
