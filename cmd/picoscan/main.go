/*
picoscan is a console utility running bundled rule sets over text files.
Usage is

	picoscan [-v...] [--log <file>] scan [-f css|markup|words] [--json] <file>
	picoscan loc <file> <offset>

Use "-" as file name to read standard input.
*/
package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

func main() {
	var verbosity int
	var logFile string

	rootCmd := &cobra.Command{
		Use:          "picoscan",
		Short:        "Scan text with bundled picoscan rule sets",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			var path *string
			if logFile != "" {
				path = &logFile
			}
			commonlog.Configure(verbosity, path)
		},
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase log verbosity (repeat for more)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log", "", "log to file instead of stderr")

	rootCmd.AddCommand(newScanCmd())
	rootCmd.AddCommand(newLocCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func readInput(name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(name)
}
