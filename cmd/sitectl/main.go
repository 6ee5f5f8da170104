package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "sitectl",
		Short:         "EV charging-site catalog import and one-off optimization",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.AddCommand(schemaCmd())
	rootCmd.AddCommand(stationsCmd())
	rootCmd.AddCommand(districtsCmd())
	rootCmd.AddCommand(optimizeCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
