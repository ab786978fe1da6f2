package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var Version = "dev"

var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:           "riskwatch",
		Short:         "Pre-delinquency intervention dashboard",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to configuration file (defaults plus RISKWATCH_* env when empty)")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(seedCmd())
	rootCmd.AddCommand(notifyCmd())
	rootCmd.AddCommand(showCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
