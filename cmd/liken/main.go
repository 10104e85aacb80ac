package main

import (
	"os"

	"github.com/spf13/cobra"

	"liken/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "liken",
		Short: "Liken backend service",
		Long:  `Backend for the Liken talent licensing marketplace: agency payout settings API and scheduled payout processing.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
