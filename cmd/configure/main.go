package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mavropro/mavro-api/cmd/configure/commands"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "mavro-configure",
		Short: "Configuration tool for Mavro Pro API",
		Long:  "CLI tool for managing CORS, rate limit, and persona settings",
	}

	rootCmd.AddCommand(commands.NewCorsCmd())
	rootCmd.AddCommand(commands.NewRatelimitCmd())
	rootCmd.AddCommand(commands.NewPersonasCmd())
	rootCmd.AddCommand(commands.NewTestCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
