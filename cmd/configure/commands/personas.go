package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mavropro/mavro-api/internal/persona"
)

// NewPersonasCmd creates the personas command.
func NewPersonasCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "personas",
		Short: "List the built-in demo personas",
		Long:  "Print every persona the API can serve, with its industry and business details.",
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := persona.NewRegistry(zap.NewNop())
			personas := registry.All()

			fmt.Printf("Personas (%d):\n", len(personas))
			for _, p := range personas {
				fmt.Printf("  %-10s %s\n", p.Key, p.DisplayName)
				fmt.Printf("             %s at %s (%s)\n", p.Role, p.BusinessName, p.IndustryTag)
			}
			return nil
		},
	}
}
