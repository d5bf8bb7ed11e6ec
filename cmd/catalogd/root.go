package main

import (
	"github.com/spf13/cobra"
)

var rootFlags struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "catalogd",
		Short:        "Gastronomic catalog service",
		Long:         "catalogd serves the gastronomic catalog: cultures, countries,\nproducts, recipes, restaurants and their Michelin stars.",
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&rootFlags.configPath, "config", "", "path to a YAML config file")

	root.AddCommand(newServeCmd())
	root.AddCommand(newInitSchemaCmd())

	return root
}
