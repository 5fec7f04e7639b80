package cmd

import (
	"github.com/spf13/cobra"

	"pylib-setup/internal/config"
	"pylib-setup/internal/logger"
)

// newCatalogCmd prints the effective catalog and extras table as YAML.
func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Print the catalog that install would use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, cfg, err := loadCatalog(cmd)
			if err != nil {
				return err
			}

			out, err := config.Marshal(cfg)
			if err != nil {
				return err
			}

			logger.Debug("[DEBUG] Catalog source: %s\n", catalogName(settings))
			logger.Plain("%s", out)
			return nil
		},
	}

	addCatalogFlags(cmd)
	return cmd
}
