package cmd

import (
	"github.com/spf13/cobra"

	"github.com/hwu1001/v1zix.github.io/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the site configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Validates the site configuration and prints it",
	RunE: func(cmd *cobra.Command, args []string) error {
		site, err := config.LoadSite(appConfig.SiteConfig)
		if err != nil {
			return err
		}
		out, err := site.YAML()
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}
