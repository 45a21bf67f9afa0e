package cmd

import (
	"github.com/spf13/cobra"

	"github.com/hwu1001/v1zix.github.io/internal/build"
	"github.com/hwu1001/v1zix.github.io/internal/config"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Builds the static site from content, layouts, and static assets",
	Long: `The build command reads the site configuration, processes Markdown
files from the content directory, renders them with the built-in theme and
any layouts that override it, copies static assets, and writes the site to
the configured output directory (default './public/').`,
	RunE: func(cmd *cobra.Command, args []string) error {
		site, err := config.LoadSite(appConfig.SiteConfig)
		if err != nil {
			return err
		}
		_, err = build.Run(appConfig, site)
		return err
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
}
