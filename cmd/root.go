package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hwu1001/v1zix.github.io/internal/config"
	"github.com/hwu1001/v1zix.github.io/internal/logging"
)

var (
	cfgFile   string
	logLevel  string
	logFormat string
	appConfig config.Config
)

var rootCmd = &cobra.Command{
	Use:   "lumen",
	Short: "lumen - builds the blog",
	Long: `lumen takes the blog's Markdown content and site configuration,
renders them with the lumen theme, and outputs a static HTML website.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := logging.Setup(logLevel, logFormat); err != nil {
			return err
		}
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		appConfig = cfg
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./lumen.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "console", "log format (console or json)")
}
