package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/hwu1001/v1zix.github.io/internal/build"
	"github.com/hwu1001/v1zix.github.io/internal/config"
	"github.com/hwu1001/v1zix.github.io/internal/devserver"
)

var serverPort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the site locally and rebuilds it on changes",
	Long: `The serve command builds the site, serves the output directory on a
local port, and watches the content, layouts and static directories and the
site configuration file, rebuilding whenever they change.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := rebuild(); err != nil {
			return fmt.Errorf("initial build failed: %w", err)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		go func() {
			paths := []string{appConfig.ContentDir, appConfig.LayoutsDir, appConfig.StaticDir, appConfig.SiteConfig}
			err := devserver.Watch(ctx, paths, devserver.DefaultDebounce, func() {
				log.Info().Msg("rebuilding site due to changes")
				if err := rebuild(); err != nil {
					log.Error().Err(err).Msg("rebuild failed")
				}
			})
			if err != nil {
				log.Error().Err(err).Msg("watcher stopped")
			}
		}()

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", serverPort),
			Handler:           devserver.Handler(appConfig.OutputDir),
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()

		log.Info().Str("output", appConfig.OutputDir).Str("addr", "http://localhost"+srv.Addr).Msg("serving site, press Ctrl+C to stop")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start HTTP server: %w", err)
		}
		return nil
	},
}

// rebuild reloads the site configuration so edits to it take effect.
func rebuild() error {
	site, err := config.LoadSite(appConfig.SiteConfig)
	if err != nil {
		return err
	}
	_, err = build.Run(appConfig, site)
	return err
}

func init() {
	serveCmd.Flags().IntVarP(&serverPort, "port", "p", 1313, "Port to serve the site on")
	rootCmd.AddCommand(serveCmd)
}
