// beerback - beer catalog and stock/price HTTP service.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Felipebasilio/ReactiveBeerBack/internal/store"
	"github.com/Felipebasilio/ReactiveBeerBack/pkg/api"
	"github.com/Felipebasilio/ReactiveBeerBack/pkg/config"
	"github.com/Felipebasilio/ReactiveBeerBack/pkg/logging"
)

// Build-time variables set via ldflags.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

func main() {
	root := &cobra.Command{
		Use:          "beerback",
		Short:        "Beer catalog and stock/price service",
		SilenceUsage: true,
	}
	root.AddCommand(newServeCmd(), newVersionCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newServeCmd() *cobra.Command {
	var (
		configPath string
		port       int
		dataPath   string
		logLevel   string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}
			if cmd.Flags().Changed("data") {
				cfg.Store.Path = dataPath
			}
			if cmd.Flags().Changed("log-level") {
				cfg.Logging.Level = logLevel
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			log := logging.New(logging.Config{
				Level:  logging.ParseLevel(cfg.Logging.Level),
				Format: logging.ParseFormat(cfg.Logging.Format),
			})

			st := store.New(cfg.Store.Path, store.WithLogger(log))
			if err := st.Open(); err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer func() {
				if err := st.Close(); err != nil {
					log.Error("flush store on shutdown", "error", err)
				}
			}()

			a := api.New(cfg, st, api.WithLogger(log))

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() { errCh <- a.Start() }()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := a.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutdown: %w", err)
			}
			return <-errCh
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to YAML config file")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "listen port (overrides config)")
	cmd.Flags().StringVar(&dataPath, "data", "", "backing JSON document path (overrides config)")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "beerback %s (commit %s, built %s)\n", Version, Commit, BuildDate)
		},
	}
}
