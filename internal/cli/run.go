package cli

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bcbp_trmnl/internal/config"
	"bcbp_trmnl/internal/daemon"
)

func newRunCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Read boarding passes from a scanner hub and store them",
		Long: `Connects to the scanner hub, decodes every payload it sends and stores
accepted passes and rejected scans in SQLite. Runs until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if path, _ := cmd.Flags().GetString("config"); path != "" {
				os.Setenv(config.ConfigPathEnv, path)
			}

			cfg, err := config.LoadWith(v)
			if err != nil {
				basicLogger().Error("Failed to load configuration", "error", err)
				return err
			}

			logFile := initLogger(cfg.Log, cmd.OutOrStdout())
			defer logFile.Close()

			return runDaemon(cmd, cfg)
		},
	}

	cmd.Flags().String("scanner-addr", "", "scanner hub address (host:port)")
	cmd.Flags().String("db-path", "", "path to the SQLite database")
	cmd.Flags().String("metrics-addr", "", "listen address for /metrics and /health")

	_ = v.BindPFlag("scanner_addr", cmd.Flags().Lookup("scanner-addr"))
	_ = v.BindPFlag("db_path", cmd.Flags().Lookup("db-path"))
	_ = v.BindPFlag("metrics_addr", cmd.Flags().Lookup("metrics-addr"))

	return cmd
}

func runDaemon(cmd *cobra.Command, cfg *config.Config) error {
	d, err := daemon.New(daemon.Config{
		DBPath:        cfg.DBPath,
		ScannerAddr:   cfg.ScannerAddr,
		BatchSize:     cfg.BatchSize,
		BatchTimeout:  time.Duration(cfg.BatchTimeout) * time.Second,
		Retention:     time.Duration(cfg.RetentionDays) * 24 * time.Hour,
		PruneInterval: time.Duration(cfg.PruneInterval) * time.Minute,
		MetricsAddr:   cfg.MetricsAddr,
	})
	if err != nil {
		slog.Error("Failed to create daemon", "error", err)
		return fmt.Errorf("failed to create daemon: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := d.Start(); err != nil {
		return fmt.Errorf("failed to start daemon: %w", err)
	}

	<-ctx.Done()
	slog.Info("Received interrupt signal, shutting down...")

	return d.Stop()
}
