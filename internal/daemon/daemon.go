package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"bcbp_trmnl/internal/database"
	"bcbp_trmnl/internal/models"
	"bcbp_trmnl/internal/scanner"
	"bcbp_trmnl/internal/scheduler"
	"bcbp_trmnl/internal/tasks"
)

// Daemon reads boarding passes from a scanner hub and stores them.
type Daemon struct {
	ctx           context.Context
	cancel        context.CancelFunc
	scheduler     *scheduler.Scheduler
	database      *database.DB
	scannerClient *scanner.Client
	collector     *tasks.PassCollector
	messageChan   chan *models.ScanMessage
	metricsServer *http.Server
	metricsLn     net.Listener
	wg            sync.WaitGroup
}

// Config holds daemon configuration
type Config struct {
	DBPath        string        // Path to SQLite database
	ScannerAddr   string        // Scanner hub address (e.g., "localhost:7010")
	BatchSize     int           // Number of scans to batch before writing
	BatchTimeout  time.Duration // Flush batch after this time even if not full
	Retention     time.Duration // Drop scans older than this; 0 keeps everything
	PruneInterval time.Duration // How often retention runs
	MetricsAddr   string        // Listen address for /metrics; empty disables it
}

// New creates a new daemon instance
func New(cfg Config) (*Daemon, error) {
	if cfg.ScannerAddr == "" {
		return nil, fmt.Errorf("ScannerAddr is required")
	}

	batchSize := 100
	if cfg.BatchSize > 0 {
		batchSize = cfg.BatchSize
	}
	batchTimeout := 5 * time.Second
	if cfg.BatchTimeout > 0 {
		batchTimeout = cfg.BatchTimeout
	}

	db, err := database.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	repo := db.ScanRepository()

	ctx, cancel := context.WithCancel(context.Background())
	messageChan := make(chan *models.ScanMessage, 1000)

	d := &Daemon{
		ctx:           ctx,
		cancel:        cancel,
		scheduler:     scheduler.New(ctx),
		database:      db,
		scannerClient: scanner.NewClient(cfg.ScannerAddr),
		collector:     tasks.NewPassCollectorWithConfig(repo, messageChan, batchSize, batchTimeout),
		messageChan:   messageChan,
	}

	if cfg.Retention > 0 {
		prune := tasks.NewPruneTask(repo, cfg.Retention, cfg.PruneInterval)
		if err := d.scheduler.AddTask(prune); err != nil {
			cancel()
			db.Close()
			return nil, fmt.Errorf("failed to schedule pruning: %w", err)
		}
	}

	if cfg.MetricsAddr != "" {
		ln, err := net.Listen("tcp", cfg.MetricsAddr)
		if err != nil {
			cancel()
			db.Close()
			return nil, fmt.Errorf("failed to listen on %s: %w", cfg.MetricsAddr, err)
		}
		mux := http.NewServeMux()
		mux.HandleFunc("GET /health", healthHandler)
		mux.Handle("GET /metrics", promhttp.Handler())
		d.metricsLn = ln
		d.metricsServer = &http.Server{
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
	}

	return d, nil
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

// MetricsAddr returns the address the metrics endpoint listens on, or "" when
// it is disabled.
func (d *Daemon) MetricsAddr() string {
	if d.metricsLn == nil {
		return ""
	}
	return d.metricsLn.Addr().String()
}

// Start launches the scanner stream, the collector, the scheduler and the
// metrics endpoint. It returns immediately.
func (d *Daemon) Start() error {
	slog.Info("Starting daemon", "scanner_addr", d.scannerClient.Addr())

	d.wg.Add(2)
	go func() {
		defer d.wg.Done()
		if err := d.scannerClient.StreamMessages(d.ctx, d.messageChan); err != nil && d.ctx.Err() == nil {
			slog.Error("Scanner stream stopped", "error", err)
		}
		// The collector drains what is left and exits once the channel closes
		close(d.messageChan)
	}()
	go func() {
		defer d.wg.Done()
		if err := d.collector.Start(context.Background()); err != nil {
			slog.Error("Pass collector stopped", "error", err)
		}
	}()

	d.scheduler.Start()

	if d.metricsServer != nil {
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			slog.Info("Serving metrics", "addr", d.MetricsAddr())
			if err := d.metricsServer.Serve(d.metricsLn); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("Metrics server stopped", "error", err)
			}
		}()
	}

	slog.Info("Daemon started successfully")
	return nil
}

// Stop gracefully stops the daemon
func (d *Daemon) Stop() error {
	slog.Info("Stopping daemon")
	d.cancel()

	if d.metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := d.metricsServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("Error shutting down metrics server", "error", err)
		}
	}

	d.scheduler.Stop()
	d.wg.Wait()

	if err := d.scannerClient.Close(); err != nil {
		slog.Error("Error closing scanner client", "error", err)
	}

	if err := d.database.Close(); err != nil {
		slog.Error("Error closing database", "error", err)
		return fmt.Errorf("failed to close database: %w", err)
	}

	slog.Info("Daemon stopped")
	return nil
}
