package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"bcbp_trmnl/internal/metrics"
)

// ScanPruner deletes stored scans older than a cutoff.
type ScanPruner interface {
	DeleteBefore(cutoff time.Time) (int64, error)
}

// PruneTask removes passes and rejected scans past their retention period.
// It implements scheduler.Task.
type PruneTask struct {
	repo      ScanPruner
	retention time.Duration
	interval  time.Duration
	now       func() time.Time
}

func NewPruneTask(repo ScanPruner, retention, interval time.Duration) *PruneTask {
	return &PruneTask{
		repo:      repo,
		retention: retention,
		interval:  interval,
		now:       time.Now,
	}
}

func (p *PruneTask) Name() string {
	return "prune_scans"
}

func (p *PruneTask) Interval() time.Duration {
	return p.interval
}

func (p *PruneTask) Run(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cutoff := p.now().Add(-p.retention)
	n, err := p.repo.DeleteBefore(cutoff)
	if err != nil {
		return fmt.Errorf("failed to prune scans before %s: %w", cutoff.Format(time.RFC3339), err)
	}

	metrics.AddPrunedRows(n)
	if n > 0 {
		slog.Info("Pruned expired scans", "rows", n, "cutoff", cutoff.Format(time.RFC3339))
	}
	return nil
}
