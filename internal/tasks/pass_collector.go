package tasks

import (
	"context"
	"log/slog"
	"time"

	"bcbp_trmnl/internal/metrics"
	"bcbp_trmnl/internal/models"
)

// ScanWriter stores a batch of scans. database.ScanRepository satisfies it.
type ScanWriter interface {
	InsertBatch(msgs []*models.ScanMessage) error
}

// PassCollector collects scan messages and commits them to the database in batches
type PassCollector struct {
	repo          ScanWriter
	messageChan   <-chan *models.ScanMessage
	batchSize     int           // maximum number of messages in a batch before committing to database
	flushInterval time.Duration // time to flush batch even if not full
}

// Default batch size is 100 messages and flush interval is 1 second
func NewPassCollector(repo ScanWriter, messageChan <-chan *models.ScanMessage) *PassCollector {
	return NewPassCollectorWithConfig(repo, messageChan, 100, 1*time.Second)
}

// NewPassCollectorWithConfig creates a new collector with custom batch settings
func NewPassCollectorWithConfig(repo ScanWriter, messageChan <-chan *models.ScanMessage, batchSize int, flushInterval time.Duration) *PassCollector {
	return &PassCollector{
		repo:          repo,
		messageChan:   messageChan,
		batchSize:     batchSize,
		flushInterval: flushInterval,
	}
}

// Start begins collecting messages and writing them to the database in batches.
// It blocks until the context is cancelled or the message channel is closed.
// A batch is flushed when it reaches batchSize or when flushInterval has
// passed since the last flush.
func (c *PassCollector) Start(ctx context.Context) error {
	batch := make([]*models.ScanMessage, 0, c.batchSize)

	ticker := time.NewTicker(c.flushInterval)
	defer ticker.Stop()

	flushBatch := func() {
		if len(batch) == 0 {
			return
		}
		err := c.repo.InsertBatch(batch)
		metrics.ObserveBatch(len(batch), err)
		if err != nil {
			slog.Error("Error inserting batch of scans", "batch_size", len(batch), "error", err)
		} else {
			slog.Info("Inserted batch of scans", "batch_size", len(batch))
		}
		batch = batch[:0] // Reset slice but keep capacity
		ticker.Reset(c.flushInterval)
	}

	for {
		select {
		case <-ctx.Done():
			// Flush any remaining messages before exiting
			flushBatch()
			return ctx.Err()

		case <-ticker.C:
			flushBatch()

		case msg, ok := <-c.messageChan:
			if !ok {
				flushBatch()
				return nil
			}

			if msg == nil {
				continue
			}

			batch = append(batch, msg)

			slog.Debug("Added scan to batch",
				"source", msg.Source,
				"valid", msg.Valid(),
				"error_code", msg.ErrorCode(),
				"timestamp", msg.Timestamp.Format(time.RFC3339Nano),
				"current_batch_size", len(batch),
				"max_batch_size", c.batchSize,
			)

			if len(batch) >= c.batchSize {
				flushBatch()
			}
		}
	}
}
