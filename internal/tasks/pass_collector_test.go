package tasks

import (
	"context"
	"sync"
	"testing"
	"time"

	"bcbp_trmnl/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const knownGoodPass = "M1DESMARAIS/LUC       EABC123 YULFRAAC 0834 326J001A0025 100"

// mockRepository is a simple mock implementation of ScanWriter
type mockRepository struct {
	mu       sync.Mutex
	messages []*models.ScanMessage
	batches  int
	errors   []error
}

func (m *mockRepository) InsertBatch(msgs []*models.ScanMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, msgs...)
	m.batches++
	if len(m.errors) > 0 {
		err := m.errors[0]
		m.errors = m.errors[1:]
		return err
	}
	return nil
}

func (m *mockRepository) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.messages)
}

func newTestScan() *models.ScanMessage {
	return models.NewScanMessage(knownGoodPass, "test", time.Now())
}

func TestNewPassCollector(t *testing.T) {
	repo := &mockRepository{}
	messageChan := make(chan *models.ScanMessage, 10)

	collector := NewPassCollector(repo, messageChan)

	require.NotNil(t, collector)
	assert.Equal(t, 100, collector.batchSize)
	assert.Equal(t, 1*time.Second, collector.flushInterval)
}

func TestNewPassCollectorWithConfig(t *testing.T) {
	repo := &mockRepository{}
	messageChan := make(chan *models.ScanMessage, 10)

	collector := NewPassCollectorWithConfig(repo, messageChan, 50, 500*time.Millisecond)

	require.NotNil(t, collector)
	assert.Equal(t, 50, collector.batchSize)
	assert.Equal(t, 500*time.Millisecond, collector.flushInterval)
}

func TestPassCollector_BatchFlush(t *testing.T) {
	repo := &mockRepository{}
	messageChan := make(chan *models.ScanMessage, 100)
	batchSize := 5

	// Long interval so only the size limit can trigger the flush
	collector := NewPassCollectorWithConfig(repo, messageChan, batchSize, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		_ = collector.Start(ctx)
	}()

	for i := 0; i < batchSize; i++ {
		messageChan <- newTestScan()
	}

	assert.Eventually(t, func() bool {
		return repo.count() == batchSize
	}, 2*time.Second, 10*time.Millisecond)
}

func TestPassCollector_TimeoutFlush(t *testing.T) {
	repo := &mockRepository{}
	messageChan := make(chan *models.ScanMessage, 100)

	collector := NewPassCollectorWithConfig(repo, messageChan, 10, 100*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		_ = collector.Start(ctx)
	}()

	// A single message is flushed by the interval alone
	messageChan <- newTestScan()

	assert.Eventually(t, func() bool {
		return repo.count() == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestPassCollector_ContextCancellation(t *testing.T) {
	repo := &mockRepository{}
	messageChan := make(chan *models.ScanMessage, 100)

	collector := NewPassCollectorWithConfig(repo, messageChan, 10, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- collector.Start(ctx)
	}()

	messageChan <- newTestScan()

	// Give collector time to take the message
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
		// Remaining messages are flushed on the way out
		assert.Equal(t, 1, repo.count())
	case <-time.After(2 * time.Second):
		t.Fatal("Collector did not exit after context cancellation")
	}
}

func TestPassCollector_ChannelClosed(t *testing.T) {
	repo := &mockRepository{}
	messageChan := make(chan *models.ScanMessage, 100)

	collector := NewPassCollectorWithConfig(repo, messageChan, 10, time.Hour)

	done := make(chan error, 1)
	go func() {
		done <- collector.Start(context.Background())
	}()

	messageChan <- newTestScan()
	messageChan <- nil
	messageChan <- models.NewScanMessage("garbage", "test", time.Now())
	close(messageChan)

	select {
	case err := <-done:
		assert.NoError(t, err)
		assert.Equal(t, 2, repo.count(), "nil messages are skipped")
	case <-time.After(2 * time.Second):
		t.Fatal("Collector did not exit after channel closed")
	}
}

func TestPassCollector_InsertError(t *testing.T) {
	repo := &mockRepository{
		errors: []error{assert.AnError},
	}
	messageChan := make(chan *models.ScanMessage, 100)
	batchSize := 5

	collector := NewPassCollectorWithConfig(repo, messageChan, batchSize, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		_ = collector.Start(ctx)
	}()

	// The first batch fails, the collector keeps going with the second
	for i := 0; i < 2*batchSize; i++ {
		messageChan <- newTestScan()
	}

	assert.Eventually(t, func() bool {
		return repo.count() == 2*batchSize
	}, 2*time.Second, 10*time.Millisecond)
}
