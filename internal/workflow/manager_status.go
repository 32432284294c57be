package workflow

import (
	"context"
	"time"

	"subburn/internal/logging"
	"subburn/internal/queue"
)

// StatusSummary represents lightweight workflow diagnostics.
type StatusSummary struct {
	Running    bool
	LastError  string
	LastItem   *queue.Item
	QueueStats map[queue.Status]int
}

// Status returns the latest workflow information.
func (m *Manager) Status(ctx context.Context) StatusSummary {
	m.mu.RLock()
	running := m.running
	lastErr := m.lastErr
	lastItem := m.lastItem
	m.mu.RUnlock()

	stats, err := m.store.Stats(ctx)
	if err != nil {
		m.logger.Warn("failed to read queue stats", logging.Error(err))
	}

	summary := StatusSummary{Running: running, QueueStats: stats}
	if lastErr != nil {
		summary.LastError = lastErr.Error()
	}
	if lastItem != nil {
		copied := *lastItem
		summary.LastItem = &copied
	}
	return summary
}

func (m *Manager) setLastError(err error) {
	m.mu.Lock()
	m.lastErr = err
	m.mu.Unlock()
}

func (m *Manager) setLastItem(item *queue.Item) {
	m.mu.Lock()
	if item != nil {
		copied := *item
		m.lastItem = &copied
	} else {
		m.lastItem = nil
	}
	m.mu.Unlock()
}

func (m *Manager) markQueueActive() {
	m.mu.Lock()
	if !m.queueActive {
		m.queueActive = true
		m.queueStart = time.Now()
		m.processed = 0
		m.failed = 0
	}
	m.mu.Unlock()
}

func (m *Manager) countResult(succeeded bool) {
	m.mu.Lock()
	if succeeded {
		m.processed++
	} else {
		m.failed++
	}
	m.mu.Unlock()
}

// checkQueueCompletion fires a single summary notification once the queue
// drains after at least one item was processed.
func (m *Manager) checkQueueCompletion(ctx context.Context) {
	m.mu.Lock()
	if !m.queueActive {
		m.mu.Unlock()
		return
	}
	processed := m.processed
	failed := m.failed
	elapsed := time.Since(m.queueStart)
	m.queueActive = false
	m.mu.Unlock()

	if processed == 0 && failed == 0 {
		return
	}
	if err := m.notifier.NotifyQueueCompleted(ctx, processed, failed, elapsed); err != nil {
		m.logger.Debug("queue completed notification failed", logging.Error(err))
	}
}
