package workflow

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"subburn/internal/logging"
	"subburn/internal/pipeline"
	"subburn/internal/queue"
	"subburn/internal/services"
)

// Start begins background processing. Items left in processing from an
// unclean shutdown are reset to pending before the loop starts.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return errors.New("workflow already running")
	}
	runCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.running = true
	m.wg.Add(1)
	m.mu.Unlock()

	if reset, err := m.store.ResetStuckProcessing(runCtx); err != nil {
		m.logger.Warn("reset stuck processing failed; stuck items may remain", logging.Error(err))
	} else if reset > 0 {
		m.logger.Info("reset stuck processing items", logging.Int64("count", reset))
	}

	go m.runLoop(runCtx)
	return nil
}

// Stop terminates background processing and waits for the current item to
// wind down.
func (m *Manager) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	cancel := m.cancel
	m.running = false
	m.cancel = nil
	m.mu.Unlock()

	cancel()
	m.wg.Wait()
}

func (m *Manager) runLoop(ctx context.Context) {
	defer m.wg.Done()
	logger := m.logger
	if logger == nil {
		logger = logging.NewNop()
	}

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		item, err := m.store.NextPending(ctx)
		if err != nil {
			m.setLastError(err)
			logger.Error("failed to fetch next queue item", logging.Error(err))
			if !m.sleep(ctx, time.Duration(m.cfg.Workflow.ErrorRetryInterval)*time.Second) {
				return
			}
			continue
		}
		if item == nil {
			m.checkQueueCompletion(ctx)
			if !m.sleep(ctx, m.pollInterval) {
				return
			}
			continue
		}

		if err := m.processItem(ctx, logger, item); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			if !m.sleep(ctx, time.Duration(m.cfg.Workflow.ErrorRetryInterval)*time.Second) {
				return
			}
		}
	}
}

func (m *Manager) processItem(ctx context.Context, logger *slog.Logger, item *queue.Item) error {
	m.markQueueActive()

	requestID := uuid.NewString()
	itemCtx := services.WithRequestID(services.WithItemID(ctx, item.ID), requestID)
	itemLogger := logging.WithContext(itemCtx, logger)

	item.Status = queue.StatusProcessing
	item.ErrorMessage = ""
	item.SetProgress("Starting", "Preparing run", 0)
	if err := m.store.Update(itemCtx, item); err != nil {
		m.setLastError(err)
		itemLogger.Error("failed to transition item to processing", logging.Error(err))
		return err
	}
	m.setLastItem(item)

	itemLogger.Info("run started",
		logging.String("title", item.Title),
		logging.String("source_file", item.SourcePath),
		logging.String("target_language", item.TargetLanguage),
	)
	if err := m.notifier.NotifyRunStarted(itemCtx, item.Title); err != nil {
		itemLogger.Debug("run started notification failed", logging.Error(err))
	}

	observer := pipeline.ObserverFunc(func(percent int) {
		item.SetProgress(progressLabel(percent), progressLabel(percent), float64(percent))
		if err := m.store.Update(itemCtx, item); err != nil {
			itemLogger.Debug("failed to persist progress", logging.Error(err))
		}
	})

	start := time.Now()
	result, runErr := m.runner.Run(itemCtx, pipeline.Request{
		SourcePath:     item.SourcePath,
		TargetLanguage: item.TargetLanguage,
		SourceLanguage: item.SourceLanguage,
		Observer:       observer,
	})
	if runErr != nil {
		if errors.Is(runErr, context.Canceled) && ctx.Err() != nil {
			m.requeueInterrupted(item, itemLogger)
			return runErr
		}
		m.handleRunFailure(itemCtx, itemLogger, item, runErr)
		return runErr
	}

	item.Status = queue.StatusCompleted
	item.DetectedLanguage = result.DetectedLanguage
	item.SubtitleFile = result.SubtitleFilePath
	item.OutputFile = result.OutputVideoPath
	item.TranscriptFile = result.TranscriptFilePath
	item.SetProgress("Completed", "Completed", 100)
	if err := m.store.Update(itemCtx, item); err != nil {
		m.setLastError(err)
		itemLogger.Error("failed to persist run result", logging.Error(err))
		return err
	}
	m.setLastItem(item)
	m.countResult(true)

	itemLogger.Info("run completed",
		logging.String("output_file", item.OutputFile),
		logging.String("detected_language", item.DetectedLanguage),
		logging.Duration("run_duration", time.Since(start)),
	)
	if err := m.notifier.NotifyRunCompleted(itemCtx, item.Title, item.OutputFile); err != nil {
		itemLogger.Debug("run completed notification failed", logging.Error(err))
	}
	return nil
}

func (m *Manager) handleRunFailure(ctx context.Context, logger *slog.Logger, item *queue.Item, runErr error) {
	m.setLastError(runErr)

	message := strings.TrimSpace(runErr.Error())
	status := queue.FailureStatus(runErr)
	if status == queue.StatusPending {
		item.Status = queue.StatusPending
		item.ErrorMessage = message
		item.SetProgress("Retry scheduled", message, 0)
	} else {
		item.SetFailed(message)
	}

	logger.Error("run failed",
		logging.Error(runErr),
		logging.String("error_kind", services.Kind(runErr)),
		logging.String("resolved_status", string(item.Status)),
	)

	if err := m.store.Update(ctx, item); err != nil {
		logger.Error("failed to persist run failure", logging.Error(err))
	}
	m.setLastItem(item)
	m.countResult(false)

	if item.Status == queue.StatusFailed {
		if err := m.notifier.NotifyRunFailed(ctx, item.Title, runErr); err != nil {
			logger.Debug("run failed notification failed", logging.Error(err))
		}
	}
}

// requeueInterrupted returns an item cut off by shutdown to the pending
// queue so the next daemon start picks it up.
func (m *Manager) requeueInterrupted(item *queue.Item, logger *slog.Logger) {
	item.Status = queue.StatusPending
	item.SetProgress("Interrupted", queue.DaemonStopReason, 0)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := m.store.Update(ctx, item); err != nil {
		logger.Error("failed to requeue interrupted item", logging.Error(err))
		return
	}
	logger.Info("item requeued after shutdown")
}

func (m *Manager) sleep(ctx context.Context, d time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}

func progressLabel(percent int) string {
	switch {
	case percent < 20:
		return "Extracting audio"
	case percent < 50:
		return "Transcribing"
	case percent < 70:
		return "Translating"
	case percent < 80:
		return "Writing subtitles"
	case percent < 100:
		return "Burning subtitles"
	default:
		return "Publishing"
	}
}
