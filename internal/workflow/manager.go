package workflow

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"subburn/internal/config"
	"subburn/internal/notifications"
	"subburn/internal/pipeline"
	"subburn/internal/queue"
	"subburn/internal/services"
	"subburn/internal/services/awstranscribe"
	"subburn/internal/services/ffmpeg"
	"subburn/internal/services/whisper"
	"subburn/internal/translate"
)

// Runner executes one subtitling run end to end.
type Runner interface {
	Run(ctx context.Context, req pipeline.Request) (pipeline.Result, error)
}

// Manager drains the queue through a Runner, one item at a time.
type Manager struct {
	cfg          *config.Config
	store        *queue.Store
	logger       *slog.Logger
	runner       Runner
	notifier     notifications.Service
	pollInterval time.Duration

	mu       sync.RWMutex
	running  bool
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	lastErr  error
	lastItem *queue.Item

	queueActive bool
	queueStart  time.Time
	processed   int
	failed      int
}

// NewManager constructs a manager with a pipeline built from the
// configuration.
func NewManager(ctx context.Context, cfg *config.Config, store *queue.Store, logger *slog.Logger) (*Manager, error) {
	runner, err := NewRunner(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return NewManagerWithRunner(cfg, store, logger, runner, notifications.NewService(cfg)), nil
}

// NewManagerWithRunner constructs a manager around an explicit runner and
// notifier (used in tests).
func NewManagerWithRunner(cfg *config.Config, store *queue.Store, logger *slog.Logger, runner Runner, notifier notifications.Service) *Manager {
	return &Manager{
		cfg:          cfg,
		store:        store,
		logger:       logger,
		runner:       runner,
		notifier:     notifier,
		pollInterval: time.Duration(cfg.Workflow.QueuePollInterval) * time.Second,
	}
}

// NewRunner assembles the subtitling pipeline from the configured backends.
func NewRunner(ctx context.Context, cfg *config.Config) (Runner, error) {
	exec := services.ExecRunner()
	ff := ffmpeg.NewClient(cfg.FFmpegBinary(), cfg.Paths.FontDir, exec)

	var transcriber pipeline.Transcriber
	switch cfg.Transcriber.Backend {
	case "aws":
		svc, err := awstranscribe.NewService(ctx, awstranscribe.Config{
			Region:       cfg.AWS.Region,
			Bucket:       cfg.AWS.Bucket,
			PollInterval: time.Duration(cfg.AWS.PollInterval) * time.Second,
		})
		if err != nil {
			return nil, err
		}
		transcriber = svc
	default:
		transcriber = whisper.NewService(whisper.Config{
			Binary: cfg.Transcriber.Binary,
			Model:  cfg.Transcriber.Model,
		}, exec)
	}

	translator := translate.NewClient(translate.Config{
		Endpoint:       cfg.Translate.Endpoint,
		TimeoutSeconds: cfg.Translate.TimeoutSeconds,
		RetryAttempts:  cfg.Translate.RetryAttempts,
	})

	opts := pipeline.Options{
		WorkDir:    cfg.Paths.WorkDir,
		OutputDir:  cfg.Paths.OutputDir,
		RunTimeout: time.Duration(cfg.Workflow.RunTimeoutMinutes) * time.Minute,
	}
	return pipeline.New(opts, ff, transcriber, translator, ff), nil
}
