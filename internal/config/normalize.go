package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTranscriber()
	c.normalizeAWS()
	c.normalizeTranslate()
	c.normalizeWorkflow()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.WorkDir) == "" {
		c.Paths.WorkDir = defaultWorkDir
	}
	if c.Paths.WorkDir, err = expandPath(c.Paths.WorkDir); err != nil {
		return fmt.Errorf("paths.work_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	// FontDir is optional; empty leaves font resolution to the renderer.
	if strings.TrimSpace(c.Paths.FontDir) != "" {
		if c.Paths.FontDir, err = expandPath(c.Paths.FontDir); err != nil {
			return fmt.Errorf("paths.font_dir: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizeTranscriber() {
	c.Transcriber.Backend = strings.ToLower(strings.TrimSpace(c.Transcriber.Backend))
	if c.Transcriber.Backend == "" {
		c.Transcriber.Backend = defaultTranscriberBackend
	}
	c.Transcriber.Binary = strings.TrimSpace(c.Transcriber.Binary)
	if c.Transcriber.Binary == "" {
		c.Transcriber.Binary = defaultWhisperBinary
	}
	c.Transcriber.Model = strings.ToLower(strings.TrimSpace(c.Transcriber.Model))
	if c.Transcriber.Model == "" {
		c.Transcriber.Model = defaultWhisperModel
	}
}

func (c *Config) normalizeAWS() {
	c.AWS.Region = strings.TrimSpace(c.AWS.Region)
	if c.AWS.Region == "" {
		if value, ok := os.LookupEnv("AWS_REGION"); ok {
			c.AWS.Region = strings.TrimSpace(value)
		}
	}
	c.AWS.Bucket = strings.TrimSpace(c.AWS.Bucket)
	if c.AWS.PollInterval <= 0 {
		c.AWS.PollInterval = defaultAWSPollInterval
	}
}

func (c *Config) normalizeTranslate() {
	c.Translate.Endpoint = strings.TrimSpace(c.Translate.Endpoint)
	if c.Translate.TimeoutSeconds <= 0 {
		c.Translate.TimeoutSeconds = defaultTranslateTimeout
	}
	if c.Translate.RetryAttempts <= 0 {
		c.Translate.RetryAttempts = defaultTranslateRetryAttempts
	}
}

func (c *Config) normalizeWorkflow() {
	if c.Workflow.QueuePollInterval <= 0 {
		c.Workflow.QueuePollInterval = defaultQueuePollInterval
	}
	if c.Workflow.ErrorRetryInterval <= 0 {
		c.Workflow.ErrorRetryInterval = defaultErrorRetryInterval
	}
	if c.Workflow.RunTimeoutMinutes <= 0 {
		c.Workflow.RunTimeoutMinutes = defaultRunTimeoutMinutes
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.RetentionDays < 0 {
		c.Logging.RetentionDays = 0
	}
}
