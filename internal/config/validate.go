package config

import (
	"errors"
	"fmt"
	"strings"

	"subburn/internal/services/whisper"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateTranscriber(); err != nil {
		return err
	}
	if err := c.validateWorkflow(); err != nil {
		return err
	}
	if err := c.validateTranslate(); err != nil {
		return err
	}
	if err := c.validateNotifications(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateTranscriber() error {
	switch c.Transcriber.Backend {
	case "whisper":
		if !whisper.ValidModel(c.Transcriber.Model) {
			return fmt.Errorf("transcriber.model %q is not a known model tier", c.Transcriber.Model)
		}
	case "aws":
		if strings.TrimSpace(c.AWS.Region) == "" {
			return errors.New("aws.region must be set when transcriber.backend is \"aws\" (or set AWS_REGION)")
		}
		if strings.TrimSpace(c.AWS.Bucket) == "" {
			return errors.New("aws.bucket must be set when transcriber.backend is \"aws\"")
		}
		if c.AWS.PollInterval <= 0 {
			return errors.New("aws.poll_interval must be positive (seconds)")
		}
	default:
		return fmt.Errorf("transcriber.backend must be \"whisper\" or \"aws\", got %q", c.Transcriber.Backend)
	}
	return nil
}

func (c *Config) validateWorkflow() error {
	return ensurePositiveMap(map[string]int{
		"workflow.queue_poll_interval":  c.Workflow.QueuePollInterval,
		"workflow.error_retry_interval": c.Workflow.ErrorRetryInterval,
		"workflow.run_timeout_minutes":  c.Workflow.RunTimeoutMinutes,
	})
}

func (c *Config) validateTranslate() error {
	return ensurePositiveMap(map[string]int{
		"translate.timeout_seconds": c.Translate.TimeoutSeconds,
		"translate.retry_attempts":  c.Translate.RetryAttempts,
	})
}

func (c *Config) validateNotifications() error {
	if c.Notifications.RequestTimeout <= 0 {
		return errors.New("notifications.request_timeout must be positive")
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
