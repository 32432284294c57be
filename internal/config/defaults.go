package config

const (
	defaultWorkDir                = "~/.local/share/subburn/work"
	defaultOutputDir              = "~/subtitled"
	defaultLogDir                 = "~/.local/share/subburn/logs"
	defaultLogRetentionDays       = 60
	defaultLogFormat              = "console"
	defaultLogLevel               = "info"
	defaultTranscriberBackend     = "whisper"
	defaultWhisperBinary          = "whisper"
	defaultWhisperModel           = "small"
	defaultAWSPollInterval        = 5
	defaultTranslateTimeout       = 10
	defaultTranslateRetryAttempts = 3
	defaultNotifyRequestTimeout   = 10
	defaultQueuePollInterval      = 5
	defaultErrorRetryInterval     = 10
	defaultRunTimeoutMinutes      = 120
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			WorkDir:   defaultWorkDir,
			OutputDir: defaultOutputDir,
			LogDir:    defaultLogDir,
		},
		Transcriber: Transcriber{
			Backend: defaultTranscriberBackend,
			Binary:  defaultWhisperBinary,
			Model:   defaultWhisperModel,
		},
		AWS: AWS{
			PollInterval: defaultAWSPollInterval,
		},
		Translate: Translate{
			TimeoutSeconds: defaultTranslateTimeout,
			RetryAttempts:  defaultTranslateRetryAttempts,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyRequestTimeout,
		},
		Workflow: Workflow{
			QueuePollInterval:  defaultQueuePollInterval,
			ErrorRetryInterval: defaultErrorRetryInterval,
			RunTimeoutMinutes:  defaultRunTimeoutMinutes,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}
