package whisper

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"subburn/internal/media"
	"subburn/internal/services"
)

// Command and model defaults.
const (
	DefaultBinary = "whisper"
	DefaultModel  = "tiny"
)

// ModelTiers lists the accepted model capacity tiers, smallest first.
// Smaller tiers trade accuracy for speed.
var ModelTiers = []string{"tiny", "base", "small", "medium", "large"}

// Config captures runtime settings for Whisper invocations.
type Config struct {
	// Binary is the whisper executable; empty means DefaultBinary.
	Binary string
	// Model is the capacity tier (see ModelTiers); empty means DefaultModel.
	Model string
}

// Service invokes the Whisper CLI. The model is loaded by the CLI on every
// invocation, so the service itself is stateless and safe to share.
type Service struct {
	cfg    Config
	runner services.CommandRunner
}

// NewService creates a Whisper service. A nil runner uses the exec runner.
func NewService(cfg Config, runner services.CommandRunner) *Service {
	if cfg.Binary == "" {
		cfg.Binary = DefaultBinary
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if runner == nil {
		runner = services.ExecRunner()
	}
	return &Service{cfg: cfg, runner: runner}
}

// Model returns the configured model tier.
func (s *Service) Model() string { return s.cfg.Model }

// ValidModel reports whether the tier is one of the known capacities.
func ValidModel(model string) bool {
	for _, tier := range ModelTiers {
		if tier == model {
			return true
		}
	}
	return false
}

// payload is the JSON document the CLI writes alongside its other outputs.
type payload struct {
	Text     string `json:"text"`
	Language string `json:"language"`
	Segments []struct {
		Start float64 `json:"start"`
		End   float64 `json:"end"`
		Text  string  `json:"text"`
	} `json:"segments"`
}

// Transcribe runs recognition over audioPath, writing CLI output files into
// outputDir. languageCode constrains recognition when non-empty; otherwise
// the model identifies the language and reports it in the result. No speech
// yields a result with zero segments, not an error.
func (s *Service) Transcribe(ctx context.Context, audioPath, outputDir, languageCode string) (media.TranscriptionResult, error) {
	var result media.TranscriptionResult

	if audioPath == "" {
		return result, services.Wrap(services.ErrTranscription, "transcribe", "", "audio path required", nil)
	}
	if outputDir == "" {
		outputDir = filepath.Dir(audioPath)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return result, services.Wrap(services.ErrIO, "transcribe", "ensure output dir", "", err)
	}

	args := s.buildArgs(audioPath, outputDir, languageCode)
	if output, err := s.runner.Run(ctx, s.cfg.Binary, args...); err != nil {
		return result, services.Wrap(services.ErrTranscription, "transcribe", "run whisper", strings.TrimSpace(output), err)
	}

	jsonPath := outputJSONPath(audioPath, outputDir)
	parsed, err := loadPayload(jsonPath)
	if err != nil {
		return result, services.Wrap(services.ErrTranscription, "transcribe", "parse output", jsonPath, err)
	}

	result.DetectedLanguage = parsed.Language
	result.FullText = strings.TrimSpace(parsed.Text)
	result.Segments = make([]media.Segment, 0, len(parsed.Segments))
	for _, seg := range parsed.Segments {
		result.Segments = append(result.Segments, media.Segment{
			Start: seg.Start,
			End:   seg.End,
			Text:  strings.TrimSpace(seg.Text),
		})
	}
	if result.FullText == "" {
		result.FullText = media.JoinSegmentText(result.Segments)
	}
	return result, nil
}

func (s *Service) buildArgs(audioPath, outputDir, languageCode string) []string {
	args := []string{
		audioPath,
		"--model", s.cfg.Model,
		"--task", "transcribe",
		"--output_format", "json",
		"--output_dir", outputDir,
	}
	if languageCode != "" {
		args = append(args, "--language", languageCode)
	}
	return args
}

func outputJSONPath(audioPath, outputDir string) string {
	base := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	return filepath.Join(outputDir, base+".json")
}

func loadPayload(jsonPath string) (payload, error) {
	var p payload
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return p, err
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("parse whisper json: %w", err)
	}
	return p, nil
}
