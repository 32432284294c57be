package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"subburn/internal/fileutil"
	"subburn/internal/fonts"
	"subburn/internal/language"
	"subburn/internal/media"
	"subburn/internal/services"
	"subburn/internal/subtitles"
)

// Stage names used in error context and logging.
const (
	StageExtract    = "extract"
	StageTranscribe = "transcribe"
	StageTranslate  = "translate"
	StageSerialize  = "serialize"
	StageBurn       = "burn"
	StageSummarize  = "summarize"
)

// Progress checkpoints emitted at stage entry.
const (
	progressExtract    = 5
	progressTranscribe = 20
	progressTranslate  = 50
	progressSerialize  = 70
	progressBurn       = 80
	progressDone       = 100
)

// Extractor demuxes a video's audio track into a WAV file.
type Extractor interface {
	ExtractAudio(ctx context.Context, videoPath, dest string) error
}

// Transcriber produces timed segments from an audio file. An empty language
// code requests auto-detection.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath, outputDir, languageCode string) (media.TranscriptionResult, error)
}

// Translator converts segments into the target language, substituting the
// failure sentinel for segments it cannot translate.
type Translator interface {
	TranslateSegments(ctx context.Context, segments []media.Segment, targetCode string) []media.TranslatedSegment
}

// Burner renders a subtitle file onto a video.
type Burner interface {
	BurnSubtitles(ctx context.Context, videoPath, subtitlePath, outputPath string, font fonts.Font) error
}

// Observer receives fire-and-forget progress percentages. Implementations
// must not block; a nil observer is valid.
type Observer interface {
	Progress(percent int)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(percent int)

func (f ObserverFunc) Progress(percent int) { f(percent) }

// Request describes one subtitling run.
type Request struct {
	SourcePath     string
	TargetLanguage string // human-readable catalog name, required
	SourceLanguage string // catalog name or "Auto"/empty for detection
	Observer       Observer
}

// Result holds the artifacts of a successful run.
type Result struct {
	OutputVideoPath    string
	SubtitleFilePath   string
	TranscriptFilePath string
	DetectedLanguage   string
}

// Options configures a Pipeline.
type Options struct {
	WorkDir    string
	OutputDir  string
	RunTimeout time.Duration
}

// Pipeline sequences the subtitling stages for one video at a time.
type Pipeline struct {
	opts        Options
	extractor   Extractor
	transcriber Transcriber
	translator  Translator
	burner      Burner
}

// New constructs a pipeline from its stage implementations.
func New(opts Options, extractor Extractor, transcriber Transcriber, translator Translator, burner Burner) *Pipeline {
	return &Pipeline{
		opts:        opts,
		extractor:   extractor,
		transcriber: transcriber,
		translator:  translator,
		burner:      burner,
	}
}

// Run executes the full pipeline for one video. On success the run's work
// directory is removed and the published artifact paths are returned; on
// failure the work directory is left in place for inspection and completed
// artifacts are not rolled back.
func (p *Pipeline) Run(ctx context.Context, req Request) (Result, error) {
	var empty Result

	targetCode, ok := language.Resolve(req.TargetLanguage)
	if !ok {
		return empty, services.Wrap(services.ErrInvalidLanguage, "", "resolve target", fmt.Sprintf("unknown language %q", req.TargetLanguage), nil)
	}
	hintCode, ok := language.ResolveHint(req.SourceLanguage)
	if !ok {
		return empty, services.Wrap(services.ErrInvalidLanguage, "", "resolve source", fmt.Sprintf("unknown language %q", req.SourceLanguage), nil)
	}

	if p.opts.RunTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.opts.RunTimeout)
		defer cancel()
	}

	runDir := filepath.Join(p.opts.WorkDir, uuid.NewString())
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return empty, services.Wrap(services.ErrIO, "", "create work dir", runDir, err)
	}
	if err := os.MkdirAll(p.opts.OutputDir, 0o755); err != nil {
		return empty, services.Wrap(services.ErrIO, "", "create output dir", p.opts.OutputDir, err)
	}

	base := artifactBase(req.SourcePath)
	audioPath := filepath.Join(runDir, base+".wav")

	notify(req.Observer, progressExtract)
	if err := p.extractor.ExtractAudio(ctx, req.SourcePath, audioPath); err != nil {
		return empty, stageError(ctx, StageExtract, err)
	}

	notify(req.Observer, progressTranscribe)
	transcript, err := p.transcriber.Transcribe(ctx, audioPath, runDir, hintCode)
	if err != nil {
		return empty, stageError(ctx, StageTranscribe, err)
	}
	if transcript.Empty() {
		return empty, services.Wrap(services.ErrEmptyTranscript, StageTranscribe, "", "no speech recognized", nil)
	}

	notify(req.Observer, progressTranslate)
	translated := p.translator.TranslateSegments(ctx, transcript.Segments, targetCode)
	if err := ctx.Err(); err != nil {
		return empty, stageError(ctx, StageTranslate, err)
	}

	notify(req.Observer, progressSerialize)
	srtPath := filepath.Join(runDir, base+".srt")
	if err := subtitles.WriteSRT(srtPath, translated); err != nil {
		return empty, services.Wrap(services.ErrIO, StageSerialize, "write subtitles", srtPath, err)
	}

	notify(req.Observer, progressBurn)
	font := fonts.Select(subtitleSample(translated))
	burnedPath := filepath.Join(runDir, base+"_subtitled.mp4")
	if err := p.burner.BurnSubtitles(ctx, req.SourcePath, srtPath, burnedPath, font); err != nil {
		return empty, stageError(ctx, StageBurn, err)
	}

	notify(req.Observer, progressDone)
	summaryPath := filepath.Join(runDir, base+"_summary.txt")
	if err := writeSummary(summaryPath, transcript); err != nil {
		return empty, services.Wrap(services.ErrIO, StageSummarize, "write summary", summaryPath, err)
	}

	result, err := p.publish(runDir, base)
	if err != nil {
		return empty, err
	}
	result.DetectedLanguage = transcript.DetectedLanguage
	_ = os.RemoveAll(runDir)
	return result, nil
}

// publish copies the run's artifacts from the work directory into the output
// directory, overwriting any prior artifacts with the same names.
func (p *Pipeline) publish(runDir, base string) (Result, error) {
	result := Result{
		SubtitleFilePath:   filepath.Join(p.opts.OutputDir, base+".srt"),
		OutputVideoPath:    filepath.Join(p.opts.OutputDir, base+"_subtitled.mp4"),
		TranscriptFilePath: filepath.Join(p.opts.OutputDir, base+"_summary.txt"),
	}
	if err := fileutil.CopyFile(filepath.Join(runDir, base+".srt"), result.SubtitleFilePath); err != nil {
		return Result{}, services.Wrap(services.ErrIO, StageSummarize, "publish subtitles", result.SubtitleFilePath, err)
	}
	if err := fileutil.CopyFileVerified(filepath.Join(runDir, base+"_subtitled.mp4"), result.OutputVideoPath); err != nil {
		return Result{}, services.Wrap(services.ErrIO, StageSummarize, "publish video", result.OutputVideoPath, err)
	}
	if err := fileutil.CopyFile(filepath.Join(runDir, base+"_summary.txt"), result.TranscriptFilePath); err != nil {
		return Result{}, services.Wrap(services.ErrIO, StageSummarize, "publish summary", result.TranscriptFilePath, err)
	}
	return result, nil
}

func writeSummary(path string, transcript media.TranscriptionResult) error {
	var sb strings.Builder
	sb.WriteString("Detected language: ")
	if transcript.DetectedLanguage != "" {
		sb.WriteString(transcript.DetectedLanguage)
	} else {
		sb.WriteString("unknown")
	}
	sb.WriteString("\n\n")
	sb.WriteString(strings.TrimSpace(transcript.FullText))
	sb.WriteString("\n")
	return os.WriteFile(path, []byte(sb.String()), 0o644)
}

// artifactBase strips the directory and extension from the input path.
func artifactBase(sourcePath string) string {
	name := filepath.Base(sourcePath)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// subtitleSample concatenates the surviving translated text so font
// selection sees the output script, not the source one.
func subtitleSample(segments []media.TranslatedSegment) string {
	var sb strings.Builder
	for _, seg := range segments {
		if seg.Failed() {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(seg.Text)
	}
	return sb.String()
}

func notify(observer Observer, percent int) {
	if observer == nil {
		return
	}
	observer.Progress(percent)
}

// stageError tags an error with its stage, mapping deadline expiry onto the
// timeout marker so the daemon can report it distinctly.
func stageError(ctx context.Context, stage string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return services.Wrap(services.ErrTimeout, stage, "", "run deadline exceeded", err)
	}
	if services.Kind(err) != "unknown" {
		return err
	}
	return services.Wrap(services.ErrTransient, stage, "", "", err)
}
