package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"subburn/internal/fonts"
	"subburn/internal/media"
	"subburn/internal/services"
	"subburn/internal/subtitles"
)

type fakeExtractor struct {
	err   error
	calls int
}

func (f *fakeExtractor) ExtractAudio(_ context.Context, _, dest string) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	return os.WriteFile(dest, []byte("RIFF"), 0o644)
}

type fakeTranscriber struct {
	result media.TranscriptionResult
	err    error
}

func (f *fakeTranscriber) Transcribe(context.Context, string, string, string) (media.TranscriptionResult, error) {
	return f.result, f.err
}

type fakeTranslator struct {
	failTexts map[string]bool
}

func (f *fakeTranslator) TranslateSegments(_ context.Context, segments []media.Segment, _ string) []media.TranslatedSegment {
	out := make([]media.TranslatedSegment, 0, len(segments))
	for _, seg := range segments {
		text := "translated " + seg.Text
		if f.failTexts[seg.Text] {
			text = media.TranslationFailedSentinel
		}
		out = append(out, media.TranslatedSegment{Start: seg.Start, End: seg.End, Text: text})
	}
	return out
}

type fakeBurner struct {
	err  error
	font fonts.Font
}

func (f *fakeBurner) BurnSubtitles(_ context.Context, _, _, outputPath string, font fonts.Font) error {
	f.font = font
	if f.err != nil {
		return f.err
	}
	return os.WriteFile(outputPath, []byte("mp4"), 0o644)
}

type recordingObserver struct {
	percents []int
}

func (o *recordingObserver) Progress(percent int) {
	o.percents = append(o.percents, percent)
}

func testTranscript() media.TranscriptionResult {
	return media.TranscriptionResult{
		Segments: []media.Segment{
			{Start: 0, End: 2, Text: "hello"},
			{Start: 2, End: 4.5, Text: "world"},
		},
		FullText:         "hello world",
		DetectedLanguage: "en",
	}
}

func newTestPipeline(t *testing.T, transcriber Transcriber, translator Translator, burner Burner) (*Pipeline, string) {
	t.Helper()
	root := t.TempDir()
	opts := Options{
		WorkDir:   filepath.Join(root, "work"),
		OutputDir: filepath.Join(root, "out"),
	}
	if transcriber == nil {
		transcriber = &fakeTranscriber{result: testTranscript()}
	}
	if translator == nil {
		translator = &fakeTranslator{}
	}
	if burner == nil {
		burner = &fakeBurner{}
	}
	return New(opts, &fakeExtractor{}, transcriber, translator, burner), opts.OutputDir
}

func TestRunSuccessPublishesArtifacts(t *testing.T) {
	p, outputDir := newTestPipeline(t, nil, nil, nil)
	observer := &recordingObserver{}

	result, err := p.Run(context.Background(), Request{
		SourcePath:     "/videos/lecture.mp4",
		TargetLanguage: "French",
		Observer:       observer,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	wantPaths := map[string]string{
		"subtitle":   filepath.Join(outputDir, "lecture.srt"),
		"video":      filepath.Join(outputDir, "lecture_subtitled.mp4"),
		"transcript": filepath.Join(outputDir, "lecture_summary.txt"),
	}
	if result.SubtitleFilePath != wantPaths["subtitle"] {
		t.Errorf("SubtitleFilePath = %q, want %q", result.SubtitleFilePath, wantPaths["subtitle"])
	}
	if result.OutputVideoPath != wantPaths["video"] {
		t.Errorf("OutputVideoPath = %q, want %q", result.OutputVideoPath, wantPaths["video"])
	}
	if result.TranscriptFilePath != wantPaths["transcript"] {
		t.Errorf("TranscriptFilePath = %q, want %q", result.TranscriptFilePath, wantPaths["transcript"])
	}
	if result.DetectedLanguage != "en" {
		t.Errorf("DetectedLanguage = %q, want en", result.DetectedLanguage)
	}
	for name, path := range wantPaths {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("%s artifact missing: %v", name, err)
		}
	}

	cues, err := subtitles.CountCues(result.SubtitleFilePath)
	if err != nil {
		t.Fatalf("CountCues: %v", err)
	}
	if cues != 2 {
		t.Errorf("cues = %d, want 2", cues)
	}

	summary, err := os.ReadFile(result.TranscriptFilePath)
	if err != nil {
		t.Fatalf("read summary: %v", err)
	}
	if !strings.Contains(string(summary), "hello world") {
		t.Errorf("summary missing transcript text: %q", summary)
	}
	if !strings.Contains(string(summary), "en") {
		t.Errorf("summary missing detected language: %q", summary)
	}
}

func TestRunProgressSequence(t *testing.T) {
	p, _ := newTestPipeline(t, nil, nil, nil)
	observer := &recordingObserver{}

	if _, err := p.Run(context.Background(), Request{
		SourcePath:     "/videos/talk.mp4",
		TargetLanguage: "Spanish",
		Observer:       observer,
	}); err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := []int{5, 20, 50, 70, 80, 100}
	if len(observer.percents) != len(want) {
		t.Fatalf("progress events = %v, want %v", observer.percents, want)
	}
	prev := -1
	for i, got := range observer.percents {
		if got != want[i] {
			t.Errorf("percents[%d] = %d, want %d", i, got, want[i])
		}
		if got < prev {
			t.Errorf("progress decreased: %v", observer.percents)
		}
		prev = got
	}
}

func TestRunNilObserver(t *testing.T) {
	p, _ := newTestPipeline(t, nil, nil, nil)
	if _, err := p.Run(context.Background(), Request{
		SourcePath:     "/videos/talk.mp4",
		TargetLanguage: "German",
	}); err != nil {
		t.Fatalf("Run with nil observer: %v", err)
	}
}

func TestRunEmptyTranscriptionAborts(t *testing.T) {
	p, outputDir := newTestPipeline(t, &fakeTranscriber{}, nil, nil)

	_, err := p.Run(context.Background(), Request{
		SourcePath:     "/videos/silent.mp4",
		TargetLanguage: "French",
	})
	if !errors.Is(err, services.ErrEmptyTranscript) {
		t.Fatalf("err = %v, want ErrEmptyTranscript", err)
	}
	entries, _ := os.ReadDir(outputDir)
	if len(entries) != 0 {
		t.Errorf("output dir not empty after abort: %v", entries)
	}
}

func TestRunFailedSegmentsKeepSentinel(t *testing.T) {
	translator := &fakeTranslator{failTexts: map[string]bool{"world": true}}
	p, _ := newTestPipeline(t, nil, translator, nil)

	result, err := p.Run(context.Background(), Request{
		SourcePath:     "/videos/talk.mp4",
		TargetLanguage: "French",
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	data, err := os.ReadFile(result.SubtitleFilePath)
	if err != nil {
		t.Fatalf("read srt: %v", err)
	}
	if !strings.Contains(string(data), media.TranslationFailedSentinel) {
		t.Errorf("subtitle file missing sentinel:\n%s", data)
	}
	if !strings.Contains(string(data), "translated hello") {
		t.Errorf("subtitle file missing surviving segment:\n%s", data)
	}
}

func TestRunInvalidTargetLanguage(t *testing.T) {
	p, _ := newTestPipeline(t, nil, nil, nil)
	_, err := p.Run(context.Background(), Request{
		SourcePath:     "/videos/talk.mp4",
		TargetLanguage: "Klingon",
	})
	if !errors.Is(err, services.ErrInvalidLanguage) {
		t.Fatalf("err = %v, want ErrInvalidLanguage", err)
	}
}

func TestRunExtractionFailure(t *testing.T) {
	root := t.TempDir()
	opts := Options{WorkDir: filepath.Join(root, "work"), OutputDir: filepath.Join(root, "out")}
	extractErr := services.Wrap(services.ErrExtraction, StageExtract, "run ffmpeg", "no audio stream", errors.New("exit status 1"))
	p := New(opts, &fakeExtractor{err: extractErr}, &fakeTranscriber{result: testTranscript()}, &fakeTranslator{}, &fakeBurner{})

	_, err := p.Run(context.Background(), Request{
		SourcePath:     "/videos/broken.mp4",
		TargetLanguage: "French",
	})
	if !errors.Is(err, services.ErrExtraction) {
		t.Fatalf("err = %v, want ErrExtraction", err)
	}
}

func TestRunBurnFailureKeepsWorkDir(t *testing.T) {
	root := t.TempDir()
	opts := Options{WorkDir: filepath.Join(root, "work"), OutputDir: filepath.Join(root, "out")}
	burnErr := services.Wrap(services.ErrBurn, StageBurn, "run ffmpeg", "filter failed", errors.New("exit status 1"))
	p := New(opts, &fakeExtractor{}, &fakeTranscriber{result: testTranscript()}, &fakeTranslator{}, &fakeBurner{err: burnErr})

	_, err := p.Run(context.Background(), Request{
		SourcePath:     "/videos/talk.mp4",
		TargetLanguage: "French",
	})
	if !errors.Is(err, services.ErrBurn) {
		t.Fatalf("err = %v, want ErrBurn", err)
	}
	entries, readErr := os.ReadDir(opts.WorkDir)
	if readErr != nil {
		t.Fatalf("read work dir: %v", readErr)
	}
	if len(entries) != 1 {
		t.Fatalf("work dir entries = %d, want run dir kept for inspection", len(entries))
	}
	srt := filepath.Join(opts.WorkDir, entries[0].Name(), "talk.srt")
	if _, err := os.Stat(srt); err != nil {
		t.Errorf("completed-stage artifact rolled back: %v", err)
	}
}

func TestRunWorkDirRemovedOnSuccess(t *testing.T) {
	root := t.TempDir()
	opts := Options{WorkDir: filepath.Join(root, "work"), OutputDir: filepath.Join(root, "out")}
	p := New(opts, &fakeExtractor{}, &fakeTranscriber{result: testTranscript()}, &fakeTranslator{}, &fakeBurner{})

	if _, err := p.Run(context.Background(), Request{
		SourcePath:     "/videos/talk.mp4",
		TargetLanguage: "French",
	}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	entries, err := os.ReadDir(opts.WorkDir)
	if err != nil {
		t.Fatalf("read work dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("work dir entries = %d, want run dir removed", len(entries))
	}
}

func TestRunDeadlineSurfacesTimeout(t *testing.T) {
	root := t.TempDir()
	opts := Options{
		WorkDir:    filepath.Join(root, "work"),
		OutputDir:  filepath.Join(root, "out"),
		RunTimeout: time.Nanosecond,
	}
	extractErr := context.DeadlineExceeded
	p := New(opts, &fakeExtractor{err: extractErr}, &fakeTranscriber{result: testTranscript()}, &fakeTranslator{}, &fakeBurner{})

	_, err := p.Run(context.Background(), Request{
		SourcePath:     "/videos/talk.mp4",
		TargetLanguage: "French",
	})
	if !errors.Is(err, services.ErrTimeout) {
		t.Fatalf("err = %v, want ErrTimeout", err)
	}
}

func TestRunBurnFontFollowsTranslatedScript(t *testing.T) {
	transcriber := &fakeTranscriber{result: media.TranscriptionResult{
		Segments:         []media.Segment{{Start: 0, End: 2, Text: "hello"}},
		FullText:         "hello",
		DetectedLanguage: "en",
	}}
	translator := &arabicTranslator{}
	burner := &fakeBurner{}
	root := t.TempDir()
	opts := Options{WorkDir: filepath.Join(root, "work"), OutputDir: filepath.Join(root, "out")}
	p := New(opts, &fakeExtractor{}, transcriber, translator, burner)

	if _, err := p.Run(context.Background(), Request{
		SourcePath:     "/videos/talk.mp4",
		TargetLanguage: "Arabic",
	}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if burner.font.Script != "Arabic" {
		t.Errorf("burn font script = %q, want Arabic", burner.font.Script)
	}
}

type arabicTranslator struct{}

func (arabicTranslator) TranslateSegments(_ context.Context, segments []media.Segment, _ string) []media.TranslatedSegment {
	out := make([]media.TranslatedSegment, 0, len(segments))
	for _, seg := range segments {
		out = append(out, media.TranslatedSegment{Start: seg.Start, End: seg.End, Text: "مرحبا"})
	}
	return out
}

func TestArtifactBase(t *testing.T) {
	cases := map[string]string{
		"/videos/lecture.mp4":  "lecture",
		"talk.mkv":             "talk",
		"/a/b/no_extension":    "no_extension",
		"/a/b/two.dots.webm":   "two.dots",
	}
	for in, want := range cases {
		if got := artifactBase(in); got != want {
			t.Errorf("artifactBase(%q) = %q, want %q", in, got, want)
		}
	}
}
