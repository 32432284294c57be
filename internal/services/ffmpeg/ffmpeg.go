package ffmpeg

import (
	"context"
	"strings"

	"subburn/internal/fonts"
	"subburn/internal/services"
)

// DefaultBinary is the transcoder executable resolved from PATH.
const DefaultBinary = "ffmpeg"

// Client invokes the external transcoder. The zero value is not usable;
// construct with NewClient.
type Client struct {
	binary  string
	fontDir string
	runner  services.CommandRunner
}

// NewClient builds a transcoder client. An empty binary falls back to
// DefaultBinary; a nil runner falls back to the production exec runner.
// fontDir, when non-empty, is handed to the subtitle renderer so bundled
// font assets resolve without a system-wide install.
func NewClient(binary, fontDir string, runner services.CommandRunner) *Client {
	if binary == "" {
		binary = DefaultBinary
	}
	if runner == nil {
		runner = services.ExecRunner()
	}
	return &Client{binary: binary, fontDir: fontDir, runner: runner}
}

// ExtractAudio demuxes and resamples the input's audio track into a mono
// 16kHz 16-bit PCM WAV at dest. The transcoder's exit status is checked; a
// failure surfaces as an extraction error carrying the tool output.
func (c *Client) ExtractAudio(ctx context.Context, videoPath, dest string) error {
	args := ExtractArgs(videoPath, dest)
	output, err := c.runner.Run(ctx, c.binary, args...)
	if err != nil {
		return services.Wrap(services.ErrExtraction, "extract", "run ffmpeg", firstLine(output), err)
	}
	return nil
}

// BurnSubtitles hard-renders the subtitle file onto the video's frames,
// copying the audio stream untouched. A non-default font becomes the
// renderer's FontName style override.
func (c *Client) BurnSubtitles(ctx context.Context, videoPath, subtitlePath, outputPath string, font fonts.Font) error {
	args := BurnArgs(videoPath, subtitlePath, outputPath, font, c.fontDir)
	output, err := c.runner.Run(ctx, c.binary, args...)
	if err != nil {
		return services.Wrap(services.ErrBurn, "burn", "run ffmpeg", firstLine(output), err)
	}
	return nil
}

// ExtractArgs builds the audio extraction argument list.
func ExtractArgs(videoPath, dest string) []string {
	return []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", videoPath,
		"-vn",
		"-sn",
		"-dn",
		"-ac", "1",
		"-ar", "16000",
		"-c:a", "pcm_s16le",
		dest,
	}
}

// BurnArgs builds the subtitle burn-in argument list. A non-default font
// also pins the renderer's font search path to fontDir when one is set.
func BurnArgs(videoPath, subtitlePath, outputPath string, font fonts.Font, fontDir string) []string {
	filter := "subtitles=" + filterEscape(subtitlePath)
	if font.Family != "" && font != fonts.Default {
		filter += ":force_style='FontName=" + font.Family + "'"
		if fontDir != "" {
			filter += ":fontsdir=" + filterEscape(fontDir)
		}
	}
	return []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", videoPath,
		"-vf", filter,
		"-c:a", "copy",
		outputPath,
	}
}

// filterEscape quotes a path for use inside an ffmpeg filter expression,
// where ':' and '\' are metacharacters.
func filterEscape(path string) string {
	replacer := strings.NewReplacer(
		`\`, `\\`,
		`:`, `\:`,
		`'`, `\'`,
	)
	return replacer.Replace(path)
}

func firstLine(output string) string {
	output = strings.TrimSpace(output)
	if output == "" {
		return "transcoder reported no output"
	}
	if idx := strings.IndexByte(output, '\n'); idx > 0 {
		return output[:idx]
	}
	return output
}
