package awstranscribe

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/transcribe"
	transcribetypes "github.com/aws/aws-sdk-go-v2/service/transcribe/types"
	"github.com/aws/smithy-go"

	"subburn/internal/media"
	"subburn/internal/services"
)

// Config captures the AWS backend settings.
type Config struct {
	Region       string
	Bucket       string
	PollInterval time.Duration
}

const defaultPollInterval = 10 * time.Second

// s3API is the slice of the S3 client the service uses.
type s3API interface {
	HeadObject(ctx context.Context, in *s3.HeadObjectInput, opts ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, opts ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// transcribeAPI is the slice of the Transcribe client the service uses.
type transcribeAPI interface {
	StartTranscriptionJob(ctx context.Context, in *transcribe.StartTranscriptionJobInput, opts ...func(*transcribe.Options)) (*transcribe.StartTranscriptionJobOutput, error)
	GetTranscriptionJob(ctx context.Context, in *transcribe.GetTranscriptionJobInput, opts ...func(*transcribe.Options)) (*transcribe.GetTranscriptionJobOutput, error)
}

// Service runs transcriptions through Amazon Transcribe.
type Service struct {
	cfg        Config
	s3Client   s3API
	jobsClient transcribeAPI
}

// NewService loads AWS SDK configuration for the region and builds the
// backing clients.
func NewService(ctx context.Context, cfg Config) (*Service, error) {
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, services.Wrap(services.ErrTranscription, "transcribe", "aws setup", "bucket not configured", nil)
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, services.Wrap(services.ErrTranscription, "transcribe", "load aws config", "", err)
	}
	return newService(cfg, s3.NewFromConfig(awsCfg), transcribe.NewFromConfig(awsCfg)), nil
}

func newService(cfg Config, s3Client s3API, jobsClient transcribeAPI) *Service {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaultPollInterval
	}
	return &Service{cfg: cfg, s3Client: s3Client, jobsClient: jobsClient}
}

// Transcribe uploads the audio, runs a transcription job, and maps the
// output document into segments. languageCode constrains recognition when
// non-empty; otherwise the job identifies the language.
func (s *Service) Transcribe(ctx context.Context, audioPath, _ string, languageCode string) (media.TranscriptionResult, error) {
	var result media.TranscriptionResult

	hash, err := fileHash(audioPath)
	if err != nil {
		return result, services.Wrap(services.ErrIO, "transcribe", "hash audio", audioPath, err)
	}
	key := fmt.Sprintf("uploads/%s_%s", hash, filepath.Base(audioPath))
	jobName := "subburn-" + hash

	if err := s.ensureUploaded(ctx, key, audioPath); err != nil {
		return result, err
	}
	if err := s.ensureJob(ctx, jobName, key, languageCode); err != nil {
		return result, err
	}
	detected, err := s.waitForJob(ctx, jobName)
	if err != nil {
		return result, err
	}

	doc, err := s.fetchDocument(ctx, jobName+".json")
	if err != nil {
		return result, err
	}

	result.DetectedLanguage = shortLanguage(detected)
	result.Segments = doc.segments()
	result.FullText = doc.fullText()
	if result.FullText == "" {
		result.FullText = media.JoinSegmentText(result.Segments)
	}
	return result, nil
}

func (s *Service) ensureUploaded(ctx context.Context, key, path string) error {
	_, err := s.s3Client.HeadObject(ctx, &s3.HeadObjectInput{Bucket: &s.cfg.Bucket, Key: &key})
	if err == nil {
		return nil
	}
	if !isNotFound(err) {
		return services.Wrap(services.ErrTranscription, "transcribe", "check upload", key, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return services.Wrap(services.ErrIO, "transcribe", "open audio", path, err)
	}
	defer f.Close()

	if _, err := s.s3Client.PutObject(ctx, &s3.PutObjectInput{Bucket: &s.cfg.Bucket, Key: &key, Body: f}); err != nil {
		return services.Wrap(services.ErrTranscription, "transcribe", "upload audio", key, err)
	}
	return nil
}

func (s *Service) ensureJob(ctx context.Context, jobName, key, languageCode string) error {
	out, err := s.jobsClient.GetTranscriptionJob(ctx, &transcribe.GetTranscriptionJobInput{TranscriptionJobName: &jobName})
	if err == nil && out.TranscriptionJob != nil {
		return nil
	}
	if err != nil && !isJobMissing(err) {
		return services.Wrap(services.ErrTranscription, "transcribe", "check job", jobName, err)
	}

	mediaURI := fmt.Sprintf("s3://%s/%s", s.cfg.Bucket, key)
	input := &transcribe.StartTranscriptionJobInput{
		TranscriptionJobName: &jobName,
		MediaFormat:          transcribetypes.MediaFormatWav,
		Media:                &transcribetypes.Media{MediaFileUri: &mediaURI},
		OutputBucketName:     &s.cfg.Bucket,
	}
	if languageCode == "" {
		input.IdentifyLanguage = boolPtr(true)
	} else {
		input.LanguageCode = awsLanguageCode(languageCode)
	}
	if _, err := s.jobsClient.StartTranscriptionJob(ctx, input); err != nil {
		return services.Wrap(services.ErrTranscription, "transcribe", "start job", jobName, err)
	}
	return nil
}

func (s *Service) waitForJob(ctx context.Context, jobName string) (string, error) {
	ticker := time.NewTicker(s.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return "", services.Wrap(services.ErrTimeout, "transcribe", "wait for job", jobName, ctx.Err())
		case <-ticker.C:
		}

		out, err := s.jobsClient.GetTranscriptionJob(ctx, &transcribe.GetTranscriptionJobInput{TranscriptionJobName: &jobName})
		if err != nil {
			return "", services.Wrap(services.ErrTranscription, "transcribe", "poll job", jobName, err)
		}
		job := out.TranscriptionJob
		if job == nil {
			continue
		}
		switch job.TranscriptionJobStatus {
		case transcribetypes.TranscriptionJobStatusCompleted:
			return string(job.LanguageCode), nil
		case transcribetypes.TranscriptionJobStatusFailed:
			reason := ""
			if job.FailureReason != nil {
				reason = *job.FailureReason
			}
			return "", services.Wrap(services.ErrTranscription, "transcribe", "job failed", reason, nil)
		}
	}
}

func (s *Service) fetchDocument(ctx context.Context, key string) (*document, error) {
	out, err := s.s3Client.GetObject(ctx, &s3.GetObjectInput{Bucket: &s.cfg.Bucket, Key: &key})
	if err != nil {
		return nil, services.Wrap(services.ErrTranscription, "transcribe", "fetch transcript", key, err)
	}
	defer out.Body.Close()

	var doc document
	if err := json.NewDecoder(out.Body).Decode(&doc); err != nil {
		return nil, services.Wrap(services.ErrTranscription, "transcribe", "parse transcript", key, err)
	}
	return &doc, nil
}

// document is the JSON structure Transcribe writes to the output bucket.
type document struct {
	Results struct {
		Transcripts []struct {
			Transcript string `json:"transcript"`
		} `json:"transcripts"`
		AudioSegments []struct {
			Transcript string `json:"transcript"`
			StartTime  string `json:"start_time"`
			EndTime    string `json:"end_time"`
		} `json:"audio_segments"`
	} `json:"results"`
	Status string `json:"status"`
}

func (d *document) segments() []media.Segment {
	segments := make([]media.Segment, 0, len(d.Results.AudioSegments))
	for _, seg := range d.Results.AudioSegments {
		start, errS := strconv.ParseFloat(seg.StartTime, 64)
		end, errE := strconv.ParseFloat(seg.EndTime, 64)
		text := strings.TrimSpace(seg.Transcript)
		if errS != nil || errE != nil || text == "" {
			continue
		}
		segments = append(segments, media.Segment{Start: start, End: end, Text: text})
	}
	return segments
}

func (d *document) fullText() string {
	if len(d.Results.Transcripts) == 0 {
		return ""
	}
	return strings.TrimSpace(d.Results.Transcripts[0].Transcript)
}

// awsLanguageCode widens a two-letter code into the service's locale codes.
func awsLanguageCode(code string) transcribetypes.LanguageCode {
	locales := map[string]transcribetypes.LanguageCode{
		"en": transcribetypes.LanguageCodeEnUs,
		"es": transcribetypes.LanguageCodeEsEs,
		"fr": transcribetypes.LanguageCodeFrFr,
		"de": transcribetypes.LanguageCodeDeDe,
		"it": transcribetypes.LanguageCodeItIt,
		"pt": transcribetypes.LanguageCodePtBr,
		"ja": transcribetypes.LanguageCodeJaJp,
		"ko": transcribetypes.LanguageCodeKoKr,
		"ar": transcribetypes.LanguageCodeArSa,
		"hi": transcribetypes.LanguageCodeHiIn,
		"ru": transcribetypes.LanguageCodeRuRu,
		"nl": transcribetypes.LanguageCodeNlNl,
	}
	if locale, ok := locales[strings.ToLower(code)]; ok {
		return locale
	}
	return transcribetypes.LanguageCodeEnUs
}

// shortLanguage reduces a locale code like "en-US" to its language part.
func shortLanguage(locale string) string {
	if idx := strings.IndexByte(locale, '-'); idx > 0 {
		return strings.ToLower(locale[:idx])
	}
	return strings.ToLower(locale)
}

func fileHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(hasher.Sum(nil))[:16], nil
}

func isNotFound(err error) bool {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		return code == "NotFound" || code == "NotFoundException" || code == "NoSuchKey" || code == "404"
	}
	return strings.Contains(err.Error(), "NotFound")
}

func isJobMissing(err error) bool {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && apiErr.ErrorCode() == "BadRequestException" {
		return strings.Contains(apiErr.ErrorMessage(), "couldn't be found")
	}
	return strings.Contains(err.Error(), "couldn't be found")
}

func boolPtr(v bool) *bool { return &v }
