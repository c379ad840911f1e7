// Package bundled provides drop-in implementations of the voice package's
// provider interfaces. The core pipeline only ever sees the interfaces;
// bundling keeps the backends out of its dependency graph.
package bundled

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"google.golang.org/api/option"
	speech "google.golang.org/api/speech/v1"

	"github.com/hearthlabs/hearth/pkg/voice"
)

// Defaults for Google Cloud Speech recognition.
const (
	googleDefaultLanguage   = "en-US"
	googleDefaultSampleRate = 16000
	googleDefaultTimeout    = 30 * time.Second
)

// Recorder captures one utterance of LINEAR16 PCM audio. Audio capture is
// hardware-specific and lives with the caller.
type Recorder interface {
	Record(ctx context.Context) ([]byte, error)
}

// GoogleTranscriber implements voice.Transcriber on Google Cloud Speech.
type GoogleTranscriber struct {
	svc        *speech.Service
	rec        Recorder
	language   string
	sampleRate int64
	timeout    time.Duration
}

var _ voice.Transcriber = (*GoogleTranscriber)(nil)

// GoogleOption tunes a GoogleTranscriber.
type GoogleOption func(*GoogleTranscriber)

// WithLanguage sets the recognition language code (default en-US).
func WithLanguage(code string) GoogleOption {
	return func(g *GoogleTranscriber) { g.language = code }
}

// WithSampleRate sets the capture sample rate in Hz (default 16000).
func WithSampleRate(hz int64) GoogleOption {
	return func(g *GoogleTranscriber) { g.sampleRate = hz }
}

// WithTimeout bounds one capture-and-recognize round trip (default 30s).
func WithTimeout(d time.Duration) GoogleOption {
	return func(g *GoogleTranscriber) { g.timeout = d }
}

// NewGoogleTranscriber creates a transcriber backed by the Google Cloud
// Speech API.
func NewGoogleTranscriber(ctx context.Context, apiKey string, rec Recorder, opts ...GoogleOption) (*GoogleTranscriber, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("bundled: missing Google API key")
	}
	svc, err := speech.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("bundled: speech service: %w", err)
	}

	g := &GoogleTranscriber{
		svc:        svc,
		rec:        rec,
		language:   googleDefaultLanguage,
		sampleRate: googleDefaultSampleRate,
		timeout:    googleDefaultTimeout,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// RecordAndTranscribe captures one utterance and recognizes it. Returns
// empty text when nothing was captured or nothing was recognized.
func (g *GoogleTranscriber) RecordAndTranscribe() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), g.timeout)
	defer cancel()

	audio, err := g.rec.Record(ctx)
	if err != nil {
		return "", fmt.Errorf("bundled: record: %w", err)
	}
	if len(audio) == 0 {
		return "", nil
	}

	resp, err := g.svc.Speech.Recognize(&speech.RecognizeRequest{
		Config: &speech.RecognitionConfig{
			Encoding:        "LINEAR16",
			SampleRateHertz: g.sampleRate,
			LanguageCode:    g.language,
		},
		Audio: &speech.RecognitionAudio{
			Content: base64.StdEncoding.EncodeToString(audio),
		},
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("bundled: recognize: %w", err)
	}

	for _, result := range resp.Results {
		for _, alt := range result.Alternatives {
			if alt.Transcript != "" {
				return alt.Transcript, nil
			}
		}
	}
	return "", nil
}

// IsAvailable reports whether the transcriber can serve a cycle.
func (g *GoogleTranscriber) IsAvailable() bool {
	return g.svc != nil && g.rec != nil
}

// BackendInfo describes the recognition backend.
func (g *GoogleTranscriber) BackendInfo() map[string]string {
	return map[string]string{
		"backend":     "google-cloud-speech",
		"language":    g.language,
		"sample_rate": fmt.Sprintf("%d", g.sampleRate),
	}
}
