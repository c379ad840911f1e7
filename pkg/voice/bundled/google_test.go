package bundled

import (
	"context"
	"errors"
	"testing"
	"time"
)

type recorderFunc func(ctx context.Context) ([]byte, error)

func (f recorderFunc) Record(ctx context.Context) ([]byte, error) { return f(ctx) }

func TestNewGoogleTranscriber(t *testing.T) {
	t.Run("missing api key", func(t *testing.T) {
		if _, err := NewGoogleTranscriber(context.Background(), "", nil); err == nil {
			t.Error("expected an error without an API key")
		}
	})

	t.Run("options applied", func(t *testing.T) {
		g, err := NewGoogleTranscriber(context.Background(), "test-key", nil,
			WithLanguage("de-DE"),
			WithSampleRate(24000),
			WithTimeout(5*time.Second),
		)
		if err != nil {
			t.Fatalf("new transcriber: %v", err)
		}

		info := g.BackendInfo()
		if info["language"] != "de-DE" || info["sample_rate"] != "24000" {
			t.Errorf("options not reflected: %v", info)
		}
		if g.IsAvailable() {
			t.Error("transcriber without a recorder should report unavailable")
		}
	})
}

func TestRecordAndTranscribe(t *testing.T) {
	t.Run("silence short-circuits before recognition", func(t *testing.T) {
		g, err := NewGoogleTranscriber(context.Background(), "test-key",
			recorderFunc(func(context.Context) ([]byte, error) { return nil, nil }))
		if err != nil {
			t.Fatalf("new transcriber: %v", err)
		}

		text, err := g.RecordAndTranscribe()
		if err != nil {
			t.Errorf("silence should not error: %v", err)
		}
		if text != "" {
			t.Errorf("expected empty transcript, got %q", text)
		}
	})

	t.Run("recorder failure surfaces", func(t *testing.T) {
		boom := errors.New("device busy")
		g, err := NewGoogleTranscriber(context.Background(), "test-key",
			recorderFunc(func(context.Context) ([]byte, error) { return nil, boom }))
		if err != nil {
			t.Fatalf("new transcriber: %v", err)
		}

		if _, err := g.RecordAndTranscribe(); !errors.Is(err, boom) {
			t.Errorf("expected recorder error, got %v", err)
		}
	})
}
