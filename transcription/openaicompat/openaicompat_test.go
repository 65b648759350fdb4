package openaicompat

import (
	"context"
	"net/http"
	"testing"

	"github.com/tmm22/speechkit/credentials"
	"github.com/tmm22/speechkit/errors"
	"github.com/tmm22/speechkit/testutil"
	"github.com/tmm22/speechkit/transcription"
)

func TestTranscribe_CustomEndpoint(t *testing.T) {
	backend := testutil.NewBackend(t, func(w http.ResponseWriter, r *http.Request) {
		testutil.JSON(w, `{"text":"local whisper output"}`)
	})
	p := New(Config{
		BaseURL:     backend.URL(),
		Credentials: credentials.NewStatic(map[string]string{ProviderName: "local-key"}),
	})

	resp, err := p.Transcribe(context.Background(), transcription.Request{
		AudioPath: testutil.WriteAudioFile(t),
		Model:     transcription.Model{Name: "faster-whisper-large", Provider: ProviderName},
	})
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if resp.Text != "local whisper output" {
		t.Errorf("Text = %q", resp.Text)
	}

	r := backend.Requests()[0]
	if r.Path != "/audio/transcriptions" {
		t.Errorf("path = %q", r.Path)
	}
	if got := r.FormValue(t, "model"); got != "faster-whisper-large" {
		t.Errorf("model = %q", got)
	}
}

func TestTranscribe_InvalidBaseURL(t *testing.T) {
	p := New(Config{
		BaseURL:     "not a url",
		Credentials: credentials.NewStatic(map[string]string{ProviderName: "k"}),
	})

	_, err := p.Transcribe(context.Background(), transcription.Request{
		AudioPath: testutil.WriteAudioFile(t),
		Model:     transcription.Model{Provider: ProviderName},
	})
	if !errors.HasCode(err, transcription.ErrCodeDataEncodingError) {
		t.Fatalf("err = %v, want DATA_ENCODING_ERROR", err)
	}
}

func TestTranscribe_MissingBaseURL(t *testing.T) {
	p := New(Config{Credentials: credentials.NewStatic(map[string]string{ProviderName: "k"})})

	_, err := p.Transcribe(context.Background(), transcription.Request{
		AudioPath: testutil.WriteAudioFile(t),
		Model:     transcription.Model{Provider: ProviderName},
	})
	if !errors.HasCode(err, transcription.ErrCodeDataEncodingError) {
		t.Fatalf("err = %v, want DATA_ENCODING_ERROR", err)
	}
}

func TestIsAvailable_ProbesModelsRoute(t *testing.T) {
	backend := testutil.NewBackend(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/models" {
			testutil.JSON(w, `{"data":[]}`)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})
	p := New(Config{BaseURL: backend.URL(), Credentials: credentials.NewStatic(nil)})

	if !p.IsAvailable(context.Background()) {
		t.Error("IsAvailable = false for reachable endpoint")
	}

	unreachable := New(Config{BaseURL: "http://127.0.0.1:1", Credentials: credentials.NewStatic(nil)})
	if unreachable.IsAvailable(context.Background()) {
		t.Error("IsAvailable = true for unreachable endpoint")
	}
}
