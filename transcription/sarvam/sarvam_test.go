package sarvam

import (
	"context"
	"net/http"
	"testing"

	"github.com/tmm22/speechkit/credentials"
	"github.com/tmm22/speechkit/errors"
	"github.com/tmm22/speechkit/testutil"
	"github.com/tmm22/speechkit/transcription"
)

func newTestProvider(t *testing.T, handler http.HandlerFunc) (*Provider, *testutil.Backend) {
	t.Helper()
	backend := testutil.NewBackend(t, handler)
	p := New(Config{
		BaseURL:     backend.URL(),
		Credentials: credentials.NewStatic(map[string]string{ProviderName: "sv-key"}),
	})
	return p, backend
}

func TestTranscribe_SendsSubscriptionKeyAndLanguage(t *testing.T) {
	p, backend := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		testutil.JSON(w, `{"transcript":"namaste","language_code":"hi-IN"}`)
	})

	resp, err := p.Transcribe(context.Background(), transcription.Request{
		AudioPath: testutil.WriteAudioFile(t),
		Model:     transcription.Model{Name: "saarika:v2", Provider: ProviderName},
		Language:  "hi-IN",
	})
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if resp.Text != "namaste" || resp.Language != "hi-IN" {
		t.Errorf("resp = %+v", resp)
	}

	r := backend.Requests()[0]
	if got := r.Header.Get("api-subscription-key"); got != "sv-key" {
		t.Errorf("api-subscription-key = %q", got)
	}
	if got := r.FormValue(t, "model"); got != "saarika:v2" {
		t.Errorf("model = %q", got)
	}
	if got := r.FormValue(t, "language_code"); got != "hi-IN" {
		t.Errorf("language_code = %q", got)
	}
}

func TestTranscribe_AutoLanguageSendsUnknown(t *testing.T) {
	p, backend := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		testutil.JSON(w, `{"transcript":"ok"}`)
	})

	_, err := p.Transcribe(context.Background(), transcription.Request{
		AudioPath: testutil.WriteAudioFile(t),
		Model:     transcription.Model{Provider: ProviderName},
		Language:  "auto",
	})
	if err != nil {
		t.Fatal(err)
	}
	if got := backend.Requests()[0].FormValue(t, "language_code"); got != "unknown" {
		t.Errorf("language_code = %q, want the mandatory unknown placeholder", got)
	}
}

func TestTranscribe_MissingKeyShortCircuits(t *testing.T) {
	backend := testutil.NewBackend(t, nil)
	p := New(Config{BaseURL: backend.URL(), Credentials: credentials.NewStatic(nil)})

	_, err := p.Transcribe(context.Background(), transcription.Request{
		AudioPath: testutil.WriteAudioFile(t),
		Model:     transcription.Model{Provider: ProviderName},
	})
	if !errors.HasCode(err, transcription.ErrCodeMissingAPIKey) {
		t.Fatalf("err = %v, want MISSING_API_KEY", err)
	}
	if backend.RequestCount() != 0 {
		t.Error("network call made despite missing credential")
	}
}

func TestTranscribe_EmptyTranscript(t *testing.T) {
	p, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		testutil.JSON(w, `{"transcript":""}`)
	})

	_, err := p.Transcribe(context.Background(), transcription.Request{
		AudioPath: testutil.WriteAudioFile(t),
		Model:     transcription.Model{Provider: ProviderName},
	})
	if !errors.HasCode(err, transcription.ErrCodeNoTranscriptionReturned) {
		t.Fatalf("err = %v, want NO_TRANSCRIPTION_RETURNED", err)
	}
}
