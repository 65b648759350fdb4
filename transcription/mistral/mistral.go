// Package mistral implements the transcription provider for the Mistral
// Voxtral speech-to-text API.
package mistral

import (
	"context"
	"encoding/json"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/tmm22/speechkit/credentials"
	"github.com/tmm22/speechkit/httpclient"
	"github.com/tmm22/speechkit/logger"
	"github.com/tmm22/speechkit/transcription"
)

const (
	// ProviderName is the registered name for the Mistral provider.
	ProviderName = "mistral"

	defaultBaseURL = "https://api.mistral.ai/v1"
	defaultTimeout = 120 * time.Second

	modelMini  = "voxtral-mini-latest"
	modelSmall = "voxtral-small-latest"
)

// ModelFor resolves the Voxtral model identifier for a requested model
// name. Names mentioning "mini" select the mini variant; everything else
// gets small.
func ModelFor(name string) string {
	if strings.Contains(strings.ToLower(name), "mini") {
		return modelMini
	}
	return modelSmall
}

// Config holds configuration for the Mistral transcription provider.
type Config struct {
	BaseURL     string        `json:"base_url" yaml:"base_url"`
	Timeout     time.Duration `json:"timeout" yaml:"timeout"`
	Credentials credentials.Store
}

// Provider implements transcription.Provider against Mistral's
// /audio/transcriptions endpoint. The API has no vocabulary mechanism, so
// request vocabulary is ignored.
type Provider struct {
	cfg    Config
	client *httpclient.Client
	log    *logger.Logger
}

// New creates a new Mistral transcription provider.
func New(cfg Config) *Provider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	client, _ := httpclient.New(httpclient.Config{BaseURL: cfg.BaseURL, Timeout: cfg.Timeout})
	return &Provider{cfg: cfg, client: client, log: logger.Get("transcription.mistral")}
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// IsAvailable reports whether a credential is configured.
func (p *Provider) IsAvailable(context.Context) bool {
	key, ok := p.cfg.Credentials.Get(ProviderName)
	return ok && key != ""
}

// Transcribe uploads the audio as multipart form data and returns the
// transcript.
func (p *Provider) Transcribe(ctx context.Context, req transcription.Request) (*transcription.Response, error) {
	key, ok := p.cfg.Credentials.Get(ProviderName)
	if !ok || key == "" {
		return nil, transcription.MissingAPIKey(ProviderName)
	}

	audio, err := transcription.ReadAudio(req.AudioPath)
	if err != nil {
		return nil, err
	}

	body := httpclient.NewMultipartBody().
		AddFile("file", filepath.Base(req.AudioPath), audio, transcription.AudioContentType(req.AudioPath)).
		AddField("model", ModelFor(req.Model.Name))
	if lang, ok := transcription.LanguageParam(req.Language); ok {
		body.AddField("language", lang)
	}

	resp, err := p.client.Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   "/audio/transcriptions",
		Body:   body,
		Auth:   httpclient.BearerAuth(key),
	})
	if resp == nil {
		return nil, transcription.NetworkError(err)
	}
	payload, err := transcription.ValidateResponse(resp)
	if err != nil {
		return nil, err
	}

	var out struct {
		Text     string `json:"text"`
		Language string `json:"language"`
	}
	if err := json.Unmarshal(payload, &out); err != nil {
		return nil, transcription.NoTranscriptionReturned(ProviderName).WithCause(err)
	}
	text := strings.TrimSpace(out.Text)
	if text == "" {
		return nil, transcription.NoTranscriptionReturned(ProviderName)
	}

	return &transcription.Response{Text: text, Language: out.Language}, nil
}
