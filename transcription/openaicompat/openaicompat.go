// Package openaicompat implements the transcription provider for custom
// OpenAI-compatible speech-to-text endpoints (local inference servers,
// gateways, proxies). Unlike the hosted providers the base URL is
// caller-supplied configuration.
package openaicompat

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/tmm22/speechkit/credentials"
	"github.com/tmm22/speechkit/httpclient"
	"github.com/tmm22/speechkit/logger"
	"github.com/tmm22/speechkit/transcription"
)

const (
	// ProviderName is the registered name for OpenAI-compatible endpoints.
	ProviderName = "openai-compatible"

	defaultTimeout = 120 * time.Second
)

// Config holds configuration for an OpenAI-compatible endpoint.
type Config struct {
	// BaseURL is the endpoint root, including any /v1 prefix. Required.
	BaseURL     string        `json:"base_url" yaml:"base_url"`
	Timeout     time.Duration `json:"timeout" yaml:"timeout"`
	Credentials credentials.Store
}

// Provider implements transcription.Provider against a caller-configured
// OpenAI-compatible /audio/transcriptions endpoint.
type Provider struct {
	cfg    Config
	client *httpclient.Client
	log    *logger.Logger
}

// New creates a new OpenAI-compatible transcription provider.
func New(cfg Config) *Provider {
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	client, _ := httpclient.New(httpclient.Config{BaseURL: cfg.BaseURL, Timeout: cfg.Timeout})
	return &Provider{cfg: cfg, client: client, log: logger.Get("transcription.openaicompat")}
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// IsAvailable probes the endpoint's /models route. Compatible servers
// answer it even when no credential is configured.
func (p *Provider) IsAvailable(ctx context.Context) bool {
	if p.cfg.BaseURL == "" {
		return false
	}
	req := httpclient.Request{Method: http.MethodGet, Path: "/models"}
	if key, ok := p.cfg.Credentials.Get(ProviderName); ok && key != "" {
		req.Auth = httpclient.BearerAuth(key)
	}
	resp, _ := p.client.Do(ctx, req)
	return resp != nil && resp.IsSuccess()
}

// checkBaseURL validates the configured endpoint before any request is
// built. A malformed URL is a configuration mistake, not a backend fault.
func (p *Provider) checkBaseURL() error {
	if p.cfg.BaseURL == "" {
		return transcription.DataEncodingError(fmt.Errorf("openai-compatible endpoint has no base URL configured"))
	}
	parsed, err := url.Parse(p.cfg.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return transcription.DataEncodingError(fmt.Errorf("invalid base URL %q", p.cfg.BaseURL))
	}
	return nil
}

// Transcribe uploads the audio as multipart form data and returns the
// transcript.
func (p *Provider) Transcribe(ctx context.Context, req transcription.Request) (*transcription.Response, error) {
	key, ok := p.cfg.Credentials.Get(ProviderName)
	if !ok || key == "" {
		return nil, transcription.MissingAPIKey(ProviderName)
	}
	if err := p.checkBaseURL(); err != nil {
		return nil, err
	}

	audio, err := transcription.ReadAudio(req.AudioPath)
	if err != nil {
		return nil, err
	}

	model := req.Model.Name
	if model == "" {
		model = "whisper-1"
	}

	body := httpclient.NewMultipartBody().
		AddFile("file", filepath.Base(req.AudioPath), audio, transcription.AudioContentType(req.AudioPath)).
		AddField("model", model).
		AddField("response_format", "json")
	if lang, ok := transcription.LanguageParam(req.Language); ok {
		body.AddField("language", lang)
	}
	if len(req.Vocabulary) > 0 {
		body.AddField("prompt", strings.Join(req.Vocabulary, ", "))
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
		Text string `json:"text"`
	}
	if err := json.Unmarshal(payload, &out); err != nil {
		return nil, transcription.NoTranscriptionReturned(ProviderName).WithCause(err)
	}
	text := strings.TrimSpace(out.Text)
	if text == "" {
		return nil, transcription.NoTranscriptionReturned(ProviderName)
	}

	return &transcription.Response{Text: text}, nil
}
