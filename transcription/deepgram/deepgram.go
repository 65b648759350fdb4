// Package deepgram implements the transcription provider for the Deepgram
// prerecorded audio API.
package deepgram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tmm22/speechkit/credentials"
	"github.com/tmm22/speechkit/diarization"
	"github.com/tmm22/speechkit/httpclient"
	"github.com/tmm22/speechkit/logger"
	"github.com/tmm22/speechkit/transcription"
)

const (
	// ProviderName is the registered name for the Deepgram provider.
	ProviderName = "deepgram"

	defaultBaseURL = "https://api.deepgram.com/v1"
	defaultModel   = "nova-2"
	defaultTimeout = 120 * time.Second
)

// Config holds configuration for the Deepgram transcription provider.
type Config struct {
	BaseURL     string        `json:"base_url" yaml:"base_url"`
	Timeout     time.Duration `json:"timeout" yaml:"timeout"`
	Credentials credentials.Store
}

// Provider implements transcription.Provider against Deepgram's /listen
// endpoint. Audio is sent as the raw request body; all options travel as
// query parameters, with vocabulary terms as repeated "keywords" params.
type Provider struct {
	cfg    Config
	client *httpclient.Client
	log    *logger.Logger
}

// New creates a new Deepgram transcription provider.
func New(cfg Config) *Provider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	client, _ := httpclient.New(httpclient.Config{BaseURL: cfg.BaseURL, Timeout: cfg.Timeout})
	return &Provider{cfg: cfg, client: client, log: logger.Get("transcription.deepgram")}
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// IsAvailable reports whether a credential is configured.
func (p *Provider) IsAvailable(context.Context) bool {
	key, ok := p.cfg.Credentials.Get(ProviderName)
	return ok && key != ""
}

// listenQuery builds the /listen query string for a request. The Query
// map on httpclient.Request is single-valued, so the repeated keywords
// parameters are encoded here instead.
func listenQuery(req transcription.Request) string {
	model := req.Model.Name
	if model == "" {
		model = defaultModel
	}

	q := url.Values{}
	q.Set("model", model)
	q.Set("smart_format", "true")
	q.Set("punctuate", "true")
	if lang, ok := transcription.LanguageParam(req.Language); ok {
		q.Set("language", lang)
	} else {
		q.Set("detect_language", "true")
	}
	for _, term := range req.Vocabulary {
		q.Add("keywords", term)
	}
	if req.Diarize {
		q.Set("diarize", "true")
		q.Set("utterances", "true")
	}
	return q.Encode()
}

// Transcribe posts the raw audio bytes and returns the transcript, or the
// speaker-labelled rendering when diarization was requested and returned
// utterances.
func (p *Provider) Transcribe(ctx context.Context, req transcription.Request) (*transcription.Response, error) {
	key, ok := p.cfg.Credentials.Get(ProviderName)
	if !ok || key == "" {
		return nil, transcription.MissingAPIKey(ProviderName)
	}

	audio, err := transcription.ReadAudio(req.AudioPath)
	if err != nil {
		return nil, err
	}

	resp, err := p.client.Do(ctx, httpclient.Request{
		Method:  http.MethodPost,
		Path:    "/listen?" + listenQuery(req),
		Headers: map[string]string{"Content-Type": transcription.AudioContentType(req.AudioPath)},
		Body:    audio,
		Auth:    httpclient.TokenAuth(key),
	})
	if resp == nil {
		return nil, transcription.NetworkError(err)
	}
	payload, err := transcription.ValidateResponse(resp)
	if err != nil {
		return nil, err
	}

	var out listenResponse
	if err := json.Unmarshal(payload, &out); err != nil {
		return nil, transcription.NoTranscriptionReturned(ProviderName).WithCause(err)
	}

	utterances := make([]diarization.Utterance, 0, len(out.Results.Utterances))
	for _, u := range out.Results.Utterances {
		utterances = append(utterances, diarization.Utterance{
			Speaker: strconv.Itoa(u.Speaker),
			Text:    u.Transcript,
			Start:   u.Start,
			End:     u.End,
		})
	}

	text := strings.TrimSpace(out.transcript())
	if req.Diarize && len(utterances) > 0 {
		text = diarization.Transcript(utterances, text)
	}
	if text == "" {
		return nil, transcription.NoTranscriptionReturned(ProviderName)
	}

	return &transcription.Response{
		Text:       text,
		Utterances: utterances,
		Language:   out.detectedLanguage(),
		Duration:   out.Metadata.Duration,
	}, nil
}

// --- Deepgram API response types ---

type listenResponse struct {
	Metadata struct {
		Duration float64 `json:"duration"`
	} `json:"metadata"`
	Results struct {
		Channels []struct {
			DetectedLanguage string `json:"detected_language"`
			Alternatives     []struct {
				Transcript string `json:"transcript"`
			} `json:"alternatives"`
		} `json:"channels"`
		Utterances []struct {
			Speaker    int     `json:"speaker"`
			Transcript string  `json:"transcript"`
			Start      float64 `json:"start"`
			End        float64 `json:"end"`
		} `json:"utterances"`
	} `json:"results"`
}

func (r *listenResponse) transcript() string {
	if len(r.Results.Channels) == 0 || len(r.Results.Channels[0].Alternatives) == 0 {
		return ""
	}
	return r.Results.Channels[0].Alternatives[0].Transcript
}

func (r *listenResponse) detectedLanguage() string {
	if len(r.Results.Channels) == 0 {
		return ""
	}
	return r.Results.Channels[0].DetectedLanguage
}
