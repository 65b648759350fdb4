// Package elevenlabs implements the transcription provider for the
// ElevenLabs Scribe speech-to-text API.
package elevenlabs

import (
	"context"
	"encoding/json"
	"net/http"
	"path/filepath"
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
	// ProviderName is the registered name for the ElevenLabs provider.
	ProviderName = "elevenlabs"

	defaultBaseURL = "https://api.elevenlabs.io/v1"
	defaultTimeout = 120 * time.Second
)

// Variant describes the Scribe model family member a request resolves to.
// The two v2 variants ship different default temperatures; the historical
// split is kept as-is.
type Variant struct {
	ModelID        string
	Temperature    float64
	HasTemperature bool
}

// VariantFor resolves a requested model name to a Scribe variant by
// substring. Names mentioning v2 pick the v2 family; "experimental"
// within v2 selects the experimental variant and its higher default
// temperature. Everything else is scribe_v1.
func VariantFor(name string) Variant {
	n := strings.ToLower(name)
	switch {
	case strings.Contains(n, "v2") && strings.Contains(n, "experimental"):
		return Variant{ModelID: "scribe_v2_experimental", Temperature: 0.8, HasTemperature: true}
	case strings.Contains(n, "v2"):
		return Variant{ModelID: "scribe_v2", Temperature: 0.0, HasTemperature: true}
	default:
		return Variant{ModelID: "scribe_v1"}
	}
}

// Config holds configuration for the ElevenLabs transcription provider.
type Config struct {
	BaseURL     string        `json:"base_url" yaml:"base_url"`
	Timeout     time.Duration `json:"timeout" yaml:"timeout"`
	Credentials credentials.Store
}

// Provider implements transcription.Provider against ElevenLabs'
// /speech-to-text endpoint.
type Provider struct {
	cfg    Config
	client *httpclient.Client
	log    *logger.Logger
}

// New creates a new ElevenLabs transcription provider.
func New(cfg Config) *Provider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	client, _ := httpclient.New(httpclient.Config{BaseURL: cfg.BaseURL, Timeout: cfg.Timeout})
	return &Provider{cfg: cfg, client: client, log: logger.Get("transcription.elevenlabs")}
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// IsAvailable reports whether a credential is configured.
func (p *Provider) IsAvailable(context.Context) bool {
	key, ok := p.cfg.Credentials.Get(ProviderName)
	return ok && key != ""
}

// Transcribe uploads the audio as multipart form data. Vocabulary terms
// travel as a JSON-encoded keyterms field; diarization groups the word
// stream by speaker id.
func (p *Provider) Transcribe(ctx context.Context, req transcription.Request) (*transcription.Response, error) {
	key, ok := p.cfg.Credentials.Get(ProviderName)
	if !ok || key == "" {
		return nil, transcription.MissingAPIKey(ProviderName)
	}

	audio, err := transcription.ReadAudio(req.AudioPath)
	if err != nil {
		return nil, err
	}

	variant := VariantFor(req.Model.Name)
	body := httpclient.NewMultipartBody().
		AddFile("file", filepath.Base(req.AudioPath), audio, transcription.AudioContentType(req.AudioPath)).
		AddField("model_id", variant.ModelID)
	if variant.HasTemperature {
		body.AddField("temperature", strconv.FormatFloat(variant.Temperature, 'f', -1, 64))
	}
	if lang, ok := transcription.LanguageParam(req.Language); ok {
		body.AddField("language_code", lang)
	}
	if len(req.Vocabulary) > 0 {
		keyterms, err := json.Marshal(req.Vocabulary)
		if err != nil {
			return nil, transcription.DataEncodingError(err)
		}
		body.AddField("keyterms", string(keyterms))
	}
	if req.Diarize {
		body.AddField("diarize", "true")
	}

	resp, err := p.client.Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   "/speech-to-text",
		Body:   body,
		Auth:   httpclient.APIKeyAuthHeader(key, "xi-api-key"),
	})
	if resp == nil {
		return nil, transcription.NetworkError(err)
	}
	payload, err := transcription.ValidateResponse(resp)
	if err != nil {
		return nil, err
	}

	var out scribeResponse
	if err := json.Unmarshal(payload, &out); err != nil {
		return nil, transcription.NoTranscriptionReturned(ProviderName).WithCause(err)
	}

	utterances := out.utterances()
	text := strings.TrimSpace(out.Text)
	if req.Diarize && len(utterances) > 0 {
		text = diarization.Transcript(utterances, text)
	}
	if text == "" {
		return nil, transcription.NoTranscriptionReturned(ProviderName)
	}

	return &transcription.Response{
		Text:       text,
		Utterances: utterances,
		Language:   out.LanguageCode,
	}, nil
}

// --- ElevenLabs API response types ---

type scribeResponse struct {
	Text         string `json:"text"`
	LanguageCode string `json:"language_code"`
	Words        []struct {
		Text      string  `json:"text"`
		Type      string  `json:"type"`
		SpeakerID string  `json:"speaker_id"`
		Start     float64 `json:"start"`
		End       float64 `json:"end"`
	} `json:"words"`
}

// utterances groups consecutive words by speaker id. Spacing entries in
// the word stream keep their speaker, so a simple run-length grouping
// reproduces the spoken turns.
func (r *scribeResponse) utterances() []diarization.Utterance {
	var result []diarization.Utterance
	var current *diarization.Utterance
	for _, w := range r.Words {
		if w.SpeakerID == "" {
			continue
		}
		if current == nil || current.Speaker != w.SpeakerID {
			result = append(result, diarization.Utterance{Speaker: w.SpeakerID, Start: w.Start, End: w.End})
			current = &result[len(result)-1]
		}
		current.Text += w.Text
		current.End = w.End
	}
	for i := range result {
		result[i].Text = strings.TrimSpace(result[i].Text)
	}
	return result
}
