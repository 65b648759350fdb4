// Package assemblyai implements the transcription provider for the
// AssemblyAI asynchronous speech-to-text API. Work is submitted as a
// transcript job and polled at a fixed interval until terminal.
package assemblyai

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/tmm22/speechkit/credentials"
	"github.com/tmm22/speechkit/diarization"
	"github.com/tmm22/speechkit/httpclient"
	"github.com/tmm22/speechkit/logger"
	"github.com/tmm22/speechkit/transcription"
)

const (
	// ProviderName is the registered name for the AssemblyAI provider.
	ProviderName = "assemblyai"

	defaultBaseURL = "https://api.assemblyai.com/v2"
	defaultTimeout = 60 * time.Second

	// word_boost limits documented by the API.
	maxBoostTerms      = 100
	maxBoostTermLength = 50
)

// DefaultPollPolicy is the production polling schedule: a fixed three
// second interval with a three minute wall clock.
var DefaultPollPolicy = transcription.FixedPollPolicy(3*time.Second, 3*time.Minute)

// BoostTerms filters vocabulary terms to what the word_boost parameter
// accepts: at most 100 terms, each at most 50 characters.
func BoostTerms(terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, term := range terms {
		if len(term) > maxBoostTermLength {
			continue
		}
		out = append(out, term)
		if len(out) == maxBoostTerms {
			break
		}
	}
	return out
}

// Config holds configuration for the AssemblyAI transcription provider.
type Config struct {
	BaseURL     string        `json:"base_url" yaml:"base_url"`
	Timeout     time.Duration `json:"timeout" yaml:"timeout"`
	Credentials credentials.Store
	// Poll overrides the polling schedule. Zero value uses DefaultPollPolicy.
	Poll transcription.PollPolicy
}

// Provider implements transcription.Provider against AssemblyAI's
// upload / transcript / poll API. The credential travels in a bare
// "authorization" header without a scheme prefix.
type Provider struct {
	cfg  Config
	poll transcription.PollPolicy

	client *httpclient.Client
	log    *logger.Logger
}

// New creates a new AssemblyAI transcription provider.
func New(cfg Config) *Provider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	poll := cfg.Poll
	if poll.Timeout == 0 {
		poll = DefaultPollPolicy
	}
	client, _ := httpclient.New(httpclient.Config{BaseURL: cfg.BaseURL, Timeout: cfg.Timeout})
	return &Provider{cfg: cfg, poll: poll, client: client, log: logger.Get("transcription.assemblyai")}
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// IsAvailable reports whether a credential is configured.
func (p *Provider) IsAvailable(context.Context) bool {
	key, ok := p.cfg.Credentials.Get(ProviderName)
	return ok && key != ""
}

// Transcribe uploads the audio, creates a transcript job, and polls at a
// fixed interval until the job completes, errors, or times out.
func (p *Provider) Transcribe(ctx context.Context, req transcription.Request) (*transcription.Response, error) {
	key, ok := p.cfg.Credentials.Get(ProviderName)
	if !ok || key == "" {
		return nil, transcription.MissingAPIKey(ProviderName)
	}
	auth := httpclient.APIKeyAuthHeader(key, "authorization")

	audio, err := transcription.ReadAudio(req.AudioPath)
	if err != nil {
		return nil, err
	}

	uploadURL, err := p.upload(ctx, auth, audio)
	if err != nil {
		return nil, err
	}

	jobID, err := p.createTranscript(ctx, auth, uploadURL, req)
	if err != nil {
		return nil, err
	}
	p.log.Debug("transcript job created", logger.Fields(logger.FieldJobID, jobID))

	return p.awaitTranscript(ctx, auth, jobID, req)
}

func (p *Provider) upload(ctx context.Context, auth *httpclient.AuthConfig, audio []byte) (string, error) {
	resp, err := p.client.Do(ctx, httpclient.Request{
		Method:  http.MethodPost,
		Path:    "/upload",
		Headers: map[string]string{"Content-Type": "application/octet-stream"},
		Body:    audio,
		Auth:    auth,
	})
	if resp == nil {
		return "", transcription.NetworkError(err)
	}
	payload, err := transcription.ValidateResponse(resp)
	if err != nil {
		return "", err
	}

	var out struct {
		UploadURL string `json:"upload_url"`
	}
	if err := json.Unmarshal(payload, &out); err != nil || out.UploadURL == "" {
		return "", transcription.NoTranscriptionReturned(ProviderName).WithDetail("stage", "upload")
	}
	return out.UploadURL, nil
}

func (p *Provider) createTranscript(ctx context.Context, auth *httpclient.AuthConfig, uploadURL string, req transcription.Request) (string, error) {
	create := createTranscriptRequest{
		AudioURL:      uploadURL,
		SpeakerLabels: req.Diarize,
		WordBoost:     BoostTerms(req.Vocabulary),
	}
	if lang, ok := transcription.LanguageParam(req.Language); ok {
		create.LanguageCode = lang
	} else {
		create.LanguageDetection = true
	}

	resp, err := p.client.Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   "/transcript",
		Body:   create,
		Auth:   auth,
	})
	if resp == nil {
		return "", transcription.NetworkError(err)
	}
	payload, err := transcription.ValidateResponse(resp)
	if err != nil {
		return "", err
	}

	var out struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(payload, &out); err != nil || out.ID == "" {
		return "", transcription.NoTranscriptionReturned(ProviderName).WithDetail("stage", "create")
	}
	return out.ID, nil
}

// awaitTranscript polls the transcript until terminal. Non-2xx poll
// responses are fatal; undecodable poll bodies are tolerated.
func (p *Provider) awaitTranscript(ctx context.Context, auth *httpclient.AuthConfig, jobID string, req transcription.Request) (*transcription.Response, error) {
	var result *transcriptResponse

	err := transcription.Poll(ctx, p.poll, func(ctx context.Context) (transcription.PollOutcome, error) {
		resp, err := p.client.Do(ctx, httpclient.Request{
			Method: http.MethodGet,
			Path:   "/transcript/" + jobID,
			Auth:   auth,
		})
		if resp == nil {
			return 0, transcription.NetworkError(err)
		}
		payload, err := transcription.ValidateResponse(resp)
		if err != nil {
			return 0, err
		}

		var job transcriptResponse
		if err := json.Unmarshal(payload, &job); err != nil {
			p.log.Warn("undecodable poll response, continuing", logger.Fields(
				logger.FieldJobID, jobID, logger.FieldError, err.Error()))
			return transcription.PollContinue, nil
		}

		switch job.Status {
		case "completed":
			result = &job
			return transcription.PollDone, nil
		case "error":
			message := strings.TrimSpace(job.Error)
			if message == "" {
				message = "transcription job failed"
			}
			return 0, transcription.APIRequestFailed(http.StatusInternalServerError, message)
		default:
			return transcription.PollContinue, nil
		}
	})
	if err != nil {
		return nil, err
	}

	utterances := make([]diarization.Utterance, 0, len(result.Utterances))
	for _, u := range result.Utterances {
		utterances = append(utterances, diarization.Utterance{
			Speaker: u.Speaker,
			Text:    u.Text,
			Start:   u.Start / 1000,
			End:     u.End / 1000,
		})
	}

	text := strings.TrimSpace(result.Text)
	if req.Diarize && len(utterances) > 0 {
		text = diarization.Transcript(utterances, text)
	}
	if text == "" {
		return nil, transcription.NoTranscriptionReturned(ProviderName)
	}

	return &transcription.Response{
		Text:       text,
		Utterances: utterances,
		Language:   result.LanguageCode,
		Duration:   result.AudioDuration,
	}, nil
}

// --- AssemblyAI API types ---

type createTranscriptRequest struct {
	AudioURL          string   `json:"audio_url"`
	LanguageCode      string   `json:"language_code,omitempty"`
	LanguageDetection bool     `json:"language_detection,omitempty"`
	SpeakerLabels     bool     `json:"speaker_labels,omitempty"`
	WordBoost         []string `json:"word_boost,omitempty"`
}

type transcriptResponse struct {
	ID            string  `json:"id"`
	Status        string  `json:"status"`
	Text          string  `json:"text"`
	Error         string  `json:"error"`
	LanguageCode  string  `json:"language_code"`
	AudioDuration float64 `json:"audio_duration"`
	Utterances    []struct {
		Speaker string  `json:"speaker"`
		Text    string  `json:"text"`
		Start   float64 `json:"start"`
		End     float64 `json:"end"`
	} `json:"utterances"`
}
