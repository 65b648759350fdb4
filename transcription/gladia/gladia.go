// Package gladia implements the transcription provider for the Gladia
// asynchronous speech-to-text API. Work is submitted as a job and polled
// with exponential backoff until it reaches a terminal state.
package gladia

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
	// ProviderName is the registered name for the Gladia provider.
	ProviderName = "gladia"

	defaultBaseURL = "https://api.gladia.io/v2"
	defaultTimeout = 60 * time.Second
)

// DefaultPollPolicy is the production polling schedule: exponential
// backoff from 1s by 1.5x, capped at 10s, with a two minute wall clock.
var DefaultPollPolicy = transcription.PollPolicy{
	Initial: time.Second,
	Factor:  1.5,
	Max:     10 * time.Second,
	Timeout: 2 * time.Minute,
}

// Config holds configuration for the Gladia transcription provider.
type Config struct {
	BaseURL     string        `json:"base_url" yaml:"base_url"`
	Timeout     time.Duration `json:"timeout" yaml:"timeout"`
	Credentials credentials.Store
	// Poll overrides the polling schedule. Zero value uses DefaultPollPolicy.
	Poll transcription.PollPolicy
}

// Provider implements transcription.Provider against Gladia's
// upload / pre-recorded / poll API.
type Provider struct {
	cfg  Config
	poll transcription.PollPolicy

	client *httpclient.Client
	log    *logger.Logger
}

// New creates a new Gladia transcription provider.
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
	return &Provider{cfg: cfg, poll: poll, client: client, log: logger.Get("transcription.gladia")}
}

// Name returns the provider name.
func (p *Provider) Name() string { return ProviderName }

// IsAvailable reports whether a credential is configured.
func (p *Provider) IsAvailable(context.Context) bool {
	key, ok := p.cfg.Credentials.Get(ProviderName)
	return ok && key != ""
}

// Transcribe uploads the audio, creates a transcription job, and polls
// until the job is done, failed, or the wall clock runs out.
func (p *Provider) Transcribe(ctx context.Context, req transcription.Request) (*transcription.Response, error) {
	key, ok := p.cfg.Credentials.Get(ProviderName)
	if !ok || key == "" {
		return nil, transcription.MissingAPIKey(ProviderName)
	}
	auth := httpclient.APIKeyAuthHeader(key, "x-gladia-key")

	audio, err := transcription.ReadAudio(req.AudioPath)
	if err != nil {
		return nil, err
	}

	audioURL, err := p.upload(ctx, auth, req.AudioPath, audio)
	if err != nil {
		return nil, err
	}

	jobID, err := p.createJob(ctx, auth, audioURL, req)
	if err != nil {
		return nil, err
	}
	p.log.Debug("transcription job created", logger.Fields(logger.FieldJobID, jobID))

	return p.awaitResult(ctx, auth, jobID, req)
}

func (p *Provider) upload(ctx context.Context, auth *httpclient.AuthConfig, path string, audio []byte) (string, error) {
	body := httpclient.NewMultipartBody().
		AddFile("audio", filepath.Base(path), audio, transcription.AudioContentType(path))

	resp, err := p.client.Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   "/upload",
		Body:   body,
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
		AudioURL string `json:"audio_url"`
	}
	if err := json.Unmarshal(payload, &out); err != nil || out.AudioURL == "" {
		return "", transcription.NoTranscriptionReturned(ProviderName).WithDetail("stage", "upload")
	}
	return out.AudioURL, nil
}

func (p *Provider) createJob(ctx context.Context, auth *httpclient.AuthConfig, audioURL string, req transcription.Request) (string, error) {
	create := createJobRequest{
		AudioURL:         audioURL,
		CustomVocabulary: req.Vocabulary,
		Diarization:      req.Diarize,
	}
	if lang, ok := transcription.LanguageParam(req.Language); ok {
		create.Language = lang
	} else {
		create.DetectLanguage = true
	}

	resp, err := p.client.Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   "/pre-recorded",
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

// awaitResult polls the job until terminal. Non-2xx poll responses are
// fatal; undecodable poll bodies are tolerated and polling continues.
func (p *Provider) awaitResult(ctx context.Context, auth *httpclient.AuthConfig, jobID string, req transcription.Request) (*transcription.Response, error) {
	var result *jobResponse

	err := transcription.Poll(ctx, p.poll, func(ctx context.Context) (transcription.PollOutcome, error) {
		resp, err := p.client.Do(ctx, httpclient.Request{
			Method: http.MethodGet,
			Path:   "/pre-recorded/" + jobID,
			Auth:   auth,
		})
		if resp == nil {
			return 0, transcription.NetworkError(err)
		}
		payload, err := transcription.ValidateResponse(resp)
		if err != nil {
			return 0, err
		}

		var job jobResponse
		if err := json.Unmarshal(payload, &job); err != nil {
			p.log.Warn("undecodable poll response, continuing", logger.Fields(
				logger.FieldJobID, jobID, logger.FieldError, err.Error()))
			return transcription.PollContinue, nil
		}

		switch job.Status {
		case "done":
			result = &job
			return transcription.PollDone, nil
		case "error":
			message := job.ErrorMessage()
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

	utterances := make([]diarization.Utterance, 0, len(result.Result.Transcription.Utterances))
	for _, u := range result.Result.Transcription.Utterances {
		utterances = append(utterances, diarization.Utterance{
			Speaker: strconv.Itoa(u.Speaker),
			Text:    u.Text,
			Start:   u.Start,
			End:     u.End,
		})
	}

	text := strings.TrimSpace(result.Result.Transcription.FullTranscript)
	if req.Diarize && len(utterances) > 0 {
		text = diarization.Transcript(utterances, text)
	}
	if text == "" {
		return nil, transcription.NoTranscriptionReturned(ProviderName)
	}

	return &transcription.Response{Text: text, Utterances: utterances}, nil
}

// --- Gladia API types ---

type createJobRequest struct {
	AudioURL         string   `json:"audio_url"`
	DetectLanguage   bool     `json:"detect_language,omitempty"`
	Language         string   `json:"language,omitempty"`
	CustomVocabulary []string `json:"custom_vocabulary,omitempty"`
	Diarization      bool     `json:"diarization,omitempty"`
}

type jobResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Result struct {
		Transcription struct {
			FullTranscript string `json:"full_transcript"`
			Utterances     []struct {
				Speaker int     `json:"speaker"`
				Text    string  `json:"text"`
				Start   float64 `json:"start"`
				End     float64 `json:"end"`
			} `json:"utterances"`
		} `json:"transcription"`
	} `json:"result"`
}

func (j *jobResponse) ErrorMessage() string {
	return strings.TrimSpace(j.Error.Message)
}
