package server

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/tmm22/speechkit/errors"
	"github.com/tmm22/speechkit/logger"
	"github.com/tmm22/speechkit/transcription"
	"github.com/tmm22/speechkit/validation"
)

const availabilityTimeout = 5 * time.Second

// API exposes the transcription router over HTTP.
type API struct {
	service   string
	router    *transcription.Router
	maxUpload int64
	log       *logger.Logger
}

// NewAPI creates the HTTP API for a transcription router. maxUpload caps
// the accepted audio file size in bytes.
func NewAPI(service string, router *transcription.Router, maxUpload int64) *API {
	return &API{
		service:   service,
		router:    router,
		maxUpload: maxUpload,
		log:       logger.Get("server.api"),
	}
}

// Register mounts the API routes on the engine.
func (a *API) Register(engine *gin.Engine) {
	engine.GET("/healthz", a.health)

	v1 := engine.Group("/v1")
	v1.GET("/providers", a.listProviders)
	v1.POST("/transcriptions", a.createTranscription)
}

func (a *API) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"service":   a.service,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// ProviderStatus reports a registered provider and whether it is usable
// right now (typically whether its credential is configured).
type ProviderStatus struct {
	Name      string `json:"name"`
	Available bool   `json:"available"`
}

func (a *API) listProviders(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), availabilityTimeout)
	defer cancel()

	statuses := make([]ProviderStatus, 0)
	for _, tag := range a.router.Providers() {
		p, ok := a.router.Provider(tag)
		if !ok {
			continue
		}
		statuses = append(statuses, ProviderStatus{
			Name:      tag,
			Available: p.IsAvailable(ctx),
		})
	}
	RespondOK(c, gin.H{"providers": statuses})
}

// TranscriptionResult is the response body for a completed transcription.
type TranscriptionResult struct {
	Text     string  `json:"text"`
	Provider string  `json:"provider"`
	Model    string  `json:"model,omitempty"`
	Language string  `json:"language,omitempty"`
	Duration float64 `json:"duration,omitempty"`
}

func (a *API) createTranscription(c *gin.Context) {
	if a.maxUpload > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, a.maxUpload)
	}

	providerTag := c.PostForm("provider")
	modelName := c.PostForm("model")
	language := c.PostForm("language")
	diarize, _ := strconv.ParseBool(c.PostForm("diarize"))

	if err := validation.New().
		Required("provider", providerTag).
		Validate(); err != nil {
		RespondWithError(c, err)
		return
	}

	file, err := c.FormFile("audio")
	if err != nil {
		RespondWithError(c, apperrors.InvalidInput("audio", "an audio file upload is required"))
		return
	}

	// The adapters read audio from disk, so the upload is staged in a
	// temp file for the duration of the request.
	tmp, err := os.CreateTemp("", "speechkit-upload-*"+filepath.Ext(file.Filename))
	if err != nil {
		RespondWithError(c, apperrors.Internal(err))
		return
	}
	tmp.Close()
	defer os.Remove(tmp.Name())

	if err := c.SaveUploadedFile(file, tmp.Name()); err != nil {
		RespondWithError(c, apperrors.Internal(err))
		return
	}

	req := a.router.NewRequest(tmp.Name(), transcription.Model{
		Name:     modelName,
		Provider: providerTag,
	})
	if language != "" {
		req.Language = language
	}
	req.Diarize = diarize

	resp, err := a.router.Do(c.Request.Context(), req)
	if err != nil {
		RespondWithError(c, err)
		return
	}

	RespondOK(c, TranscriptionResult{
		Text:     resp.Text,
		Provider: providerTag,
		Model:    modelName,
		Language: resp.Language,
		Duration: resp.Duration,
	})
}
