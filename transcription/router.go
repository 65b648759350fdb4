package transcription

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tmm22/speechkit/logger"
	"github.com/tmm22/speechkit/provider"
	"github.com/tmm22/speechkit/vocabulary"
)

// Router dispatches transcription requests to the adapter registered for
// the model's provider tag. It holds no mutable per-call state, so
// concurrent transcriptions need no coordination.
type Router struct {
	registry   *provider.Registry[Provider]
	vocabulary vocabulary.Source
	language   func() string
	log        *logger.Logger
}

// RouterOption configures a Router.
type RouterOption func(*Router)

// WithVocabulary sets the dictionary source consulted fresh on every
// call. Best-effort: an empty term list disables vocabulary injection.
func WithVocabulary(src vocabulary.Source) RouterOption {
	return func(r *Router) { r.vocabulary = src }
}

// WithLanguagePreference sets the function returning the caller's current
// language preference ("auto" or an ISO-like code), read per call.
func WithLanguagePreference(fn func() string) RouterOption {
	return func(r *Router) { r.language = fn }
}

// WithLogger overrides the router's logger.
func WithLogger(log *logger.Logger) RouterOption {
	return func(r *Router) { r.log = log }
}

// NewRouter creates a Router over a registry of transcription providers.
func NewRouter(registry *provider.Registry[Provider], opts ...RouterOption) *Router {
	r := &Router{
		registry: registry,
		language: func() string { return LanguageAuto },
		log:      logger.Get("transcription.router"),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Transcribe dispatches an audio file to the adapter for model.Provider
// and returns the transcript text. The language preference and vocabulary
// are read fresh for each call. Fails with UNSUPPORTED_PROVIDER before
// any network activity when no adapter is registered for the tag.
func (r *Router) Transcribe(ctx context.Context, audioPath string, model Model) (string, error) {
	resp, err := r.Do(ctx, r.NewRequest(audioPath, model))
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}

// NewRequest builds a request primed with the router's current language
// preference and vocabulary. Callers may adjust fields before Do.
func (r *Router) NewRequest(audioPath string, model Model) Request {
	req := Request{
		AudioPath: audioPath,
		Model:     model,
		Language:  r.language(),
	}
	if r.vocabulary != nil {
		req.Vocabulary = r.vocabulary.Terms()
	}
	return req
}

// Do dispatches a fully-built request and forwards the adapter's result
// unchanged.
func (r *Router) Do(ctx context.Context, req Request) (*Response, error) {
	adapter, ok := r.registry.Get(req.Model.Provider)
	if !ok {
		return nil, UnsupportedProvider(req.Model.Provider)
	}

	requestID := uuid.NewString()
	fields := logger.Fields(
		logger.FieldRequestID, requestID,
		logger.FieldProvider, req.Model.Provider,
		logger.FieldModel, req.Model.Name,
	)
	r.log.Debug("dispatching transcription", fields)

	start := time.Now()
	resp, err := adapter.Transcribe(ctx, req)
	if err != nil {
		fields[logger.FieldError] = err.Error()
		r.log.Error("transcription failed", fields)
		return nil, err
	}

	fields[logger.FieldDuration] = time.Since(start).Milliseconds()
	r.log.Info("transcription complete", fields)
	return resp, nil
}

// Provider returns the adapter registered for a tag.
func (r *Router) Provider(tag string) (Provider, bool) {
	return r.registry.Get(tag)
}

// Providers returns the sorted tags of all registered adapters.
func (r *Router) Providers() []string {
	return r.registry.Names()
}
