// Package backends seeds a provider registry with one adapter per
// supported backend. It is the composition point consuming apps use to
// get the full default adapter set without wiring each sub-package by
// hand.
package backends

import (
	"time"

	"github.com/tmm22/speechkit/credentials"
	"github.com/tmm22/speechkit/provider"
	"github.com/tmm22/speechkit/transcription"
	"github.com/tmm22/speechkit/transcription/assemblyai"
	"github.com/tmm22/speechkit/transcription/deepgram"
	"github.com/tmm22/speechkit/transcription/elevenlabs"
	"github.com/tmm22/speechkit/transcription/gladia"
	"github.com/tmm22/speechkit/transcription/groq"
	"github.com/tmm22/speechkit/transcription/mistral"
	"github.com/tmm22/speechkit/transcription/openai"
	"github.com/tmm22/speechkit/transcription/openaicompat"
	"github.com/tmm22/speechkit/transcription/sarvam"
)

// Options configures the default adapter set.
type Options struct {
	// Credentials is consulted by every adapter at call time. Required.
	Credentials credentials.Store
	// Endpoints overrides the base URL per provider tag. The
	// openai-compatible adapter is only registered when its endpoint is
	// set here, since it has no hosted default.
	Endpoints map[string]string
	// Timeouts overrides the request timeout per provider tag.
	Timeouts map[string]time.Duration
}

func (o Options) endpoint(tag string) string       { return o.Endpoints[tag] }
func (o Options) timeout(tag string) time.Duration { return o.Timeouts[tag] }

// Register seeds reg with one adapter per supported backend.
func Register(reg *provider.Registry[transcription.Provider], opts Options) {
	reg.Register(openai.ProviderName, openai.New(openai.Config{
		BaseURL: opts.endpoint(openai.ProviderName), Timeout: opts.timeout(openai.ProviderName), Credentials: opts.Credentials,
	}))
	reg.Register(groq.ProviderName, groq.New(groq.Config{
		BaseURL: opts.endpoint(groq.ProviderName), Timeout: opts.timeout(groq.ProviderName), Credentials: opts.Credentials,
	}))
	reg.Register(mistral.ProviderName, mistral.New(mistral.Config{
		BaseURL: opts.endpoint(mistral.ProviderName), Timeout: opts.timeout(mistral.ProviderName), Credentials: opts.Credentials,
	}))
	reg.Register(deepgram.ProviderName, deepgram.New(deepgram.Config{
		BaseURL: opts.endpoint(deepgram.ProviderName), Timeout: opts.timeout(deepgram.ProviderName), Credentials: opts.Credentials,
	}))
	reg.Register(elevenlabs.ProviderName, elevenlabs.New(elevenlabs.Config{
		BaseURL: opts.endpoint(elevenlabs.ProviderName), Timeout: opts.timeout(elevenlabs.ProviderName), Credentials: opts.Credentials,
	}))
	reg.Register(sarvam.ProviderName, sarvam.New(sarvam.Config{
		BaseURL: opts.endpoint(sarvam.ProviderName), Timeout: opts.timeout(sarvam.ProviderName), Credentials: opts.Credentials,
	}))
	reg.Register(gladia.ProviderName, gladia.New(gladia.Config{
		BaseURL: opts.endpoint(gladia.ProviderName), Timeout: opts.timeout(gladia.ProviderName), Credentials: opts.Credentials,
	}))
	reg.Register(assemblyai.ProviderName, assemblyai.New(assemblyai.Config{
		BaseURL: opts.endpoint(assemblyai.ProviderName), Timeout: opts.timeout(assemblyai.ProviderName), Credentials: opts.Credentials,
	}))

	if endpoint := opts.endpoint(openaicompat.ProviderName); endpoint != "" {
		reg.Register(openaicompat.ProviderName, openaicompat.New(openaicompat.Config{
			BaseURL: endpoint, Timeout: opts.timeout(openaicompat.ProviderName), Credentials: opts.Credentials,
		}))
	}
}

// NewRegistry creates a registry pre-seeded with the default adapter set.
func NewRegistry(opts Options) *provider.Registry[transcription.Provider] {
	reg := transcription.NewRegistry()
	Register(reg, opts)
	return reg
}

// NewRouter creates a router over the default adapter set.
func NewRouter(opts Options, routerOpts ...transcription.RouterOption) *transcription.Router {
	return transcription.NewRouter(NewRegistry(opts), routerOpts...)
}
