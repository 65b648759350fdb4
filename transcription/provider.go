package transcription

import (
	"context"

	"github.com/tmm22/speechkit/provider"
)

// Provider is the interface that transcription backends must implement.
// Implementations are stateless across calls and safe for concurrent use.
type Provider interface {
	provider.Provider // embeds Name() and IsAvailable()

	// Transcribe sends audio for transcription and returns the result.
	Transcribe(ctx context.Context, req Request) (*Response, error)
}

// NewRegistry creates a new provider registry for transcription providers.
func NewRegistry() *provider.Registry[Provider] {
	return provider.NewRegistry[Provider]()
}
