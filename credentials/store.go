// Package credentials defines the read-only credential lookup consumed by
// transcription adapters. Secure persistence is owned elsewhere; this
// layer only asks "what is the secret for provider X" immediately before
// building a request.
package credentials

import "sync"

// Store maps a provider name to its API secret. Implementations must be
// safe for concurrent use.
type Store interface {
	// Get returns the secret for a provider name. The boolean is false
	// when no secret is configured; an empty string with ok=true is
	// treated the same as absent by callers.
	Get(provider string) (secret string, ok bool)
}

// Static is an in-memory Store backed by a fixed map, used in tests and
// for programmatic wiring.
type Static struct {
	mu      sync.RWMutex
	secrets map[string]string
}

// NewStatic creates a Static store from a provider→secret map.
func NewStatic(secrets map[string]string) *Static {
	copied := make(map[string]string, len(secrets))
	for k, v := range secrets {
		copied[k] = v
	}
	return &Static{secrets: copied}
}

// Get implements Store.
func (s *Static) Get(provider string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	secret, ok := s.secrets[provider]
	return secret, ok
}

// Set stores or replaces a secret. Intended for test setup.
func (s *Static) Set(provider, secret string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.secrets[provider] = secret
}
