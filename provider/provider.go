// Package provider implements a generic provider registry using Go
// generics for swappable backends.
//
// A Registry maps provider names to long-lived instances; registration is
// an explicit operation and the last registration for a name wins. Domain
// packages define their own provider interfaces embedding Provider and
// build typed registries on top.
package provider

import "context"

// Provider is the base interface all providers must implement.
type Provider interface {
	// Name returns the provider's unique name.
	Name() string
	// IsAvailable checks if the provider is ready to handle requests.
	IsAvailable(ctx context.Context) bool
}

// Factory creates a provider instance from configuration.
type Factory[T Provider] func(cfg map[string]any) (T, error)
