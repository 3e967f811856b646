// package services defines clients for the external collaborators of vibecheck
//
// Generative text providers and the hosted auth server
package services

import (
	"context"
)

// Provider is a generative text service: given a prompt it returns free text.
//
// The response has no guaranteed schema. Callers extract whatever structure they need.
type Provider interface {
	// Generate sends prompt to the provider and returns the raw completion text.
	Generate(ctx context.Context, prompt string) (string, error)

	// Name returns the name of the provider (e.g., "openai")
	Name() string
}
