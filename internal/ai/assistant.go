package ai

import (
	"context"
	"errors"
)

// ErrUnauthorized marks a chat failure caused by rejected credentials.
// Callers treat it as a signal to degrade to their offline fallbacks instead
// of aborting the pipeline.
var ErrUnauthorized = errors.New("unauthorized")

// Assistant is the minimal chat surface implemented by every provider. A nil
// Assistant means no model is configured and callers use their fallbacks.
type Assistant interface {
	// Chat sends one system prompt and one user message and returns the raw
	// textual reply. Implementations never retry.
	Chat(ctx context.Context, system, user string) (string, error)
	Provider() string
	Model() string
}
