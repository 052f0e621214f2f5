// Package provider defines the boundary to external text-generation services.
package provider

import "context"

// Completion is a successful provider response with authoritative token counts.
type Completion struct {
	Text         string
	InputTokens  int64
	OutputTokens int64
	TotalTokens  int64
}

// Completer produces a completion for a resolved provider model id and prompt.
// Implementations must return an error for every failure mode (auth, quota,
// unknown model, transport); callers treat all of them uniformly as
// "provider unavailable" and never inspect provider-specific error shapes.
type Completer interface {
	Complete(ctx context.Context, providerModelID, prompt string) (*Completion, error)
}
