package gemini

import "context"

// LLM is the model client interface.
// Tests inject fake implementations through it.
type LLM interface {
	// Chat performs a text generation request.
	Chat(ctx context.Context, req Request) (string, string, error)
}

// Compile-time check that Client satisfies LLM.
var _ LLM = (*Client)(nil)
