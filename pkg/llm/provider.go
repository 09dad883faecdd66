package llm

import (
	"context"
	"strings"
)

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string `json:"role"` // "user", "assistant", "system"
	Content string `json:"content"`
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	TopP        float64
	MaxTokens   int
	Stop        []string
	Model       string // Override default model
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// Provider defines the contract for any LLM backend. All dispatch in this
// system is single-prompt: conversation context arrives already flattened
// into the prompt text.
type Provider interface {
	// Generate sends a single prompt to the model and returns the response text.
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)
}

const (
	reasoningOpen  = "<think>"
	reasoningClose = "</think>"
)

// StripReasoning removes the internal reasoning block that distilled
// reasoning models emit ahead of the actual answer. Text without the
// markers passes through untouched.
func StripReasoning(text string) string {
	start := strings.Index(text, reasoningOpen)
	if start == -1 {
		return strings.TrimSpace(text)
	}
	end := strings.Index(text, reasoningClose)
	if end == -1 || end < start {
		// Opening marker without a close. The answer usually follows the
		// leaked block, so keep everything but the marker itself.
		return strings.TrimSpace(text[:start] + text[start+len(reasoningOpen):])
	}
	return strings.TrimSpace(text[:start] + text[end+len(reasoningClose):])
}
