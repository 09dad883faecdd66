package dispatch

import (
	"context"
	"fmt"

	"ai-multichat-be/internal/constant"
	"ai-multichat-be/pkg/llm"
)

// Kind tags which backend family a model identifier belongs to.
type Kind int

const (
	KindScraped Kind = iota
	KindHostedReasoning
	KindHostedGeneral
	KindLocal
)

// Target is a resolved model identifier bound to its client. Ask performs
// the actual invocation with the bound model name.
type Target struct {
	ID       string
	Kind     Kind
	provider llm.Provider
	model    string
}

func (t Target) Ask(ctx context.Context, prompt string) (string, error) {
	if t.model != "" {
		return t.provider.Generate(ctx, prompt, llm.WithModel(t.model))
	}
	return t.provider.Generate(ctx, prompt)
}

// NeedsHostedCredential reports whether invoking this target requires the
// hosted-inference API key.
func (t Target) NeedsHostedCredential() bool {
	return t.Kind == KindHostedReasoning || t.Kind == KindHostedGeneral
}

// Dispatcher maps logical model identifiers to clients through a fixed
// table. Resolution is pure: no network call happens until Target.Ask.
type Dispatcher struct {
	routes map[string]Target
}

func New(scraped, hostedProvider, localProvider llm.Provider) *Dispatcher {
	routes := map[string]Target{
		constant.ModelScira: {
			ID:       constant.ModelScira,
			Kind:     KindScraped,
			provider: scraped,
		},
		constant.ModelDeepseek: {
			ID:       constant.ModelDeepseek,
			Kind:     KindHostedReasoning,
			provider: hostedProvider,
			model:    constant.DeepseekHostedModel,
		},
	}
	for _, id := range constant.HostedGeneralModels {
		routes[id] = Target{ID: id, Kind: KindHostedGeneral, provider: hostedProvider, model: id}
	}
	for _, id := range constant.LocalModels {
		routes[id] = Target{ID: id, Kind: KindLocal, provider: localProvider, model: id}
	}
	return &Dispatcher{routes: routes}
}

// Resolve returns the target for a model identifier, or an error for
// anything outside the fixed tables.
func (d *Dispatcher) Resolve(modelID string) (Target, error) {
	target, ok := d.routes[modelID]
	if !ok {
		return Target{}, fmt.Errorf("unknown model identifier: %q", modelID)
	}
	return target, nil
}

// Known reports whether the identifier resolves without invoking anything.
func (d *Dispatcher) Known(modelID string) bool {
	_, ok := d.routes[modelID]
	return ok
}
