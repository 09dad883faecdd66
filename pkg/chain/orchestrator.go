package chain

import (
	"context"
	"fmt"
	"time"
)

// ModelResponse records one model invocation inside a chain.
type ModelResponse struct {
	Model     string    `json:"model"`
	Text      string    `json:"text"`
	IssuedAt  time.Time `json:"issuedAt"`
	LatencyMs int64     `json:"latencyMs"`
}

// Result is the structured outcome of an execution: one step for single
// mode, two for chained mode. FinalText is always exactly the last step's
// text; chaining never re-merges earlier output into the final answer.
type Result struct {
	Steps          []ModelResponse `json:"steps"`
	FinalText      string          `json:"finalText"`
	TotalLatencyMs int64           `json:"totalLatencyMs"`
}

// Caller is one resolved model backend.
type Caller interface {
	Ask(ctx context.Context, prompt string) (string, error)
}

// ResolveFunc maps a model identifier to its backend. Resolution must not
// perform network I/O.
type ResolveFunc func(modelID string) (Caller, error)

// Orchestrator runs the single and two-step chained execution modes. It
// performs no retries; a failed step fails the whole run.
type Orchestrator struct {
	resolve ResolveFunc
}

func New(resolve ResolveFunc) *Orchestrator {
	return &Orchestrator{resolve: resolve}
}

// Single invokes one model and wraps its answer in a one-step Result.
func (o *Orchestrator) Single(ctx context.Context, query, modelID string) (*Result, error) {
	started := time.Now()
	step, err := o.invoke(ctx, query, modelID)
	if err != nil {
		return nil, err
	}
	return &Result{
		Steps:          []ModelResponse{step},
		FinalText:      step.Text,
		TotalLatencyMs: time.Since(started).Milliseconds(),
	}, nil
}

// Run executes the two-step chain: the first model answers the query, then
// the second model receives an enriched prompt embedding the query and the
// first answer verbatim. The steps are strictly sequential; a step-1 failure
// means step 2 is never invoked.
func (o *Orchestrator) Run(ctx context.Context, query, firstModelID, secondModelID string) (*Result, error) {
	started := time.Now()

	first, err := o.invoke(ctx, query, firstModelID)
	if err != nil {
		return nil, fmt.Errorf("chaining failed at step 1 (%s): %w", firstModelID, err)
	}

	second, err := o.invoke(ctx, EnrichedPrompt(query, first.Text), secondModelID)
	if err != nil {
		return nil, fmt.Errorf("chaining failed at step 2 (%s): %w", secondModelID, err)
	}

	return &Result{
		Steps:          []ModelResponse{first, second},
		FinalText:      second.Text,
		TotalLatencyMs: time.Since(started).Milliseconds(),
	}, nil
}

func (o *Orchestrator) invoke(ctx context.Context, prompt, modelID string) (ModelResponse, error) {
	caller, err := o.resolve(modelID)
	if err != nil {
		return ModelResponse{}, err
	}

	started := time.Now()
	text, err := caller.Ask(ctx, prompt)
	if err != nil {
		return ModelResponse{}, err
	}

	return ModelResponse{
		Model:     modelID,
		Text:      text,
		IssuedAt:  started,
		LatencyMs: time.Since(started).Milliseconds(),
	}, nil
}
