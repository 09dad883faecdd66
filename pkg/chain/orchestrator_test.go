package chain

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockCaller struct {
	reply   string
	err     error
	calls   int
	prompts []string
}

func (m *mockCaller) Ask(ctx context.Context, prompt string) (string, error) {
	m.calls++
	m.prompts = append(m.prompts, prompt)
	if m.err != nil {
		return "", m.err
	}
	return m.reply, nil
}

func resolverFor(callers map[string]*mockCaller) ResolveFunc {
	return func(modelID string) (Caller, error) {
		c, ok := callers[modelID]
		if !ok {
			return nil, fmt.Errorf("unknown model identifier: %q", modelID)
		}
		return c, nil
	}
}

func TestRunChainsTwoModels(t *testing.T) {
	first := &mockCaller{reply: "draft answer from scira"}
	second := &mockCaller{reply: "polished final answer"}
	o := New(resolverFor(map[string]*mockCaller{"scira": first, "deepseek": second}))

	result, err := o.Run(context.Background(), "Explain quantum tunneling", "scira", "deepseek")

	require.NoError(t, err)
	require.Len(t, result.Steps, 2)
	assert.Equal(t, "scira", result.Steps[0].Model)
	assert.Equal(t, "deepseek", result.Steps[1].Model)
	assert.Equal(t, "polished final answer", result.FinalText, "final text is exactly step 2's text")
	assert.NotContains(t, result.FinalText, "draft answer", "chaining must not concatenate step outputs")
	assert.GreaterOrEqual(t, result.TotalLatencyMs, int64(0))
	for _, step := range result.Steps {
		assert.GreaterOrEqual(t, step.LatencyMs, int64(0))
		assert.False(t, step.IssuedAt.IsZero())
	}
}

func TestRunEmbedsQueryAndFirstAnswerInSecondPrompt(t *testing.T) {
	first := &mockCaller{reply: "tunneling is a wave phenomenon"}
	second := &mockCaller{reply: "final"}
	o := New(resolverFor(map[string]*mockCaller{"a": first, "b": second}))

	_, err := o.Run(context.Background(), "what is tunneling?", "a", "b")
	require.NoError(t, err)

	require.Len(t, second.prompts, 1)
	assert.Contains(t, second.prompts[0], "what is tunneling?")
	assert.Contains(t, second.prompts[0], "tunneling is a wave phenomenon")
	assert.True(t, strings.Contains(second.prompts[0], "## Original question"))
	assert.True(t, strings.Contains(second.prompts[0], "## Draft answer"))
}

func TestRunAbortsWhenStepOneFails(t *testing.T) {
	first := &mockCaller{err: errors.New("browser launch failed")}
	second := &mockCaller{reply: "never used"}
	o := New(resolverFor(map[string]*mockCaller{"a": first, "b": second}))

	_, err := o.Run(context.Background(), "query", "a", "b")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "chaining failed at step 1")
	assert.Contains(t, err.Error(), "browser launch failed")
	assert.Zero(t, second.calls, "step 2 must never be invoked after a step 1 failure")
}

func TestRunWrapsStepTwoFailure(t *testing.T) {
	first := &mockCaller{reply: "draft"}
	second := &mockCaller{err: errors.New("together api error: overloaded")}
	o := New(resolverFor(map[string]*mockCaller{"a": first, "b": second}))

	_, err := o.Run(context.Background(), "query", "a", "b")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "chaining failed at step 2")
	assert.Contains(t, err.Error(), "overloaded")
	assert.Equal(t, 1, first.calls)
}

func TestRunRejectsUnresolvableModels(t *testing.T) {
	o := New(resolverFor(map[string]*mockCaller{}))

	_, err := o.Run(context.Background(), "query", "nope", "also-nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown model identifier")
}

func TestSingleWrapsOneStep(t *testing.T) {
	only := &mockCaller{reply: "the answer"}
	o := New(resolverFor(map[string]*mockCaller{"m": only}))

	result, err := o.Single(context.Background(), "query", "m")

	require.NoError(t, err)
	require.Len(t, result.Steps, 1)
	assert.Equal(t, "the answer", result.FinalText)
	assert.Equal(t, result.Steps[0].Text, result.FinalText)
}
