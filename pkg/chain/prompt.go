package chain

import "fmt"

const enrichedPromptTemplate = `You are given a user's question and a draft answer written by another assistant.

## Original question

%s

## Draft answer

%s

Rewrite the draft into the best possible final answer. Be concise and
non-redundant, keep every factually correct claim intact, and do not invent
information that is not supported by the question or the draft.`

// EnrichedPrompt builds the second-stage prompt. The original query and the
// first model's full answer are embedded verbatim under their own headers.
func EnrichedPrompt(query, firstAnswer string) string {
	return fmt.Sprintf(enrichedPromptTemplate, query, firstAnswer)
}
