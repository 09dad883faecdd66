package constant

const (
	ChatMessageRoleUser  = "user"
	ChatMessageRoleModel = "model"

	// ChainedModeToken selects the two-step chained execution mode. It is a
	// mode selector, not a model identifier, and never reaches the dispatcher.
	ChainedModeToken = "chained"
)

// Model identifiers accepted by the chat endpoint. Anything outside these
// tables is rejected before a network call is made.
const (
	ModelScira    = "scira"
	ModelDeepseek = "deepseek"

	// DeepseekHostedModel is the concrete hosted model backing the "deepseek"
	// identifier.
	DeepseekHostedModel = "deepseek-ai/DeepSeek-R1-Distill-Llama-70B-free"
)

// HostedGeneralModels are passed through to the hosted router verbatim as
// model names.
var HostedGeneralModels = []string{
	"meta-llama/Llama-3.3-70B-Instruct-Turbo-Free",
	"Qwen/Qwen2.5-72B-Instruct-Turbo",
	"mistralai/Mixtral-8x7B-Instruct-v0.1",
}

// LocalModels are served by the local Ollama instance.
var LocalModels = []string{
	"llama3.2",
	"mistral",
	"gemma2",
	"phi3",
}
