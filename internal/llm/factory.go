package llm

import (
	"fmt"
	"strings"
)

const (
	ProviderOllama   = "ollama"
	ProviderLMStudio = "lmstudio"
	ProviderOpenAI   = "openai"

	// DefaultModel is used when the configuration leaves the model empty.
	DefaultModel = "llama3.2"
)

// Providers lists the accepted provider names.
func Providers() []string {
	return []string{ProviderOllama, ProviderLMStudio, ProviderOpenAI}
}

// NewClient creates an LLM client based on provider configuration.
// An empty provider selects Ollama.
func NewClient(provider, model, baseURL string) (Client, error) {
	if strings.TrimSpace(model) == "" {
		model = DefaultModel
	}
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "", ProviderOllama:
		return NewOllamaClient(model, baseURL)
	case ProviderLMStudio, "lm-studio":
		return NewLMStudioClient(model, baseURL)
	case ProviderOpenAI:
		return NewOpenAIClient(model, baseURL)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", provider)
	}
}
