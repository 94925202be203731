// Package llm holds clients for the external text-generation services the
// dialogue engine consumes. Every client is an opaque prompt-in, text-out
// function behind domain.DialogueClient.
package llm

import (
	"fmt"

	"github.com/zhephyr/dialogue-engine/internal/domain"
)

// Provider constants
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderMock      = "mock"
)

var (
	_ domain.DialogueClient = (*OpenAIClient)(nil)
	_ domain.DialogueClient = (*AnthropicClient)(nil)
	_ domain.DialogueClient = (*MockClient)(nil)
)

// NewClient creates a dialogue client based on the provider name. Returns an
// error if the provider is unknown or the API key is empty (except for mock).
func NewClient(provider, apiKey, model string) (domain.DialogueClient, error) {
	switch provider {
	case ProviderOpenAI:
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required for OpenAI provider")
		}
		return NewOpenAIClient(apiKey, model), nil

	case ProviderAnthropic:
		if apiKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY is required for Anthropic provider")
		}
		return NewAnthropicClient(apiKey, model), nil

	case ProviderMock:
		return NewMockClient(), nil

	default:
		return nil, fmt.Errorf("unknown dialogue provider: %s (valid options: openai, anthropic, mock)", provider)
	}
}
