package gateway

import (
	"fmt"

	"github.com/rs/zerolog"
)

// New creates a gateway for the named provider.
func New(provider, apiKey string, logger zerolog.Logger) (Gateway, error) {
	switch provider {
	case "openai":
		return NewOpenAIGateway(apiKey, logger), nil
	case "anthropic":
		return NewAnthropicGateway(apiKey, logger), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
}
