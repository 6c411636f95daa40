// Package ai provides factory functions for creating LLM service adapters.
package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/datagen-cli/internal/adapters/driven/llm/anthropic"
	"github.com/custodia-labs/datagen-cli/internal/adapters/driven/llm/gemini"
	"github.com/custodia-labs/datagen-cli/internal/adapters/driven/llm/ollama"
	"github.com/custodia-labs/datagen-cli/internal/adapters/driven/llm/openai"
	"github.com/custodia-labs/datagen-cli/internal/core/domain"
	"github.com/custodia-labs/datagen-cli/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// CreateLLMService creates an LLM service from settings.
// Returns nil (no error) when settings are absent or incomplete.
func CreateLLMService(settings *domain.LLMSettings) (driven.LLMService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	switch settings.Provider {
	case domain.ProviderGemini:
		return gemini.NewLLMService(gemini.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})
	case domain.ProviderOpenAI:
		return openai.NewLLMService(openai.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})
	case domain.ProviderAnthropic:
		return anthropic.NewLLMService(anthropic.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})
	case domain.ProviderOllama:
		return ollama.NewLLMService(ollama.Config{
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		}), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s", settings.Provider)
	}
}

// CreateAndValidateLLMService creates an LLM service and validates connectivity.
// Returns the service if successful, or an error with guidance.
func CreateAndValidateLLMService(settings *domain.LLMSettings) (driven.LLMService, error) {
	svc, err := CreateLLMService(settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w. Run 'datagen settings llm' to fix",
			domain.ErrLLMUnavailable, err)
	}

	if svc == nil {
		return nil, fmt.Errorf("%w: no provider configured. Run 'datagen settings llm' first",
			domain.ErrLLMUnavailable)
	}

	// Validate connectivity.
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w). Run 'datagen settings llm' to fix",
			domain.ErrLLMUnavailable, err)
	}

	return svc, nil
}
