package domain

const unknownDescription = "Unknown"

// LLMProvider identifies an AI service provider used for generation.
type LLMProvider string

// Available LLM providers.
const (
	// ProviderGemini is the Google Generative Language cloud API.
	ProviderGemini LLMProvider = "gemini"

	// ProviderOpenAI is the OpenAI cloud API.
	ProviderOpenAI LLMProvider = "openai"

	// ProviderAnthropic is the Anthropic cloud API.
	ProviderAnthropic LLMProvider = "anthropic"

	// ProviderOllama is a local Ollama instance.
	ProviderOllama LLMProvider = "ollama"
)

// IsValid returns true if the provider is recognised.
func (p LLMProvider) IsValid() bool {
	switch p {
	case ProviderGemini, ProviderOpenAI, ProviderAnthropic, ProviderOllama:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p LLMProvider) RequiresAPIKey() bool {
	return p != ProviderOllama
}

// String returns the string representation.
func (p LLMProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p LLMProvider) Description() string {
	switch p {
	case ProviderGemini:
		return "Google Gemini (cloud API)"
	case ProviderOpenAI:
		return "OpenAI (cloud API)"
	case ProviderAnthropic:
		return "Anthropic (cloud API)"
	case ProviderOllama:
		return "Ollama (local instance)"
	default:
		return unknownDescription
	}
}

// AllLLMProviders returns the selectable providers in menu order.
func AllLLMProviders() []LLMProvider {
	return []LLMProvider{
		ProviderGemini,
		ProviderOpenAI,
		ProviderAnthropic,
		ProviderOllama,
	}
}

// DefaultLLMModels returns default models for each provider.
func DefaultLLMModels() map[LLMProvider]string {
	return map[LLMProvider]string{
		ProviderGemini:    "gemini-1.5-flash",
		ProviderOpenAI:    "gpt-4o-mini",
		ProviderAnthropic: "claude-3-5-sonnet-latest",
		ProviderOllama:    "llama3.2",
	}
}

// LLMSettings configures the generation backend.
type LLMSettings struct {
	// Provider selects the LLM backend.
	Provider LLMProvider

	// Model is the provider-specific model name. Empty selects the
	// adapter's default.
	Model string

	// APIKey authenticates cloud providers. Unused by Ollama.
	APIKey string

	// BaseURL overrides the provider's API endpoint. Empty selects the
	// adapter's default.
	BaseURL string
}

// IsConfigured returns true if the settings are complete enough to
// construct an LLM service.
func (s *LLMSettings) IsConfigured() bool {
	if s == nil || !s.Provider.IsValid() {
		return false
	}
	if s.Provider.RequiresAPIKey() && s.APIKey == "" {
		return false
	}
	return true
}
