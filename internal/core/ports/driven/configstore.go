package driven

// ConfigStore provides access to application configuration.
// Implementations handle persistence (e.g., TOML files) and type conversion.
type ConfigStore interface {
	// Get retrieves a configuration value by key.
	// Returns the value and a boolean indicating if the key exists.
	Get(key string) (any, bool)

	// GetString retrieves a string configuration value.
	// Returns empty string if key doesn't exist or isn't a string.
	GetString(key string) string

	// GetInt retrieves an integer configuration value.
	// Returns 0 if key doesn't exist or isn't an integer.
	GetInt(key string) int

	// Set stores a configuration value.
	// The value is persisted immediately.
	Set(key string, value any) error

	// Save persists the current configuration to storage.
	Save() error

	// Load reads configuration from storage.
	Load() error

	// Path returns the configuration file path.
	Path() string
}

// Well-known configuration keys.
const (
	// ConfigDatasetsRoot is the root directory for generated datasets.
	// Artifacts live at <datasets_root>/<domain>/<base>_<kind>.jsonl.
	ConfigDatasetsRoot = "datasets_root"

	// ConfigLLMProvider selects the generation backend (gemini, openai,
	// anthropic, ollama).
	ConfigLLMProvider = "llm.provider"

	// ConfigLLMModel is the provider-specific model name.
	ConfigLLMModel = "llm.model"

	// ConfigLLMAPIKey authenticates cloud providers.
	ConfigLLMAPIKey = "llm.api_key"

	// ConfigLLMBaseURL overrides the provider endpoint.
	ConfigLLMBaseURL = "llm.base_url"
)

// DefaultDatasetsRoot is used when datasets_root is not configured.
const DefaultDatasetsRoot = "data/generated_datasets"
