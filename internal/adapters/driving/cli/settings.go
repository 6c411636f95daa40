package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/datagen-cli/internal/core/domain"
	"github.com/custodia-labs/datagen-cli/internal/core/ports/driven"
)

// llmValidator checks that the configured LLM backend is reachable.
// Injected from the entrypoint; nil skips validation.
var llmValidator func(*domain.LLMSettings) error

// SetLLMValidator injects the LLM configuration validator.
func SetLLMValidator(fn func(*domain.LLMSettings) error) {
	llmValidator = fn
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the LLM provider and dataset output location.

Use subcommands to configure specific settings.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsLLMCmd = &cobra.Command{
	Use:   "llm",
	Short: "Configure LLM provider",
	Long:  `Configure the LLM provider used for dataset generation.`,
	RunE:  runSettingsLLM,
}

var settingsRootCmd = &cobra.Command{
	Use:   "root [path]",
	Short: "Set the datasets root directory",
	Long:  `Set the root directory under which generated datasets are written.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsRoot,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsLLMCmd)
	settingsCmd.AddCommand(settingsRootCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	settings := loadLLMSettings()

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Datasets]")
	root := configStore.GetString(driven.ConfigDatasetsRoot)
	if root == "" {
		root = driven.DefaultDatasetsRoot
	}
	cmd.Printf("  Root: %s\n", root)
	cmd.Println()

	cmd.Println("[LLM]")
	cmd.Printf("  Provider: %s\n", settings.Provider.Description())
	cmd.Printf("  Model: %s\n", settings.Model)
	if settings.Provider == domain.ProviderOllama && settings.BaseURL != "" {
		cmd.Printf("  Base URL: %s\n", settings.BaseURL)
	}
	if settings.Provider.RequiresAPIKey() {
		if settings.APIKey != "" {
			cmd.Printf("  API Key: %s\n", maskAPIKey(settings.APIKey))
		} else {
			cmd.Printf("  API Key: (not set)\n")
		}
	}
	status := "configured"
	if !settings.IsConfigured() {
		status = "not configured"
	}
	cmd.Printf("  Status: %s\n", status)
	cmd.Println()

	if !settings.IsConfigured() {
		cmd.Println("Run 'datagen settings llm' to configure the LLM provider.")
	}

	return nil
}

func runSettingsLLM(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	reader := bufio.NewReader(os.Stdin)

	cmd.Println("Select LLM Provider")
	providers := domain.AllLLMProviders()
	for i, p := range providers {
		cmd.Printf("  %d. %s\n", i+1, p.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	input := readLine(reader)
	idx := parseChoice(input, len(providers), 1)
	selectedProvider := providers[idx-1]

	// Get model
	defaults := domain.DefaultLLMModels()
	defaultModel := defaults[selectedProvider]
	cmd.Printf("Enter model name [%s]: ", defaultModel)
	model := readLine(reader)
	if model == "" {
		model = defaultModel
	}

	// Get API key if needed
	var apiKey string
	if selectedProvider.RequiresAPIKey() {
		cmd.Print("Enter API key: ")
		apiKey = readPassword()
		cmd.Println()
		if apiKey == "" {
			return errors.New("API key is required for this provider")
		}
	}

	// Get base URL for local providers
	var baseURL string
	if selectedProvider == domain.ProviderOllama {
		cmd.Print("Enter base URL [http://localhost:11434]: ")
		baseURL = readLine(reader)
	}

	settings := &domain.LLMSettings{
		Provider: selectedProvider,
		Model:    model,
		APIKey:   apiKey,
		BaseURL:  baseURL,
	}

	// Validate the configuration by pinging the service
	if llmValidator != nil {
		cmd.Print("Validating configuration... ")
		if err := llmValidator(settings); err != nil {
			cmd.Printf("FAILED: %v\n", err)
			return fmt.Errorf("LLM configuration validation failed: %w", err)
		}
		cmd.Println("OK")
	}

	if err := saveLLMSettings(settings); err != nil {
		return fmt.Errorf("failed to save LLM settings: %w", err)
	}

	cmd.Printf("LLM provider configured: %s (%s)\n", selectedProvider.Description(), model)
	return nil
}

func runSettingsRoot(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	if err := configStore.Set(driven.ConfigDatasetsRoot, args[0]); err != nil {
		return fmt.Errorf("failed to save datasets root: %w", err)
	}

	cmd.Printf("Datasets root set to: %s\n", args[0])
	return nil
}

// loadLLMSettings reads the LLM configuration from the config store.
func loadLLMSettings() *domain.LLMSettings {
	return &domain.LLMSettings{
		Provider: domain.LLMProvider(configStore.GetString(driven.ConfigLLMProvider)),
		Model:    configStore.GetString(driven.ConfigLLMModel),
		APIKey:   configStore.GetString(driven.ConfigLLMAPIKey),
		BaseURL:  configStore.GetString(driven.ConfigLLMBaseURL),
	}
}

func saveLLMSettings(settings *domain.LLMSettings) error {
	if err := configStore.Set(driven.ConfigLLMProvider, settings.Provider.String()); err != nil {
		return err
	}
	if err := configStore.Set(driven.ConfigLLMModel, settings.Model); err != nil {
		return err
	}
	if err := configStore.Set(driven.ConfigLLMAPIKey, settings.APIKey); err != nil {
		return err
	}
	return configStore.Set(driven.ConfigLLMBaseURL, settings.BaseURL)
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Try to read password without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
