// Command datagen generates and evaluates synthetic LLM training
// datasets from source documents.
package main

import (
	"fmt"
	"os"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/datagen-cli/internal/adapters/driven/ai"
	"github.com/custodia-labs/datagen-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/datagen-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/datagen-cli/internal/core/domain"
	"github.com/custodia-labs/datagen-cli/internal/core/ports/driven"
	"github.com/custodia-labs/datagen-cli/internal/core/services"
	"github.com/custodia-labs/datagen-cli/internal/logger"
)

// version is overridden at build time via -ldflags.
var version = "dev"

// llmRequestsPerSecond throttles generation calls so long pipeline runs
// stay inside provider rate limits.
const llmRequestsPerSecond = 2

func main() {
	os.Exit(run())
}

func run() int {
	configStore, err := file.NewConfigStore("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: load configuration: %v\n", err)
		return 1
	}

	promptStore, err := file.NewPromptStore("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: open prompt store: %v\n", err)
		return 1
	}
	if err := promptStore.Watch(); err != nil {
		logger.Warn("prompt watching disabled: %v", err)
	}
	defer promptStore.Close() //nolint:errcheck // Best-effort shutdown

	settings := &domain.LLMSettings{
		Provider: domain.LLMProvider(configStore.GetString(driven.ConfigLLMProvider)),
		Model:    configStore.GetString(driven.ConfigLLMModel),
		APIKey:   configStore.GetString(driven.ConfigLLMAPIKey),
		BaseURL:  configStore.GetString(driven.ConfigLLMBaseURL),
	}

	// An unconfigured provider yields a nil LLM service. Generation
	// commands then fail with a clear message while settings commands
	// keep working.
	llmService, err := ai.CreateLLMService(settings)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: create LLM service: %v\n", err)
		return 1
	}
	if llmService != nil {
		defer llmService.Close() //nolint:errcheck // Best-effort shutdown
	}

	generation := services.NewGeneration(llmService,
		services.WithPromptStore(promptStore),
		services.WithRateLimit(rate.Limit(llmRequestsPerSecond), 1),
	)
	evaluation := services.NewEvaluation()

	pipeline := services.NewPipeline(generation, evaluation,
		configStore.GetString(driven.ConfigDatasetsRoot))
	pipeline.SetProgress(func(format string, args ...any) {
		fmt.Printf(format+"\n", args...)
	})

	cli.SetVersion(version)
	cli.SetServices(pipeline, generation, evaluation, configStore)
	cli.SetLLMValidator(func(s *domain.LLMSettings) error {
		svc, err := ai.CreateAndValidateLLMService(s)
		if svc != nil {
			defer svc.Close() //nolint:errcheck // Validation probe only
		}
		return err
	})

	// cobra already printed any error.
	return exitCode(cli.Execute())
}

// exitCode maps an Execute result to a process exit code. Every
// failure exits 1, usage errors included.
func exitCode(err error) int {
	if err != nil {
		return 1
	}
	return 0
}
