// Package cli implements the datagen command-line interface using cobra.
// Commands are thin: they parse arguments and flags, then delegate to the
// core services injected via SetServices.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/datagen-cli/internal/core/ports/driven"
	"github.com/custodia-labs/datagen-cli/internal/core/ports/driving"
	"github.com/custodia-labs/datagen-cli/internal/logger"
)

// version is set via SetVersion from the build entrypoint.
var version = "dev"

// Injected services. Commands check for nil and fail with a clear
// message rather than panicking when wiring is incomplete.
var (
	pipelineService  driving.PipelineRunner
	generatorService driven.Generator
	evaluatorService driven.Evaluator
	configStore      driven.ConfigStore
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "datagen",
	Short: "Generate and evaluate synthetic LLM training datasets",
	Long: `Datagen builds labeled datasets (Q&A pairs, summaries, classifications)
from source documents using an LLM backend, and evaluates the generated
JSONL artifacts for structural quality.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}

// SetVersion sets the version string reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// SetServices injects the core services used by the commands.
// Called once from the entrypoint before Execute.
func SetServices(
	pipeline driving.PipelineRunner,
	generator driven.Generator,
	evaluator driven.Evaluator,
	config driven.ConfigStore,
) {
	pipelineService = pipeline
	generatorService = generator
	evaluatorService = evaluator
	configStore = config
}

// Execute runs the root command and returns its error.
func Execute() error {
	return rootCmd.Execute()
}
