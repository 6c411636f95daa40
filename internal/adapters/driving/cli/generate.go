package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/datagen-cli/internal/core/domain"
	"github.com/custodia-labs/datagen-cli/internal/core/ports/driven"
)

var (
	generateInput  string
	generateOutput string
	generateDomain string
)

var generateCmd = &cobra.Command{
	Use:   "generate [qa|summaries|classifications]",
	Short: "Generate a single dataset from a source document",
	Long: `Generates one labeled dataset of the given kind from a source document.

Unlike 'pipeline', this runs a single generation stage with no
evaluation. When --output is omitted the artifact path is derived as
<datasets_root>/<domain>/<base>_<kind>.jsonl.`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generateInput, "input", "i", "", "source text file (required)")
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "output JSONL path (derived when omitted)")
	generateCmd.Flags().StringVarP(&generateDomain, "domain", "d", domain.DefaultDomain, "dataset domain tag")
	_ = generateCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if generatorService == nil {
		return errors.New("generator service not configured")
	}

	kind := domain.DatasetKind(args[0])
	if !kind.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrUnknownKind, args[0])
	}

	output := generateOutput
	if output == "" {
		output = deriveOutputPath(generateDomain, generateInput, kind)
	}
	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	stats, err := generatorService.Generate(context.Background(), driven.GenerateRequest{
		Input:  generateInput,
		Output: output,
		Domain: generateDomain,
		Kind:   kind,
	})
	if err != nil {
		return fmt.Errorf("generate %s dataset: %w", kind, err)
	}

	cmd.Printf("Generated %s dataset: %s\n", kind, output)
	cmd.Printf("  Chunks processed: %d\n", stats.Chunks)
	cmd.Printf("  Records written:  %d\n", stats.Records)

	return nil
}

// deriveOutputPath mirrors the pipeline's artifact layout for
// standalone generation runs.
func deriveOutputPath(datasetDomain, input string, kind domain.DatasetKind) string {
	root := driven.DefaultDatasetsRoot
	if configStore != nil {
		if v := configStore.GetString(driven.ConfigDatasetsRoot); v != "" {
			root = v
		}
	}
	return filepath.Join(root, datasetDomain, domain.Stem(input)+kind.Suffix())
}
