package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate [dataset_file]",
	Short: "Evaluate a generated JSONL dataset",
	Long: `Runs structural quality checks against a generated JSONL dataset:
every line must be valid JSON, every record must carry the same keys as
the first, and no value may be empty (numeric zero is allowed).

Exits non-zero when the dataset fails any check.`,
	Args: cobra.ExactArgs(1),
	RunE: runEvaluate,
}

func init() {
	rootCmd.AddCommand(evaluateCmd)
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	if evaluatorService == nil {
		return errors.New("evaluator service not configured")
	}

	report, evalErr := evaluatorService.Evaluate(context.Background(), args[0])
	if report == nil {
		// File could not be read at all
		return evalErr
	}

	cmd.Printf("Evaluation report for %s\n", report.Path)
	cmd.Printf("  Total records:   %d\n", report.TotalRecords)
	cmd.Printf("  Invalid JSON:    %d\n", report.InvalidJSON)
	cmd.Printf("  Mismatched keys: %d\n", report.MismatchedKeys)
	cmd.Printf("  Empty values:    %d\n", report.EmptyValues)
	if len(report.Keys) > 0 {
		cmd.Printf("  Record keys:     %s\n", strings.Join(report.Keys, ", "))
	}

	if evalErr != nil {
		return fmt.Errorf("dataset failed evaluation: %w", evalErr)
	}

	cmd.Println("Dataset passed all checks.")
	return nil
}
