package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/datagen-cli/internal/core/domain"
)

var pipelineCmd = &cobra.Command{
	Use:   "pipeline [domain] [source_file]",
	Short: "Run the full generate-and-evaluate dataset pipeline",
	Long: `Runs the four-stage dataset pipeline for one source document:

  1. Generate Q&A pairs       -> <datasets_root>/<domain>/<base>_qa.jsonl
  2. Evaluate the Q&A dataset
  3. Generate summaries       -> <datasets_root>/<domain>/<base>_summaries.jsonl
  4. Evaluate the summaries dataset

Stages run in order and the first failure aborts the run. Artifacts
written by earlier successful stages are left in place.`,
	Args: cobra.ExactArgs(2),
	RunE: runPipeline,
}

func init() {
	rootCmd.AddCommand(pipelineCmd)
}

func runPipeline(cmd *cobra.Command, args []string) error {
	if pipelineService == nil {
		return errors.New("pipeline service not configured")
	}

	datasetDomain := args[0]
	sourcePath := args[1]

	result, err := pipelineService.Run(context.Background(), datasetDomain, sourcePath)
	if err != nil {
		var stageErr *domain.StageError
		if errors.As(err, &stageErr) {
			return fmt.Errorf("pipeline aborted at stage %d (%s): %w",
				int(stageErr.Stage), stageErr.Stage, stageErr.Err)
		}
		return err
	}

	cmd.Println("Pipeline complete.")
	cmd.Printf("  Q&A dataset:       %s\n", result.Paths.QAPath)
	cmd.Printf("  Summaries dataset: %s\n", result.Paths.SummariesPath)
	printReportLine(cmd, "Q&A", result.QAReport)
	printReportLine(cmd, "Summaries", result.SummariesReport)

	return nil
}

func printReportLine(cmd *cobra.Command, label string, report *domain.Report) {
	if report == nil {
		return
	}
	cmd.Printf("  %s evaluation:  %d records, %d issues\n",
		label, report.TotalRecords, report.IssueCount())
}
