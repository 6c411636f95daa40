package driving

import (
	"context"

	"github.com/custodia-labs/datagen-cli/internal/core/domain"
)

// PipelineRunner executes the four-stage dataset pipeline for one
// source document:
//
//	generate QA -> evaluate QA -> generate summaries -> evaluate summaries
//
// Stages run strictly in order; the first failure aborts the run.
type PipelineRunner interface {
	// Run derives the artifact paths for (domain, sourcePath), creates
	// the output directory, and executes the stages sequentially.
	//
	// Both arguments must be non-empty or Run fails with domain.ErrUsage
	// before any side effect. A stage failure is returned as a
	// *domain.StageError wrapping the collaborator's error; the partial
	// RunResult is returned alongside it.
	Run(ctx context.Context, datasetDomain, sourcePath string) (*domain.RunResult, error)
}
