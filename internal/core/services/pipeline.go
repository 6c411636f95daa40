package services

import (
	"context"
	"fmt"
	"os"

	"github.com/custodia-labs/datagen-cli/internal/core/domain"
	"github.com/custodia-labs/datagen-cli/internal/core/ports/driven"
	"github.com/custodia-labs/datagen-cli/internal/core/ports/driving"
	"github.com/custodia-labs/datagen-cli/internal/logger"
)

// Ensure Pipeline implements the interface.
var _ driving.PipelineRunner = (*Pipeline)(nil)

// Pipeline drives the four-stage dataset run for one source document.
// The generation and evaluation collaborators are injected so tests can
// substitute deterministic fakes.
type Pipeline struct {
	generator    driven.Generator
	evaluator    driven.Evaluator
	datasetsRoot string

	// progress receives a human-readable line per stage attempted.
	// Optional; nil disables progress output.
	progress func(format string, args ...any)
}

// NewPipeline creates a pipeline runner.
// datasetsRoot is the configured root for generated datasets; it is
// injected rather than hard-coded so tests can isolate the filesystem.
func NewPipeline(generator driven.Generator, evaluator driven.Evaluator, datasetsRoot string) *Pipeline {
	if datasetsRoot == "" {
		datasetsRoot = driven.DefaultDatasetsRoot
	}
	return &Pipeline{
		generator:    generator,
		evaluator:    evaluator,
		datasetsRoot: datasetsRoot,
	}
}

// SetProgress sets the stage progress callback.
func (p *Pipeline) SetProgress(fn func(format string, args ...any)) {
	p.progress = fn
}

// Run executes the pipeline:
//
//	1. generate QA        -> writes <out>/<base>_qa.jsonl
//	2. evaluate QA        -> reads the QA artifact
//	3. generate summaries -> writes <out>/<base>_summaries.jsonl
//	4. evaluate summaries -> reads the summaries artifact
//
// Stages run strictly sequentially; the first failure aborts the run
// and is returned as a *domain.StageError. Artifacts written by earlier
// successful stages are left in place.
func (p *Pipeline) Run(ctx context.Context, datasetDomain, sourcePath string) (*domain.RunResult, error) {
	if datasetDomain == "" || sourcePath == "" {
		return nil, fmt.Errorf("%w: domain and source file path are required", domain.ErrUsage)
	}

	paths := domain.DeriveRunPaths(p.datasetsRoot, datasetDomain, sourcePath)
	result := &domain.RunResult{Paths: paths}

	// Idempotent: an existing output directory is not an error.
	if err := os.MkdirAll(paths.OutputDir, 0o755); err != nil {
		return result, fmt.Errorf("create output directory %s: %w", paths.OutputDir, err)
	}

	logger.Section("Pipeline: " + datasetDomain + "/" + paths.BaseName)

	stages := []struct {
		stage domain.Stage
		run   func(context.Context) error
	}{
		{domain.StageGenerateQA, func(ctx context.Context) error {
			_, err := p.generator.Generate(ctx, driven.GenerateRequest{
				Input:  sourcePath,
				Output: paths.QAPath,
				Domain: datasetDomain,
				Kind:   domain.KindQA,
			})
			return err
		}},
		{domain.StageEvaluateQA, func(ctx context.Context) error {
			report, err := p.evaluator.Evaluate(ctx, paths.QAPath)
			result.QAReport = report
			return err
		}},
		{domain.StageGenerateSummaries, func(ctx context.Context) error {
			_, err := p.generator.Generate(ctx, driven.GenerateRequest{
				Input:  sourcePath,
				Output: paths.SummariesPath,
				Domain: datasetDomain,
				Kind:   domain.KindSummaries,
			})
			return err
		}},
		{domain.StageEvaluateSummaries, func(ctx context.Context) error {
			report, err := p.evaluator.Evaluate(ctx, paths.SummariesPath)
			result.SummariesReport = report
			return err
		}},
	}

	for _, s := range stages {
		p.printf("--- Step %d: %s ---", int(s.stage), s.stage)
		result.StagesRun++

		if err := s.run(ctx); err != nil {
			logger.Error("stage %d (%s) failed: %v", int(s.stage), s.stage, err)
			return result, &domain.StageError{Stage: s.stage, Err: err}
		}

		logger.Info("stage %d (%s) completed", int(s.stage), s.stage)
	}

	p.printf("Pipeline completed successfully for %s", sourcePath)
	return result, nil
}

func (p *Pipeline) printf(format string, args ...any) {
	if p.progress != nil {
		p.progress(format, args...)
	}
}
