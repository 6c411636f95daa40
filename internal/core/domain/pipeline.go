package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Stage identifies one of the four ordered pipeline steps.
type Stage int

// Pipeline stages, executed strictly in this order.
const (
	StageGenerateQA Stage = iota + 1
	StageEvaluateQA
	StageGenerateSummaries
	StageEvaluateSummaries
)

// String returns a human-readable stage name.
func (s Stage) String() string {
	switch s {
	case StageGenerateQA:
		return "generate QA dataset"
	case StageEvaluateQA:
		return "evaluate QA dataset"
	case StageGenerateSummaries:
		return "generate summaries dataset"
	case StageEvaluateSummaries:
		return "evaluate summaries dataset"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// StageError is the tagged failure result of a pipeline run.
// It records which stage failed; the remaining stages were not run.
type StageError struct {
	// Stage is the step that returned the failure.
	Stage Stage

	// Err is the collaborator's underlying error, unmodified.
	Err error
}

// Error implements the error interface.
func (e *StageError) Error() string {
	return fmt.Sprintf("stage %d (%s): %v", int(e.Stage), e.Stage, e.Err)
}

// Unwrap returns the underlying collaborator error.
func (e *StageError) Unwrap() error {
	return e.Err
}

// RunPaths holds every path derived for a single pipeline run.
// Derivation is a pure function of (datasetsRoot, domain, sourcePath).
type RunPaths struct {
	// OutputDir is <datasetsRoot>/<domain>, created before stage 1.
	OutputDir string

	// BaseName is the source file name with its extension stripped.
	BaseName string

	// QAPath is <OutputDir>/<BaseName>_qa.jsonl.
	QAPath string

	// SummariesPath is <OutputDir>/<BaseName>_summaries.jsonl.
	SummariesPath string
}

// DeriveRunPaths computes the output directory and artifact paths
// for a pipeline run. It performs no filesystem access.
func DeriveRunPaths(datasetsRoot, domain, sourcePath string) RunPaths {
	base := Stem(sourcePath)
	outputDir := filepath.Join(datasetsRoot, domain)
	return RunPaths{
		OutputDir:     outputDir,
		BaseName:      base,
		QAPath:        filepath.Join(outputDir, base+KindQA.Suffix()),
		SummariesPath: filepath.Join(outputDir, base+KindSummaries.Suffix()),
	}
}

// Stem returns the file name of path with its final extension removed.
// Directory components are discarded: Stem("data/raw/legal/nda.txt") == "nda".
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// RunResult summarises a completed pipeline run.
type RunResult struct {
	// Paths are the derived artifact paths for the run.
	Paths RunPaths

	// StagesRun counts the stages that were invoked (1..4).
	StagesRun int

	// QAReport and SummariesReport are the evaluation findings,
	// present for each evaluation stage that ran.
	QAReport        *Report
	SummariesReport *Report
}
