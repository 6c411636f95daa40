package driven

import (
	"context"

	"github.com/custodia-labs/datagen-cli/internal/core/domain"
)

// GenerateRequest describes one generation collaborator invocation.
// This is the argument contract between the pipeline driver and the
// generation stage: input path, output path, domain tag, dataset kind.
type GenerateRequest struct {
	// Input is the path to the source text file.
	Input string

	// Output is the path where the JSONL artifact is written.
	// The generator owns overwrite semantics for an existing file.
	Output string

	// Domain tags the generation request (persona and label selection).
	// Any string is accepted; unknown domains use defaults.
	Domain string

	// Kind selects the dataset shape to generate.
	Kind domain.DatasetKind
}

// GenerateStats summarises a successful generation run.
type GenerateStats struct {
	// Chunks is the number of source chunks processed.
	Chunks int

	// Records is the number of JSONL records written.
	Records int
}

// Generator produces a labeled synthetic dataset from a source file.
// On success the artifact at req.Output is well formed; on error its
// presence and validity are undefined.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (*GenerateStats, error)
}

// Evaluator runs quality checks against a generated dataset artifact.
// A nil error means the artifact passed; the returned report carries
// the findings either way (it is non-nil whenever the file was read).
type Evaluator interface {
	Evaluate(ctx context.Context, input string) (*domain.Report, error)
}
