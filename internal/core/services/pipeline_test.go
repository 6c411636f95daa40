package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/datagen-cli/internal/core/domain"
	"github.com/custodia-labs/datagen-cli/internal/core/ports/driven"
)

// --- Spy collaborators ---

// spyGenerator records generation requests and optionally fails at a
// given call (1-based). On success it writes a minimal valid artifact.
type spyGenerator struct {
	calls  []driven.GenerateRequest
	failAt int
	err    error
}

func (g *spyGenerator) Generate(_ context.Context, req driven.GenerateRequest) (*driven.GenerateStats, error) {
	g.calls = append(g.calls, req)
	if g.failAt == len(g.calls) {
		return nil, g.err
	}

	line := `{"id":"1","question":"q","answer":"a","context_used":"c"}` + "\n"
	if err := os.WriteFile(req.Output, []byte(line), 0o644); err != nil {
		return nil, err
	}
	return &driven.GenerateStats{Chunks: 1, Records: 1}, nil
}

// spyEvaluator records evaluated paths and optionally fails at a given
// call (1-based).
type spyEvaluator struct {
	calls  []string
	failAt int
	err    error
}

func (e *spyEvaluator) Evaluate(_ context.Context, input string) (*domain.Report, error) {
	e.calls = append(e.calls, input)
	if e.failAt == len(e.calls) {
		return nil, e.err
	}
	return &domain.Report{Path: input, TotalRecords: 1, Keys: []string{"answer", "context_used", "id", "question"}}, nil
}

func newTestPipeline(t *testing.T) (*Pipeline, *spyGenerator, *spyEvaluator, string) {
	t.Helper()

	root := t.TempDir()
	gen := &spyGenerator{}
	eval := &spyEvaluator{}
	return NewPipeline(gen, eval, root), gen, eval, root
}

// --- Tests ---

func TestPipeline_RunsAllFourStagesInOrder(t *testing.T) {
	p, gen, eval, root := newTestPipeline(t)

	result, err := p.Run(context.Background(), "legal", "data/raw_source_texts/legal/nda.txt")

	require.NoError(t, err)
	assert.Equal(t, 4, result.StagesRun)

	// Stage 1 and 3 are generation calls, in order.
	require.Len(t, gen.calls, 2)
	qaPath := filepath.Join(root, "legal", "nda_qa.jsonl")
	summariesPath := filepath.Join(root, "legal", "nda_summaries.jsonl")

	assert.Equal(t, "data/raw_source_texts/legal/nda.txt", gen.calls[0].Input)
	assert.Equal(t, qaPath, gen.calls[0].Output)
	assert.Equal(t, "legal", gen.calls[0].Domain)
	assert.Equal(t, domain.KindQA, gen.calls[0].Kind)

	assert.Equal(t, "data/raw_source_texts/legal/nda.txt", gen.calls[1].Input)
	assert.Equal(t, summariesPath, gen.calls[1].Output)
	assert.Equal(t, domain.KindSummaries, gen.calls[1].Kind)

	// Stage 2 and 4 are evaluation calls against the artifacts.
	require.Len(t, eval.calls, 2)
	assert.Equal(t, qaPath, eval.calls[0])
	assert.Equal(t, summariesPath, eval.calls[1])

	assert.NotNil(t, result.QAReport)
	assert.NotNil(t, result.SummariesReport)
}

func TestPipeline_EmptyDomainIsUsageError(t *testing.T) {
	p, gen, eval, root := newTestPipeline(t)

	_, err := p.Run(context.Background(), "", "source.txt")

	require.ErrorIs(t, err, domain.ErrUsage)
	assert.Empty(t, gen.calls, "no stage should run on usage error")
	assert.Empty(t, eval.calls, "no stage should run on usage error")

	// No side effects: the datasets root stays empty.
	entries, readErr := os.ReadDir(root)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestPipeline_EmptySourcePathIsUsageError(t *testing.T) {
	p, gen, eval, _ := newTestPipeline(t)

	_, err := p.Run(context.Background(), "legal", "")

	require.ErrorIs(t, err, domain.ErrUsage)
	assert.Empty(t, gen.calls)
	assert.Empty(t, eval.calls)
}

func TestPipeline_CreatesOutputDirectoryBeforeStage1(t *testing.T) {
	root := t.TempDir()
	var dirExistedAtStage1 bool

	gen := &checkedGenerator{check: func(req driven.GenerateRequest) {
		info, err := os.Stat(filepath.Dir(req.Output))
		dirExistedAtStage1 = err == nil && info.IsDir()
	}}
	p := NewPipeline(gen, &spyEvaluator{}, root)

	_, err := p.Run(context.Background(), "legal", "nda.txt")

	require.NoError(t, err)
	assert.True(t, dirExistedAtStage1, "output directory must exist before stage 1 runs")
}

func TestPipeline_RerunAgainstExistingDirectorySucceeds(t *testing.T) {
	p, _, _, _ := newTestPipeline(t)

	first, err := p.Run(context.Background(), "legal", "nda.txt")
	require.NoError(t, err)

	second, err := p.Run(context.Background(), "legal", "nda.txt")
	require.NoError(t, err, "existing output directory is not an error")

	// Identical inputs derive identical artifact paths both times.
	assert.Equal(t, first.Paths, second.Paths)
}

func TestPipeline_Stage1FailureAbortsRemainingStages(t *testing.T) {
	p, gen, eval, _ := newTestPipeline(t)
	gen.failAt = 1
	gen.err = errors.New("model unreachable")

	result, err := p.Run(context.Background(), "legal", "nda.txt")

	var stageErr *domain.StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, domain.StageGenerateQA, stageErr.Stage)
	assert.ErrorIs(t, err, gen.err, "underlying collaborator error is propagated")

	assert.Len(t, gen.calls, 1, "stage 3 never runs")
	assert.Empty(t, eval.calls, "stages 2 and 4 never run")
	assert.Equal(t, 1, result.StagesRun)
}

func TestPipeline_Stage2FailureSkipsSummaries(t *testing.T) {
	p, gen, eval, _ := newTestPipeline(t)
	eval.failAt = 1
	eval.err = errors.New("dataset failed quality checks")

	_, err := p.Run(context.Background(), "legal", "nda.txt")

	var stageErr *domain.StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, domain.StageEvaluateQA, stageErr.Stage)

	assert.Len(t, gen.calls, 1, "summaries generation never runs")
	assert.Len(t, eval.calls, 1)
}

func TestPipeline_Stage4FailureLeavesQAArtifactIntact(t *testing.T) {
	p, gen, eval, root := newTestPipeline(t)
	eval.failAt = 2
	eval.err = errors.New("summaries rejected")

	result, err := p.Run(context.Background(), "legal", "nda.txt")

	var stageErr *domain.StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, domain.StageEvaluateSummaries, stageErr.Stage)
	assert.Equal(t, 4, result.StagesRun)
	assert.Len(t, gen.calls, 2)
	assert.Len(t, eval.calls, 2)

	// The QA artifact from the earlier successful stage stays on disk.
	qaPath := filepath.Join(root, "legal", "nda_qa.jsonl")
	content, readErr := os.ReadFile(qaPath)
	require.NoError(t, readErr)
	assert.NotEmpty(t, content)
}

func TestPipeline_ReportsProgressPerStage(t *testing.T) {
	p, _, _, _ := newTestPipeline(t)

	var lines []string
	p.SetProgress(func(format string, args ...any) {
		lines = append(lines, format)
	})

	_, err := p.Run(context.Background(), "legal", "nda.txt")

	require.NoError(t, err)
	// One line per stage plus the completion line.
	assert.Len(t, lines, 5)
}

func TestPipeline_DefaultDatasetsRoot(t *testing.T) {
	p := NewPipeline(&spyGenerator{}, &spyEvaluator{}, "")
	assert.Equal(t, driven.DefaultDatasetsRoot, p.datasetsRoot)
}

// checkedGenerator runs a callback per request, then succeeds.
type checkedGenerator struct {
	check func(driven.GenerateRequest)
}

func (g *checkedGenerator) Generate(_ context.Context, req driven.GenerateRequest) (*driven.GenerateStats, error) {
	if g.check != nil {
		g.check(req)
	}
	line := `{"id":"1","source_text":"s","summary":"x"}` + "\n"
	if err := os.WriteFile(req.Output, []byte(line), 0o644); err != nil {
		return nil, err
	}
	return &driven.GenerateStats{Chunks: 1, Records: 1}, nil
}
