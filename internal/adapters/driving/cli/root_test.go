package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/datagen-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/datagen-cli/internal/core/domain"
	"github.com/custodia-labs/datagen-cli/internal/core/ports/driven"
)

// Test fakes shared by the command tests.

type fakePipeline struct {
	domainArg string
	sourceArg string
	result    *domain.RunResult
	err       error
}

func (f *fakePipeline) Run(_ context.Context, datasetDomain, sourcePath string) (*domain.RunResult, error) {
	f.domainArg = datasetDomain
	f.sourceArg = sourcePath
	if f.err != nil {
		return nil, f.err
	}
	if f.result != nil {
		return f.result, nil
	}
	paths := domain.DeriveRunPaths("data", datasetDomain, sourcePath)
	return &domain.RunResult{Paths: paths, StagesRun: 4}, nil
}

type fakeGenerator struct {
	requests []driven.GenerateRequest
	stats    *driven.GenerateStats
	err      error
}

func (f *fakeGenerator) Generate(_ context.Context, req driven.GenerateRequest) (*driven.GenerateStats, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	if f.stats != nil {
		return f.stats, nil
	}
	return &driven.GenerateStats{Chunks: 1, Records: 2}, nil
}

type fakeEvaluator struct {
	inputArg string
	report   *domain.Report
	err      error
}

func (f *fakeEvaluator) Evaluate(_ context.Context, input string) (*domain.Report, error) {
	f.inputArg = input
	return f.report, f.err
}

// setupTestServices wires fake services into the command package and
// returns a cleanup function restoring the previous state.
func setupTestServices() func() {
	pipeline := &fakePipeline{}
	generator := &fakeGenerator{}
	evaluator := &fakeEvaluator{
		report: &domain.Report{Path: "test.jsonl", TotalRecords: 1, Keys: []string{"id"}},
	}
	SetServices(pipeline, generator, evaluator, memory.NewConfigStore())

	return func() {
		SetServices(nil, nil, nil, nil)
		generateInput = ""
		generateOutput = ""
		generateDomain = domain.DefaultDomain
	}
}

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "datagen", rootCmd.Use)
}

func TestRootCmd_HasVerboseFlag(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("verbose")
	assert.NotNil(t, flag)
	assert.Equal(t, "v", flag.Shorthand)
}

func TestSetVersion(t *testing.T) {
	original := version
	defer func() { version = original }()

	SetVersion("1.2.3")
	assert.Equal(t, "1.2.3", version)

	// Empty string keeps the current value
	SetVersion("")
	assert.Equal(t, "1.2.3", version)
}

func TestSetServices(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	assert.NotNil(t, pipelineService)
	assert.NotNil(t, generatorService)
	assert.NotNil(t, evaluatorService)
	assert.NotNil(t, configStore)
}
