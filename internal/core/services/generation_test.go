package services

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/datagen-cli/internal/core/domain"
	"github.com/custodia-labs/datagen-cli/internal/core/ports/driven"
)

// fakeLLM returns a canned response for every call.
type fakeLLM struct {
	response string
	err      error
	calls    int
	prompts  []string
}

func (f *fakeLLM) Generate(_ context.Context, prompt string, _ driven.GenerateOptions) (string, error) {
	f.calls++
	f.prompts = append(f.prompts, prompt)
	return f.response, f.err
}

func (f *fakeLLM) GenerateJSON(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	return f.Generate(ctx, prompt, opts)
}

func (f *fakeLLM) ModelName() string            { return "fake-model" }
func (f *fakeLLM) Ping(_ context.Context) error { return nil }
func (f *fakeLLM) Close() error                 { return nil }

func writeSourceFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "source.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readJSONLines(t *testing.T, path string) []map[string]any {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var records []map[string]any
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var record map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &record))
		records = append(records, record)
	}
	require.NoError(t, scanner.Err())
	return records
}

func TestGeneration_QAWritesJSONLRecords(t *testing.T) {
	llm := &fakeLLM{response: `[
		{"question":"Who are the parties?","answer":"Acme and Beta.","context_used":"between Acme and Beta"},
		{"question":"What law governs?","answer":"Delaware law.","context_used":"governed by Delaware law"}
	]`}
	g := NewGeneration(llm)

	source := writeSourceFile(t, "This agreement is between Acme and Beta, governed by Delaware law.")
	output := filepath.Join(t.TempDir(), "nda_qa.jsonl")

	stats, err := g.Generate(context.Background(), driven.GenerateRequest{
		Input:  source,
		Output: output,
		Domain: "legal",
		Kind:   domain.KindQA,
	})

	require.NoError(t, err)
	assert.Equal(t, 1, stats.Chunks)
	assert.Equal(t, 2, stats.Records)

	records := readJSONLines(t, output)
	require.Len(t, records, 2)
	assert.Equal(t, "Who are the parties?", records[0]["question"])
	assert.Equal(t, "Acme and Beta.", records[0]["answer"])
	assert.NotEmpty(t, records[0]["id"], "each record gets a generated id")
	assert.NotEqual(t, records[0]["id"], records[1]["id"])
}

func TestGeneration_QAPromptUsesDomainPersona(t *testing.T) {
	llm := &fakeLLM{response: `[]`}
	g := NewGeneration(llm)

	source := writeSourceFile(t, "Some contract text.")
	output := filepath.Join(t.TempDir(), "out.jsonl")

	_, err := g.Generate(context.Background(), driven.GenerateRequest{
		Input:  source,
		Output: output,
		Domain: "legal",
		Kind:   domain.KindQA,
	})

	require.NoError(t, err)
	require.Len(t, llm.prompts, 1)
	assert.Contains(t, llm.prompts[0], "paralegal", "legal persona selected")
	assert.Contains(t, llm.prompts[0], "Some contract text.")
}

func TestGeneration_UnknownDomainFallsBackToDefaultPersona(t *testing.T) {
	llm := &fakeLLM{response: `[]`}
	g := NewGeneration(llm)

	source := writeSourceFile(t, "text")
	output := filepath.Join(t.TempDir(), "out.jsonl")

	_, err := g.Generate(context.Background(), driven.GenerateRequest{
		Input:  source,
		Output: output,
		Domain: "astrophysics",
		Kind:   domain.KindQA,
	})

	require.NoError(t, err)
	require.Len(t, llm.prompts, 1)
	assert.Contains(t, llm.prompts[0], "helpful AI assistant")
}

func TestGeneration_SummariesWritesOneRecordPerChunk(t *testing.T) {
	llm := &fakeLLM{response: `{"source_text":"original","summary":"short version"}`}
	g := NewGeneration(llm)

	source := writeSourceFile(t, "A long report that fits in a single chunk.")
	output := filepath.Join(t.TempDir(), "report_summaries.jsonl")

	stats, err := g.Generate(context.Background(), driven.GenerateRequest{
		Input:  source,
		Output: output,
		Domain: "finance",
		Kind:   domain.KindSummaries,
	})

	require.NoError(t, err)
	assert.Equal(t, 1, stats.Records)

	records := readJSONLines(t, output)
	require.Len(t, records, 1)
	assert.Equal(t, "short version", records[0]["summary"])
	assert.Equal(t, "original", records[0]["source_text"])
}

func TestGeneration_ClassificationsKeepOnlyKnownLabels(t *testing.T) {
	llm := &fakeLLM{response: `{"text_snippet":"This contract terminates...","classification":"Termination"}`}
	g := NewGeneration(llm)

	source := writeSourceFile(t, "This contract terminates upon thirty days notice.")
	output := filepath.Join(t.TempDir(), "nda_classifications.jsonl")

	stats, err := g.Generate(context.Background(), driven.GenerateRequest{
		Input:  source,
		Output: output,
		Domain: "legal",
		Kind:   domain.KindClassifications,
	})

	require.NoError(t, err)
	assert.Equal(t, 1, stats.Records)

	records := readJSONLines(t, output)
	require.Len(t, records, 1)
	assert.Equal(t, "Termination", records[0]["classification"])
}

func TestGeneration_ClassificationsSkipUnknownLabel(t *testing.T) {
	llm := &fakeLLM{response: `{"text_snippet":"snippet","classification":"Made Up Category"}`}
	g := NewGeneration(llm)

	source := writeSourceFile(t, "some snippet")
	output := filepath.Join(t.TempDir(), "out.jsonl")

	stats, err := g.Generate(context.Background(), driven.GenerateRequest{
		Input:  source,
		Output: output,
		Domain: "legal",
		Kind:   domain.KindClassifications,
	})

	require.NoError(t, err)
	assert.Equal(t, 0, stats.Records, "records with labels outside the domain set are dropped")
}

func TestGeneration_StripsMarkdownCodeFence(t *testing.T) {
	llm := &fakeLLM{response: "```json\n[{\"question\":\"q\",\"answer\":\"a\",\"context_used\":\"c\"}]\n```"}
	g := NewGeneration(llm)

	source := writeSourceFile(t, "text")
	output := filepath.Join(t.TempDir(), "out.jsonl")

	stats, err := g.Generate(context.Background(), driven.GenerateRequest{
		Input:  source,
		Output: output,
		Domain: "legal",
		Kind:   domain.KindQA,
	})

	require.NoError(t, err)
	assert.Equal(t, 1, stats.Records)
}

func TestGeneration_EmptySourceFails(t *testing.T) {
	g := NewGeneration(&fakeLLM{response: "[]"})

	source := writeSourceFile(t, "   \n  ")
	output := filepath.Join(t.TempDir(), "out.jsonl")

	_, err := g.Generate(context.Background(), driven.GenerateRequest{
		Input:  source,
		Output: output,
		Domain: "legal",
		Kind:   domain.KindQA,
	})

	require.ErrorIs(t, err, domain.ErrEmptySource)
}

func TestGeneration_MissingSourceFileFails(t *testing.T) {
	g := NewGeneration(&fakeLLM{response: "[]"})

	_, err := g.Generate(context.Background(), driven.GenerateRequest{
		Input:  filepath.Join(t.TempDir(), "does-not-exist.txt"),
		Output: filepath.Join(t.TempDir(), "out.jsonl"),
		Domain: "legal",
		Kind:   domain.KindQA,
	})

	require.Error(t, err)
}

func TestGeneration_LLMErrorPropagates(t *testing.T) {
	llm := &fakeLLM{err: errors.New("quota exceeded")}
	g := NewGeneration(llm)

	source := writeSourceFile(t, "text")
	output := filepath.Join(t.TempDir(), "out.jsonl")

	_, err := g.Generate(context.Background(), driven.GenerateRequest{
		Input:  source,
		Output: output,
		Domain: "legal",
		Kind:   domain.KindQA,
	})

	require.ErrorIs(t, err, llm.err)
}

func TestGeneration_NilLLMFails(t *testing.T) {
	g := NewGeneration(nil)

	_, err := g.Generate(context.Background(), driven.GenerateRequest{
		Input:  "in.txt",
		Output: "out.jsonl",
		Domain: "legal",
		Kind:   domain.KindQA,
	})

	require.ErrorIs(t, err, domain.ErrLLMUnavailable)
}

func TestGeneration_UnknownKindFails(t *testing.T) {
	g := NewGeneration(&fakeLLM{response: "[]"})

	_, err := g.Generate(context.Background(), driven.GenerateRequest{
		Input:  "in.txt",
		Output: "out.jsonl",
		Domain: "legal",
		Kind:   domain.DatasetKind("translations"),
	})

	require.ErrorIs(t, err, domain.ErrUnknownKind)
}

func TestGeneration_LargeSourceProcessesMultipleChunks(t *testing.T) {
	llm := &fakeLLM{response: `[{"question":"q","answer":"a","context_used":"c"}]`}
	g := NewGeneration(llm)

	// Larger than one QA chunk (4000 chars).
	long := make([]byte, 9000)
	for i := range long {
		long[i] = 'x'
	}
	source := writeSourceFile(t, string(long))
	output := filepath.Join(t.TempDir(), "out.jsonl")

	stats, err := g.Generate(context.Background(), driven.GenerateRequest{
		Input:  source,
		Output: output,
		Domain: "legal",
		Kind:   domain.KindQA,
	})

	require.NoError(t, err)
	assert.Equal(t, 3, stats.Chunks)
	assert.Equal(t, llm.calls, stats.Chunks, "one LLM call per chunk")
	assert.Equal(t, 3, stats.Records)
}

func TestGeneration_HTMLSourceIsStrippedBeforePrompting(t *testing.T) {
	llm := &fakeLLM{response: `[{"question":"q","answer":"a","context_used":"c"}]`}
	g := NewGeneration(llm)

	path := filepath.Join(t.TempDir(), "source.html")
	content := "<html><body><p>The term of this lease is five years.</p></body></html>"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	output := filepath.Join(t.TempDir(), "out.jsonl")

	_, err := g.Generate(context.Background(), driven.GenerateRequest{
		Input:  path,
		Output: output,
		Domain: "legal",
		Kind:   domain.KindQA,
	})

	require.NoError(t, err)
	require.Len(t, llm.prompts, 1)
	assert.Contains(t, llm.prompts[0], "The term of this lease is five years.")
	assert.NotContains(t, llm.prompts[0], "<p>")
}

func TestGeneration_CustomPromptStoreOverridesTemplate(t *testing.T) {
	llm := &fakeLLM{response: `[]`}
	store := &fakePromptStore{prompts: map[string]string{
		driven.PromptQAGeneration: "CUSTOM %s :: %s",
	}}
	g := NewGeneration(llm, WithPromptStore(store))

	source := writeSourceFile(t, "text")
	output := filepath.Join(t.TempDir(), "out.jsonl")

	_, err := g.Generate(context.Background(), driven.GenerateRequest{
		Input:  source,
		Output: output,
		Domain: "legal",
		Kind:   domain.KindQA,
	})

	require.NoError(t, err)
	require.Len(t, llm.prompts, 1)
	assert.Contains(t, llm.prompts[0], "CUSTOM")
}

// fakePromptStore serves templates from a map.
type fakePromptStore struct {
	prompts map[string]string
}

func (s *fakePromptStore) Load(name string) (string, error) {
	if p, ok := s.prompts[name]; ok {
		return p, nil
	}
	return "", errors.New("prompt not found")
}

func (s *fakePromptStore) Reload() {}
