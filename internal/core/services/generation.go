package services

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/datagen-cli/internal/core/domain"
	"github.com/custodia-labs/datagen-cli/internal/core/ports/driven"
	"github.com/custodia-labs/datagen-cli/internal/logger"
	"github.com/custodia-labs/datagen-cli/internal/sources"
	"github.com/custodia-labs/datagen-cli/internal/splitter"
)

// Ensure Generation implements the collaborator interface.
var _ driven.Generator = (*Generation)(nil)

// Chunking parameters per dataset kind. QA works on mid-sized chunks,
// summaries on large ones, classification on short focused snippets.
const (
	qaChunkSize      = 4000
	qaChunkOverlap   = 200
	sumChunkSize     = 8000
	sumChunkOverlap  = 400
	clsChunkSize     = 500
	clsChunkOverlap  = 50
	generateMaxToken = 2048
)

// Default prompt templates, used when no PromptStore is configured.
const (
	defaultQAPrompt = `%s
Based on the following text, generate a series of high-quality question-and-answer pairs.
Each pair must be directly and fully answerable from the provided text.
The answer should be thorough and precise. Also include the specific context snippet used for the answer.
Respond with a JSON array of objects with keys "question", "answer" and "context_used".

Text:
---
%s
---`

	defaultSummarisePrompt = `%s

Respond with a JSON object with keys "source_text" and "summary".

Summarize this text:
---
%s
---`

	defaultClassifyPrompt = `%s
Respond with a JSON object with keys "text_snippet" and "classification".

Categories: %s

Text to Classify:
---
%s
---`
)

// Generation produces labeled synthetic datasets from source documents
// using an LLM backend. It implements the generation collaborator
// contract consumed by the pipeline driver.
type Generation struct {
	llm         driven.LLMService
	promptStore driven.PromptStore
	limiter     *rate.Limiter
}

// GenerationOption configures the generation service.
type GenerationOption func(*Generation)

// WithPromptStore sets the prompt store for customisable templates.
// If not set, the service uses embedded default prompts.
func WithPromptStore(store driven.PromptStore) GenerationOption {
	return func(g *Generation) {
		g.promptStore = store
	}
}

// WithRateLimit caps LLM calls at r per second with the given burst.
// Cloud providers throttle aggressively; the limiter keeps long runs
// under the quota instead of surfacing 429s mid-file.
func WithRateLimit(r rate.Limit, burst int) GenerationOption {
	return func(g *Generation) {
		g.limiter = rate.NewLimiter(r, burst)
	}
}

// NewGeneration creates a generation service backed by llm.
func NewGeneration(llm driven.LLMService, opts ...GenerationOption) *Generation {
	g := &Generation{
		llm:     llm,
		limiter: rate.NewLimiter(rate.Inf, 1),
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Generate reads the source file, splits it into chunks, generates one
// or more records per chunk via the LLM, and writes them as JSONL to
// req.Output. An existing output file is overwritten.
func (g *Generation) Generate(ctx context.Context, req driven.GenerateRequest) (*driven.GenerateStats, error) {
	if g.llm == nil {
		return nil, domain.ErrLLMUnavailable
	}
	if !req.Kind.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownKind, req.Kind)
	}

	source, err := sources.Load(req.Input)
	if err != nil {
		return nil, fmt.Errorf("read source file: %w", err)
	}
	if source == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrEmptySource, req.Input)
	}

	chunks := g.splitterFor(req.Kind).Split(source)
	logger.Info("split %s into %d chunk(s) for %s generation", req.Input, len(chunks), req.Kind)

	out, err := os.Create(req.Output)
	if err != nil {
		return nil, fmt.Errorf("create output file: %w", err)
	}
	defer out.Close()

	w := bufio.NewWriter(out)
	stats := &driven.GenerateStats{}

	for i, chunk := range chunks {
		if err := g.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}

		records, err := g.generateChunk(ctx, chunk, req.Domain, req.Kind)
		if err != nil {
			return nil, fmt.Errorf("chunk %d/%d: %w", i+1, len(chunks), err)
		}

		for _, record := range records {
			line, err := json.Marshal(record)
			if err != nil {
				return nil, fmt.Errorf("encode record: %w", err)
			}
			if _, err := w.Write(append(line, '\n')); err != nil {
				return nil, fmt.Errorf("write record: %w", err)
			}
			stats.Records++
		}
		stats.Chunks++

		logger.Debug("chunk %d/%d: %d record(s)", i+1, len(chunks), len(records))
	}

	if err := w.Flush(); err != nil {
		return nil, fmt.Errorf("flush output: %w", err)
	}

	logger.Info("generated %d %s record(s) into %s", stats.Records, req.Kind, req.Output)
	return stats, nil
}

// generateChunk runs one LLM call and decodes the kind-specific payload.
func (g *Generation) generateChunk(ctx context.Context, chunk, datasetDomain string, kind domain.DatasetKind) ([]any, error) {
	prompt := g.buildPrompt(chunk, datasetDomain, kind)

	raw, err := g.llm.GenerateJSON(ctx, prompt, driven.GenerateOptions{
		MaxTokens:   generateMaxToken,
		Temperature: 0.3,
	})
	if err != nil {
		return nil, fmt.Errorf("llm call: %w", err)
	}

	raw = stripCodeFence(raw)

	switch kind {
	case domain.KindQA:
		return decodeQAPairs(raw)
	case domain.KindSummaries:
		return decodeSummary(raw)
	case domain.KindClassifications:
		return decodeClassification(raw, datasetDomain)
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownKind, kind)
	}
}

func (g *Generation) buildPrompt(chunk, datasetDomain string, kind domain.DatasetKind) string {
	persona := domain.Persona(kind, datasetDomain)

	switch kind {
	case domain.KindSummaries:
		tmpl := g.loadPrompt(driven.PromptSummarise, defaultSummarisePrompt)
		return fmt.Sprintf(tmpl, persona, chunk)
	case domain.KindClassifications:
		tmpl := g.loadPrompt(driven.PromptClassify, defaultClassifyPrompt)
		labels := strings.Join(domain.ClassificationLabels(datasetDomain), ", ")
		return fmt.Sprintf(tmpl, persona, labels, chunk)
	default:
		tmpl := g.loadPrompt(driven.PromptQAGeneration, defaultQAPrompt)
		return fmt.Sprintf(tmpl, persona, chunk)
	}
}

func (g *Generation) splitterFor(kind domain.DatasetKind) *splitter.Splitter {
	switch kind {
	case domain.KindSummaries:
		return splitter.New(splitter.WithChunkSize(sumChunkSize), splitter.WithOverlap(sumChunkOverlap))
	case domain.KindClassifications:
		return splitter.New(splitter.WithChunkSize(clsChunkSize), splitter.WithOverlap(clsChunkOverlap))
	default:
		return splitter.New(splitter.WithChunkSize(qaChunkSize), splitter.WithOverlap(qaChunkOverlap))
	}
}

// loadPrompt loads a template from the store, falling back to the default.
func (g *Generation) loadPrompt(name, fallback string) string {
	if g.promptStore == nil {
		return fallback
	}
	prompt, err := g.promptStore.Load(name)
	if err != nil {
		return fallback
	}
	return prompt
}

// qaPayload matches the model's QA response shape.
type qaPayload struct {
	Question    string `json:"question"`
	Answer      string `json:"answer"`
	ContextUsed string `json:"context_used"`
}

func decodeQAPairs(raw string) ([]any, error) {
	var payload []qaPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("decode QA response: %w", err)
	}

	records := make([]any, 0, len(payload))
	for _, p := range payload {
		if p.Question == "" || p.Answer == "" {
			logger.Warn("skipping QA pair with empty question or answer")
			continue
		}
		records = append(records, domain.QAPair{
			ID:          uuid.New().String(),
			Question:    p.Question,
			Answer:      p.Answer,
			ContextUsed: p.ContextUsed,
		})
	}
	return records, nil
}

// summaryPayload matches the model's summary response shape.
type summaryPayload struct {
	SourceText string `json:"source_text"`
	Summary    string `json:"summary"`
}

func decodeSummary(raw string) ([]any, error) {
	var payload summaryPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("decode summary response: %w", err)
	}
	if payload.Summary == "" {
		logger.Warn("skipping empty summary")
		return nil, nil
	}

	return []any{domain.SummaryRecord{
		ID:         uuid.New().String(),
		SourceText: payload.SourceText,
		Summary:    payload.Summary,
	}}, nil
}

// classificationPayload matches the model's classification response shape.
type classificationPayload struct {
	TextSnippet    string `json:"text_snippet"`
	Classification string `json:"classification"`
}

func decodeClassification(raw, datasetDomain string) ([]any, error) {
	var payload classificationPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("decode classification response: %w", err)
	}

	// The model must pick from the domain's label set.
	valid := false
	for _, label := range domain.ClassificationLabels(datasetDomain) {
		if payload.Classification == label {
			valid = true
			break
		}
	}
	if !valid {
		logger.Warn("skipping record with unknown label %q", payload.Classification)
		return nil, nil
	}

	return []any{domain.ClassificationRecord{
		ID:             uuid.New().String(),
		TextSnippet:    payload.TextSnippet,
		Classification: payload.Classification,
	}}, nil
}

// stripCodeFence removes a Markdown code fence around a JSON response.
// Some models wrap structured output in ```json blocks even when asked
// not to.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
