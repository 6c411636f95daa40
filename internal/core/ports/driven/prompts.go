package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files, embed them in the binary,
// or fetch them from a remote configuration service.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// If the prompt is not found, implementations should return a
	// sensible default or an error, depending on whether the prompt
	// is required.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	// This is useful when prompts may have been edited on disk.
	Reload()
}

// Well-known prompt names used by the generation service.
// These constants define the contract between prompt consumers and providers.
const (
	// PromptQAGeneration asks for question/answer pairs from a chunk.
	// The template expects %s (persona) and %s (source text) placeholders.
	PromptQAGeneration = "qa_generation"

	// PromptSummarise asks for an abstractive summary of a chunk.
	// The template expects %s (persona) and %s (source text) placeholders.
	PromptSummarise = "summarise"

	// PromptClassify asks for a single category for a snippet.
	// The template expects %s (persona), %s (comma-separated labels)
	// and %s (source text) placeholders.
	PromptClassify = "classify"
)
