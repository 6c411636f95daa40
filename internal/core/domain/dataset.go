package domain

// DatasetKind identifies the kind of synthetic dataset being generated.
type DatasetKind string

// Available dataset kinds.
const (
	// KindQA produces question/answer pairs grounded in the source text.
	KindQA DatasetKind = "qa"

	// KindSummaries produces abstractive summaries of source chunks.
	KindSummaries DatasetKind = "summaries"

	// KindClassifications labels source snippets with domain categories.
	KindClassifications DatasetKind = "classifications"
)

// IsValid returns true if the dataset kind is recognised.
func (k DatasetKind) IsValid() bool {
	switch k {
	case KindQA, KindSummaries, KindClassifications:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (k DatasetKind) String() string {
	return string(k)
}

// Suffix returns the artifact filename suffix for this kind,
// e.g. "_qa.jsonl" for KindQA.
func (k DatasetKind) Suffix() string {
	return "_" + string(k) + ".jsonl"
}

// QAPair is a single generated question/answer record.
// Records are written one JSON object per line (JSONL).
type QAPair struct {
	// ID uniquely identifies the record within a dataset.
	ID string `json:"id"`

	// Question is derived from the source chunk.
	Question string `json:"question"`

	// Answer must be fully answerable from the source chunk.
	Answer string `json:"answer"`

	// ContextUsed is the exact text snippet supporting the answer.
	ContextUsed string `json:"context_used"`
}

// SummaryRecord pairs a source chunk with its abstractive summary.
type SummaryRecord struct {
	ID string `json:"id"`

	// SourceText is the original chunk that was summarised.
	SourceText string `json:"source_text"`

	// Summary is the generated abstractive summary.
	Summary string `json:"summary"`
}

// ClassificationRecord labels a source snippet with one category
// from the domain's label set.
type ClassificationRecord struct {
	ID string `json:"id"`

	// TextSnippet is the classified source text.
	TextSnippet string `json:"text_snippet"`

	// Classification is one of the labels for the record's domain.
	Classification string `json:"classification"`
}
