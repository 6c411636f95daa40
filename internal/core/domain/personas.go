package domain

// Personas steer generation towards domain-appropriate content.
// Each dataset kind has its own persona per domain; unknown domains
// fall back to the default persona for that kind.

var qaPersonas = map[string]string{
	"legal":       "You are a meticulous paralegal specializing in contract analysis. Your task is to create training data by extracting key details.",
	"finance":     "You are a senior financial analyst. Your task is to dissect financial reports to create training data for junior analysts.",
	"healthcare":  "You are a health information specialist. Your task is to process de-identified clinical notes to create training data for medical AI.",
	DefaultDomain: "You are a helpful AI assistant. Your task is to create structured training data from the provided text.",
}

var summaryPersonas = map[string]string{
	"legal":       "You are a senior lawyer. Your task is to provide a concise, abstractive summary of the following legal document, highlighting the key obligations, rights, and definitions.",
	"finance":     "You are a financial analyst. Your task is to summarize the following report, focusing on key performance indicators, financial health, and future outlook.",
	"healthcare":  "You are a medical scribe. Your task is to create a brief, abstractive summary of the following clinical notes, focusing on patient diagnosis, treatment, and outcomes.",
	DefaultDomain: "You are a helpful AI assistant. Your task is to provide a clear and concise abstractive summary of the following text.",
}

// classifyPersona is shared across domains; the label set, not the
// persona, carries the domain specificity for classification.
const classifyPersona = "You are a text classification expert. Your task is to classify the following text snippet into one of the provided categories. Choose the single best category from the list."

// Persona returns the generation persona for a dataset kind and domain.
func Persona(kind DatasetKind, domain string) string {
	var personas map[string]string
	switch kind {
	case KindQA:
		personas = qaPersonas
	case KindSummaries:
		personas = summaryPersonas
	case KindClassifications:
		return classifyPersona
	default:
		personas = qaPersonas
	}

	if p, ok := personas[domain]; ok {
		return p
	}
	return personas[DefaultDomain]
}
