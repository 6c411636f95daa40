package domain

import "sort"

// DefaultDomain is the fallback used when a domain has no configured
// labels or personas. Any string is accepted as a domain; unknown
// domains simply fall back to the defaults.
const DefaultDomain = "default"

// classificationLabels defines the category set for the classification
// task, organised by domain.
var classificationLabels = map[string][]string{
	"legal": {
		"Governing Law",
		"Confidentiality",
		"Limitation of Liability",
		"Termination",
		"Indemnification",
		"Force Majeure",
		"Miscellaneous",
	},
	"finance": {
		"Revenue Growth",
		"Profit Margin Analysis",
		"Risk Assessment",
		"Forward-Looking Statement",
		"Shareholder Equity",
		"Debt and Liabilities",
	},
	"healthcare": {
		"Patient History",
		"Diagnosis",
		"Prescription",
		"Symptom Description",
		"Treatment Plan",
		"Test Results",
	},
	DefaultDomain: {
		"General Information",
		"Key Highlight",
		"Action Item",
	},
}

// ClassificationLabels returns the label set for a domain, falling back
// to the default set for unknown domains. The returned slice is a copy.
func ClassificationLabels(domain string) []string {
	labels, ok := classificationLabels[domain]
	if !ok {
		labels = classificationLabels[DefaultDomain]
	}
	out := make([]string, len(labels))
	copy(out, labels)
	return out
}

// KnownLabelDomains returns the domains with a dedicated label set,
// excluding the default fallback. The order is stable.
func KnownLabelDomains() []string {
	domains := make([]string, 0, len(classificationLabels)-1)
	for d := range classificationLabels {
		if d != DefaultDomain {
			domains = append(domains, d)
		}
	}
	sort.Strings(domains)
	return domains
}
