package domain

// Report holds the findings of a dataset quality evaluation.
//
// The evaluator checks three things per line: the line parses as JSON,
// the record's key set matches the key set inferred from the first valid
// record, and no value is empty (zero is allowed as a valid value).
type Report struct {
	// Path is the evaluated dataset file.
	Path string

	// TotalRecords is the number of lines processed.
	TotalRecords int

	// InvalidJSON counts lines that failed to parse.
	InvalidJSON int

	// MismatchedKeys counts records whose key set differs from the
	// set inferred from the first valid record.
	MismatchedKeys int

	// EmptyValues counts empty or null field values across all records.
	EmptyValues int

	// Keys is the key set inferred from the first valid record, sorted.
	Keys []string
}

// Passed returns true if the dataset contains at least one record and
// no quality issues were found.
func (r *Report) Passed() bool {
	return r.TotalRecords > 0 &&
		r.InvalidJSON == 0 &&
		r.MismatchedKeys == 0 &&
		r.EmptyValues == 0
}

// IssueCount returns the total number of findings.
func (r *Report) IssueCount() int {
	return r.InvalidJSON + r.MismatchedKeys + r.EmptyValues
}
