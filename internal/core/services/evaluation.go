package services

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/custodia-labs/datagen-cli/internal/core/domain"
	"github.com/custodia-labs/datagen-cli/internal/core/ports/driven"
	"github.com/custodia-labs/datagen-cli/internal/logger"
)

// Ensure Evaluation implements the collaborator interface.
var _ driven.Evaluator = (*Evaluation)(nil)

// Evaluation runs quality checks against a generated JSONL dataset.
// It implements the evaluation collaborator contract consumed by the
// pipeline driver: a non-nil error means the dataset did not pass.
//
// Checks performed per line:
//  1. The line is a valid JSON object.
//  2. The object's key set matches the set inferred from the first
//     valid record.
//  3. No value is empty or null (zero is allowed as a valid value).
type Evaluation struct{}

// NewEvaluation creates an evaluation service.
func NewEvaluation() *Evaluation {
	return &Evaluation{}
}

// Evaluate reads the dataset at input and returns its quality report.
// The report is returned even when the dataset fails, so callers can
// print the findings; err wraps domain.ErrEvaluationFailed in that case.
func (e *Evaluation) Evaluate(_ context.Context, input string) (*domain.Report, error) {
	f, err := os.Open(input)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	report := &domain.Report{Path: input}

	var expectedKeys map[string]struct{}

	scanner := bufio.NewScanner(f)
	// Generated records carry full source chunks; lines can be long.
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	lineNum := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lineNum++
		report.TotalRecords++

		var record map[string]any
		if err := json.Unmarshal([]byte(line), &record); err != nil {
			report.InvalidJSON++
			logger.Warn("line %d: invalid JSON", lineNum)
			continue
		}

		if expectedKeys == nil {
			expectedKeys = make(map[string]struct{}, len(record))
			for k := range record {
				expectedKeys[k] = struct{}{}
				report.Keys = append(report.Keys, k)
			}
			sort.Strings(report.Keys)
			logger.Debug("inferred keys from first record: %v", report.Keys)
		}

		if !sameKeys(record, expectedKeys) {
			report.MismatchedKeys++
			logger.Warn("line %d: mismatched keys, expected %v", lineNum, report.Keys)
			continue
		}

		for key, value := range record {
			if isEmptyValue(value) {
				report.EmptyValues++
				logger.Warn("line %d: empty value for key %q", lineNum, key)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return report, fmt.Errorf("read dataset: %w", err)
	}

	logger.Info("evaluated %s: %d record(s), %d issue(s)", input, report.TotalRecords, report.IssueCount())

	if !report.Passed() {
		return report, fmt.Errorf("%w: %s (%d records, %d invalid JSON, %d mismatched keys, %d empty values)",
			domain.ErrEvaluationFailed, input,
			report.TotalRecords, report.InvalidJSON, report.MismatchedKeys, report.EmptyValues)
	}

	return report, nil
}

func sameKeys(record map[string]any, expected map[string]struct{}) bool {
	if len(record) != len(expected) {
		return false
	}
	for k := range record {
		if _, ok := expected[k]; !ok {
			return false
		}
	}
	return true
}

// isEmptyValue reports whether a decoded JSON value counts as empty.
// Numeric zero is a valid value; empty strings, nulls, and empty
// containers are not.
func isEmptyValue(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case []any:
		return len(val) == 0
	case map[string]any:
		return len(val) == 0
	default:
		return false
	}
}
