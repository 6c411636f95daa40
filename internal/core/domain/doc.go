// Package domain defines the core business entities for datagen.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - DatasetKind: The kind of synthetic dataset (QA, summaries, classifications)
//   - QAPair / SummaryRecord / ClassificationRecord: Generated dataset records
//   - RunPaths: Derived artifact paths for a pipeline run
//   - Report: Quality findings produced by dataset evaluation
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
