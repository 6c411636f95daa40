// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - Generator: Produces a labeled dataset artifact from a source file
//   - Evaluator: Runs quality checks against a generated artifact
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
//   - LLMService: Language model operations backing the real Generator.
//     The pipeline itself never touches it; tests substitute fake
//     generators without any LLM at all.
//   - PromptStore: User-customisable prompt templates. Without it,
//     generation falls back to embedded defaults.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
