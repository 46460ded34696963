// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Interfaces
//
//   - ChunkSource: Supplies the current chunk snapshot (corpus loader)
//   - PostProcessor: Turns a document into chunks (segmentation, normalisation)
//   - PostProcessorPipeline: Chains PostProcessors
//   - ConfigStore: Application configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or postprocessor package
package driven
