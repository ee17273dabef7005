// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Build-time Interfaces
//
//   - PageLoader: Reads the source PDF into pages
//   - PageCleaner: Strips boilerplate from page text
//   - SummarySource: Supplies the validated article summary table
//   - PostProcessor / PostProcessorPipeline: Turns articles into chunks
//   - EmbeddingService: Generates vector embeddings
//   - IndexStore: Persists the vector index to a local directory
//
// # Query-time Interfaces
//
//   - IndexStore: Loads the persisted index wholesale
//   - VectorIndex: Exact nearest-neighbour search over loaded entries
//   - EmbeddingService: Embeds the query with the build-time model
//   - LLMService: Generates the grounded answer
//   - PromptStore: Supplies the answer prompt template
//
// # Shared
//
//   - ConfigStore: Application configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, normaliser, or post-processor package
package driven
