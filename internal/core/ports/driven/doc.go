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
//   - PartyStore: Party reference data
//   - SourceStore: Source lookups
//   - ChunkStore: Candidate chunk retrieval for similarity search
//   - DocumentWriter: Atomic persistence of source + content + chunks
//   - ProcessingLogStore: Ingestion idempotency ledger
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - EmbeddingService: Generates vector embeddings. Without it,
//     ingestion and semantic retrieval are disabled.
//   - LLMService: Language model operations. Without it, the chat
//     assistant is disabled; plain retrieval still works.
//   - VideoMetadataProvider / TranscriptProvider: Video ingestion inputs.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven
