// Package store provides SQLite-backed durable storage for analysis runs.
//
// Each run records the full input and output of one sentence analysis:
//   - runs: sentence, flags, options, outcome and result hash
//   - tokens: the submitted tokens in ordinal order
//   - events: the engine's result stream exactly as received
//   - words / analyses: the compiled output, searchable by root and lemma
//
// The recorded event stream is what makes a run replayable without the
// engine that produced it.
//
// # Ordering
//
// Runs are ordered by seq, a logical clock assigned by the journal, never by
// wall time. Every query that returns several rows carries an explicit
// ORDER BY so results are identical across reads.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
