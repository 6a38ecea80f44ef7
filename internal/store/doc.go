// Package store provides SQLite-backed run history for meso.
//
// Every recorded run is a single row in an append-only table:
//   - id: UUIDv7 run identifier (duplicates are ignored)
//   - seq: logical sequence assigned on insert, the only ordering key
//   - input/output: canonical JSON number lists
//   - input_digest/output_digest: content fingerprints from internal/digest
//
// All list queries use ORDER BY seq ASC, id ASC COLLATE BINARY so results
// are identical across invocations.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
package store
