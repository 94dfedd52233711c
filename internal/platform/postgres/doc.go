// Package postgres provides PostgreSQL implementations of the store
// interfaces. The label store relies on the unique constraint over
// normalized label names to make concurrent get-or-create race-safe, and
// on ON CONFLICT DO NOTHING semantics to keep association inserts
// idempotent across retried runs.
package postgres
