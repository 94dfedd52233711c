// Package pipeline implements the batch tag-classification pipeline: a
// generic bounded-concurrency executor, a rate-limit retry wrapper, the
// per-item extraction phase, the global canonicalization phase, and the
// orchestration that maps raw tags through the canonical table and
// persists the result.
//
// The pipeline is built to be re-run: per-item failures are recorded and
// never abort a batch, canonicalization degrades to an identity mapping
// rather than failing, and persistence is idempotent, so the supported
// recovery path is simply running again over the items that still have
// no labels.
package pipeline
