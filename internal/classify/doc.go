// Package classify defines the boundary between the tagging pipeline and
// the external text-classification service. The Classifier interface has
// two operations: per-item tag extraction and the single aggregate
// canonicalization call that maps raw tag spellings onto a canonical
// vocabulary. Concrete implementations (the Gemini-backed client lives in
// internal/platform/gemini) stay behind this interface so the pipeline can
// be exercised with test doubles.
package classify
