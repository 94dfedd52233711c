// Package mocks provides hand-written test doubles shared across test
// packages. Each mock exposes per-method function fields for case-level
// behavior plus default response values, with call tracking for
// verification.
package mocks
