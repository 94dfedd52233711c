// Package store defines the persistence interfaces consumed by the
// tagging pipeline and its read-side query surface, together with the
// sentinel errors shared by all implementations. Concrete PostgreSQL
// implementations live in internal/platform/postgres; tests use the
// in-memory fakes from internal/mocks.
package store
