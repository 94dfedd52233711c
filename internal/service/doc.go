// Package service contains the application's business logic, composing
// store primitives into the transactional operations the pipeline, CLI,
// and API consume.
package service
