package mocks

import (
	"context"
	"sync"

	"github.com/missivelabs/missive/internal/classify"
)

// MockClassifier implements classify.Classifier for testing.
type MockClassifier struct {
	// ExtractTagsFn allows test cases to mock the ExtractTags behavior.
	ExtractTagsFn func(ctx context.Context, text string) ([]string, error)

	// CanonicalizeTagsFn allows test cases to mock the CanonicalizeTags behavior.
	CanonicalizeTagsFn func(ctx context.Context, rawTags []string) (map[string]string, error)

	// Default response values
	Tags    []string
	Mapping map[string]string
	Err     error

	// Call tracking for verification
	ExtractTagsCalls struct {
		// mu protects the call tracking state for concurrent test cases
		mu sync.Mutex

		// Count tracks how many times ExtractTags was called
		Count int

		// Texts contains all inputs passed to ExtractTags calls
		Texts []string
	}

	CanonicalizeTagsCalls struct {
		mu sync.Mutex

		// Count tracks how many times CanonicalizeTags was called
		Count int

		// RawTags contains all tag slices passed to CanonicalizeTags calls
		RawTags [][]string
	}
}

// Ensure MockClassifier implements the interface.
var _ classify.Classifier = (*MockClassifier)(nil)

// ExtractTags implements the classify.Classifier interface.
func (m *MockClassifier) ExtractTags(ctx context.Context, text string) ([]string, error) {
	m.ExtractTagsCalls.mu.Lock()
	m.ExtractTagsCalls.Count++
	m.ExtractTagsCalls.Texts = append(m.ExtractTagsCalls.Texts, text)
	m.ExtractTagsCalls.mu.Unlock()

	if m.ExtractTagsFn != nil {
		return m.ExtractTagsFn(ctx, text)
	}
	return m.Tags, m.Err
}

// CanonicalizeTags implements the classify.Classifier interface.
func (m *MockClassifier) CanonicalizeTags(
	ctx context.Context,
	rawTags []string,
) (map[string]string, error) {
	m.CanonicalizeTagsCalls.mu.Lock()
	m.CanonicalizeTagsCalls.Count++
	m.CanonicalizeTagsCalls.RawTags = append(m.CanonicalizeTagsCalls.RawTags, rawTags)
	m.CanonicalizeTagsCalls.mu.Unlock()

	if m.CanonicalizeTagsFn != nil {
		return m.CanonicalizeTagsFn(ctx, rawTags)
	}
	return m.Mapping, m.Err
}

// ExtractCount returns how many times ExtractTags was called.
func (m *MockClassifier) ExtractCount() int {
	m.ExtractTagsCalls.mu.Lock()
	defer m.ExtractTagsCalls.mu.Unlock()
	return m.ExtractTagsCalls.Count
}

// CanonicalizeCount returns how many times CanonicalizeTags was called.
func (m *MockClassifier) CanonicalizeCount() int {
	m.CanonicalizeTagsCalls.mu.Lock()
	defer m.CanonicalizeTagsCalls.mu.Unlock()
	return m.CanonicalizeTagsCalls.Count
}

// NewMockClassifierWithTags creates a MockClassifier that returns the
// specified tags from every ExtractTags call and an identity mapping
// from CanonicalizeTags.
func NewMockClassifierWithTags(tags []string) *MockClassifier {
	return &MockClassifier{
		Tags: tags,
		CanonicalizeTagsFn: func(_ context.Context, rawTags []string) (map[string]string, error) {
			mapping := make(map[string]string, len(rawTags))
			for _, tag := range rawTags {
				mapping[tag] = tag
			}
			return mapping, nil
		},
	}
}

// NewMockClassifierWithError creates a MockClassifier whose calls all
// fail with the specified error.
func NewMockClassifierWithError(err error) *MockClassifier {
	return &MockClassifier{Err: err}
}

// Reset resets the call tracking state.
func (m *MockClassifier) Reset() {
	m.ExtractTagsCalls.mu.Lock()
	m.ExtractTagsCalls.Count = 0
	m.ExtractTagsCalls.Texts = nil
	m.ExtractTagsCalls.mu.Unlock()

	m.CanonicalizeTagsCalls.mu.Lock()
	m.CanonicalizeTagsCalls.Count = 0
	m.CanonicalizeTagsCalls.RawTags = nil
	m.CanonicalizeTagsCalls.mu.Unlock()
}
