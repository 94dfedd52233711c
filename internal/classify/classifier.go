package classify

import "context"

// Classifier defines the consumed interface of the external
// text-classification service.
type Classifier interface {
	// ExtractTags asks the service for a small set of free-text topic tags
	// describing one item's text. Any string the service returns is
	// accepted as a raw tag; no vocabulary is enforced at this stage.
	//
	// Returns ErrRateLimited when the service throttles the call, and
	// ErrInvalidResponse when the reply cannot be parsed.
	ExtractTags(ctx context.Context, text string) ([]string, error)

	// CanonicalizeTags takes the complete set of raw tags collected across
	// a run and asks the service for a mapping from each raw spelling to a
	// single canonical display form, merging case variants, plural and
	// singular pairs, abbreviations, and near-synonyms.
	//
	// The returned map is not guaranteed to cover every input; callers
	// must treat missing entries as self-canonical.
	CanonicalizeTags(ctx context.Context, rawTags []string) (map[string]string, error)
}
