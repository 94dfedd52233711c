package gemini

// extractionResponse is the expected JSON shape of a per-item tag
// extraction call.
type extractionResponse struct {
	Tags []string `json:"tags"`
}

// canonicalizationResponse is the expected JSON shape of the aggregate
// canonicalization call: a mapping from each raw tag to its canonical
// display form.
type canonicalizationResponse struct {
	Mapping map[string]string `json:"mapping"`
}

// extractionPromptData feeds the extraction prompt template.
type extractionPromptData struct {
	Text    string
	MaxTags int
}

// canonicalizationPromptData feeds the canonicalization prompt template.
type canonicalizationPromptData struct {
	TagsJSON string
}
