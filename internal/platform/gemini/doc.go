// Package gemini implements the classify.Classifier interface using
// Google's Gemini API. It owns prompt construction, response parsing and
// validation, and the mapping of API failures onto the classify error
// taxonomy (notably the distinguished rate-limit condition the pipeline's
// retry wrapper reacts to).
package gemini
