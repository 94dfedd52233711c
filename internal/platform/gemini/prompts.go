package gemini

import "text/template"

// extractionPromptTemplate asks for a small set of free-text topic tags
// for one newsletter issue. The response must be JSON so it can be parsed
// into extractionResponse.
const extractionPromptTemplate = `You are tagging issues of a personal newsletter archive.

Read the newsletter text below and produce at most {{.MaxTags}} short topic tags
describing what it is about. Tags are free text: prefer specific,
professional phrasing ("machine learning", not "ml stuff"). Do not invent
tags for topics that are only mentioned in passing.

Respond with JSON only, in exactly this shape:
{"tags": ["tag one", "tag two"]}

Newsletter text:
---
{{.Text}}
---`

// canonicalizationPromptTemplate asks for a raw-to-canonical mapping over
// the entire raw tag universe of a run. It must see every raw tag at
// once: duplicates cannot be detected across separate calls.
const canonicalizationPromptTemplate = `You are consolidating the tag vocabulary of a newsletter archive.

Below is the complete list of raw tags collected from many newsletter
issues. Produce a mapping from every raw tag to a single canonical
display form. Merge case variants, abbreviation/full-form pairs,
plural/singular pairs, and near-synonyms onto one canonical tag, always
preferring the clearest professional phrasing. A tag that needs no change
maps to itself. Every raw tag in the input must appear as a key.

Respond with JSON only, in exactly this shape:
{"mapping": {"raw tag": "canonical tag"}}

Raw tags:
{{.TagsJSON}}`

var (
	extractionPrompt       = template.Must(template.New("extract").Parse(extractionPromptTemplate))
	canonicalizationPrompt = template.Must(template.New("canonicalize").Parse(canonicalizationPromptTemplate))
)
