package domain

import "errors"

// Common validation errors for Item
var (
	ErrEmptyItemID   = errors.New("item ID cannot be empty")
	ErrEmptyItemText = errors.New("item text cannot be empty")
)

// Item is a single archived newsletter issue as seen by the tagging
// pipeline: a stable identifier plus the text to classify. Items are
// produced and owned by the archive sync layer; this subsystem only
// reads them.
type Item struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

// Validate checks that the item carries enough content to be classified.
func (i *Item) Validate() error {
	if i.ID == "" {
		return ErrEmptyItemID
	}
	if i.Text == "" {
		return ErrEmptyItemText
	}
	return nil
}
