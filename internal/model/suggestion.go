package model

import "strings"

// Suggestion is a single recommended gift idea. Suggestions live only for
// the duration of one request; they are never persisted.
type Suggestion struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	SearchTerm  string `json:"search_term"`
}

// IsComplete reports whether all three fields carry non-blank content.
// Incomplete suggestions are dropped before they reach the client.
func (s Suggestion) IsComplete() bool {
	return strings.TrimSpace(s.Name) != "" &&
		strings.TrimSpace(s.Description) != "" &&
		strings.TrimSpace(s.SearchTerm) != ""
}
