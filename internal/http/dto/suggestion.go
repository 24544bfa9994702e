package dto

import "schenkly.app/concierge/internal/model"

type GenerateRequest struct {
	Occasion  string `json:"occasion" binding:"required"`
	Budget    string `json:"budget" binding:"required"`
	Interests string `json:"interests" binding:"required"`
}

type SuggestionResponse struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	SearchTerm  string `json:"search_term"`
}

type GenerateResponse struct {
	Suggestions []SuggestionResponse `json:"suggestions"`
}

// ToGenerateResponse always allocates the slice so the JSON field encodes as
// [] instead of null when there are no suggestions.
func ToGenerateResponse(suggestions []model.Suggestion) *GenerateResponse {
	out := make([]SuggestionResponse, len(suggestions))
	for i, s := range suggestions {
		out[i] = SuggestionResponse{
			Name:        s.Name,
			Description: s.Description,
			SearchTerm:  s.SearchTerm,
		}
	}
	return &GenerateResponse{Suggestions: out}
}
