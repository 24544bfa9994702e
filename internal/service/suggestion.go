package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"schenkly.app/concierge/common/llm"
	"schenkly.app/concierge/common/logger"
	"schenkly.app/concierge/internal/model"
)

var (
	ErrOccasionRequired  = errors.New("occasion is required")
	ErrBudgetRequired    = errors.New("budget is required")
	ErrInterestsRequired = errors.New("interests is required")
)

type SuggestionService interface {
	Generate(ctx context.Context, occasion, budget, interests string) ([]model.Suggestion, error)
}

type suggestionService struct {
	llm       llm.Client
	timeout   time.Duration
	maxTokens int
}

// NewSuggestionService builds the gift suggestion service. A nil client is
// valid and puts the service in fallback-only mode.
func NewSuggestionService(client llm.Client, timeout time.Duration, maxTokens int) SuggestionService {
	return &suggestionService{
		llm:       client,
		timeout:   timeout,
		maxTokens: maxTokens,
	}
}

type suggestionsResponse struct {
	Suggestions []suggestionItem `json:"suggestions" jsonschema_description:"Genau drei Geschenkvorschläge"`
}

type suggestionItem struct {
	Name        string `json:"name" jsonschema_description:"Klarer Name des Geschenks (1-5 Wörter)"`
	Description string `json:"description" jsonschema_description:"Kurze Beschreibung des Geschenks"`
	SearchTerm  string `json:"search_term" jsonschema_description:"Suchbegriff für eine Produktsuche"`
}

var suggestionsSchema = llm.GenerateSchema[suggestionsResponse]()

func (s *suggestionService) Generate(ctx context.Context, occasion, budget, interests string) ([]model.Suggestion, error) {
	occasion = sanitizeField(occasion)
	budget = sanitizeField(budget)
	interests = sanitizeField(interests)

	if occasion == "" {
		return nil, ErrOccasionRequired
	}
	if budget == "" {
		return nil, ErrBudgetRequired
	}
	if interests == "" {
		return nil, ErrInterestsRequired
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{
		Occasion:  logger.Ptr(occasion),
		Component: "concierge.service.suggestion",
	})

	if s.llm == nil {
		slog.InfoContext(ctx, "no llm client configured, serving fallback suggestions")
		return FallbackSuggestions(), nil
	}

	span := logger.StartSpan(ctx, "concierge.suggestion.generate")
	defer span.End()
	ctx = span.Context()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	userPrompt := buildUserPrompt(occasion, budget, interests)
	slog.DebugContext(ctx, "requesting suggestions", "prompt", logger.Truncate(userPrompt, 200))

	var response suggestionsResponse
	start := time.Now()
	llmResp, err := s.llm.Chat(ctx, llm.Request{
		SystemPrompt: suggestionSystemPrompt,
		UserPrompt:   userPrompt,
		SchemaName:   "gift_suggestions",
		Schema:       suggestionsSchema,
		MaxTokens:    s.maxTokens,
		Temperature:  llm.Temp(0.7),
	}, &response)
	if err != nil {
		span.RecordError(err)
		slog.WarnContext(ctx, "suggestion generation failed, serving fallback",
			"error", err)
		return FallbackSuggestions(), nil
	}

	suggestions := validSuggestions(response.Suggestions)
	if len(suggestions) == 0 {
		slog.WarnContext(ctx, "llm returned no usable suggestions, serving fallback",
			"raw_count", len(response.Suggestions))
		return FallbackSuggestions(), nil
	}

	slog.InfoContext(ctx, "suggestions generated",
		"count", len(suggestions),
		"model", s.llm.Model(),
		"latency_ms", time.Since(start).Milliseconds(),
		"prompt_tokens", llmResp.PromptTokens,
		"completion_tokens", llmResp.CompletionTokens)

	return suggestions, nil
}

// validSuggestions trims each generated item and drops any with a missing
// field, preserving the model's ordering.
func validSuggestions(items []suggestionItem) []model.Suggestion {
	suggestions := make([]model.Suggestion, 0, len(items))
	for _, item := range items {
		s := model.Suggestion{
			Name:        strings.TrimSpace(item.Name),
			Description: strings.TrimSpace(item.Description),
			SearchTerm:  strings.TrimSpace(item.SearchTerm),
		}
		if !s.IsComplete() {
			continue
		}
		suggestions = append(suggestions, s)
	}
	return suggestions
}

func buildUserPrompt(occasion, budget, interests string) string {
	var sb strings.Builder
	sb.WriteString("Anlass: ")
	sb.WriteString(occasion)
	sb.WriteString("\nBudget: ")
	sb.WriteString(budget)
	sb.WriteString("\nInteressen: ")
	sb.WriteString(interests)
	sb.WriteString("\nErstelle drei passende Geschenkvorschläge.")
	return sb.String()
}

const suggestionSystemPrompt = `Du bist ein hilfsbereiter Geschenkberater. Basierend auf Anlass, Budget und Interessen des Beschenkten lieferst du eine Liste mit drei Geschenkvorschlägen. Jeder Vorschlag soll einen klaren Namen (1–5 Wörter), eine kurze Beschreibung und einen Suchbegriff enthalten, den man für eine Produktsuche verwenden kann.`
