package service

import (
	"schenkly.app/concierge/common/llm"
	"schenkly.app/concierge/core/config"
)

type Services struct {
	llm       llm.Client
	openAICfg config.OpenAIConfig
}

// NewServices wires the service layer. The llm client may be nil when no
// OpenAI credential is configured.
func NewServices(client llm.Client, openAICfg config.OpenAIConfig) *Services {
	return &Services{
		llm:       client,
		openAICfg: openAICfg,
	}
}

func (s *Services) Suggestions() SuggestionService {
	return NewSuggestionService(s.llm, s.openAICfg.Timeout, s.openAICfg.MaxTokens)
}
