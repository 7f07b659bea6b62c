package app

import "parkcareers/internal/assistant"

// AssistantService wraps the stateless rule matcher with the rule set it
// was configured with.
type AssistantService struct {
	rules assistant.RuleSet
}

func NewAssistantService(rules assistant.RuleSet) *AssistantService {
	return &AssistantService{rules: rules}
}

func (s *AssistantService) Reply(message string) string {
	return assistant.Match(s.rules, message)
}

func (s *AssistantService) Version() string {
	return s.rules.Version
}
