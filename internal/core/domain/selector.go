package domain

import "strings"

// DefaultModel is active until a chat asks for another one.
var DefaultModel = Model{Keyword: "openai", Identifier: "openai/gpt-4o"}

// AvailableModels is ordered; the first keyword contained in an alias wins.
var AvailableModels = []Model{
	{Keyword: "weaver", Identifier: "mancer/weaver"},
	{Keyword: "unslopnemo", Identifier: "thedrummer/unslopnemo-12b"},
	{Keyword: "gemini", Identifier: "google/gemini-2.0-flash-001"},
	{Keyword: "deepseek", Identifier: "deepseek/deepseek-r1-distill-llama-8b"},
	{Keyword: "claude", Identifier: "anthropic/claude-3.5-sonnet"},
	{Keyword: "llama", Identifier: "sao10k/13.1-70b-hanami-x1"},
	DefaultModel,
}

type ModelSelector struct {
	models  []Model
	current Model
}

func NewModelSelector(models []Model, current Model) *ModelSelector {
	return &ModelSelector{models: models, current: current}
}

func NewDefaultModelSelector() *ModelSelector {
	return NewModelSelector(AvailableModels, DefaultModel)
}

// Resolve maps a user supplied alias to a model. Exact keyword matches are
// preferred over keywords contained in the alias.
func (s *ModelSelector) Resolve(alias string) (Model, error) {
	alias = strings.ToLower(strings.TrimSpace(alias))
	if alias == "" {
		return Model{}, ErrModelNotFound
	}

	for _, m := range s.models {
		if m.Keyword == alias {
			return m, nil
		}
	}

	for _, m := range s.models {
		if strings.Contains(alias, m.Keyword) {
			return m, nil
		}
	}

	return Model{}, ErrModelNotFound
}

func (s *ModelSelector) Current() Model {
	return s.current
}

// Select switches the current model. An unknown alias leaves it untouched.
func (s *ModelSelector) Select(alias string) (Model, error) {
	m, err := s.Resolve(alias)
	if err != nil {
		return s.current, err
	}

	s.current = m
	return m, nil
}

func (s *ModelSelector) Models() []Model {
	return s.models
}
