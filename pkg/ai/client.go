package ai

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrNotConfigured = errors.New("llm provider not configured")
	ErrEmptyReply    = errors.New("llm returned no content")
)

type Message struct {
	Role    string `json:"role" validate:"required,oneof=user assistant"`
	Content string `json:"content" validate:"required,max=4000"`
}

// Client forwards a system prompt plus conversation to a chat model.
type Client interface {
	Chat(ctx context.Context, system string, msgs []Message) (string, error)
	Name() string
}

type Config struct {
	Provider     string // openai|gemini|mock|none
	Endpoint     string
	APIKey       string
	Model        string
	GeminiAPIKey string
	GeminiModel  string
}

// New picks a provider. A provider whose key is missing yields the
// unconfigured client, so callers see ErrNotConfigured at request time.
func New(cfg Config) Client {
	switch strings.ToLower(cfg.Provider) {
	case "openai":
		if cfg.APIKey != "" {
			return NewOpenAI(cfg.Endpoint, cfg.APIKey, cfg.Model)
		}
	case "gemini":
		if cfg.GeminiAPIKey != "" {
			return NewGemini(cfg.GeminiAPIKey, cfg.GeminiModel)
		}
	case "mock":
		return NewMock()
	}
	return unconfigured{}
}

type unconfigured struct{}

func (unconfigured) Chat(context.Context, string, []Message) (string, error) {
	return "", ErrNotConfigured
}

func (unconfigured) Name() string { return "none" }

// Configured reports whether c can reach a real or mock model.
func Configured(c Client) bool { return c != nil && c.Name() != "none" }
