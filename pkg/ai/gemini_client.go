package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

type gemini struct {
	key   string
	model string
}

func NewGemini(key, model string) Client {
	if model == "" {
		model = "gemini-1.5-flash"
	}
	return &gemini{key: key, model: model}
}

func (g *gemini) Name() string { return "gemini" }

// toContents maps all but the last message to chat history; Gemini calls the
// assistant role "model".
func toContents(msgs []Message) []*genai.Content {
	out := make([]*genai.Content, 0, len(msgs))
	for _, m := range msgs {
		role := "user"
		if m.Role == "assistant" {
			role = "model"
		}
		out = append(out, &genai.Content{Role: role, Parts: []genai.Part{genai.Text(m.Content)}})
	}
	return out
}

func (g *gemini) Chat(ctx context.Context, system string, msgs []Message) (string, error) {
	if len(msgs) == 0 {
		return "", fmt.Errorf("gemini: no messages")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(g.key))
	if err != nil {
		return "", fmt.Errorf("gemini: new client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(g.model)
	if system != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}
	}
	cs := model.StartChat()
	cs.History = toContents(msgs[:len(msgs)-1])

	resp, err := cs.SendMessage(ctx, genai.Text(msgs[len(msgs)-1].Content))
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyReply
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			sb.WriteString(string(t))
		}
	}
	reply := strings.TrimSpace(sb.String())
	if reply == "" {
		return "", ErrEmptyReply
	}
	return reply, nil
}
