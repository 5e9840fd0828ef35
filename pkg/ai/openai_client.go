package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type openAI struct {
	endpoint string
	key      string
	model    string
	httpc    *http.Client
}

// NewOpenAI talks to any OpenAI-compatible /v1/chat/completions endpoint.
func NewOpenAI(endpoint, key, model string) Client {
	return &openAI{endpoint: endpoint, key: key, model: model, httpc: &http.Client{Timeout: 25 * time.Second}}
}

func (c *openAI) Name() string { return "openai" }

type chatReq struct {
	Model       string              `json:"model"`
	Messages    []map[string]string `json:"messages"`
	Temperature float64             `json:"temperature"`
}

func (c *openAI) Chat(ctx context.Context, system string, msgs []Message) (string, error) {
	reqBody := chatReq{
		Model:       c.model,
		Messages:    make([]map[string]string, 0, len(msgs)+1),
		Temperature: 0.7,
	}
	if system != "" {
		reqBody.Messages = append(reqBody.Messages, map[string]string{"role": "system", "content": system})
	}
	for _, m := range msgs {
		reqBody.Messages = append(reqBody.Messages, map[string]string{"role": m.Role, "content": m.Content})
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(c.endpoint, "/")+"/v1/chat/completions", bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.key)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("openai: status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var out struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("openai: decode: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", ErrEmptyReply
	}
	content := strings.TrimSpace(out.Choices[0].Message.Content)
	if content == "" {
		return "", ErrEmptyReply
	}
	return content, nil
}
