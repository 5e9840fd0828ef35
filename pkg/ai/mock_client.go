package ai

import (
	"context"
	"fmt"
	"strings"
)

type mockClient struct{}

func NewMock() Client { return &mockClient{} }

func (m *mockClient) Name() string { return "mock" }

// Chat echoes a canned styling tip keyed off the last user message.
func (m *mockClient) Chat(_ context.Context, _ string, msgs []Message) (string, error) {
	last := ""
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role == "user" {
			last = strings.ToLower(msgs[i].Content)
			break
		}
	}
	switch {
	case strings.Contains(last, "cold") || strings.Contains(last, "winter"):
		return "Layer a wool sweater under a structured coat and finish with ankle boots.", nil
	case strings.Contains(last, "wedding"):
		return "A midi dress in a soft pastel with block heels works for most daytime weddings.", nil
	default:
		return fmt.Sprintf("Olivia (mock) here: try pairing neutral basics with one statement piece. (%d messages)", len(msgs)), nil
	}
}
