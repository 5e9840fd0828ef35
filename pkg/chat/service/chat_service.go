package service

import (
	"context"
	"errors"

	"olivia/pkg/ai"
)

// ErrUpstream wraps a failed model call.
var ErrUpstream = errors.New("chat model request failed")

type Reply struct {
	Message      string `json:"message,omitempty"`
	LimitReached bool   `json:"limitReached"`
	Remaining    int    `json:"remaining"` // -1 = unlimited
}

type ChatService interface {
	// Send forwards msgs to the model. Hitting the daily cap is not an error:
	// it comes back as Reply.LimitReached. ai.ErrNotConfigured and ErrUpstream
	// are the hard failures.
	Send(ctx context.Context, uid string, msgs []ai.Message) (*Reply, error)
}
