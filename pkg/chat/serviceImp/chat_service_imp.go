package serviceImp

import (
	"context"
	"fmt"
	"time"

	"olivia/pkg/ai"
	"olivia/pkg/chat/repository"
	"olivia/pkg/chat/service"
	"olivia/pkg/logging"
	"olivia/pkg/metrics"
)

const SystemPrompt = `You are Olivia, a warm and practical personal stylist.
Give concise outfit advice that fits the user's wardrobe, the weather and the occasion.
Prefer concrete pairings (item + colour + shoe) over general fashion talk.
Keep answers under 120 words unless the user asks for more.`

type chatSvc struct {
	llm   ai.Client
	usage repository.ChatUsageRepository
	limit int
	now   func() time.Time
}

func NewChatService(llm ai.Client, usage repository.ChatUsageRepository, dailyLimit int, now func() time.Time) service.ChatService {
	if now == nil {
		now = time.Now
	}
	return &chatSvc{llm: llm, usage: usage, limit: dailyLimit, now: now}
}

func (s *chatSvc) Send(ctx context.Context, uid string, msgs []ai.Message) (*service.Reply, error) {
	if !ai.Configured(s.llm) {
		metrics.ChatMessages.WithLabelValues("not_configured").Inc()
		return nil, ai.ErrNotConfigured
	}

	day := s.now().UTC().Format("2006-01-02")
	premium, err := s.usage.IsPremium(ctx, uid)
	if err != nil {
		logging.Warn().Err(err).Str("uid", uid).Msg("chat premium lookup")
		premium = false // treat as free
	}

	if premium {
		reply, err := s.ask(ctx, uid, msgs)
		if err != nil {
			return nil, err
		}
		return &service.Reply{Message: reply, Remaining: -1}, nil
	}

	n, ok, err := s.usage.Reserve(ctx, uid, day, s.limit)
	if err != nil {
		return nil, fmt.Errorf("chat usage: %w", err)
	}
	if !ok {
		metrics.ChatMessages.WithLabelValues("limit_reached").Inc()
		return &service.Reply{LimitReached: true, Remaining: 0}, nil
	}

	reply, err := s.ask(ctx, uid, msgs)
	if err != nil {
		// a failed answer does not use up the slot
		if rerr := s.usage.Release(context.WithoutCancel(ctx), uid, day); rerr != nil {
			logging.Error().Err(rerr).Str("uid", uid).Msg("chat usage release")
		}
		return nil, err
	}
	remaining := s.limit - n
	if remaining < 0 {
		remaining = 0
	}
	return &service.Reply{Message: reply, Remaining: remaining}, nil
}

func (s *chatSvc) ask(ctx context.Context, uid string, msgs []ai.Message) (string, error) {
	reply, err := s.llm.Chat(ctx, SystemPrompt, msgs)
	if err != nil {
		metrics.ChatMessages.WithLabelValues("llm_error").Inc()
		logging.Error().Err(err).Str("uid", uid).Str("provider", s.llm.Name()).Msg("chat model")
		return "", fmt.Errorf("%w: %v", service.ErrUpstream, err)
	}
	metrics.ChatMessages.WithLabelValues("ok").Inc()
	return reply, nil
}
