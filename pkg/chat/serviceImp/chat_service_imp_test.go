package serviceImp

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"olivia/database"
	"olivia/pkg/ai"
	"olivia/pkg/chat/repository"
	"olivia/pkg/chat/repositoryImp"
	"olivia/pkg/chat/service"
)

type stubLLM struct {
	reply  string
	err    error
	calls  int
	system string
}

func (s *stubLLM) Name() string { return "stub" }

func (s *stubLLM) Chat(_ context.Context, system string, _ []ai.Message) (string, error) {
	s.calls++
	s.system = system
	return s.reply, s.err
}

var msgs = []ai.Message{{Role: "user", Content: "What goes with green trousers?"}}

func usageRepo(t *testing.T) repository.ChatUsageRepository {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	return repositoryImp.New(db)
}

func TestFreeUserDailyCap(t *testing.T) {
	llm := &stubLLM{reply: "A cream knit."}
	now := time.Date(2025, 6, 2, 23, 0, 0, 0, time.UTC)
	svc := NewChatService(llm, usageRepo(t), 5, func() time.Time { return now })
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		r, err := svc.Send(ctx, "u1", msgs)
		require.NoError(t, err)
		require.False(t, r.LimitReached)
		require.Equal(t, "A cream knit.", r.Message)
		require.Equal(t, 5-i, r.Remaining)
	}

	r, err := svc.Send(ctx, "u1", msgs)
	require.NoError(t, err, "cap is a flag, not an error")
	require.True(t, r.LimitReached)
	require.Zero(t, r.Remaining)
	require.Empty(t, r.Message)
	require.Equal(t, 5, llm.calls, "model not called once capped")
	require.Equal(t, SystemPrompt, llm.system)

	// next UTC day resets
	now = now.Add(2 * time.Hour)
	r, err = svc.Send(ctx, "u1", msgs)
	require.NoError(t, err)
	require.False(t, r.LimitReached)
	require.Equal(t, 4, r.Remaining)
}

func TestPremiumIsUnlimited(t *testing.T) {
	repo := usageRepo(t)
	require.NoError(t, repo.SetPremium(context.Background(), "vip", true))
	llm := &stubLLM{reply: "ok"}
	svc := NewChatService(llm, repo, 1, nil)

	for i := 0; i < 3; i++ {
		r, err := svc.Send(context.Background(), "vip", msgs)
		require.NoError(t, err)
		require.False(t, r.LimitReached)
		require.Equal(t, -1, r.Remaining)
	}
	require.Equal(t, 3, llm.calls)
}

func TestNotConfigured(t *testing.T) {
	svc := NewChatService(ai.New(ai.Config{}), usageRepo(t), 5, nil)
	_, err := svc.Send(context.Background(), "u1", msgs)
	require.ErrorIs(t, err, ai.ErrNotConfigured)
}

func TestUpstreamFailureDoesNotCount(t *testing.T) {
	repo := usageRepo(t)
	llm := &stubLLM{err: errors.New("503")}
	svc := NewChatService(llm, repo, 5, nil)

	_, err := svc.Send(context.Background(), "u1", msgs)
	require.ErrorIs(t, err, service.ErrUpstream)

	n, err := repo.Count(context.Background(), "u1", time.Now().UTC().Format("2006-01-02"))
	require.NoError(t, err)
	require.Zero(t, n)
}

type slowLLM struct{ calls atomic.Int32 }

func (s *slowLLM) Name() string { return "slow" }

func (s *slowLLM) Chat(context.Context, string, []ai.Message) (string, error) {
	s.calls.Add(1)
	time.Sleep(20 * time.Millisecond)
	return "ok", nil
}

func TestConcurrentSendsRespectCap(t *testing.T) {
	repo := usageRepo(t)
	ctx := context.Background()
	// one message already used today
	_, _, err := repo.Reserve(ctx, "u1", time.Now().UTC().Format("2006-01-02"), 5)
	require.NoError(t, err)

	llm := &slowLLM{}
	svc := NewChatService(llm, repo, 5, nil)

	var (
		wg      sync.WaitGroup
		answers atomic.Int32
		capped  atomic.Int32
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r, err := svc.Send(ctx, "u1", msgs)
			if err != nil {
				return
			}
			if r.LimitReached {
				capped.Add(1)
			} else {
				answers.Add(1)
			}
		}()
	}
	wg.Wait()
	require.EqualValues(t, 4, answers.Load())
	require.EqualValues(t, 6, capped.Load())
	require.EqualValues(t, 4, llm.calls.Load())
}
