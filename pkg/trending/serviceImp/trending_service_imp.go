package serviceImp

import (
	"context"
	"sort"
	"strconv"
	"time"

	"olivia/entities"
	"olivia/pkg/logging"
	"olivia/pkg/metrics"
	outfitrepo "olivia/pkg/outfit/repository"
	"olivia/pkg/trending/repository"
	"olivia/pkg/trending/service"
)

const (
	TopN = 10
	// below this many events in the short window the long window is used
	minShortWindowEvents = 10

	shortWindow = 24 * time.Hour
	longWindow  = 7 * 24 * time.Hour
)

var noiseActions = []string{entities.ActionSeasonalSuggestion, entities.ActionSeasonalCache}

var weights = map[string]int{
	entities.ActionTried:  3,
	entities.ActionLiked:  2,
	entities.ActionShared: 2,
}

func Weight(actionType string) int {
	if w, ok := weights[actionType]; ok {
		return w
	}
	return 1
}

type trendingSvc struct {
	usage   repository.UsageRepository
	outfits outfitrepo.OutfitRepository
	now     func() time.Time
}

func NewTrendingService(u repository.UsageRepository, o outfitrepo.OutfitRepository, now func() time.Time) service.TrendingService {
	if now == nil {
		now = time.Now
	}
	return &trendingSvc{usage: u, outfits: o, now: now}
}

type Scored struct {
	OutfitID string
	Score    int
}

// Rank sums weights per outfit and returns ids by score desc, ties by id asc,
// at most n of them.
func Rank(events []entities.OutfitUsageEvent, n int) []Scored {
	scores := map[string]int{}
	for _, ev := range events {
		scores[ev.OutfitID] += Weight(ev.ActionType)
	}
	out := make([]Scored, 0, len(scores))
	for id, sc := range scores {
		out = append(out, Scored{OutfitID: id, Score: sc})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].OutfitID < out[j].OutfitID
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func (s *trendingSvc) fail(res *service.Result, stage string, err error) {
	logging.Warn().Err(err).Str("stage", stage).Msg("trending query failed")
	metrics.TrendingStageFailures.WithLabelValues(stage).Inc()
	res.Failures = append(res.Failures, service.StageFailure{Stage: stage, Err: err.Error()})
}

func (s *trendingSvc) Aggregate(ctx context.Context) (*service.Result, error) {
	now := s.now().UTC()
	res := &service.Result{Outfits: []entities.Outfit{}, LastUpdated: now, Window: "24h"}

	events, err := s.usage.Since(ctx, now.Add(-shortWindow), noiseActions)
	if err != nil {
		s.fail(res, service.StageEvents24h, err)
		events = nil
	}
	if len(events) < minShortWindowEvents {
		// replace, never merge: the long window already contains the short one
		wide, err := s.usage.Since(ctx, now.Add(-longWindow), noiseActions)
		if err != nil {
			s.fail(res, service.StageEvents7d, err)
		} else {
			events = wide
			res.Window = "7d"
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	defer func() {
		metrics.TrendingRequests.WithLabelValues(res.Window, strconv.FormatBool(res.Degraded())).Inc()
	}()
	if len(events) == 0 {
		return res, nil
	}

	ranked := Rank(events, TopN)
	ids := make([]string, len(ranked))
	rank := make(map[string]int, len(ranked))
	for i, r := range ranked {
		ids[i] = r.OutfitID
		rank[r.OutfitID] = i
	}

	rows, err := s.outfits.FindByIDs(ctx, ids)
	if err != nil {
		if cerr := ctx.Err(); cerr != nil {
			return nil, cerr
		}
		s.fail(res, service.StageOutfits, err)
		return res, nil
	}
	// fetch order is not the ranking order
	sort.SliceStable(rows, func(i, j int) bool { return rank[rows[i].ID] < rank[rows[j].ID] })
	res.Outfits = append(res.Outfits, rows...)
	return res, nil
}

func (s *trendingSvc) Record(ctx context.Context, uid, outfitID, actionType string) (*entities.OutfitUsageEvent, error) {
	ev := &entities.OutfitUsageEvent{
		OutfitID:   outfitID,
		UserID:     uid,
		ActionType: actionType,
		CreatedAt:  s.now().UTC(),
	}
	if err := s.usage.Record(ctx, ev); err != nil {
		return nil, err
	}
	return ev, nil
}
