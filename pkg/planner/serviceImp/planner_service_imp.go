package serviceImp

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"olivia/entities"
	"olivia/pkg/climate"
	"olivia/pkg/logging"
	"olivia/pkg/metrics"
	outfitrepo "olivia/pkg/outfit/repository"
	"olivia/pkg/planner/service"
	"olivia/pkg/planner/types"
	wardroberepo "olivia/pkg/wardrobe/repository"
)

var suggestedTags = []string{"olivia-suggested", "weekly-plan"}

type plannerSvc struct {
	wardrobe wardroberepo.ClothingRepository
	outfits  outfitrepo.OutfitRepository
	weather  climate.Forecaster
	loc      *time.Location
	now      func() time.Time

	mu  sync.Mutex // guards rng
	rng *rand.Rand
}

type Option func(*plannerSvc)

// WithRand injects the random source; tests pass a seeded one.
func WithRand(r *rand.Rand) Option { return func(s *plannerSvc) { s.rng = r } }

func WithClock(now func() time.Time) Option { return func(s *plannerSvc) { s.now = now } }

// WithLocation sets the zone "today" is computed in.
func WithLocation(loc *time.Location) Option { return func(s *plannerSvc) { s.loc = loc } }

func NewPlannerService(w wardroberepo.ClothingRepository, o outfitrepo.OutfitRepository, f climate.Forecaster, opts ...Option) service.PlannerService {
	s := &plannerSvc{
		wardrobe: w,
		outfits:  o,
		weather:  f,
		loc:      time.UTC,
		now:      time.Now,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *plannerSvc) intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}

func (s *plannerSvc) today() time.Time {
	n := s.now().In(s.loc)
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, s.loc)
}

func (s *plannerSvc) GenerateWeekly(ctx context.Context, uid string, loc types.Location) ([]types.DayPlan, error) {
	items, err := s.wardrobe.ListByUser(ctx, uid)
	if err != nil {
		metrics.PlannerRuns.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("load wardrobe: %w", err)
	}
	return s.Plan(uid, items, loc, s.today())
}

func (s *plannerSvc) Plan(uid string, items []entities.ClothingItem, loc types.Location, start time.Time) ([]types.DayPlan, error) {
	if len(items) == 0 {
		metrics.PlannerRuns.WithLabelValues("empty_wardrobe").Inc()
		return nil, service.ErrEmptyWardrobe
	}

	buckets := types.Partition(items)
	used := newUsedSet()
	days := make([]types.DayPlan, 0, planDays)

	for day := 0; day < planDays; day++ {
		date := start.AddDate(0, 0, day)
		w := s.weather.Forecast(date, loc.City, loc.Country)
		avail := available(buckets, used, w.TemperatureC)

		for retry := 0; day > releaseAfterDay && retry < maxDayRetries && starved(buckets, avail); retry++ {
			n := used.releaseOldest()
			if n == 0 {
				break
			}
			metrics.PlannerFallbacks.WithLabelValues("release_used").Inc()
			logging.Debug().Str("uid", uid).Int("day", day).Int("released", n).Msg("planner released used items")
			avail = available(buckets, used, w.TemperatureC)
		}

		picks := s.pickDay(buckets, avail)
		for _, it := range []*entities.ClothingItem{picks.Top, picks.Bottom, picks.Shoes, picks.Accessory} {
			if it != nil {
				used.add(it.ID)
			}
		}

		days = append(days, types.DayPlan{
			Date:    date.Format("2006-01-02"),
			Weather: w,
			Outfit:  s.draft(uid, date, picks),
			Picks:   picks,
		})
	}

	metrics.PlannerRuns.WithLabelValues("ok").Inc()
	return days, nil
}

func (s *plannerSvc) draft(uid string, date time.Time, p types.Picks) entities.Outfit {
	var ids, colors []string
	for _, it := range []*entities.ClothingItem{p.Top, p.Bottom, p.Shoes, p.Accessory} {
		if it != nil {
			ids = append(ids, it.ID)
		}
	}
	for _, it := range []*entities.ClothingItem{p.Top, p.Bottom} {
		if it != nil && it.Color != "" {
			colors = append(colors, it.Color)
		}
	}
	planned := date
	return entities.Outfit{
		ID:              "weekly-" + uuid.NewString(),
		UserID:          uid,
		Name:            date.Weekday().String() + " Outfit",
		Items:           ids,
		Occasions:       []string{types.OccasionFor(date)},
		Season:          []string{types.SeasonFor(date)},
		DateAdded:       s.now().UTC(),
		PersonalityTags: append([]string(nil), suggestedTags...),
		Colors:          colors,
		PlannedFor:      &planned,
	}
}

func (s *plannerSvc) SaveDraft(ctx context.Context, uid string, draft entities.Outfit) (string, bool) {
	o := draft
	o.UserID = uid
	if o.ID == "" {
		o.ID = "weekly-" + uuid.NewString()
	}
	if o.DateAdded.IsZero() {
		o.DateAdded = s.now().UTC()
	}
	o.Items = dedupe(o.Items)

	if err := s.outfits.Create(ctx, &o); err != nil {
		metrics.OutfitSaves.WithLabelValues("error").Inc()
		logging.Error().Err(err).Str("uid", uid).Str("outfit_id", o.ID).Msg("save weekly draft")
		return "", false
	}
	metrics.OutfitSaves.WithLabelValues("ok").Inc()
	return o.ID, true
}

func (s *plannerSvc) SaveWeek(ctx context.Context, uid string, drafts []entities.Outfit) []types.SaveResult {
	out := make([]types.SaveResult, 0, len(drafts))
	for _, d := range drafts {
		r := types.SaveResult{}
		if d.PlannedFor != nil {
			r.Date = d.PlannedFor.Format("2006-01-02")
		}
		if id, ok := s.SaveDraft(ctx, uid, d); ok {
			r.OutfitID = &id
		}
		out = append(out, r)
	}
	return out
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
