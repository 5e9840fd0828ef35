package serviceImp

import (
	"strings"

	"olivia/entities"
	"olivia/pkg/metrics"
	"olivia/pkg/planner/types"
)

const (
	planDays = 7
	// release of used items is only allowed from this day index on (exclusive)
	releaseAfterDay = 3
	// retries per day after a release; bounded so an exhausted wardrobe
	// still terminates
	maxDayRetries = 3

	coldBelowC = 10.0
	hotAboveC  = 25.0
)

var required = []types.Category{types.Tops, types.Bottoms, types.Shoes}

// usedSet remembers picked ids in insertion order.
type usedSet struct {
	order []string
	set   map[string]struct{}
}

func newUsedSet() *usedSet { return &usedSet{set: map[string]struct{}{}} }

func (u *usedSet) add(id string) {
	if _, ok := u.set[id]; ok {
		return
	}
	u.set[id] = struct{}{}
	u.order = append(u.order, id)
}

func (u *usedSet) has(id string) bool {
	_, ok := u.set[id]
	return ok
}

// releaseOldest frees the first half (at least one) of the used ids and
// returns how many were released.
func (u *usedSet) releaseOldest() int {
	if len(u.order) == 0 {
		return 0
	}
	n := len(u.order) / 2
	if n == 0 {
		n = 1
	}
	for _, id := range u.order[:n] {
		delete(u.set, id)
	}
	u.order = append([]string(nil), u.order[n:]...)
	return n
}

// suitable applies the temperature rule: cold days need wool/fleece or a
// jacket, hot days exclude both wool and jackets.
func suitable(it entities.ClothingItem, tempC float64) bool {
	mat := strings.ToLower(it.Material)
	jacket := strings.Contains(strings.ToLower(it.Type), "jacket")
	wool := strings.Contains(mat, "wool")
	switch {
	case tempC < coldBelowC:
		return wool || strings.Contains(mat, "fleece") || jacket
	case tempC > hotAboveC:
		return !wool && !jacket
	default:
		return true
	}
}

func available(buckets map[types.Category][]entities.ClothingItem, used *usedSet, tempC float64) map[types.Category][]entities.ClothingItem {
	out := make(map[types.Category][]entities.ClothingItem, len(buckets))
	for c, pool := range buckets {
		for _, it := range pool {
			if !used.has(it.ID) && suitable(it, tempC) {
				out[c] = append(out[c], it)
			}
		}
	}
	return out
}

// starved reports whether a non-empty required bucket has nothing left for the day.
func starved(buckets, avail map[types.Category][]entities.ClothingItem) bool {
	for _, c := range required {
		if len(buckets[c]) > 0 && len(avail[c]) == 0 {
			return true
		}
	}
	return false
}

func (s *plannerSvc) pick(pool []entities.ClothingItem) *entities.ClothingItem {
	if len(pool) == 0 {
		return nil
	}
	it := pool[s.intn(len(pool))]
	return &it
}

// pickDay chooses one item per bucket. Required buckets fall back to their
// whole pool; accessories only come from what is available.
func (s *plannerSvc) pickDay(buckets, avail map[types.Category][]entities.ClothingItem) types.Picks {
	choose := func(c types.Category) *entities.ClothingItem {
		if it := s.pick(avail[c]); it != nil {
			return it
		}
		if len(buckets[c]) > 0 {
			metrics.PlannerFallbacks.WithLabelValues("full_pool").Inc()
		}
		return s.pick(buckets[c])
	}
	return types.Picks{
		Top:       choose(types.Tops),
		Bottom:    choose(types.Bottoms),
		Shoes:     choose(types.Shoes),
		Accessory: s.pick(avail[types.Accessories]),
	}
}
