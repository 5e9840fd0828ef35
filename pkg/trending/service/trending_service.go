package service

import (
	"context"
	"time"

	"olivia/entities"
)

const (
	StageEvents24h = "events_24h"
	StageEvents7d  = "events_7d"
	StageOutfits   = "outfits"
)

// StageFailure is a query error the aggregator swallowed.
type StageFailure struct {
	Stage string `json:"stage"`
	Err   string `json:"error"`
}

type Result struct {
	Outfits     []entities.Outfit `json:"outfits"`
	LastUpdated time.Time         `json:"lastUpdated"`
	Window      string            `json:"-"` // 24h|7d
	Failures    []StageFailure    `json:"-"`
}

// Degraded is true when the list may be shorter than the data allows
// because a query failed.
func (r *Result) Degraded() bool { return len(r.Failures) > 0 }

type TrendingService interface {
	// Aggregate ranks outfits by weighted recent usage. Query failures degrade
	// the result instead of failing; only a done context returns an error.
	Aggregate(ctx context.Context) (*Result, error)
	Record(ctx context.Context, uid, outfitID, actionType string) (*entities.OutfitUsageEvent, error)
}
