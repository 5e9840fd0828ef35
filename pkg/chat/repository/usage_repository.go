package repository

import "context"

type ChatUsageRepository interface {
	IsPremium(ctx context.Context, uid string) (bool, error)
	SetPremium(ctx context.Context, uid string, premium bool) error
	// Count returns messages sent on day ("2006-01-02"); 0 when none.
	Count(ctx context.Context, uid, day string) (int, error)
	// Reserve takes one of limit slots for day in a single conditional
	// update. ok is false when all slots are taken; n is the count after.
	Reserve(ctx context.Context, uid, day string, limit int) (n int, ok bool, err error)
	// Release gives back a slot taken by Reserve. Never goes below zero.
	Release(ctx context.Context, uid, day string) error
}
