package repository

import (
	"context"

	"duet-bot/internal/domain"
)

type ProfileRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Profile, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Count(ctx context.Context) (int, error)
	// GetRandomUnliked returns a uniformly random profile other than
	// viewerID and not already liked by viewerID, or
	// domain.ErrProfileNotFound when no such profile exists. The liked
	// exclusion happens inside the draw so a single call settles whether
	// an unseen candidate remains.
	GetRandomUnliked(ctx context.Context, viewerID int64) (*domain.Profile, error)
	// Upsert inserts the profile or overwrites all mutable fields in place.
	// The id is immutable once created.
	Upsert(ctx context.Context, profile *domain.Profile) error
}
