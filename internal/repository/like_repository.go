package repository

import (
	"context"

	"duet-bot/internal/domain"
)

// LikeRepository is the directed "likes" edge set between profile ids.
// At most one edge exists per ordered pair; Add is idempotent.
type LikeRepository interface {
	Add(ctx context.Context, likerID, likedID int64) error
	Remove(ctx context.Context, likerID, likedID int64) error
	Has(ctx context.Context, likerID, likedID int64) (bool, error)
	// GivenBy and ReceivedBy load the full edge set; profile counts are
	// assumed small enough that pagination is not needed.
	GivenBy(ctx context.Context, likerID int64) ([]*domain.Profile, error)
	ReceivedBy(ctx context.Context, likedID int64) ([]*domain.Profile, error)
	CountGivenBy(ctx context.Context, likerID int64) (int, error)
}
