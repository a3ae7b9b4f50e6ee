package postgres

import (
	"context"

	"duet-bot/internal/domain"
	"duet-bot/internal/repository"

	"github.com/jmoiron/sqlx"
)

type likeRepository struct {
	db *sqlx.DB
}

func NewLikeRepository(db *sqlx.DB) repository.LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) Add(ctx context.Context, likerID, likedID int64) error {
	query := `
		INSERT INTO profile_likes (liker_id, liked_id)
		VALUES ($1, $2)
		ON CONFLICT (liker_id, liked_id) DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, query, likerID, likedID)
	return err
}

func (r *likeRepository) Remove(ctx context.Context, likerID, likedID int64) error {
	query := `DELETE FROM profile_likes WHERE liker_id = $1 AND liked_id = $2`
	_, err := r.db.ExecContext(ctx, query, likerID, likedID)
	return err
}

func (r *likeRepository) Has(ctx context.Context, likerID, likedID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM profile_likes WHERE liker_id = $1 AND liked_id = $2)`
	if err := r.db.GetContext(ctx, &exists, query, likerID, likedID); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *likeRepository) GivenBy(ctx context.Context, likerID int64) ([]*domain.Profile, error) {
	var profiles []*domain.Profile
	query := `
		SELECT p.* FROM profiles p
		JOIN profile_likes l ON l.liked_id = p.id
		WHERE l.liker_id = $1
		ORDER BY p.id
	`
	err := r.db.SelectContext(ctx, &profiles, query, likerID)
	return profiles, err
}

func (r *likeRepository) ReceivedBy(ctx context.Context, likedID int64) ([]*domain.Profile, error) {
	var profiles []*domain.Profile
	query := `
		SELECT p.* FROM profiles p
		JOIN profile_likes l ON l.liker_id = p.id
		WHERE l.liked_id = $1
		ORDER BY p.id
	`
	err := r.db.SelectContext(ctx, &profiles, query, likedID)
	return profiles, err
}

func (r *likeRepository) CountGivenBy(ctx context.Context, likerID int64) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM profile_likes WHERE liker_id = $1`
	if err := r.db.GetContext(ctx, &count, query, likerID); err != nil {
		return 0, err
	}
	return count, nil
}
