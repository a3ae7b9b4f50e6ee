package postgres

import (
	"context"
	"database/sql"
	"errors"

	"duet-bot/internal/domain"
	"duet-bot/internal/repository"

	"github.com/jmoiron/sqlx"
)

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) GetByID(ctx context.Context, id int64) (*domain.Profile, error) {
	var profile domain.Profile
	query := `SELECT * FROM profiles WHERE id = $1`
	err := r.db.GetContext(ctx, &profile, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM profiles WHERE id = $1)`
	if err := r.db.GetContext(ctx, &exists, query, id); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *profileRepository) Count(ctx context.Context) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM profiles`
	if err := r.db.GetContext(ctx, &count, query); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *profileRepository) GetRandomUnliked(ctx context.Context, viewerID int64) (*domain.Profile, error) {
	var profile domain.Profile
	query := `
		SELECT * FROM profiles
		WHERE id != $1
		  AND id NOT IN (SELECT liked_id FROM profile_likes WHERE liker_id = $1)
		ORDER BY random()
		LIMIT 1
	`
	err := r.db.GetContext(ctx, &profile, query, viewerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) Upsert(ctx context.Context, profile *domain.Profile) error {
	query := `
		INSERT INTO profiles (id, username, name, faculty, course, education, description, link)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			username = EXCLUDED.username,
			name = EXCLUDED.name,
			faculty = EXCLUDED.faculty,
			course = EXCLUDED.course,
			education = EXCLUDED.education,
			description = EXCLUDED.description,
			link = EXCLUDED.link,
			updated_at = CURRENT_TIMESTAMP
		RETURNING created_at, updated_at
	`
	return r.db.QueryRowContext(
		ctx, query,
		profile.ID, profile.Username, profile.Name, profile.Faculty,
		profile.Course, profile.Education, profile.Description, profile.Link,
	).Scan(&profile.CreatedAt, &profile.UpdatedAt)
}
