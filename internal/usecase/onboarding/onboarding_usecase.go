package onboarding

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"duet-bot/internal/cache"
	"duet-bot/internal/domain"
	"duet-bot/internal/repository"
	"duet-bot/internal/session"

	"github.com/go-playground/validator/v10"
)

// UseCase persists completed onboarding drafts and answers profile lookups
// for the menu. The step-by-step prompting itself is driven by the delivery
// layer; only the course answer needs parsing and only the finished draft
// is validated.
type UseCase struct {
	profileRepo repository.ProfileRepository
	renderCache *cache.RenderCache
	validate    *validator.Validate
}

func NewUseCase(profileRepo repository.ProfileRepository, renderCache *cache.RenderCache) *UseCase {
	return &UseCase{
		profileRepo: profileRepo,
		renderCache: renderCache,
		validate:    validator.New(),
	}
}

// ParseCourse parses the course answer. The course is the only free-text
// field with a shape requirement: a positive integer.
func ParseCourse(text string) (int, error) {
	course, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || course < 1 {
		return 0, domain.ErrInvalidCourse
	}
	return course, nil
}

// HasProfile reports whether the identity has completed onboarding before.
func (uc *UseCase) HasProfile(ctx context.Context, id int64) (bool, error) {
	return uc.profileRepo.Exists(ctx, id)
}

// Profile returns the stored profile for the identity.
func (uc *UseCase) Profile(ctx context.Context, id int64) (*domain.Profile, error) {
	return uc.profileRepo.GetByID(ctx, id)
}

// Commit validates the finished draft, writes all six fields in place and
// returns the stored profile. A previous profile for the same identity is
// overwritten; there is no partial save.
func (uc *UseCase) Commit(ctx context.Context, chatID int64, username string, draft *session.Draft) (*domain.Profile, error) {
	if err := uc.validate.Struct(draft); err != nil {
		return nil, fmt.Errorf("invalid onboarding draft: %w", err)
	}

	profile := &domain.Profile{
		ID:          chatID,
		Username:    username,
		Name:        draft.Name,
		Faculty:     draft.Faculty,
		Course:      draft.Course,
		Education:   draft.Education,
		Description: draft.Description,
		Link:        draft.Link,
	}

	if err := uc.profileRepo.Upsert(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}

	uc.renderCache.Invalidate(ctx, chatID)

	return uc.profileRepo.GetByID(ctx, chatID)
}
