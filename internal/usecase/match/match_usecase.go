package match

import (
	"context"
	"errors"
	"fmt"

	"duet-bot/internal/cache"
	"duet-bot/internal/domain"
	"duet-bot/internal/repository"

	"github.com/rs/zerolog/log"
)

// Notifier delivers messages to a third party outside the triggering turn.
// Delivery is at-least-once; failures are logged by the caller and never
// fail the liker's own turn.
type Notifier interface {
	// NotifyLiked tells chatID that the owner of likerCard liked them,
	// without revealing who it was.
	NotifyLiked(ctx context.Context, chatID int64, likerCard string) error
	// NotifyMatch tells chatID about a mutual match, including the other
	// side's card and contact handle.
	NotifyMatch(ctx context.Context, chatID int64, card, contact, icebreaker string) error
}

// IcebreakerSource suggests an opening line for a fresh match.
type IcebreakerSource interface {
	GenerateIcebreaker(ctx context.Context, desc1, desc2 string) (string, error)
}

// UseCase selects candidates and resolves like decisions into one-sided
// likes or mutual matches.
type UseCase struct {
	profileRepo repository.ProfileRepository
	likeRepo    repository.LikeRepository
	notifier    Notifier
	icebreakers IcebreakerSource
	renderCache *cache.RenderCache
}

func NewUseCase(
	profileRepo repository.ProfileRepository,
	likeRepo repository.LikeRepository,
	notifier Notifier,
	icebreakers IcebreakerSource,
	renderCache *cache.RenderCache,
) *UseCase {
	return &UseCase{
		profileRepo: profileRepo,
		likeRepo:    likeRepo,
		notifier:    notifier,
		icebreakers: icebreakers,
		renderCache: renderCache,
	}
}

// LikeResult is the outcome of a like decision, for composing the viewer's
// own reply.
type LikeResult struct {
	IsMatch    bool
	Duplicate  bool
	Candidate  *domain.Profile
	Icebreaker string
}

// NextCandidate picks a uniformly random profile the viewer has not liked
// yet. It returns domain.ErrNoCandidates when fewer than two profiles exist
// and domain.ErrFeedExhausted when the viewer has already evaluated every
// other profile.
func (uc *UseCase) NextCandidate(ctx context.Context, viewerID int64) (*domain.Profile, error) {
	total, err := uc.profileRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count profiles: %w", err)
	}
	if total <= 1 {
		return nil, domain.ErrNoCandidates
	}

	given, err := uc.likeRepo.CountGivenBy(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to count given likes: %w", err)
	}
	if given >= total-1 {
		return nil, domain.ErrFeedExhausted
	}

	// The draw itself excludes already-liked profiles, so one call settles
	// whether an unseen candidate remains. An empty draw here means the
	// edge set changed since the count above; that is still exhaustion.
	candidate, err := uc.profileRepo.GetRandomUnliked(ctx, viewerID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return nil, domain.ErrFeedExhausted
		}
		return nil, fmt.Errorf("failed to draw candidate: %w", err)
	}
	return candidate, nil
}

// Like records the viewer's like of candidateID and resolves it into a
// duplicate no-op, a one-sided like or a mutual match. Notifications to the
// candidate are dispatched here; the viewer-side reply is composed by the
// caller from the result.
func (uc *UseCase) Like(ctx context.Context, viewer *domain.Profile, candidateID int64) (*LikeResult, error) {
	if viewer.ID == candidateID {
		return nil, domain.ErrCannotLikeSelf
	}

	candidate, err := uc.profileRepo.GetByID(ctx, candidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to load candidate: %w", err)
	}

	already, err := uc.likeRepo.Has(ctx, viewer.ID, candidate.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check like edge: %w", err)
	}
	if already {
		// Repeated like of the same target: no edge change, no notification.
		return &LikeResult{Duplicate: true, Candidate: candidate}, nil
	}

	reciprocated, err := uc.likeRepo.Has(ctx, candidate.ID, viewer.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check reverse edge: %w", err)
	}

	if err := uc.likeRepo.Add(ctx, viewer.ID, candidate.ID); err != nil {
		return nil, fmt.Errorf("failed to add like edge: %w", err)
	}

	viewerCard := uc.renderCache.Rendered(ctx, viewer)
	result := &LikeResult{Candidate: candidate}

	if reciprocated {
		result.IsMatch = true
		result.Icebreaker = uc.icebreaker(ctx, viewer, candidate)
		if err := uc.notifier.NotifyMatch(ctx, candidate.ID, viewerCard, viewer.Username, result.Icebreaker); err != nil {
			log.Error().Err(err).Int64("chat_id", candidate.ID).Msg("failed to deliver match notification")
		}
		return result, nil
	}

	if err := uc.notifier.NotifyLiked(ctx, candidate.ID, viewerCard); err != nil {
		log.Error().Err(err).Int64("chat_id", candidate.ID).Msg("failed to deliver like notification")
	}
	return result, nil
}

// Dislike writes nothing: an earlier one-sided like is deliberately kept
// rather than retracted, and no notification is sent.
func (uc *UseCase) Dislike(ctx context.Context, viewerID, candidateID int64) error {
	return nil
}

// ResumePending re-derives a candidate for a viewer returning via a
// "continue" affirmation: the first received like not yet answered, so a
// pending one-sided match is not lost to the random draw. Falls back to
// normal selection when nothing is pending.
func (uc *UseCase) ResumePending(ctx context.Context, viewerID int64) (*domain.Profile, error) {
	received, err := uc.likeRepo.ReceivedBy(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load received likes: %w", err)
	}

	for _, p := range received {
		answered, err := uc.likeRepo.Has(ctx, viewerID, p.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check like edge: %w", err)
		}
		if !answered {
			return p, nil
		}
	}

	return uc.NextCandidate(ctx, viewerID)
}

func (uc *UseCase) icebreaker(ctx context.Context, viewer, candidate *domain.Profile) string {
	if uc.icebreakers == nil {
		return ""
	}
	line, err := uc.icebreakers.GenerateIcebreaker(ctx, viewer.Description, candidate.Description)
	if err != nil {
		log.Warn().Err(err).Msg("icebreaker generation failed")
		return ""
	}
	return line
}
