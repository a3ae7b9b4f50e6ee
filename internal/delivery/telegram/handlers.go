package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"duet-bot/internal/domain"
	"duet-bot/internal/session"
	"duet-bot/internal/usecase/onboarding"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// handleStart forces onboarding for a brand-new identity and opens the menu
// for a returning one.
func (b *Bot) handleStart(ctx context.Context, logger zerolog.Logger, sess *session.Session) {
	exists, err := b.onboarding.HasProfile(ctx, sess.ChatID)
	if err != nil {
		b.failTurn(logger, sess, err)
		return
	}

	if exists {
		sess.ToMain()
		b.reply(logger, sess.ChatID, msgChooseAction, mainKeyboard)
		return
	}

	sess.BeginOnboarding()
	b.reply(logger, sess.ChatID, msgStart, nil)
}

func (b *Bot) handleMain(ctx context.Context, logger zerolog.Logger, sess *session.Session, m *tgbotapi.Message) {
	intent := ParseIntent(m.Text)

	// A recognized menu action from an identity without a profile forces
	// onboarding first. Unrecognized input still falls to the catch-all.
	switch intent {
	case IntentMyProfile, IntentEdit, IntentBrowse, IntentAbout:
		exists, err := b.onboarding.HasProfile(ctx, sess.ChatID)
		if err != nil {
			b.failTurn(logger, sess, err)
			return
		}
		if !exists {
			sess.BeginOnboarding()
			b.reply(logger, sess.ChatID, msgStart, nil)
			return
		}
	}

	switch intent {
	case IntentMyProfile:
		profile, err := b.onboarding.Profile(ctx, sess.ChatID)
		if err != nil {
			b.failTurn(logger, sess, err)
			return
		}
		b.reply(logger, sess.ChatID, b.renderCache.Rendered(ctx, profile), nil)
		b.reply(logger, sess.ChatID, msgChooseAction, mainKeyboard)

	case IntentEdit:
		sess.BeginOnboarding()
		b.reply(logger, sess.ChatID, msgAskName, nil)

	case IntentBrowse:
		b.showNext(ctx, logger, sess)

	case IntentAbout:
		b.reply(logger, sess.ChatID, msgAbout, mainKeyboard)

	default:
		b.fallback(ctx, logger, sess, m.Text)
	}
}

// handleOnboardingStep advances the strictly sequential onboarding chain.
// Free-text states accept any text; course self-loops on a failed parse;
// the education state only reacts to its button callback.
func (b *Bot) handleOnboardingStep(ctx context.Context, logger zerolog.Logger, sess *session.Session, m *tgbotapi.Message) {
	if sess.Draft == nil {
		sess.BeginOnboarding()
	}

	switch sess.State {
	case session.StateName:
		sess.Draft.Name = m.Text
		sess.State = session.StateFaculty
		b.reply(logger, sess.ChatID, msgAskFaculty, nil)

	case session.StateFaculty:
		sess.Draft.Faculty = m.Text
		sess.State = session.StateCourse
		b.reply(logger, sess.ChatID, msgAskCourse, nil)

	case session.StateCourse:
		course, err := onboarding.ParseCourse(m.Text)
		if err != nil {
			b.reply(logger, sess.ChatID, msgAskCourse, nil)
			return
		}
		sess.Draft.Course = course
		sess.State = session.StateEducation
		b.reply(logger, sess.ChatID, msgAskEducation, educationKeyboard())

	case session.StateEducation:
		// A button choice is pending; plain text is out of shape here.
		b.fallback(ctx, logger, sess, m.Text)

	case session.StateDescription:
		sess.Draft.Description = m.Text
		sess.State = session.StateLink
		b.reply(logger, sess.ChatID, msgAskLink, nil)

	case session.StateLink:
		sess.Draft.Link = m.Text
		b.commitOnboarding(ctx, logger, sess, m)
	}
}

func (b *Bot) commitOnboarding(ctx context.Context, logger zerolog.Logger, sess *session.Session, m *tgbotapi.Message) {
	username := "@" + m.From.UserName

	profile, err := b.onboarding.Commit(ctx, sess.ChatID, username, sess.Draft)
	if err != nil {
		// Stay in the link state; the next answer retries the commit.
		b.failTurn(logger, sess, err)
		return
	}

	sess.ToMain()
	b.reply(logger, sess.ChatID, msgProfileSaved, nil)
	b.reply(logger, sess.ChatID, b.renderCache.Rendered(ctx, profile), nil)
	b.reply(logger, sess.ChatID, msgChooseAction, mainKeyboard)
	logger.Info().Msg("onboarding completed")
}

func (b *Bot) handleEducationCallback(ctx context.Context, logger zerolog.Logger, sess *session.Session, cq *tgbotapi.CallbackQuery) {
	// Always answer the callback so the client stops its spinner.
	if _, err := b.api.Request(tgbotapi.NewCallback(cq.ID, "")); err != nil {
		logger.Warn().Err(err).Msg("failed to answer callback query")
	}

	if sess.State != session.StateEducation || sess.Draft == nil {
		logger.Debug().Str("state", sess.State.String()).Msg("education callback outside education state ignored")
		return
	}

	education, ok := domain.ParseEducation(strings.TrimPrefix(cq.Data, educationCallbackPrefix))
	if !ok {
		logger.Debug().Str("data", cq.Data).Msg("unknown education callback ignored")
		return
	}

	sess.Draft.Education = education
	sess.State = session.StateDescription

	// Replace the choice prompt in place with the next question.
	edit := tgbotapi.NewEditMessageText(sess.ChatID, cq.Message.MessageID, msgAskDescription)
	if _, err := b.api.Send(edit); err != nil {
		logger.Error().Err(err).Msg("failed to edit education prompt")
	}
}

func (b *Bot) handleReview(ctx context.Context, logger zerolog.Logger, sess *session.Session, m *tgbotapi.Message) {
	switch ParseIntent(m.Text) {
	case IntentLike:
		viewer, err := b.onboarding.Profile(ctx, sess.ChatID)
		if err != nil {
			b.failTurn(logger, sess, err)
			return
		}

		result, err := b.matches.Like(ctx, viewer, sess.CandidateID)
		if errors.Is(err, domain.ErrProfileNotFound) {
			// The displayed candidate was deleted under us; move on
			// instead of re-prompting against a dead pointer.
			logger.Debug().Int64("candidate_id", sess.CandidateID).Msg("displayed candidate gone, advancing")
			b.showNext(ctx, logger, sess)
			return
		}
		if err != nil {
			b.failTurn(logger, sess, err)
			return
		}

		if result.IsMatch {
			card := b.renderCache.Rendered(ctx, result.Candidate)
			text := fmt.Sprintf(msgMatchReply, card, result.Candidate.Username)
			if result.Icebreaker != "" {
				text += "\n" + fmt.Sprintf(msgIcebreaker, result.Icebreaker)
			}
			b.reply(logger, sess.ChatID, text, nil)
			logger.Info().Int64("candidate_id", result.Candidate.ID).Msg("mutual match")
		}
		b.showNext(ctx, logger, sess)

	case IntentDislike:
		if err := b.matches.Dislike(ctx, sess.ChatID, sess.CandidateID); err != nil {
			b.failTurn(logger, sess, err)
			return
		}
		b.showNext(ctx, logger, sess)

	default:
		b.fallback(ctx, logger, sess, m.Text)
	}
}

// showNext draws the next random candidate and re-enters review, or returns
// to the menu when the feed ends.
func (b *Bot) showNext(ctx context.Context, logger zerolog.Logger, sess *session.Session) {
	candidate, err := b.matches.NextCandidate(ctx, sess.ChatID)
	b.present(ctx, logger, sess, candidate, err)
}

// fallback is the catch-all for input no state recognizes: only the
// continue affirmations do anything, resuming from a pending received like;
// everything else is silently ignored.
func (b *Bot) fallback(ctx context.Context, logger zerolog.Logger, sess *session.Session, text string) {
	if ParseIntent(text) != IntentContinue {
		logger.Debug().Str("state", sess.State.String()).Msg("unrecognized input ignored")
		return
	}

	// A continue affirmation never cancels onboarding midway.
	if sess.State != session.StateMain && sess.State != session.StateReview {
		logger.Debug().Str("state", sess.State.String()).Msg("continue ignored outside menu and review")
		return
	}

	// Same gate as the menu intents: review requires a profile.
	exists, err := b.onboarding.HasProfile(ctx, sess.ChatID)
	if err != nil {
		b.failTurn(logger, sess, err)
		return
	}
	if !exists {
		sess.BeginOnboarding()
		b.reply(logger, sess.ChatID, msgStart, nil)
		return
	}

	candidate, err := b.matches.ResumePending(ctx, sess.ChatID)
	b.present(ctx, logger, sess, candidate, err)
}

func (b *Bot) present(ctx context.Context, logger zerolog.Logger, sess *session.Session, candidate *domain.Profile, err error) {
	switch {
	case errors.Is(err, domain.ErrNoCandidates):
		sess.ToMain()
		b.reply(logger, sess.ChatID, msgNoProfiles, nil)
		b.reply(logger, sess.ChatID, msgChooseAction, mainKeyboard)

	case errors.Is(err, domain.ErrFeedExhausted):
		sess.ToMain()
		b.reply(logger, sess.ChatID, msgFeedExhausted, nil)
		b.reply(logger, sess.ChatID, msgChooseAction, mainKeyboard)

	case err != nil:
		b.failTurn(logger, sess, err)

	default:
		sess.ShowCandidate(candidate.ID)
		b.reply(logger, sess.ChatID, b.renderCache.Rendered(ctx, candidate), nil)
		b.reply(logger, sess.ChatID, msgChooseAction, reviewKeyboard)
	}
}
