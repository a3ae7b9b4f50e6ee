package telegram

import (
	"context"

	"duet-bot/internal/cache"
	"duet-bot/internal/session"
	"duet-bot/internal/usecase/match"
	"duet-bot/internal/usecase/onboarding"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Bot dispatches incoming updates to the onboarding flow or the match
// engine based on each chat's session state.
type Bot struct {
	api         Sender
	sessions    *session.Store
	onboarding  *onboarding.UseCase
	matches     *match.UseCase
	renderCache *cache.RenderCache
}

func NewBot(
	api Sender,
	sessions *session.Store,
	onboardingUC *onboarding.UseCase,
	matchUC *match.UseCase,
	renderCache *cache.RenderCache,
) *Bot {
	return &Bot{
		api:         api,
		sessions:    sessions,
		onboarding:  onboardingUC,
		matches:     matchUC,
		renderCache: renderCache,
	}
}

const chatQueueSize = 16

// Run consumes updates until the context is cancelled or the channel
// closes. Updates are fanned out to one worker goroutine per chat, fed in
// receive order, so turns for the same chat are processed strictly in the
// order they arrived while distinct chats proceed concurrently.
func (b *Bot) Run(ctx context.Context, updates <-chan tgbotapi.Update) {
	queues := make(map[int64]chan tgbotapi.Update)
	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			chatID, ok := updateChatID(update)
			if !ok {
				continue
			}

			queue, exists := queues[chatID]
			if !exists {
				queue = make(chan tgbotapi.Update, chatQueueSize)
				queues[chatID] = queue
				go b.chatWorker(ctx, queue)
			}

			select {
			case queue <- update:
			default:
				// A blocking send here would stall every other chat.
				log.Warn().Int64("chat_id", chatID).Msg("chat queue full, update dropped")
			}
		}
	}
}

func (b *Bot) chatWorker(ctx context.Context, queue <-chan tgbotapi.Update) {
	for {
		select {
		case <-ctx.Done():
			return
		case update := <-queue:
			b.HandleUpdate(ctx, update)
		}
	}
}

func updateChatID(update tgbotapi.Update) (int64, bool) {
	switch {
	case update.CallbackQuery != nil && update.CallbackQuery.Message != nil:
		return update.CallbackQuery.Message.Chat.ID, true
	case update.Message != nil:
		return update.Message.Chat.ID, true
	default:
		return 0, false
	}
}

// HandleUpdate processes a single inbound event to completion, including
// store writes and any outbound notification.
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	chatID, ok := updateChatID(update)
	if !ok {
		return
	}

	logger := log.With().
		Str("trace_id", uuid.NewString()).
		Int64("chat_id", chatID).
		Logger()

	sess := b.sessions.Get(chatID)
	sess.Lock()
	defer sess.Unlock()

	if update.CallbackQuery != nil {
		b.handleEducationCallback(ctx, logger, sess, update.CallbackQuery)
		return
	}

	m := update.Message
	if m.IsCommand() {
		if m.Command() == "start" {
			b.handleStart(ctx, logger, sess)
		} else {
			logger.Debug().Str("command", m.Command()).Msg("unrecognized command ignored")
		}
		return
	}

	switch sess.State {
	case session.StateMain:
		b.handleMain(ctx, logger, sess, m)
	case session.StateName, session.StateFaculty, session.StateCourse,
		session.StateEducation, session.StateDescription, session.StateLink:
		b.handleOnboardingStep(ctx, logger, sess, m)
	case session.StateReview:
		b.handleReview(ctx, logger, sess, m)
	}
}

func (b *Bot) reply(logger zerolog.Logger, chatID int64, text string, markup interface{}) {
	msg := tgbotapi.NewMessage(chatID, text)
	if markup != nil {
		msg.ReplyMarkup = markup
	}
	if _, err := b.api.Send(msg); err != nil {
		logger.Error().Err(err).Msg("failed to send reply")
	}
}

// failTurn reports a failed store call: the turn is lost, the session state
// stays as it was, and the user is asked to retry.
func (b *Bot) failTurn(logger zerolog.Logger, sess *session.Session, err error) {
	logger.Error().Err(err).Str("state", sess.State.String()).Msg("turn failed")
	b.reply(logger, sess.ChatID, msgTryAgain, nil)
}
