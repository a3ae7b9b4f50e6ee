package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Sender is the subset of the Telegram bot API the delivery layer uses.
// *tgbotapi.BotAPI satisfies it; tests substitute a recorder.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Notifier delivers like and match notifications to third-party chats.
type Notifier struct {
	api Sender
}

func NewNotifier(api Sender) *Notifier {
	return &Notifier{api: api}
}

// NotifyLiked sends the liker's card without revealing their identity, with
// a keep-watching affordance.
func (n *Notifier) NotifyLiked(ctx context.Context, chatID int64, likerCard string) error {
	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf(msgLikedBy, likerCard))
	msg.ReplyMarkup = continueKeyboard
	if _, err := n.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send like notification: %w", err)
	}
	return nil
}

// NotifyMatch sends the other side's card and contact handle, plus an
// optional icebreaker line, with a keep-browsing affordance.
func (n *Notifier) NotifyMatch(ctx context.Context, chatID int64, card, contact, icebreaker string) error {
	text := fmt.Sprintf(msgMatchNotify, card, contact)
	if icebreaker != "" {
		text += "\n" + fmt.Sprintf(msgIcebreaker, icebreaker)
	}
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = continueKeyboard
	if _, err := n.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send match notification: %w", err)
	}
	return nil
}
