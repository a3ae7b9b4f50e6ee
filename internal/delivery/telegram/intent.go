package telegram

import "strings"

// Intent is the enumerated command a piece of incoming text maps to. The
// mapping from raw button/message text lives only here; handlers dispatch
// on intents, never on strings.
type Intent int

const (
	IntentUnknown Intent = iota
	IntentMyProfile
	IntentEdit
	IntentBrowse
	IntentAbout
	IntentLike
	IntentDislike
	IntentContinue
)

func (i Intent) String() string {
	switch i {
	case IntentMyProfile:
		return "my_profile"
	case IntentEdit:
		return "edit"
	case IntentBrowse:
		return "browse"
	case IntentAbout:
		return "about"
	case IntentLike:
		return "like"
	case IntentDislike:
		return "dislike"
	case IntentContinue:
		return "continue"
	default:
		return "unknown"
	}
}

// ParseIntent resolves message text to an intent. Button texts match
// exactly; the continue affirmations are matched case-insensitively since
// users also type them by hand.
func ParseIntent(text string) Intent {
	switch strings.TrimSpace(text) {
	case ButtonMyProfile:
		return IntentMyProfile
	case ButtonEdit:
		return IntentEdit
	case ButtonBrowse:
		return IntentBrowse
	case ButtonAbout:
		return IntentAbout
	case ButtonLike:
		return IntentLike
	case ButtonDislike:
		return IntentDislike
	}

	switch strings.ToLower(strings.TrimSpace(text)) {
	case "продолжить", "дальше", "продолжаем":
		return IntentContinue
	}

	return IntentUnknown
}
