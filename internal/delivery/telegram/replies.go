package telegram

import (
	"duet-bot/internal/domain"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	ButtonMyProfile = "Моя анкета"
	ButtonEdit      = "Редактировать"
	ButtonBrowse    = "Смотреть анкеты"
	ButtonAbout     = "О боте"
	ButtonLike      = "❤️"
	ButtonDislike   = "👎"
	ButtonContinue  = "Продолжить"
)

const (
	msgStart = "Привет! Это бот знакомств для студентов-музыкантов.\n" +
		"Давай заполним анкету.\nВведи имя:"
	msgChooseAction   = "Выбери действие:"
	msgAskName        = "Введи имя:"
	msgAskFaculty     = "С какого ты факультета?"
	msgAskCourse      = "На каком ты курсе? Введи число:"
	msgAskEducation   = "Какое у тебя музыкальное образование?"
	msgAskDescription = "Расскажи немного о себе:"
	msgAskLink        = "Оставь ссылку для связи:"
	msgProfileSaved   = "Профиль сохранен"
	msgNoProfiles     = "Профилей пока нет"
	msgFeedExhausted  = "Ты посмотрел все анкеты. Загляни позже!"
	msgLikedBy        = "Твой профиль понравился\n%s\n\nПродолжай смотреть анкеты, чтобы узнать кто это"
	msgMatchNotify    = "Это мэтч!\nТвой профиль понравился\n%s\nНачинай общаться 👉%s"
	msgMatchReply     = "Это мэтч!\n%s\nНачинай общаться 👉%s"
	msgIcebreaker     = "💡 Для начала разговора: %s"
	msgAbout          = "Бот знакомит студентов-музыкантов. Заполни анкету, " +
		"смотри анкеты других и ставь ❤️. При взаимной симпатии вы получите контакты друг друга."
	msgTryAgain = "Что-то пошло не так, попробуй ещё раз"
)

var mainKeyboard = tgbotapi.NewReplyKeyboard(
	tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton(ButtonMyProfile),
		tgbotapi.NewKeyboardButton(ButtonEdit),
	),
	tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton(ButtonBrowse),
		tgbotapi.NewKeyboardButton(ButtonAbout),
	),
)

var reviewKeyboard = tgbotapi.NewReplyKeyboard(
	tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton(ButtonLike),
		tgbotapi.NewKeyboardButton(ButtonDislike),
	),
)

var continueKeyboard = tgbotapi.NewReplyKeyboard(
	tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton(ButtonContinue),
	),
)

const educationCallbackPrefix = "edu:"

// educationKeyboard offers the closed education list as inline buttons, one
// level per row, in the fixed presentation order.
func educationKeyboard() tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(domain.EducationLevels()))
	for _, level := range domain.EducationLevels() {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(level.Label(), educationCallbackPrefix+string(level)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
