package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Callback data values for inline buttons.
const (
	cbModeLearn      = "mode:learn"
	cbModePractice   = "mode:practice"
	cbNavNext        = "nav:next"
	cbNavPrev        = "nav:prev"
	cbMoreTechnical  = "more:technical"
	cbMoreBehavioral = "more:behavioral"
	cbEvaluate       = "evaluate"
	cbResults        = "results"
)

func modeKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📖 Learn", cbModeLearn),
			tgbotapi.NewInlineKeyboardButtonData("🎤 Practice", cbModePractice),
		),
	)
}

func questionKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⬅️ Prev", cbNavPrev),
			tgbotapi.NewInlineKeyboardButtonData("Next ➡️", cbNavNext),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➕ Technical", cbMoreTechnical),
			tgbotapi.NewInlineKeyboardButtonData("➕ Behavioral", cbMoreBehavioral),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Evaluate answers", cbEvaluate),
		),
	)
}

func learnKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➕ Technical", cbMoreTechnical),
			tgbotapi.NewInlineKeyboardButtonData("➕ Behavioral", cbMoreBehavioral),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎤 Switch to practice", cbModePractice),
		),
	)
}

func resultsKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 Show results", cbResults),
		),
	)
}
