package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Button is an inline button as stored in the catalog cache.
type Button struct {
	Text         string `json:"text"`
	CallbackData string `json:"callback_data"`
}

// Grid lays labels out in rows of perRow buttons. The label is also the
// callback payload.
func Grid(labels []string, perRow int) [][]Button {
	if perRow <= 0 {
		perRow = 2
	}
	rows := make([][]Button, 0, (len(labels)+perRow-1)/perRow)
	for i := 0; i < len(labels); i += perRow {
		end := i + perRow
		if end > len(labels) {
			end = len(labels)
		}
		row := make([]Button, 0, end-i)
		for _, l := range labels[i:end] {
			row = append(row, Button{Text: l, CallbackData: l})
		}
		rows = append(rows, row)
	}
	return rows
}

func InlineKeyboard(rows [][]Button) tgbotapi.InlineKeyboardMarkup {
	keyboard := make([][]tgbotapi.InlineKeyboardButton, 0, len(rows))
	for _, row := range rows {
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, b := range row {
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(b.Text, b.CallbackData))
		}
		keyboard = append(keyboard, tgbotapi.NewInlineKeyboardRow(buttons...))
	}
	return tgbotapi.NewInlineKeyboardMarkup(keyboard...)
}

// ContactKeyboard is a one-time reply keyboard with a single contact request button.
func ContactKeyboard(text string) tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButtonContact(text)),
	)
	kb.OneTimeKeyboard = true
	kb.ResizeKeyboard = true
	return kb
}
