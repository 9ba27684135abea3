package menu

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/progbase-bot/internal/bot"
)

// rowSize — кнопок в ряду.
const rowSize = 3

// CommandsMenu — клавиатура с командами бота, кроме /start: по ряду на rowSize кнопок.
func CommandsMenu() tgbotapi.ReplyKeyboardMarkup {
	var buttons []tgbotapi.KeyboardButton
	for _, c := range bot.Commands {
		if c.Kind == bot.KindSubscribe {
			continue
		}
		buttons = append(buttons, tgbotapi.NewKeyboardButton(c.Token))
	}

	var rows [][]tgbotapi.KeyboardButton
	for len(buttons) > 0 {
		n := min(rowSize, len(buttons))
		rows = append(rows, tgbotapi.NewKeyboardButtonRow(buttons[:n]...))
		buttons = buttons[n:]
	}
	kb := tgbotapi.NewReplyKeyboard(rows...)
	kb.ResizeKeyboard = true
	return kb
}
