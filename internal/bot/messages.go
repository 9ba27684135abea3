package bot

import (
	"strings"

	"github.com/Spok95/progbase-bot/internal/markup"
)

// ApologyText — единственный текст, который пользователь видит при любой внутренней ошибке.
const ApologyText = "Something went wrong. Try again later."

const CatCaption = "Meow"

func notRegisteredText(username string) string {
	return "User with Telegram username " + markup.Bold(username) + " is not registered on Progbase."
}

func subscribedText(username string) string {
	return "Hello, " + markup.Bold("Master "+username) + "! " +
		"Now you are subscribed to my notifications" +
		markup.Paragraph + "Use /help for my help."
}

// helpText — таблица команд; для /help без вступления «не понимаю».
func helpText(username, request string) string {
	var b strings.Builder
	if request != helpToken() {
		b.WriteString("I can't understand your command " + markup.Bold("Master "+username) + "." + markup.NewLine)
	}
	b.WriteString("What can I do for you?" + markup.NewLine)
	for _, c := range Commands {
		b.WriteString(c.Token + " - " + c.Description + markup.NewLine)
	}
	return b.String()
}

func helpToken() string {
	for _, c := range Commands {
		if c.Kind == KindHelp {
			return c.Token
		}
	}
	return ""
}
