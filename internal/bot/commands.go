package bot

import "strings"

// HandlerKind — какой обработчик обслуживает команду.
type HandlerKind int

const (
	KindSubscribe HandlerKind = iota
	KindModuleReport
	KindCatImage
	KindHelp
)

// Command — строка таблицы команд: токен, описание для справки, обработчик.
type Command struct {
	Token       string
	Description string
	Kind        HandlerKind
}

// CommandMarker — префикс любой команды.
const CommandMarker = "/"

// Commands — таблица команд в порядке вывода справки.
var Commands = []Command{
	{Token: "/start", Description: "subscribe for my notifications", Kind: KindSubscribe},
	{Token: "/progbase", Description: "get all your scores report of Progbase module", Kind: KindModuleReport},
	{Token: "/progbase2", Description: "get all your scores report of Progbase2 module", Kind: KindModuleReport},
	{Token: "/webprogbase", Description: "get all your scores report of WebProgbase module", Kind: KindModuleReport},
	{Token: "/cat", Description: "get random cat image :3", Kind: KindCatImage},
	{Token: "/help", Description: "get my help", Kind: KindHelp},
}

// Lookup — точное совпадение токена: без аргументов, с учётом регистра.
func Lookup(token string) (Command, bool) {
	for _, c := range Commands {
		if c.Token == token {
			return c, true
		}
	}
	return Command{}, false
}

// ModuleID — id модуля из команды отчёта: "/progbase2" -> "progbase2".
func ModuleID(token string) string {
	return strings.TrimPrefix(token, CommandMarker)
}
