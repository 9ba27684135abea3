// Package markup строит текст в Telegram Markdown (legacy parse mode).
package markup

import (
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// ParseMode — значение parse_mode для Telegram.
const ParseMode = tgbotapi.ModeMarkdown

const (
	NewLine   = "  \r\n"
	Paragraph = "\r\n\r\n"
)

func Bold(s string) string   { return "*" + s + "*" }
func Italic(s string) string { return "_" + s + "_" }
func Code(s string) string   { return "`" + s + "`" }

func Link(title, url string) string {
	return "[" + title + "](" + url + ")"
}

// Escape экранирует управляющие символы Markdown в пользовательском тексте.
// Внутри *...* или `...` экранирование не работает, туда его не передаём.
func Escape(s string) string {
	return tgbotapi.EscapeText(ParseMode, s)
}

// Number печатает балл без лишних нулей: 7 -> "7", 7.5 -> "7.5".
func Number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
