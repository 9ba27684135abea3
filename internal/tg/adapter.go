package tg

import (
	"context"
	"fmt"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/progbase-bot/internal/bot"
	"github.com/Spok95/progbase-bot/internal/bot/menu"
	"github.com/Spok95/progbase-bot/internal/ctxutil"
	"github.com/Spok95/progbase-bot/internal/logging"
	"github.com/Spok95/progbase-bot/internal/markup"
	"github.com/Spok95/progbase-bot/internal/metrics"
	"github.com/Spok95/progbase-bot/internal/observability"
)

type Router interface {
	Route(ctx context.Context, msg bot.Message) (bot.Reply, error)
}

// Adapter связывает апдейты Telegram с роутером. Любая ошибка или паника
// обработчика превращается в bot.ApologyText.
type Adapter struct {
	sender  Sender
	router  Router
	log     *logging.Log
	limiter *ChatLimiter
	wg      sync.WaitGroup
}

func NewAdapter(sender Sender, router Router, log *logging.Log) *Adapter {
	if log == nil {
		log = logging.Nop()
	}
	return &Adapter{sender: sender, router: router, log: log, limiter: NewChatLimiter()}
}

// Run обрабатывает апдейты до отмены ctx, каждый — в своей горутине,
// и дожидается незавершённых обработчиков.
func (a *Adapter) Run(ctx context.Context, updates tgbotapi.UpdatesChannel) {
	defer a.wg.Wait()
	for {
		select {
		case <-ctx.Done():
			return
		case u, ok := <-updates:
			if !ok {
				return
			}
			a.wg.Add(1)
			go func() {
				defer a.wg.Done()
				a.HandleUpdate(ctx, u)
			}()
		}
	}
}

func (a *Adapter) HandleUpdate(ctx context.Context, u tgbotapi.Update) {
	if u.Message == nil || u.Message.Chat == nil {
		return
	}
	metrics.BotUpdates.Inc()
	msg := toMessage(u.Message)
	ctx = ctxutil.WithChatID(ctxutil.WithRequestID(ctx), msg.ChatID)

	unlock := a.limiter.lock(msg.ChatID)
	defer unlock()

	reply, err := a.route(ctx, msg)
	if err != nil {
		metrics.HandlerErrors.Inc()
		observability.CaptureErrCtx(ctx, err)
		a.log.For(ctx).Errorw("handler failed", "command", msg.Text, "err", err)
		reply = bot.Reply{ChatID: msg.ChatID, Text: bot.ApologyText, ParseMode: markup.ParseMode}
	}
	if err := a.deliver(reply); err != nil {
		a.log.For(ctx).Warnw("send failed", "err", err)
	}
}

func (a *Adapter) route(ctx context.Context, msg bot.Message) (reply bot.Reply, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in handler: %v", r)
		}
	}()
	return a.router.Route(ctx, msg)
}

func (a *Adapter) deliver(r bot.Reply) error {
	if r.IsPhoto() {
		p := tgbotapi.NewPhoto(r.ChatID, tgbotapi.FileURL(r.PhotoURL))
		p.Caption = r.Caption
		_, err := Send(a.sender, p)
		return err
	}
	m := tgbotapi.NewMessage(r.ChatID, r.Text)
	m.ParseMode = r.ParseMode
	if r.Menu {
		m.ReplyMarkup = menu.CommandsMenu()
	}
	_, err := Send(a.sender, m)
	return err
}

// SendText — отправка готового Markdown-текста, для push-уведомлений.
func SendText(sender Sender, chatID int64, text string) error {
	m := tgbotapi.NewMessage(chatID, text)
	m.ParseMode = markup.ParseMode
	_, err := Send(sender, m)
	return err
}

func toMessage(m *tgbotapi.Message) bot.Message {
	username := m.Chat.UserName
	if username == "" && m.From != nil {
		username = m.From.UserName
	}
	return bot.Message{ChatID: m.Chat.ID, Username: username, Text: m.Text}
}
