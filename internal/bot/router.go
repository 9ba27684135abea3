// Package bot разбирает команды чата и готовит ответы.
package bot

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/Spok95/progbase-bot/internal/ctxutil"
	"github.com/Spok95/progbase-bot/internal/links"
	"github.com/Spok95/progbase-bot/internal/logging"
	"github.com/Spok95/progbase-bot/internal/markup"
	"github.com/Spok95/progbase-bot/internal/metrics"
	"github.com/Spok95/progbase-bot/internal/models"
	"github.com/Spok95/progbase-bot/internal/report"
)

// Store — всё, что роутеру нужно от базы Progbase.
// GetUserByUsername возвращает (nil, nil), если пользователь не зарегистрирован.
type Store interface {
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	SetTelegramID(ctx context.Context, username string, chatID int64) error
	ListUserResults(ctx context.Context, username, moduleID string) ([]models.TaskResult, error)
	ListModuleTasks(ctx context.Context, moduleID string) ([]models.Task, error)
}

type ImageSource interface {
	RandomImage(ctx context.Context) (string, error)
}

// Message — входящее сообщение: адрес чата, username отправителя и текст.
type Message struct {
	ChatID   int64
	Username string
	Text     string
}

// Reply — либо текст, либо картинка с подписью.
type Reply struct {
	ChatID    int64
	Text      string
	ParseMode string
	PhotoURL  string
	Caption   string
	// Menu — приложить клавиатуру с командами модулей.
	Menu      bool
}

func (r Reply) IsPhoto() bool { return r.PhotoURL != "" }

type Router struct {
	store  Store
	images ImageSource
	links  links.Formatter
	log    *logging.Log
}

func NewRouter(store Store, images ImageSource, lf links.Formatter, log *logging.Log) *Router {
	if log == nil {
		log = logging.Nop()
	}
	return &Router{store: store, images: images, links: lf, log: log}
}

// Route выбирает обработчик по тексту сообщения. Ошибки не перехватываются:
// ответ с извинением отправляет транспорт.
func (r *Router) Route(ctx context.Context, msg Message) (Reply, error) {
	ctx = ctxutil.WithChatID(ctx, msg.ChatID)
	cmd, ok := Lookup(msg.Text)
	metrics.ObserveCommand(cmd.Token, ok)
	r.log.For(ctx).Infow("Got command", "command", msg.Text, "username", msg.Username)

	if !ok {
		return r.text(msg, helpText(msg.Username, msg.Text)), nil
	}
	ctx = ctxutil.WithOp(ctx, strings.TrimPrefix(cmd.Token, CommandMarker))

	switch cmd.Kind {
	case KindSubscribe:
		text, subscribed, err := r.subscribe(ctx, msg.ChatID, msg.Username)
		if err != nil {
			return Reply{}, err
		}
		rep := r.text(msg, text)
		rep.Menu = subscribed
		return rep, nil
	case KindModuleReport:
		text, err := r.ModuleReport(ctx, msg.Username, ModuleID(cmd.Token))
		if err != nil {
			return Reply{}, err
		}
		return r.text(msg, text), nil
	case KindCatImage:
		url, err := r.images.RandomImage(ctx)
		if err != nil {
			return Reply{}, fmt.Errorf("random image: %w", err)
		}
		return Reply{ChatID: msg.ChatID, Caption: CatCaption, PhotoURL: url}, nil
	default:
		return r.text(msg, helpText(msg.Username, msg.Text)), nil
	}
}

func (r *Router) text(msg Message, text string) Reply {
	return Reply{ChatID: msg.ChatID, Text: text, ParseMode: markup.ParseMode}
}

func (r *Router) lookupUser(ctx context.Context, username string) (*models.User, error) {
	dbctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()
	u, err := r.store.GetUserByUsername(dbctx, username)
	if err != nil {
		return nil, fmt.Errorf("lookup user %q: %w", username, err)
	}
	return u, nil
}

func (r *Router) subscribe(ctx context.Context, chatID int64, username string) (string, bool, error) {
	u, err := r.lookupUser(ctx, username)
	if err != nil {
		return "", false, err
	}
	if u == nil {
		return notRegisteredText(username), false, nil
	}
	dbctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()
	if err := r.store.SetTelegramID(dbctx, username, chatID); err != nil {
		return "", false, fmt.Errorf("set telegram id for %q: %w", username, err)
	}
	r.log.For(ctx).Infow("user subscribed", "username", username)
	return subscribedText(username), true, nil
}

// ModuleReport — отчёт по модулю для пользователя. Результаты и задания грузятся параллельно.
func (r *Router) ModuleReport(ctx context.Context, username, moduleID string) (string, error) {
	u, err := r.lookupUser(ctx, username)
	if err != nil {
		return "", err
	}
	if u == nil {
		return notRegisteredText(username), nil
	}

	var (
		results []models.TaskResult
		tasks   []models.Task
	)
	dbctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(dbctx)
	g.Go(func() error {
		var err error
		results, err = r.store.ListUserResults(gctx, username, moduleID)
		if err != nil {
			return fmt.Errorf("list results %s/%s: %w", username, moduleID, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		tasks, err = r.store.ListModuleTasks(gctx, moduleID)
		if err != nil {
			return fmt.Errorf("list tasks %s: %w", moduleID, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return "", err
	}

	return report.BuildModuleReport(r.links, moduleID, results, published(tasks))
}

func published(tasks []models.Task) []models.Task {
	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.IsPublished {
			out = append(out, t)
		}
	}
	return out
}
