package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/Spok95/progbase-bot/internal/ctxutil"
	"github.com/Spok95/progbase-bot/internal/db"
	"github.com/Spok95/progbase-bot/internal/links"
	"github.com/Spok95/progbase-bot/internal/logging"
	"github.com/Spok95/progbase-bot/internal/metrics"
	"github.com/Spok95/progbase-bot/internal/models"
	"github.com/Spok95/progbase-bot/internal/observability"
	"github.com/Spok95/progbase-bot/internal/report"
	"github.com/Spok95/progbase-bot/internal/tg"
)

// ErrNoPushTarget — у пользователя нет сохранённого чата для уведомлений.
var ErrNoPushTarget = errors.New("user has no push target")

// NotificationStore — очередь уведомлений о проверенных сдачах.
type NotificationStore interface {
	DueCommitNotifications(ctx context.Context, batch int) ([]db.PendingNotification, error)
	MarkCommitsNotified(ctx context.Context, ids []int64) error
}

// Notifier рассылает уведомления о проверенных сдачах.
type Notifier struct {
	sender tg.Sender
	store  NotificationStore
	links  links.Formatter
	log    *logging.Log
	batch  int
}

func NewNotifier(sender tg.Sender, store NotificationStore, lf links.Formatter, log *logging.Log, batch int) *Notifier {
	if log == nil {
		log = logging.Nop()
	}
	if batch <= 0 {
		batch = 50
	}
	return &Notifier{sender: sender, store: store, links: lf, log: log, batch: batch}
}

// NotifyCommit отправляет одно уведомление на сохранённый чат пользователя.
func (n *Notifier) NotifyCommit(ctx context.Context, user models.User, task models.Task, commit models.Commit) error {
	if !user.Subscribed() {
		return ErrNoPushTarget
	}
	text, err := report.CommitChecked(n.links, task, commit)
	if err != nil {
		return err
	}
	if err := tg.SendText(n.sender, *user.TelegramID, text); err != nil {
		return fmt.Errorf("send to %s: %w", user.Username, err)
	}
	metrics.NotificationsSent.Inc()
	return nil
}

// Run — один проход: выбрать ожидающие уведомления, отправить, пометить.
// Ошибки отправки оставляют сдачу в очереди; сдачи с неизвестным типом задания
// помечаются сразу, повтор их не исправит.
func (n *Notifier) Run(ctx context.Context) error {
	ctx = ctxutil.WithOp(ctx, "commit_notify")
	dbctx, cancel := ctxutil.WithDBTimeout(ctx)
	due, err := n.store.DueCommitNotifications(dbctx, n.batch)
	cancel()
	if err != nil {
		return fmt.Errorf("load due notifications: %w", err)
	}
	if len(due) == 0 {
		return nil
	}

	var errs []error
	done := make([]int64, 0, len(due))
	for _, p := range due {
		err := n.NotifyCommit(ctx, p.User, p.Task, p.Commit)
		var kindErr *links.UnsupportedKindError
		switch {
		case err == nil:
			done = append(done, p.Commit.ID)
		case errors.As(err, &kindErr):
			observability.CaptureErrCtx(ctx, err)
			n.log.For(ctx).Errorw("drop notification", "commit_id", p.Commit.ID, "err", err)
			done = append(done, p.Commit.ID)
		default:
			n.log.For(ctx).Warnw("notification not sent", "commit_id", p.Commit.ID, "err", err)
			errs = append(errs, err)
		}
	}

	if len(done) > 0 {
		dbctx, cancel := ctxutil.WithDBTimeout(ctx)
		defer cancel()
		if err := n.store.MarkCommitsNotified(dbctx, done); err != nil {
			errs = append(errs, fmt.Errorf("mark notified: %w", err))
		}
	}
	return errors.Join(errs...)
}
