package db

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"github.com/Spok95/progbase-bot/internal/models"
)

// PendingNotification — проверенная сдача, о которой ещё не сообщили подписанному студенту.
type PendingNotification struct {
	User   models.User
	Task   models.Task
	Commit models.Commit
}

// DueCommitNotifications — проверенные, но не отправленные уведомления.
// Пользователи без telegram_id и сдачи по неизвестным заданиям не попадают в выборку.
func DueCommitNotifications(ctx context.Context, database *sql.DB, batch int) ([]PendingNotification, error) {
	rows, err := database.QueryContext(ctx, `
		SELECT c.id, c.username, c.course, c.task, c.updtime, c.source, c.commit,
		       c.checktime, c.comment, c.score::float8,
		       u.fullname, u.group_id, u.student_id, u.telegram_id,
		       t.id, t.module_id, t.type, t.title, t.score::float8, t.is_extra, t.is_published
		FROM commits c
		JOIN users u ON u.username = c.username
		JOIN tasks t ON t.module_id = c.course AND t.id = c.task
		WHERE c.checktime IS NOT NULL
		  AND c.notified_at IS NULL
		  AND u.telegram_id IS NOT NULL
		ORDER BY c.checktime, c.id
		LIMIT $1`, batch)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PendingNotification
	for rows.Next() {
		var (
			p       PendingNotification
			check   sql.NullTime
			comment sql.NullString
			score   sql.NullFloat64
			tg      int64
		)
		c := &p.Commit
		t := &p.Task
		if err := rows.Scan(&c.ID, &c.Username, &c.Course, &c.Task, &c.UpdTime, &c.Source, &c.Commit,
			&check, &comment, &score,
			&p.User.Fullname, &p.User.GroupID, &p.User.StudentID, &tg,
			&t.ID, &t.ModuleID, &t.Kind, &t.Title, &t.Score, &t.IsExtra, &t.IsPublished); err != nil {
			return nil, err
		}
		if check.Valid {
			c.CheckTime = &check.Time
		}
		if comment.Valid {
			c.Comment = &comment.String
		}
		if score.Valid {
			c.Score = &score.Float64
		}
		p.User.Username = c.Username
		p.User.TelegramID = &tg
		out = append(out, p)
	}
	return out, rows.Err()
}

// MarkCommitsNotified — пометить уведомления отправленными одним запросом.
func MarkCommitsNotified(ctx context.Context, database *sql.DB, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := database.ExecContext(ctx, `
		UPDATE commits SET notified_at = now()
		WHERE id = ANY($1) AND notified_at IS NULL`, pq.Array(ids))
	return err
}
