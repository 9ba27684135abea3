package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Spok95/progbase-bot/internal/models"
)

// GetUserByUsername — (nil, nil), если такого пользователя нет.
func GetUserByUsername(ctx context.Context, database *sql.DB, username string) (*models.User, error) {
	var (
		u  models.User
		tg sql.NullInt64
	)
	err := database.QueryRowContext(ctx, `
		SELECT username, fullname, group_id, student_id, telegram_id
		FROM users WHERE username = $1`, username).
		Scan(&u.Username, &u.Fullname, &u.GroupID, &u.StudentID, &tg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if tg.Valid {
		u.TelegramID = &tg.Int64
	}
	return &u, nil
}

// SetTelegramID привязывает чат к пользователю. Если этот чат был привязан
// к другому username, старая привязка снимается.
func SetTelegramID(ctx context.Context, database *sql.DB, username string, chatID int64) error {
	tx, err := database.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`UPDATE users SET telegram_id = NULL WHERE telegram_id = $1 AND username <> $2`,
		chatID, username); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `UPDATE users SET telegram_id = $1 WHERE username = $2`, chatID, username)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n != 1 {
		return ErrUserNotFound
	}
	return tx.Commit()
}

var ErrUserNotFound = errors.New("user not found")
