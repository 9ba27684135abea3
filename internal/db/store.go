package db

import (
	"context"
	"database/sql"

	"github.com/Spok95/progbase-bot/internal/models"
)

// Store — обёртка над *sql.DB с методами для роутера, нотификатора и CLI.
type Store struct {
	DB *sql.DB
}

func NewStore(database *sql.DB) *Store { return &Store{DB: database} }

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return GetUserByUsername(ctx, s.DB, username)
}

func (s *Store) SetTelegramID(ctx context.Context, username string, chatID int64) error {
	return SetTelegramID(ctx, s.DB, username, chatID)
}

func (s *Store) ListUserResults(ctx context.Context, username, moduleID string) ([]models.TaskResult, error) {
	return ListUserResults(ctx, s.DB, username, moduleID)
}

func (s *Store) ListModuleTasks(ctx context.Context, moduleID string) ([]models.Task, error) {
	return ListModuleTasks(ctx, s.DB, moduleID)
}

func (s *Store) ListModuleResults(ctx context.Context, moduleID string) ([]models.TaskResult, error) {
	return ListModuleResults(ctx, s.DB, moduleID)
}

func (s *Store) DueCommitNotifications(ctx context.Context, batch int) ([]PendingNotification, error) {
	return DueCommitNotifications(ctx, s.DB, batch)
}

func (s *Store) MarkCommitsNotified(ctx context.Context, ids []int64) error {
	return MarkCommitsNotified(ctx, s.DB, ids)
}

func (s *Store) Ping(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}
