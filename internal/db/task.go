package db

import (
	"context"
	"database/sql"

	"github.com/Spok95/progbase-bot/internal/models"
)

// ListModuleTasks — все задания модуля, включая неопубликованные.
func ListModuleTasks(ctx context.Context, database *sql.DB, moduleID string) ([]models.Task, error) {
	rows, err := database.QueryContext(ctx, `
		SELECT id, module_id, type, title, score::float8, is_extra, is_published
		FROM tasks
		WHERE module_id = $1
		ORDER BY id`, moduleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Task
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.ModuleID, &t.Kind, &t.Title, &t.Score, &t.IsExtra, &t.IsPublished); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
