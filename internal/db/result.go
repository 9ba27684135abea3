package db

import (
	"context"
	"database/sql"

	"github.com/Spok95/progbase-bot/internal/models"
)

const resultColumns = `username, course, task, updtime, source, commit, score::float8`

func scanResults(rows *sql.Rows) ([]models.TaskResult, error) {
	defer rows.Close()
	var out []models.TaskResult
	for rows.Next() {
		var (
			r     models.TaskResult
			score sql.NullFloat64
		)
		if err := rows.Scan(&r.Username, &r.Course, &r.Task, &r.UpdTime, &r.Source, &r.Commit, &score); err != nil {
			return nil, err
		}
		if score.Valid {
			r.Score = &score.Float64
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ListUserResults — результаты студента по модулю (course = moduleID).
func ListUserResults(ctx context.Context, database *sql.DB, username, moduleID string) ([]models.TaskResult, error) {
	rows, err := database.QueryContext(ctx, `
		SELECT `+resultColumns+`
		FROM task_results
		WHERE username = $1 AND course = $2
		ORDER BY task`, username, moduleID)
	if err != nil {
		return nil, err
	}
	return scanResults(rows)
}

// ListModuleResults — результаты всех студентов модуля, для экспорта.
func ListModuleResults(ctx context.Context, database *sql.DB, moduleID string) ([]models.TaskResult, error) {
	rows, err := database.QueryContext(ctx, `
		SELECT `+resultColumns+`
		FROM task_results
		WHERE course = $1
		ORDER BY username, task`, moduleID)
	if err != nil {
		return nil, err
	}
	return scanResults(rows)
}
