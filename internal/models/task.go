package models

import "time"

type TaskKind string

// Значения совпадают с колонкой tasks.type в базе Progbase.
const (
	KindHomework TaskKind = "task"
	KindLab      TaskKind = "lab"
	KindTest     TaskKind = "test"
)

type Task struct {
	ID          string   `db:"id"`
	ModuleID    string   `db:"module_id"`
	Kind        TaskKind `db:"type"`
	Title       string   `db:"title"`
	Score       float64  `db:"score"`
	IsExtra     bool     `db:"is_extra"`
	IsPublished bool     `db:"is_published"`
}

// TaskResult — последняя оценка студента по заданию.
// Score == nil — ещё не проверено.
type TaskResult struct {
	Username string    `db:"username"`
	Course   string    `db:"course"`
	Task     string    `db:"task"`
	UpdTime  time.Time `db:"updtime"`
	Source   string    `db:"source"`
	Commit   string    `db:"commit"`
	Score    *float64  `db:"score"`
}

// Commit — отдельная сдача задания, по которой отправляется уведомление о проверке.
type Commit struct {
	ID        int64      `db:"id"`
	Username  string     `db:"username"`
	Course    string     `db:"course"`
	Task      string     `db:"task"`
	UpdTime   time.Time  `db:"updtime"`
	Source    string     `db:"source"`
	Commit    string     `db:"commit"`
	CheckTime *time.Time `db:"checktime"`
	Comment   *string    `db:"comment"`
	Score     *float64   `db:"score"`
}
