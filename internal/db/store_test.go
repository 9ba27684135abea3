//go:build testutil
// +build testutil

package db_test

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Spok95/progbase-bot/internal/db"
	"github.com/Spok95/progbase-bot/internal/models"
	"github.com/Spok95/progbase-bot/internal/testutil/testdb"
)

func startDB(t *testing.T) *testdb.DBHandle {
	t.Helper()
	h, err := testdb.Start(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(h.Close)
	return h
}

func mustExec(t *testing.T, dbx *sql.DB, q string, args ...any) {
	t.Helper()
	if _, err := dbx.Exec(q, args...); err != nil {
		t.Fatal(err)
	}
}

func seed(t *testing.T, dbx *sql.DB) {
	t.Helper()
	mustExec(t, dbx, `INSERT INTO users (username, fullname) VALUES ('alice', 'Alice A'), ('bob', 'Bob B')`)
	mustExec(t, dbx, `
		INSERT INTO tasks (module_id, id, type, title, score, is_extra, is_published) VALUES
		('progbase', 't1', 'task', 'Hello', 10, false, true),
		('progbase', 't2', 'lab',  'Lists', 20, false, true),
		('progbase', 'e1', 'task', 'Bonus', 5,  true,  false),
		('webprogbase', 'w1', 'test', 'HTTP', 30, false, true)`)
	mustExec(t, dbx, `
		INSERT INTO task_results (username, course, task, score) VALUES
		('alice', 'progbase', 't1', 7),
		('alice', 'progbase', 't2', NULL),
		('alice', 'webprogbase', 'w1', 25),
		('bob', 'progbase', 't1', 10)`)
}

func TestStore_Lookups(t *testing.T) {
	h := startDB(t)
	seed(t, h.DB)
	ctx := context.Background()
	s := db.NewStore(h.DB)

	u, err := s.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "Alice A", u.Fullname)
	assert.False(t, u.Subscribed())

	missing, err := s.GetUserByUsername(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, missing)

	tasks, err := s.ListModuleTasks(ctx, "progbase")
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, "e1", tasks[0].ID)
	assert.False(t, tasks[0].IsPublished)
	assert.Equal(t, models.KindLab, tasks[2].Kind)
	assert.Equal(t, 20.0, tasks[2].Score)

	results, err := s.ListUserResults(ctx, "alice", "progbase")
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.NotNil(t, results[0].Score)
	assert.Equal(t, 7.0, *results[0].Score)
	assert.Nil(t, results[1].Score)

	all, err := s.ListModuleResults(ctx, "progbase")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestStore_SetTelegramID(t *testing.T) {
	h := startDB(t)
	seed(t, h.DB)
	ctx := context.Background()
	s := db.NewStore(h.DB)

	require.NoError(t, s.SetTelegramID(ctx, "alice", 100))
	// тот же чат у другого пользователя — у alice привязка снимается
	require.NoError(t, s.SetTelegramID(ctx, "bob", 100))

	alice, _ := s.GetUserByUsername(ctx, "alice")
	bob, _ := s.GetUserByUsername(ctx, "bob")
	assert.Nil(t, alice.TelegramID)
	require.NotNil(t, bob.TelegramID)
	assert.Equal(t, int64(100), *bob.TelegramID)

	assert.ErrorIs(t, s.SetTelegramID(ctx, "nobody", 1), db.ErrUserNotFound)
}

func TestStore_SetTelegramID_Parallel(t *testing.T) {
	h := startDB(t)
	seed(t, h.DB)
	ctx := context.Background()
	s := db.NewStore(h.DB)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(chat int64) {
			defer wg.Done()
			_ = s.SetTelegramID(ctx, "alice", chat)
		}(int64(1000 + i))
	}
	wg.Wait()

	var n int
	require.NoError(t, h.DB.QueryRow(`SELECT count(*) FROM users WHERE telegram_id IS NOT NULL`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestCommitNotifications(t *testing.T) {
	h := startDB(t)
	seed(t, h.DB)
	ctx := context.Background()
	s := db.NewStore(h.DB)
	require.NoError(t, s.SetTelegramID(ctx, "alice", 42))

	checked := time.Now().Add(-time.Minute)
	mustExec(t, h.DB, `
		INSERT INTO commits (username, course, task, checktime, comment, score) VALUES
		('alice', 'progbase', 't2', $1, 'good', 18),
		('alice', 'progbase', 't1', NULL, NULL, NULL),
		('bob',   'progbase', 't1', $1, NULL, 10),
		('alice', 'progbase', 'gone', $1, NULL, 1)`, checked)

	due, err := s.DueCommitNotifications(ctx, 10)
	require.NoError(t, err)
	require.Len(t, due, 1)
	p := due[0]
	assert.Equal(t, int64(42), *p.User.TelegramID)
	assert.Equal(t, "Lists", p.Task.Title)
	assert.Equal(t, "good", *p.Commit.Comment)
	assert.Equal(t, 18.0, *p.Commit.Score)

	require.NoError(t, s.MarkCommitsNotified(ctx, []int64{p.Commit.ID}))
	due, err = s.DueCommitNotifications(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, due)
	assert.NoError(t, s.MarkCommitsNotified(ctx, nil))
}
