package report

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Spok95/progbase-bot/internal/links"
	"github.com/Spok95/progbase-bot/internal/models"
)

var lf = links.New("https://progbase.example")

func score(v float64) *float64 { return &v }

func baseTasks() []models.Task {
	return []models.Task{
		{ID: "t1", ModuleID: "M1", Kind: models.KindHomework, Score: 10, IsPublished: true},
		{ID: "t2", ModuleID: "M1", Kind: models.KindLab, Score: 20, IsPublished: true},
	}
}

func TestBuildModuleReport_RequiredOnly(t *testing.T) {
	results := []models.TaskResult{{Username: "u", Course: "M1", Task: "t1", Score: score(7)}}

	got, err := BuildModuleReport(lf, "M1", results, baseTasks())
	require.NoError(t, err)

	want := "Your scores in module [M1](https://progbase.example/modules/M1):\r\n\r\n" +
		"Required tasks (2):  \r\n`---`  \r\n" +
		"*Homeworks* (1):  \r\n*7*/10: `t1`  \r\n" +
		"*Labs* (1):  \r\n*0*/20: `t2`  \r\n" +
		"*Tests* (0):  \r\n" +
		"`---`  \r\n*7*/30 _total required scores_" +
		"\r\n\r\n/help"
	assert.Equal(t, want, got)
	assert.NotContains(t, got, "total scores_")
}

func TestBuildModuleReport_WithExtra(t *testing.T) {
	tasks := append(baseTasks(), models.Task{ID: "e1", ModuleID: "M1", Kind: models.KindHomework, Score: 5, IsExtra: true, IsPublished: true})
	results := []models.TaskResult{{Task: "t1", Score: score(7)}}

	rep, err := Aggregate("M1", results, tasks)
	require.NoError(t, err)
	require.NotNil(t, rep.Extra)
	assert.Equal(t, 0.0, rep.Extra.Score)
	assert.Equal(t, 5.0, rep.Extra.Max)
	total, maxTotal := rep.Total()
	assert.Equal(t, 7.0, total)
	assert.Equal(t, 35.0, maxTotal)

	got := rep.Render(lf)
	assert.Contains(t, got, "*7*/30 _total required scores_\r\n\r\n*Extra tasks* (1):  \r\n*0*/5: `e1`  \r\n")
	assert.Contains(t, got, "`---`  \r\n*0*/5 _total extra scores_")
	assert.True(t, strings.HasSuffix(got, "\r\n\r\n`===`  \r\n*7*/35  _total scores_\r\n\r\n/help"))
}

func TestAggregate_StableOrder(t *testing.T) {
	tasks := []models.Task{
		{ID: "x1", Kind: models.KindHomework, Score: 1, IsExtra: true},
		{ID: "test1", Kind: models.KindTest, Score: 3},
		{ID: "lab1", Kind: models.KindLab, Score: 2},
		{ID: "hw1", Kind: models.KindHomework, Score: 1},
	}
	rep, err := Aggregate("m", nil, tasks)
	require.NoError(t, err)

	var titles []string
	for _, g := range rep.Required {
		titles = append(titles, g.Title)
	}
	assert.Equal(t, []string{"Homeworks", "Labs", "Tests"}, titles)

	out := rep.Render(lf)
	hw := strings.Index(out, "`hw1`")
	lab := strings.Index(out, "`lab1`")
	tst := strings.Index(out, "`test1`")
	extra := strings.Index(out, "`x1`")
	assert.True(t, hw < lab && lab < tst && tst < extra, out)
}

func TestAggregate_SumsMatchLines(t *testing.T) {
	tasks := []models.Task{
		{ID: "a", Kind: models.KindHomework, Score: 10},
		{ID: "b", Kind: models.KindHomework, Score: 10},
		{ID: "c", Kind: models.KindLab, Score: 15},
		{ID: "d", Kind: models.KindTest, Score: 30},
		{ID: "e", Kind: models.KindLab, Score: 5, IsExtra: true},
	}
	results := []models.TaskResult{
		{Task: "a", Score: score(4)},
		{Task: "b"},
		{Task: "c", Score: score(15)},
		{Task: "d", Score: score(12.5)},
		{Task: "e", Score: score(2)},
		{Task: "unknown", Score: score(100)},
	}
	rep, err := Aggregate("m", results, tasks)
	require.NoError(t, err)

	var lines float64
	for _, g := range rep.Required {
		var sum float64
		for _, l := range g.Lines {
			sum += l.Score
			assert.LessOrEqual(t, l.Score, l.Max)
		}
		assert.Equal(t, g.Score, sum)
		lines += sum
	}
	assert.Equal(t, 31.5, rep.Score)
	assert.Equal(t, lines, rep.Score)
	assert.Equal(t, 65.0, rep.Max)
	assert.Equal(t, 2.0, rep.Extra.Score)
}

func TestAggregate_ScoreAboveMaxNotClamped(t *testing.T) {
	tasks := []models.Task{{ID: "t1", Kind: models.KindHomework, Score: 10}}
	rep, err := Aggregate("m", []models.TaskResult{{Task: "t1", Score: score(12)}}, tasks)
	require.NoError(t, err)
	assert.Equal(t, 12.0, rep.Score)
	assert.Contains(t, rep.Render(lf), "*12*/10: `t1`")
}

func TestAggregate_UnmatchedTaskListed(t *testing.T) {
	rep, err := Aggregate("m", nil, []models.Task{{ID: "t9", Kind: models.KindTest, Score: 40}})
	require.NoError(t, err)
	assert.Equal(t, []Line{{TaskID: "t9", Score: 0, Max: 40}}, rep.Required[2].Lines)
	assert.Nil(t, rep.Extra)
}

func TestAggregate_UnsupportedKind(t *testing.T) {
	tasks := append(baseTasks(), models.Task{ID: "q", Kind: "quiz", Score: 1})
	_, err := BuildModuleReport(lf, "M1", nil, tasks)

	var kindErr *links.UnsupportedKindError
	require.True(t, errors.As(err, &kindErr))
	assert.Equal(t, models.TaskKind("quiz"), kindErr.Kind)
}

func TestBuildModuleReport_Deterministic(t *testing.T) {
	tasks := append(baseTasks(), models.Task{ID: "e1", Kind: models.KindLab, Score: 5, IsExtra: true})
	results := []models.TaskResult{{Task: "t2", Score: score(18)}, {Task: "e1", Score: score(1)}}

	a, err := BuildModuleReport(lf, "M1", results, tasks)
	require.NoError(t, err)
	b, err := BuildModuleReport(lf, "M1", results, tasks)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
