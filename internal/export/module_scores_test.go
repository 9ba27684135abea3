package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Spok95/progbase-bot/internal/models"
)

func f64(v float64) *float64 { return &v }

func TestModuleWorkbook(t *testing.T) {
	tasks := []models.Task{
		{ID: "lab1", Kind: models.KindLab, Score: 20},
		{ID: "hw1", Kind: models.KindHomework, Score: 10},
		{ID: "bonus", Kind: models.KindTest, Score: 5, IsExtra: true},
	}
	results := []models.TaskResult{
		{Username: "zoe", Task: "hw1", Score: f64(10)},
		{Username: "adam", Task: "lab1", Score: f64(15)},
		{Username: "adam", Task: "bonus", Score: f64(5)},
	}
	rows := 0
	f, err := ModuleWorkbook("progbase", tasks, results, func() { rows++ })
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, 2, rows)

	got, err := f.GetRows(SheetScores)
	require.NoError(t, err)
	require.Len(t, got, 4)
	assert.Equal(t, []string{"Username", "hw1", "lab1", "bonus", "Required", "Extra", "Total"}, got[0])
	assert.Equal(t, []string{"adam", "0", "15", "5", "15", "5", "20"}, got[1])
	assert.Equal(t, []string{"zoe", "10", "0", "0", "10", "0", "10"}, got[2])
	assert.Equal(t, []string{"max", "10", "20", "5", "30", "5", "35"}, got[3])
}

func TestModuleWorkbook_UnsupportedKind(t *testing.T) {
	_, err := ModuleWorkbook("m", []models.Task{{ID: "x", Kind: "quiz"}}, nil, nil)
	assert.Error(t, err)
}

func TestStudentCount(t *testing.T) {
	assert.Equal(t, 2, StudentCount([]models.TaskResult{{Username: "a"}, {Username: "b"}, {Username: "a"}}))
}

func TestModuleFilename(t *testing.T) {
	assert.Equal(t, "progbase_scores.xlsx", ModuleFilename("progbase"))
	assert.Equal(t, "web_prog_base_scores.xlsx", ModuleFilename(" web prog/base "))
	assert.Equal(t, "module_scores.xlsx", ModuleFilename(""))
}

func TestColumnName(t *testing.T) {
	assert.Equal(t, "A", columnName(1))
	assert.Equal(t, "Z", columnName(26))
	assert.Equal(t, "AA", columnName(27))
}
