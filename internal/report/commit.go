package report

import (
	"github.com/Spok95/progbase-bot/internal/links"
	"github.com/Spok95/progbase-bot/internal/markup"
	"github.com/Spok95/progbase-bot/internal/models"
)

// CommitChecked — текст push-уведомления о проверенной сдаче.
func CommitChecked(lf links.Formatter, task models.Task, c models.Commit) (string, error) {
	url, err := lf.Task(task)
	if err != nil {
		return "", err
	}
	score := "-"
	if c.Score != nil && *c.Score != 0 {
		score = markup.Number(*c.Score)
	}
	text := "Your task was checked:" + markup.NewLine +
		markup.Bold(`"`+task.Title+`"`) + markup.NewLine +
		markup.Link(c.Course+"/"+c.Task, url) + markup.Paragraph +
		"Score: " + markup.Bold(score) + "/" + markup.Number(task.Score)
	if c.Comment != nil && *c.Comment != "" {
		text += markup.Paragraph + markup.Escape(*c.Comment)
	}
	return text, nil
}
