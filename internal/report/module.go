// Package report собирает отчёт по баллам студента в модуле.
package report

import (
	"strconv"
	"strings"

	"github.com/Spok95/progbase-bot/internal/links"
	"github.com/Spok95/progbase-bot/internal/markup"
	"github.com/Spok95/progbase-bot/internal/models"
)

// HelpHint завершает каждый отчёт.
const HelpHint = "/help"

// Line — балл студента за одно задание.
type Line struct {
	TaskID string
	Score  float64
	Max    float64
}

// Group — задания одного типа с суммой баллов.
type Group struct {
	Title string
	Lines []Line
	Score float64
	Max   float64
}

// ModuleReport — агрегированные баллы, ещё не отрендеренные.
type ModuleReport struct {
	ModuleID      string
	RequiredCount int
	// Required всегда три группы: домашние, лабораторные, тесты.
	Required []Group
	Score    float64
	Max      float64
	// Extra == nil, если дополнительных заданий нет.
	Extra *Group
}

// Total — сумма обязательных и дополнительных баллов.
func (r *ModuleReport) Total() (score, maxScore float64) {
	score, maxScore = r.Score, r.Max
	if r.Extra != nil {
		score += r.Extra.Score
		maxScore += r.Extra.Max
	}
	return score, maxScore
}

var requiredOrder = []struct {
	kind  models.TaskKind
	title string
}{
	{models.KindHomework, "Homeworks"},
	{models.KindLab, "Labs"},
	{models.KindTest, "Tests"},
}

// Aggregate раскладывает задания по группам и считает суммы.
// tasks уже отфильтрованы по is_published.
func Aggregate(moduleID string, results []models.TaskResult, tasks []models.Task) (*ModuleReport, error) {
	byKind := make(map[models.TaskKind][]models.Task, len(requiredOrder))
	var extra []models.Task
	required := 0
	for _, t := range tasks {
		if _, err := links.KindSegment(t.Kind); err != nil {
			return nil, err
		}
		if t.IsExtra {
			extra = append(extra, t)
			continue
		}
		required++
		byKind[t.Kind] = append(byKind[t.Kind], t)
	}

	scores := achievedScores(results)
	rep := &ModuleReport{ModuleID: moduleID, RequiredCount: required}
	for _, g := range requiredOrder {
		grp := buildGroup(g.title, byKind[g.kind], scores)
		rep.Required = append(rep.Required, grp)
		rep.Score += grp.Score
		rep.Max += grp.Max
	}
	if len(extra) > 0 {
		grp := buildGroup("Extra tasks", extra, scores)
		rep.Extra = &grp
	}
	return rep, nil
}

// achievedScores — балл по id задания; учитывается первый результат.
func achievedScores(results []models.TaskResult) map[string]float64 {
	out := make(map[string]float64, len(results))
	for _, r := range results {
		if _, seen := out[r.Task]; seen {
			continue
		}
		var v float64
		if r.Score != nil {
			v = *r.Score
		}
		out[r.Task] = v
	}
	return out
}

func buildGroup(title string, tasks []models.Task, scores map[string]float64) Group {
	g := Group{Title: title, Lines: make([]Line, 0, len(tasks))}
	for _, t := range tasks {
		// без результата — 0; превышение максимума не обрезаем
		l := Line{TaskID: t.ID, Score: scores[t.ID], Max: t.Score}
		g.Lines = append(g.Lines, l)
		g.Score += l.Score
		g.Max += l.Max
	}
	return g
}

// Render печатает отчёт в Markdown.
func (r *ModuleReport) Render(lf links.Formatter) string {
	var b strings.Builder
	b.WriteString("Your scores in module ")
	b.WriteString(markup.Link(r.ModuleID, lf.Module(r.ModuleID)))
	b.WriteString(":" + markup.Paragraph)

	b.WriteString("Required tasks (" + strconv.Itoa(r.RequiredCount) + "):" + markup.NewLine)
	b.WriteString(markup.Code("---") + markup.NewLine)
	for _, g := range r.Required {
		writeGroup(&b, g)
	}
	b.WriteString(markup.Code("---") + markup.NewLine)
	b.WriteString(scoreOf(r.Score, r.Max) + " " + markup.Italic("total required scores"))

	if r.Extra != nil {
		b.WriteString(markup.Paragraph)
		writeGroup(&b, *r.Extra)
		b.WriteString(markup.Code("---") + markup.NewLine)
		b.WriteString(scoreOf(r.Extra.Score, r.Extra.Max) + " " + markup.Italic("total extra scores"))

		score, maxScore := r.Total()
		b.WriteString(markup.Paragraph + markup.Code("===") + markup.NewLine)
		b.WriteString(scoreOf(score, maxScore) + "  " + markup.Italic("total scores"))
	}
	b.WriteString(markup.Paragraph + HelpHint)
	return b.String()
}

func writeGroup(b *strings.Builder, g Group) {
	b.WriteString(markup.Bold(g.Title) + " (" + strconv.Itoa(len(g.Lines)) + "):" + markup.NewLine)
	for _, l := range g.Lines {
		b.WriteString(scoreOf(l.Score, l.Max) + ": " + markup.Code(l.TaskID) + markup.NewLine)
	}
}

func scoreOf(score, maxScore float64) string {
	return markup.Bold(markup.Number(score)) + "/" + markup.Number(maxScore)
}

// BuildModuleReport — агрегирует и рендерит отчёт за один вызов.
func BuildModuleReport(lf links.Formatter, moduleID string, results []models.TaskResult, tasks []models.Task) (string, error) {
	rep, err := Aggregate(moduleID, results, tasks)
	if err != nil {
		return "", err
	}
	return rep.Render(lf), nil
}
