package export

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/Spok95/progbase-bot/internal/models"
	"github.com/Spok95/progbase-bot/internal/report"
)

const SheetScores = "Scores"

// ModuleWorkbook — одна строка на студента: баллы по каждому заданию
// в порядке отчёта, затем суммы обязательных, дополнительных и общая.
// tasks уже отфильтрованы по is_published. progress вызывается после каждой строки.
func ModuleWorkbook(moduleID string, tasks []models.Task, results []models.TaskResult, progress func()) (*excelize.File, error) {
	byUser := make(map[string][]models.TaskResult)
	for _, r := range results {
		byUser[r.Username] = append(byUser[r.Username], r)
	}
	users := make([]string, 0, len(byUser))
	for u := range byUser {
		users = append(users, u)
	}
	sort.Strings(users)

	// шапку строим по пустому отчёту: порядок колонок не зависит от студента
	layout, err := report.Aggregate(moduleID, nil, tasks)
	if err != nil {
		return nil, err
	}
	header := []any{"Username"}
	for _, l := range lines(layout) {
		header = append(header, l.TaskID)
	}
	header = append(header, "Required", "Extra", "Total")

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetScores); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(SheetScores, "A1", &header); err != nil {
		return nil, err
	}

	for i, u := range users {
		rep, err := report.Aggregate(moduleID, byUser[u], tasks)
		if err != nil {
			return nil, err
		}
		row := []any{u}
		for _, l := range lines(rep) {
			row = append(row, l.Score)
		}
		var extra float64
		if rep.Extra != nil {
			extra = rep.Extra.Score
		}
		total, _ := rep.Total()
		row = append(row, rep.Score, extra, total)

		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(SheetScores, cell, &row); err != nil {
			return nil, err
		}
		if progress != nil {
			progress()
		}
	}

	// строка максимумов внизу
	maxRow := []any{"max"}
	for _, l := range lines(layout) {
		maxRow = append(maxRow, l.Max)
	}
	var extraMax float64
	if layout.Extra != nil {
		extraMax = layout.Extra.Max
	}
	_, totalMax := layout.Total()
	maxRow = append(maxRow, layout.Max, extraMax, totalMax)
	cell, _ := excelize.CoordinatesToCellName(1, len(users)+2)
	if err := f.SetSheetRow(SheetScores, cell, &maxRow); err != nil {
		return nil, err
	}

	if err := ApplyDefaultExcelFormatting(f, SheetScores); err != nil {
		return nil, err
	}
	return f, nil
}

// StudentCount — сколько строк-студентов будет в выгрузке (для прогресс-бара).
func StudentCount(results []models.TaskResult) int {
	seen := make(map[string]struct{})
	for _, r := range results {
		seen[r.Username] = struct{}{}
	}
	return len(seen)
}

func lines(rep *report.ModuleReport) []report.Line {
	var out []report.Line
	for _, g := range rep.Required {
		out = append(out, g.Lines...)
	}
	if rep.Extra != nil {
		out = append(out, rep.Extra.Lines...)
	}
	return out
}
