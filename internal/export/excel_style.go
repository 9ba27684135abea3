package export

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ApplyDefaultExcelFormatting — жирная шапка, автофильтр по первой строке
// и примерная ширина колонок по содержимому.
func ApplyDefaultExcelFormatting(f *excelize.File, sheet string) error {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return err
	}
	cols := 0
	for _, r := range rows {
		if len(r) > cols {
			cols = len(r)
		}
	}
	if cols == 0 {
		return nil
	}
	last := columnName(cols)

	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		_ = f.SetCellStyle(sheet, "A1", last+"1", style)
	}
	_ = f.AutoFilter(sheet, fmt.Sprintf("A1:%s1", last), nil)
	_ = f.SetPanes(sheet, &excelize.Panes{Freeze: true, XSplit: 1, YSplit: 1, TopLeftCell: "B2", ActivePane: "bottomRight"})

	widths := make([]float64, cols)
	for c := range widths {
		widths[c] = 8
	}
	for rIdx, row := range rows {
		for cIdx, v := range row {
			w := float64(len([]rune(v))) * 1.1
			if rIdx == 0 {
				w += 1.5
			}
			if w > 40 {
				w = 40
			}
			if w > widths[cIdx] {
				widths[cIdx] = w
			}
		}
	}
	for i, w := range widths {
		col := columnName(i + 1)
		_ = f.SetColWidth(sheet, col, col, w)
	}
	return nil
}

// columnName: 1 -> A; 27 -> AA
func columnName(n int) string {
	s := ""
	for n > 0 {
		n--
		s = string(rune('A'+(n%26))) + s
		n /= 26
	}
	return s
}

var invalidFileRe = regexp.MustCompile(`[\\/:*?"<>|]+`)

// ModuleFilename — имя файла выгрузки модуля.
func ModuleFilename(moduleID string) string {
	s := strings.Join(strings.Fields(strings.TrimSpace(moduleID)), "_")
	if s == "" {
		s = "module"
	}
	return invalidFileRe.ReplaceAllString(s, "_") + "_scores.xlsx"
}
