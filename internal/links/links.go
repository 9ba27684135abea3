package links

import (
	"fmt"
	"strings"

	"github.com/Spok95/progbase-bot/internal/models"
)

const DefaultBaseURL = "https://progbase.herokuapp.com"

// UnsupportedKindError — у задания тип, для которого нет раздела на сайте.
type UnsupportedKindError struct {
	Kind models.TaskKind
}

func (e *UnsupportedKindError) Error() string {
	return fmt.Sprintf("unsupported task type '%s'", e.Kind)
}

// KindSegment — сегмент пути для типа задания.
func KindSegment(kind models.TaskKind) (string, error) {
	switch kind {
	case models.KindHomework:
		return "homeworks", nil
	case models.KindLab:
		return "labs", nil
	case models.KindTest:
		return "tests", nil
	default:
		return "", &UnsupportedKindError{Kind: kind}
	}
}

// Formatter строит ссылки на страницы модулей и заданий.
type Formatter struct {
	BaseURL string
}

func New(baseURL string) Formatter {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return Formatter{BaseURL: strings.TrimRight(baseURL, "/")}
}

func (f Formatter) Module(moduleID string) string {
	return f.BaseURL + "/modules/" + moduleID
}

func (f Formatter) Task(task models.Task) (string, error) {
	seg, err := KindSegment(task.Kind)
	if err != nil {
		return "", err
	}
	return f.Module(task.ModuleID) + "/" + seg + "/" + task.ID, nil
}
