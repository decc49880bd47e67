package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"

	"github.com/nvalenti/fitweek/internal/models"
)

var (
	_ list.Item = taskItem{}
	_ list.Item = progressItem{}
)

// taskItem wraps [models.Task] to implement [list.Item].
type taskItem struct {
	task models.Task
}

func (i taskItem) FilterValue() string { return i.task.Name }

func (i taskItem) Title() string {
	mark := "○"
	if i.task.Completed {
		mark = "✓"
	}
	return fmt.Sprintf("%s %s", mark, i.task.Name)
}

func (i taskItem) Description() string {
	desc := fmt.Sprintf("%d reps", i.task.Reps)
	if i.task.Sets != nil {
		desc = fmt.Sprintf("%d × %s", *i.task.Sets, desc)
	}
	if i.task.Weight != nil {
		desc = fmt.Sprintf("%s @ %g", desc, *i.task.Weight)
	}
	if i.task.Description != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.task.Description)
	}
	return desc
}

// progressItem wraps [models.ProgressEntry] to implement [list.Item].
type progressItem struct {
	entry models.ProgressEntry
}

func (i progressItem) FilterValue() string { return i.entry.WeekStart.Format("2006-01-02") }

func (i progressItem) Title() string {
	return fmt.Sprintf("Week of %s", i.entry.WeekStart.Format("Jan 2, 2006"))
}

func (i progressItem) Description() string {
	switch n := len(i.entry.CompletedTasks); n {
	case 0:
		return "no tasks completed"
	case 1:
		return "1 task completed"
	default:
		return fmt.Sprintf("%d tasks completed", n)
	}
}
