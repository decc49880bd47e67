package models

import "time"

// Difficulty is a user-reported difficulty label for a task.
type Difficulty string

const (
	Difficult Difficulty = "difficult"
	JustRight Difficulty = "just_right"
	Easy      Difficulty = "easy"
)

// Valid reports whether d is one of the three known difficulty labels.
func (d Difficulty) Valid() bool {
	switch d {
	case Difficult, JustRight, Easy:
		return true
	}
	return false
}

// Task is one exercise in a user's weekly list. Identity is the task name,
// scoped to the owning user. Sets and Weight are optional; nil means the
// value was never provided, which partial updates keep distinct from an
// explicit zero.
type Task struct {
	Name               string     `json:"name"`
	Description        string     `json:"description"`
	Reps               int        `json:"reps"`
	Sets               *int       `json:"sets,omitempty"`
	Weight             *float64   `json:"weight,omitempty"`
	Completed          bool       `json:"completed"`
	PreviousDifficulty Difficulty `json:"previous_difficulty"`
}

// ProgressEntry is an archived week: the Sunday that began it and snapshots
// of the tasks completed during it. Entries are immutable once appended.
type ProgressEntry struct {
	WeekStart      time.Time `json:"week_start"`
	CompletedTasks []Task    `json:"completed_tasks"`
}

// TrackingRecord is the per-user tracking document: a free-text goal, the
// current weekly task list, and the append-only progress history.
type TrackingRecord struct {
	UserID          string          `json:"user_id"`
	Goal            string          `json:"goal"`
	WeeklyTasks     []Task          `json:"weekly_tasks"`
	ProgressHistory []ProgressEntry `json:"progress_history"`
}

// FindTask returns a pointer to the first task with the given name, or nil.
// Duplicate names are tolerated; name-keyed operations act on the first match.
func (r *TrackingRecord) FindTask(name string) *Task {
	for i := range r.WeeklyTasks {
		if r.WeeklyTasks[i].Name == name {
			return &r.WeeklyTasks[i]
		}
	}
	return nil
}
