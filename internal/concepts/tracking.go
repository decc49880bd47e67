package concepts

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/nvalenti/fitweek/internal/models"
	"github.com/nvalenti/fitweek/internal/repositories"
	"github.com/nvalenti/fitweek/internal/shared"
)

// NoSuggestion is returned by [Tracking.ReportDifficulty] when the difficulty
// history does not trigger an adjustment.
const NoSuggestion = "no suggestion"

// Adjustment suggestion texts. The rule only fires on two identical
// difficulty reports in a row; see [Tracking.ReportDifficulty].
const (
	suggestDecreaseWeight = "decrease the weight by 5 next session"
	suggestDecreaseReps   = "decrease the reps by 2 next session"
	suggestIncreaseWeight = "increase the weight next session"
	suggestIncreaseReps   = "increase the reps next session"
)

// Tracking manages each user's weekly exercise task list: task CRUD,
// completion state, the weekly reset/archive cycle, and difficulty feedback.
//
// Every mutation takes the user's lock, loads the record, mutates it in
// memory, and writes it back whole.
type Tracking struct {
	store *repositories.TrackingRepository
	locks *userLocks
	now   func() time.Time
}

// NewTracking creates a Tracking concept over the given store.
func NewTracking(store *repositories.TrackingRepository) *Tracking {
	return &Tracking{store: store, locks: newUserLocks(), now: time.Now}
}

// CreateRecord returns the user's tracking record, creating an empty one if
// none exists yet. Idempotent.
func (t *Tracking) CreateRecord(userID string) (*models.TrackingRecord, error) {
	defer t.locks.acquire(userID)()
	return t.ensureRecord(userID)
}

// ensureRecord implements create-if-absent. Callers must hold the user lock.
func (t *Tracking) ensureRecord(userID string) (*models.TrackingRecord, error) {
	record, err := t.store.FindByUser(userID)
	if err == nil {
		return record, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	return t.store.Create(userID)
}

// CreateTask appends a new task to the user's weekly list, creating the
// tracking record first if needed. The task starts uncompleted with a
// just-right difficulty baseline. Duplicate names are not rejected;
// name-keyed operations act on the first match.
func (t *Tracking) CreateTask(userID, name, description string, reps int, sets *int, weight *float64) (models.Task, error) {
	defer t.locks.acquire(userID)()

	record, err := t.ensureRecord(userID)
	if err != nil {
		return models.Task{}, err
	}

	task := models.Task{
		Name:               name,
		Description:        description,
		Reps:               reps,
		Sets:               sets,
		Weight:             weight,
		Completed:          false,
		PreviousDifficulty: models.JustRight,
	}

	record.WeeklyTasks = append(record.WeeklyTasks, task)
	if err := t.store.Save(record); err != nil {
		return models.Task{}, err
	}

	return task, nil
}

// UpdateTask applies the provided fields to the named task. Nil arguments
// leave the stored values untouched, so an explicit zero is distinguishable
// from an omitted field.
func (t *Tracking) UpdateTask(userID, name string, reps, sets *int, weight *float64) (models.Task, error) {
	defer t.locks.acquire(userID)()

	record, err := t.store.FindByUser(userID)
	if err != nil {
		return models.Task{}, err
	}

	task := record.FindTask(name)
	if task == nil {
		return models.Task{}, fmt.Errorf("task %q: %w", name, shared.ErrNotFound)
	}

	if reps != nil {
		task.Reps = *reps
	}
	if sets != nil {
		task.Sets = sets
	}
	if weight != nil {
		task.Weight = weight
	}

	if err := t.store.Save(record); err != nil {
		return models.Task{}, err
	}

	return *task, nil
}

// DeleteTask removes the named task from the weekly list. Deleting a name
// that isn't present succeeds without changing anything; only a missing
// tracking record is an error.
func (t *Tracking) DeleteTask(userID, name string) error {
	defer t.locks.acquire(userID)()

	record, err := t.store.FindByUser(userID)
	if err != nil {
		return err
	}

	kept := record.WeeklyTasks[:0]
	for _, task := range record.WeeklyTasks {
		if task.Name != name {
			kept = append(kept, task)
		}
	}
	record.WeeklyTasks = kept

	return t.store.Save(record)
}

// SetGoal overwrites the user's fitness goal, creating the record if needed.
func (t *Tracking) SetGoal(userID, goal string) error {
	defer t.locks.acquire(userID)()

	record, err := t.ensureRecord(userID)
	if err != nil {
		return err
	}

	record.Goal = goal
	return t.store.Save(record)
}

// ToggleCompleted flips the named task's completion flag and returns the
// resulting state.
func (t *Tracking) ToggleCompleted(userID, name string) (bool, error) {
	defer t.locks.acquire(userID)()

	record, err := t.store.FindByUser(userID)
	if err != nil {
		return false, err
	}

	task := record.FindTask(name)
	if task == nil {
		return false, fmt.Errorf("task %q: %w", name, shared.ErrNotFound)
	}

	task.Completed = !task.Completed
	if err := t.store.Save(record); err != nil {
		return false, err
	}

	return task.Completed, nil
}

// IsCompleted reports the named task's completion flag.
func (t *Tracking) IsCompleted(userID, name string) (bool, error) {
	record, err := t.store.FindByUser(userID)
	if err != nil {
		return false, err
	}

	task := record.FindTask(name)
	if task == nil {
		return false, fmt.Errorf("task %q: %w", name, shared.ErrNotFound)
	}

	return task.Completed, nil
}

// AllTasksCompleted reports whether the weekly list is non-empty and every
// task on it is completed. An empty list (or no record at all) is false, not
// vacuously true.
func (t *Tracking) AllTasksCompleted(userID string) (bool, error) {
	record, err := t.store.FindByUser(userID)
	if errors.Is(err, shared.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if len(record.WeeklyTasks) == 0 {
		return false, nil
	}
	for _, task := range record.WeeklyTasks {
		if !task.Completed {
			return false, nil
		}
	}
	return true, nil
}

// CompletionPercentage returns the share of completed weekly tasks as a
// percentage rounded to two decimals. An empty list (or no record) is 0.
func (t *Tracking) CompletionPercentage(userID string) (float64, error) {
	record, err := t.store.FindByUser(userID)
	if errors.Is(err, shared.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	total := len(record.WeeklyTasks)
	if total == 0 {
		return 0, nil
	}

	completed := 0
	for _, task := range record.WeeklyTasks {
		if task.Completed {
			completed++
		}
	}

	pct := float64(completed) / float64(total) * 100
	return math.Round(pct*100) / 100, nil
}

// ResetWeek archives the week and starts a fresh one: the currently completed
// tasks are snapshotted into a new progress entry stamped with the most
// recent Sunday, then every task's completion flag is cleared. Difficulty
// feedback is a longer-horizon signal and survives the reset untouched.
// Exactly one entry is appended per call, even when nothing was completed.
func (t *Tracking) ResetWeek(userID string) (models.ProgressEntry, error) {
	defer t.locks.acquire(userID)()

	record, err := t.ensureRecord(userID)
	if err != nil {
		return models.ProgressEntry{}, err
	}

	entry := models.ProgressEntry{WeekStart: t.weekStart()}
	for i := range record.WeeklyTasks {
		if record.WeeklyTasks[i].Completed {
			entry.CompletedTasks = append(entry.CompletedTasks, record.WeeklyTasks[i])
		}
		record.WeeklyTasks[i].Completed = false
	}

	record.ProgressHistory = append(record.ProgressHistory, entry)
	if err := t.store.Save(record); err != nil {
		return models.ProgressEntry{}, err
	}

	return entry, nil
}

// weekStart returns the most recent Sunday at or before now, normalized to a
// date-only value in UTC.
func (t *Tracking) weekStart() time.Time {
	now := t.now().UTC()
	sunday := now.AddDate(0, 0, -int(now.Weekday()))
	return time.Date(sunday.Year(), sunday.Month(), sunday.Day(), 0, 0, 0, 0, time.UTC)
}

// History returns the user's full ordered progress history.
func (t *Tracking) History(userID string) ([]models.ProgressEntry, error) {
	record, err := t.store.FindByUser(userID)
	if err != nil {
		return nil, err
	}
	return record.ProgressHistory, nil
}

// ReportDifficulty records a difficulty report for the named task and returns
// an adjustment suggestion when the report matches the previous one.
//
// Two identical reports in a row are the only trigger:
//   - difficult twice: goal "muscle" or "endurance" suggests less weight,
//     goal "strength" suggests fewer reps, any other goal suggests nothing.
//   - easy twice: goal "strength" suggests more weight, everything else
//     (including an unset goal) suggests more reps.
//
// The task's previous difficulty always advances to the current report,
// whether or not a suggestion fired.
func (t *Tracking) ReportDifficulty(userID, name string, current models.Difficulty) (string, models.Task, error) {
	if !current.Valid() {
		return "", models.Task{}, fmt.Errorf("difficulty %q: %w", current, shared.ErrInvalidInput)
	}

	defer t.locks.acquire(userID)()

	record, err := t.store.FindByUser(userID)
	if err != nil {
		return "", models.Task{}, err
	}

	task := record.FindTask(name)
	if task == nil {
		return "", models.Task{}, fmt.Errorf("task %q: %w", name, shared.ErrNotFound)
	}

	suggestion := suggestAdjustment(record.Goal, task.PreviousDifficulty, current)

	task.PreviousDifficulty = current
	if err := t.store.Save(record); err != nil {
		return "", models.Task{}, err
	}

	return suggestion, *task, nil
}

// suggestAdjustment evaluates the two-in-a-row difficulty rule against the
// user's goal.
func suggestAdjustment(goal string, previous, current models.Difficulty) string {
	switch {
	case previous == models.Difficult && current == models.Difficult:
		switch goal {
		case "muscle", "endurance":
			return suggestDecreaseWeight
		case "strength":
			return suggestDecreaseReps
		}
		return NoSuggestion

	case previous == models.Easy && current == models.Easy:
		if goal == "strength" {
			return suggestIncreaseWeight
		}
		return suggestIncreaseReps
	}

	return NoSuggestion
}
