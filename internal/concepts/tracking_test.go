package concepts

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/nvalenti/fitweek/internal/models"
	"github.com/nvalenti/fitweek/internal/repositories"
	"github.com/nvalenti/fitweek/internal/shared"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func createTestUser(t *testing.T, db *sql.DB, username string) *models.User {
	t.Helper()

	user := models.NewUser(0, username, "hash")
	if err := repositories.NewUserRepository(db).Create(user); err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}
	return user
}

func newTestTracking(t *testing.T) (*Tracking, string) {
	t.Helper()

	db := setupTestDB(t)
	user := createTestUser(t, db, "ada")
	return NewTracking(repositories.NewTrackingRepository(db)), user.ID()
}

func intp(v int) *int           { return &v }
func floatp(v float64) *float64 { return &v }

func TestTrackingCreateRecord(t *testing.T) {
	tracking, userID := newTestTracking(t)

	record, err := tracking.CreateRecord(userID)
	if err != nil {
		t.Fatalf("failed to create record: %v", err)
	}
	if record.Goal != "" || len(record.WeeklyTasks) != 0 || len(record.ProgressHistory) != 0 {
		t.Error("expected empty record")
	}

	// Idempotent: a second call returns the existing record.
	if err := tracking.SetGoal(userID, "strength"); err != nil {
		t.Fatalf("failed to set goal: %v", err)
	}
	record, err = tracking.CreateRecord(userID)
	if err != nil {
		t.Fatalf("second create should succeed: %v", err)
	}
	if record.Goal != "strength" {
		t.Errorf("expected existing record back, got goal %q", record.Goal)
	}
}

func TestTrackingCreateTask(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		tracking, userID := newTestTracking(t)

		task, err := tracking.CreateTask(userID, "squat", "back squat", 5, intp(3), floatp(60))
		if err != nil {
			t.Fatalf("failed to create task: %v", err)
		}
		if task.Completed {
			t.Error("new task should start uncompleted")
		}
		if task.PreviousDifficulty != models.JustRight {
			t.Errorf("new task should start just_right, got %s", task.PreviousDifficulty)
		}

		record, err := tracking.CreateRecord(userID)
		if err != nil {
			t.Fatalf("failed to load record: %v", err)
		}
		if len(record.WeeklyTasks) != 1 {
			t.Fatalf("expected 1 task, got %d", len(record.WeeklyTasks))
		}
	})

	t.Run("OptionalFields", func(t *testing.T) {
		tracking, userID := newTestTracking(t)

		task, err := tracking.CreateTask(userID, "run", "easy pace", 1, nil, nil)
		if err != nil {
			t.Fatalf("failed to create task: %v", err)
		}
		if task.Sets != nil || task.Weight != nil {
			t.Error("omitted sets and weight should stay nil")
		}
	})

	t.Run("DuplicateNames", func(t *testing.T) {
		tracking, userID := newTestTracking(t)

		if _, err := tracking.CreateTask(userID, "squat", "", 5, nil, nil); err != nil {
			t.Fatalf("failed to create task: %v", err)
		}
		if _, err := tracking.CreateTask(userID, "squat", "", 8, nil, nil); err != nil {
			t.Fatalf("duplicate name should be tolerated: %v", err)
		}

		// Name-keyed operations act on the first match.
		task, err := tracking.UpdateTask(userID, "squat", intp(6), nil, nil)
		if err != nil {
			t.Fatalf("failed to update task: %v", err)
		}
		if task.Reps != 6 {
			t.Errorf("expected reps 6, got %d", task.Reps)
		}

		record, err := tracking.CreateRecord(userID)
		if err != nil {
			t.Fatalf("failed to load record: %v", err)
		}
		if record.WeeklyTasks[1].Reps != 8 {
			t.Errorf("second task should be untouched, got reps %d", record.WeeklyTasks[1].Reps)
		}
	})
}

func TestTrackingUpdateTask(t *testing.T) {
	t.Run("PartialUpdate", func(t *testing.T) {
		tracking, userID := newTestTracking(t)

		if _, err := tracking.CreateTask(userID, "squat", "back squat", 5, intp(3), floatp(60)); err != nil {
			t.Fatalf("failed to create task: %v", err)
		}

		// Only reps provided; sets and weight stay as stored.
		task, err := tracking.UpdateTask(userID, "squat", intp(8), nil, nil)
		if err != nil {
			t.Fatalf("failed to update task: %v", err)
		}
		if task.Reps != 8 {
			t.Errorf("expected reps 8, got %d", task.Reps)
		}
		if task.Sets == nil || *task.Sets != 3 {
			t.Error("sets should be untouched")
		}
		if task.Weight == nil || *task.Weight != 60 {
			t.Error("weight should be untouched")
		}
		if task.Description != "back squat" {
			t.Error("description should be untouched")
		}

		// Explicit zero is distinct from omitted.
		task, err = tracking.UpdateTask(userID, "squat", nil, nil, floatp(0))
		if err != nil {
			t.Fatalf("failed to update task: %v", err)
		}
		if task.Weight == nil || *task.Weight != 0 {
			t.Error("explicit zero weight should be applied")
		}
		if task.Reps != 8 {
			t.Error("reps should be untouched")
		}
	})

	t.Run("MissingTask", func(t *testing.T) {
		tracking, userID := newTestTracking(t)

		if _, err := tracking.CreateRecord(userID); err != nil {
			t.Fatalf("failed to create record: %v", err)
		}
		if _, err := tracking.UpdateTask(userID, "ghost", intp(1), nil, nil); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("MissingRecord", func(t *testing.T) {
		tracking, userID := newTestTracking(t)

		if _, err := tracking.UpdateTask(userID, "squat", intp(1), nil, nil); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestTrackingDeleteTask(t *testing.T) {
	tracking, userID := newTestTracking(t)

	if _, err := tracking.CreateTask(userID, "squat", "", 5, nil, nil); err != nil {
		t.Fatalf("failed to create task: %v", err)
	}
	if _, err := tracking.CreateTask(userID, "run", "", 1, nil, nil); err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	if err := tracking.DeleteTask(userID, "squat"); err != nil {
		t.Fatalf("failed to delete task: %v", err)
	}

	record, err := tracking.CreateRecord(userID)
	if err != nil {
		t.Fatalf("failed to load record: %v", err)
	}
	if len(record.WeeklyTasks) != 1 || record.WeeklyTasks[0].Name != "run" {
		t.Errorf("expected only run to remain, got %d tasks", len(record.WeeklyTasks))
	}

	// Deleting an absent name is a no-op.
	if err := tracking.DeleteTask(userID, "ghost"); err != nil {
		t.Errorf("deleting absent task should succeed: %v", err)
	}

	// A missing record is an error.
	if err := tracking.DeleteTask("nobody", "squat"); !errors.Is(err, shared.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestTrackingSetGoal(t *testing.T) {
	tracking, userID := newTestTracking(t)

	// Creates the record when absent.
	if err := tracking.SetGoal(userID, "endurance"); err != nil {
		t.Fatalf("failed to set goal: %v", err)
	}

	record, err := tracking.CreateRecord(userID)
	if err != nil {
		t.Fatalf("failed to load record: %v", err)
	}
	if record.Goal != "endurance" {
		t.Errorf("expected goal endurance, got %q", record.Goal)
	}

	// Overwrites, including to empty.
	if err := tracking.SetGoal(userID, ""); err != nil {
		t.Fatalf("failed to clear goal: %v", err)
	}
	record, err = tracking.CreateRecord(userID)
	if err != nil {
		t.Fatalf("failed to load record: %v", err)
	}
	if record.Goal != "" {
		t.Errorf("expected cleared goal, got %q", record.Goal)
	}
}

func TestTrackingCompletion(t *testing.T) {
	t.Run("Toggle", func(t *testing.T) {
		tracking, userID := newTestTracking(t)

		if _, err := tracking.CreateTask(userID, "squat", "", 5, nil, nil); err != nil {
			t.Fatalf("failed to create task: %v", err)
		}

		completed, err := tracking.ToggleCompleted(userID, "squat")
		if err != nil {
			t.Fatalf("failed to toggle: %v", err)
		}
		if !completed {
			t.Error("first toggle should complete the task")
		}

		got, err := tracking.IsCompleted(userID, "squat")
		if err != nil {
			t.Fatalf("failed to check completion: %v", err)
		}
		if !got {
			t.Error("task should be completed")
		}

		// Toggling twice restores the original state.
		completed, err = tracking.ToggleCompleted(userID, "squat")
		if err != nil {
			t.Fatalf("failed to toggle: %v", err)
		}
		if completed {
			t.Error("second toggle should uncomplete the task")
		}

		if _, err := tracking.ToggleCompleted(userID, "ghost"); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("AllTasksCompleted", func(t *testing.T) {
		tracking, userID := newTestTracking(t)

		// No record at all.
		all, err := tracking.AllTasksCompleted(userID)
		if err != nil {
			t.Fatalf("failed to check completion: %v", err)
		}
		if all {
			t.Error("no record should report false")
		}

		// Empty list is false, not vacuously true.
		if _, err := tracking.CreateRecord(userID); err != nil {
			t.Fatalf("failed to create record: %v", err)
		}
		all, err = tracking.AllTasksCompleted(userID)
		if err != nil {
			t.Fatalf("failed to check completion: %v", err)
		}
		if all {
			t.Error("empty list should report false")
		}

		if _, err := tracking.CreateTask(userID, "squat", "", 5, nil, nil); err != nil {
			t.Fatalf("failed to create task: %v", err)
		}
		if _, err := tracking.CreateTask(userID, "run", "", 1, nil, nil); err != nil {
			t.Fatalf("failed to create task: %v", err)
		}

		if _, err := tracking.ToggleCompleted(userID, "squat"); err != nil {
			t.Fatalf("failed to toggle: %v", err)
		}
		all, err = tracking.AllTasksCompleted(userID)
		if err != nil {
			t.Fatalf("failed to check completion: %v", err)
		}
		if all {
			t.Error("partial completion should report false")
		}

		if _, err := tracking.ToggleCompleted(userID, "run"); err != nil {
			t.Fatalf("failed to toggle: %v", err)
		}
		all, err = tracking.AllTasksCompleted(userID)
		if err != nil {
			t.Fatalf("failed to check completion: %v", err)
		}
		if !all {
			t.Error("full completion should report true")
		}
	})

	t.Run("CompletionPercentage", func(t *testing.T) {
		tracking, userID := newTestTracking(t)

		// No record and empty list are both 0.
		pct, err := tracking.CompletionPercentage(userID)
		if err != nil {
			t.Fatalf("failed to get percentage: %v", err)
		}
		if pct != 0 {
			t.Errorf("expected 0 without a record, got %f", pct)
		}

		for _, name := range []string{"squat", "run", "plank"} {
			if _, err := tracking.CreateTask(userID, name, "", 1, nil, nil); err != nil {
				t.Fatalf("failed to create task: %v", err)
			}
		}

		if _, err := tracking.ToggleCompleted(userID, "squat"); err != nil {
			t.Fatalf("failed to toggle: %v", err)
		}

		pct, err = tracking.CompletionPercentage(userID)
		if err != nil {
			t.Fatalf("failed to get percentage: %v", err)
		}
		if pct != 33.33 {
			t.Errorf("expected 33.33, got %f", pct)
		}

		for _, name := range []string{"run", "plank"} {
			if _, err := tracking.ToggleCompleted(userID, name); err != nil {
				t.Fatalf("failed to toggle: %v", err)
			}
		}
		pct, err = tracking.CompletionPercentage(userID)
		if err != nil {
			t.Fatalf("failed to get percentage: %v", err)
		}
		if pct != 100 {
			t.Errorf("expected 100, got %f", pct)
		}
	})
}

func TestTrackingResetWeek(t *testing.T) {
	tracking, userID := newTestTracking(t)

	// Wednesday; the week began Sunday August 23.
	tracking.now = func() time.Time {
		return time.Date(2026, time.August, 26, 15, 30, 0, 0, time.UTC)
	}
	sunday := time.Date(2026, time.August, 23, 0, 0, 0, 0, time.UTC)

	if _, err := tracking.CreateTask(userID, "squat", "", 5, nil, nil); err != nil {
		t.Fatalf("failed to create task: %v", err)
	}
	if _, err := tracking.CreateTask(userID, "run", "", 1, nil, nil); err != nil {
		t.Fatalf("failed to create task: %v", err)
	}
	if _, err := tracking.ToggleCompleted(userID, "squat"); err != nil {
		t.Fatalf("failed to toggle: %v", err)
	}
	if _, _, err := tracking.ReportDifficulty(userID, "squat", models.Difficult); err != nil {
		t.Fatalf("failed to report difficulty: %v", err)
	}

	entry, err := tracking.ResetWeek(userID)
	if err != nil {
		t.Fatalf("failed to reset week: %v", err)
	}

	if !entry.WeekStart.Equal(sunday) {
		t.Errorf("expected week start %v, got %v", sunday, entry.WeekStart)
	}
	if len(entry.CompletedTasks) != 1 || entry.CompletedTasks[0].Name != "squat" {
		t.Errorf("expected squat in the archived week, got %d tasks", len(entry.CompletedTasks))
	}

	record, err := tracking.CreateRecord(userID)
	if err != nil {
		t.Fatalf("failed to load record: %v", err)
	}
	if len(record.ProgressHistory) != 1 {
		t.Fatalf("expected exactly 1 history entry, got %d", len(record.ProgressHistory))
	}
	for _, task := range record.WeeklyTasks {
		if task.Completed {
			t.Errorf("task %s should be uncompleted after reset", task.Name)
		}
	}

	// Difficulty feedback survives the reset.
	squat := record.FindTask("squat")
	if squat.PreviousDifficulty != models.Difficult {
		t.Errorf("expected difficulty to survive reset, got %s", squat.PreviousDifficulty)
	}

	// An idle week still archives exactly one (empty) entry.
	entry, err = tracking.ResetWeek(userID)
	if err != nil {
		t.Fatalf("failed to reset week: %v", err)
	}
	if len(entry.CompletedTasks) != 0 {
		t.Errorf("expected empty archive, got %d tasks", len(entry.CompletedTasks))
	}

	history, err := tracking.History(userID)
	if err != nil {
		t.Fatalf("failed to get history: %v", err)
	}
	if len(history) != 2 {
		t.Errorf("expected 2 history entries, got %d", len(history))
	}
}

func TestTrackingWeekStart(t *testing.T) {
	tracking, _ := newTestTracking(t)

	cases := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			name: "Midweek",
			now:  time.Date(2026, time.August, 26, 15, 30, 0, 0, time.UTC),
			want: time.Date(2026, time.August, 23, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "SundayItself",
			now:  time.Date(2026, time.August, 23, 9, 0, 0, 0, time.UTC),
			want: time.Date(2026, time.August, 23, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "SaturdayNight",
			now:  time.Date(2026, time.August, 29, 23, 59, 0, 0, time.UTC),
			want: time.Date(2026, time.August, 23, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tracking.now = func() time.Time { return tc.now }
			if got := tracking.weekStart(); !got.Equal(tc.want) {
				t.Errorf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestTrackingHistory(t *testing.T) {
	tracking, userID := newTestTracking(t)

	if _, err := tracking.History(userID); !errors.Is(err, shared.ErrNotFound) {
		t.Errorf("expected ErrNotFound without a record, got %v", err)
	}

	if _, err := tracking.CreateRecord(userID); err != nil {
		t.Fatalf("failed to create record: %v", err)
	}
	history, err := tracking.History(userID)
	if err != nil {
		t.Fatalf("failed to get history: %v", err)
	}
	if len(history) != 0 {
		t.Errorf("expected empty history, got %d entries", len(history))
	}
}

func TestTrackingReportDifficulty(t *testing.T) {
	setup := func(t *testing.T, goal string) (*Tracking, string) {
		t.Helper()
		tracking, userID := newTestTracking(t)
		if goal != "" {
			if err := tracking.SetGoal(userID, goal); err != nil {
				t.Fatalf("failed to set goal: %v", err)
			}
		}
		if _, err := tracking.CreateTask(userID, "squat", "", 5, nil, nil); err != nil {
			t.Fatalf("failed to create task: %v", err)
		}
		return tracking, userID
	}

	report := func(t *testing.T, tracking *Tracking, userID string, d models.Difficulty) string {
		t.Helper()
		suggestion, _, err := tracking.ReportDifficulty(userID, "squat", d)
		if err != nil {
			t.Fatalf("failed to report difficulty: %v", err)
		}
		return suggestion
	}

	t.Run("InvalidDifficulty", func(t *testing.T) {
		tracking, userID := setup(t, "")
		if _, _, err := tracking.ReportDifficulty(userID, "squat", "brutal"); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("MissingTask", func(t *testing.T) {
		tracking, userID := setup(t, "")
		if _, _, err := tracking.ReportDifficulty(userID, "ghost", models.Easy); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("SingleReportNoSuggestion", func(t *testing.T) {
		tracking, userID := setup(t, "strength")

		// Baseline is just_right, so one difficult report doesn't fire.
		if got := report(t, tracking, userID, models.Difficult); got != NoSuggestion {
			t.Errorf("expected no suggestion, got %q", got)
		}
	})

	t.Run("DifficultTwiceStrength", func(t *testing.T) {
		tracking, userID := setup(t, "strength")
		report(t, tracking, userID, models.Difficult)
		if got := report(t, tracking, userID, models.Difficult); got != suggestDecreaseReps {
			t.Errorf("expected %q, got %q", suggestDecreaseReps, got)
		}
	})

	t.Run("DifficultTwiceMuscle", func(t *testing.T) {
		tracking, userID := setup(t, "muscle")
		report(t, tracking, userID, models.Difficult)
		if got := report(t, tracking, userID, models.Difficult); got != suggestDecreaseWeight {
			t.Errorf("expected %q, got %q", suggestDecreaseWeight, got)
		}
	})

	t.Run("DifficultTwiceOtherGoal", func(t *testing.T) {
		tracking, userID := setup(t, "mobility")
		report(t, tracking, userID, models.Difficult)
		if got := report(t, tracking, userID, models.Difficult); got != NoSuggestion {
			t.Errorf("expected no suggestion, got %q", got)
		}
	})

	t.Run("EasyTwiceStrength", func(t *testing.T) {
		tracking, userID := setup(t, "strength")
		report(t, tracking, userID, models.Easy)
		if got := report(t, tracking, userID, models.Easy); got != suggestIncreaseWeight {
			t.Errorf("expected %q, got %q", suggestIncreaseWeight, got)
		}
	})

	t.Run("EasyTwiceNoGoal", func(t *testing.T) {
		tracking, userID := setup(t, "")
		report(t, tracking, userID, models.Easy)
		if got := report(t, tracking, userID, models.Easy); got != suggestIncreaseReps {
			t.Errorf("expected %q, got %q", suggestIncreaseReps, got)
		}
	})

	t.Run("AlternatingNeverFires", func(t *testing.T) {
		tracking, userID := setup(t, "strength")
		for _, d := range []models.Difficulty{models.Difficult, models.Easy, models.Difficult, models.Easy} {
			if got := report(t, tracking, userID, d); got != NoSuggestion {
				t.Errorf("alternating reports should suggest nothing, got %q", got)
			}
		}
	})

	t.Run("AlwaysAdvances", func(t *testing.T) {
		tracking, userID := setup(t, "")

		_, task, err := tracking.ReportDifficulty(userID, "squat", models.Difficult)
		if err != nil {
			t.Fatalf("failed to report difficulty: %v", err)
		}
		if task.PreviousDifficulty != models.Difficult {
			t.Errorf("expected difficulty to advance, got %s", task.PreviousDifficulty)
		}

		_, task, err = tracking.ReportDifficulty(userID, "squat", models.JustRight)
		if err != nil {
			t.Fatalf("failed to report difficulty: %v", err)
		}
		if task.PreviousDifficulty != models.JustRight {
			t.Errorf("expected difficulty to advance, got %s", task.PreviousDifficulty)
		}
	})
}
