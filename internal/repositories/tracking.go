package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nvalenti/fitweek/internal/models"
	"github.com/nvalenti/fitweek/internal/shared"
)

// TrackingRepository persists one [models.TrackingRecord] per user.
//
// The weekly task list and progress history are stored as JSON columns and
// the record is always read and written whole. The tracking concept owns all
// validation and serializes mutations per user, so the repository stays a
// plain load/store layer.
type TrackingRepository struct {
	db *sql.DB
}

// NewTrackingRepository creates a new [TrackingRepository] with the given database connection
func NewTrackingRepository(db *sql.DB) *TrackingRepository {
	return &TrackingRepository{db: db}
}

// FindByUser loads a user's tracking record. Returns [shared.ErrNotFound] if
// no record exists for the user.
func (r *TrackingRepository) FindByUser(userID string) (*models.TrackingRecord, error) {
	query := `
		SELECT goal, tasks, history FROM tracking_records WHERE user_id = ?
	`

	var goal, tasksJSON, historyJSON string
	err := r.db.QueryRow(query, userID).Scan(&goal, &tasksJSON, &historyJSON)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("tracking record for %s: %w", userID, shared.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query tracking record: %w", err)
	}

	record := &models.TrackingRecord{UserID: userID, Goal: goal}
	if err := json.Unmarshal([]byte(tasksJSON), &record.WeeklyTasks); err != nil {
		return nil, fmt.Errorf("failed to decode weekly tasks: %w", err)
	}
	if err := json.Unmarshal([]byte(historyJSON), &record.ProgressHistory); err != nil {
		return nil, fmt.Errorf("failed to decode progress history: %w", err)
	}

	return record, nil
}

// Create inserts an empty tracking record for a user and returns it.
func (r *TrackingRepository) Create(userID string) (*models.TrackingRecord, error) {
	now := time.Now()

	query := `
		INSERT INTO tracking_records (user_id, goal, tasks, history, created_at, updated_at) VALUES (?, '', '[]', '[]', ?, ?)
	`
	if _, err := r.db.Exec(query, userID, now, now); err != nil {
		return nil, fmt.Errorf("failed to insert tracking record: %w", err)
	}

	return &models.TrackingRecord{UserID: userID}, nil
}

// Save writes a record back, replacing the goal, task list, and history.
func (r *TrackingRepository) Save(record *models.TrackingRecord) error {
	tasksJSON, err := json.Marshal(record.WeeklyTasks)
	if err != nil {
		return fmt.Errorf("failed to encode weekly tasks: %w", err)
	}
	historyJSON, err := json.Marshal(record.ProgressHistory)
	if err != nil {
		return fmt.Errorf("failed to encode progress history: %w", err)
	}

	query := `
		UPDATE tracking_records SET goal = ?, tasks = ?, history = ?, updated_at = ? WHERE user_id = ?
	`
	result, err := r.db.Exec(query, record.Goal, string(tasksJSON), string(historyJSON), time.Now(), record.UserID)
	if err != nil {
		return fmt.Errorf("failed to update tracking record: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("tracking record for %s: %w", record.UserID, shared.ErrNotFound)
	}

	return nil
}
