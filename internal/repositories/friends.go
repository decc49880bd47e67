package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/nvalenti/fitweek/internal/models"
	"github.com/nvalenti/fitweek/internal/shared"
)

// FriendRepository persists [models.FriendRequest] rows. Friendships are
// derived: an accepted request between two users makes them friends.
type FriendRepository struct {
	db *sql.DB
}

// NewFriendRepository creates a new [FriendRepository] with the given database connection
func NewFriendRepository(db *sql.DB) *FriendRepository {
	return &FriendRepository{db: db}
}

// Create inserts a friend request with a generated ID.
func (r *FriendRepository) Create(request *models.FriendRequest) error {
	request.ID = shared.GenerateID()
	now := time.Now()
	request.CreatedAt = now
	request.UpdatedAt = now

	query := `
		INSERT INTO friend_requests (id, from_user, to_user, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.Exec(query, request.ID, request.From, request.To, request.Status, request.CreatedAt, request.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert friend request: %w", err)
	}
	return nil
}

// FindBetween returns the request connecting two users with the given status,
// regardless of direction.
func (r *FriendRepository) FindBetween(a, b string, status models.RequestStatus) (*models.FriendRequest, error) {
	query := `
		SELECT id, from_user, to_user, status, created_at, updated_at
		FROM friend_requests
		WHERE status = ? AND ((from_user = ? AND to_user = ?) OR (from_user = ? AND to_user = ?))
	`
	return r.scanOne(r.db.QueryRow(query, status, a, b, b, a))
}

// FindDirected returns the request from one user to another with the given status.
func (r *FriendRepository) FindDirected(from, to string, status models.RequestStatus) (*models.FriendRequest, error) {
	query := `
		SELECT id, from_user, to_user, status, created_at, updated_at
		FROM friend_requests
		WHERE status = ? AND from_user = ? AND to_user = ?
	`
	return r.scanOne(r.db.QueryRow(query, status, from, to))
}

func (r *FriendRepository) scanOne(row *sql.Row) (*models.FriendRequest, error) {
	var request models.FriendRequest
	err := row.Scan(&request.ID, &request.From, &request.To, &request.Status, &request.CreatedAt, &request.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("friend request: %w", shared.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query friend request: %w", err)
	}
	return &request, nil
}

// SetStatus updates the status of a request.
func (r *FriendRepository) SetStatus(id string, status models.RequestStatus) error {
	result, err := r.db.Exec("UPDATE friend_requests SET status = ?, updated_at = ? WHERE id = ?", status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update friend request: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("friend request %s: %w", id, shared.ErrNotFound)
	}
	return nil
}

// Delete removes a request row.
func (r *FriendRepository) Delete(id string) error {
	if _, err := r.db.Exec("DELETE FROM friend_requests WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete friend request: %w", err)
	}
	return nil
}

// ListForUser returns every request sent or received by a user with the given status.
func (r *FriendRepository) ListForUser(userID string, status models.RequestStatus) ([]models.FriendRequest, error) {
	query := `
		SELECT id, from_user, to_user, status, created_at, updated_at
		FROM friend_requests
		WHERE status = ? AND (from_user = ? OR to_user = ?)
		ORDER BY created_at ASC
	`

	rows, err := r.db.Query(query, status, userID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query friend requests: %w", err)
	}
	defer rows.Close()

	var requests []models.FriendRequest
	for rows.Next() {
		var request models.FriendRequest
		if err := rows.Scan(&request.ID, &request.From, &request.To, &request.Status, &request.CreatedAt, &request.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan friend request: %w", err)
		}
		requests = append(requests, request)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return requests, nil
}
