package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/nvalenti/fitweek/internal/models"
	"github.com/nvalenti/fitweek/internal/shared"
)

// PointRepository persists per-user point totals and the verified-post set.
//
// Totals and verification rows always change together, so the mutating
// methods run both statements inside one transaction.
type PointRepository struct {
	db *sql.DB
}

// NewPointRepository creates a new [PointRepository] with the given database connection
func NewPointRepository(db *sql.DB) *PointRepository {
	return &PointRepository{db: db}
}

// Get assembles a user's ledger. A user with no rows has a zero ledger.
func (r *PointRepository) Get(userID string) (*models.PointLedger, error) {
	ledger := &models.PointLedger{UserID: userID}

	err := r.db.QueryRow("SELECT total FROM point_ledgers WHERE user_id = ?", userID).Scan(&ledger.Total)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to query point total: %w", err)
	}

	rows, err := r.db.Query("SELECT post_id FROM verified_posts WHERE user_id = ? ORDER BY awarded_at ASC", userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query verified posts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var postID string
		if err := rows.Scan(&postID); err != nil {
			return nil, fmt.Errorf("failed to scan verified post: %w", err)
		}
		ledger.VerifiedPosts = append(ledger.VerifiedPosts, postID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return ledger, nil
}

// IsVerified reports whether a post id has already been verified for any user.
func (r *PointRepository) IsVerified(postID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow("SELECT EXISTS(SELECT 1 FROM verified_posts WHERE post_id = ?)", postID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to query verified post: %w", err)
	}
	return exists, nil
}

// VerifiedPoints returns the points recorded when a post was verified for the user.
func (r *PointRepository) VerifiedPoints(userID, postID string) (int, error) {
	var points int
	err := r.db.QueryRow("SELECT points FROM verified_posts WHERE post_id = ? AND user_id = ?", postID, userID).Scan(&points)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("verified post %s: %w", postID, shared.ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to query verified post: %w", err)
	}
	return points, nil
}

// AddVerified records a verified post and adds its points to the user's total.
func (r *PointRepository) AddVerified(userID, postID string, points int) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()

	_, err = tx.Exec(`
		INSERT INTO point_ledgers (user_id, total, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET total = total + excluded.total, updated_at = excluded.updated_at
	`, userID, points, now)
	if err != nil {
		return fmt.Errorf("failed to update point total: %w", err)
	}

	_, err = tx.Exec("INSERT INTO verified_posts (post_id, user_id, points, awarded_at) VALUES (?, ?, ?, ?)", postID, userID, points, now)
	if err != nil {
		return fmt.Errorf("failed to insert verified post: %w", err)
	}

	return tx.Commit()
}

// RemoveVerified deletes a verification row and subtracts its recorded points
// from the user's total.
func (r *PointRepository) RemoveVerified(userID, postID string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var points int
	err = tx.QueryRow("SELECT points FROM verified_posts WHERE post_id = ? AND user_id = ?", postID, userID).Scan(&points)
	if err != nil {
		return fmt.Errorf("failed to query verified post: %w", err)
	}

	if _, err := tx.Exec("DELETE FROM verified_posts WHERE post_id = ? AND user_id = ?", postID, userID); err != nil {
		return fmt.Errorf("failed to delete verified post: %w", err)
	}

	if _, err := tx.Exec("UPDATE point_ledgers SET total = total - ?, updated_at = ? WHERE user_id = ?", points, time.Now(), userID); err != nil {
		return fmt.Errorf("failed to update point total: %w", err)
	}

	return tx.Commit()
}
