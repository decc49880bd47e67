package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/nvalenti/fitweek/internal/models"
	"github.com/nvalenti/fitweek/internal/shared"
)

// PostRepository implements [models.Repository] for [models.Post] persistence.
type PostRepository struct {
	db *sql.DB
}

// NewPostRepository creates a new [PostRepository] with the given database connection
func NewPostRepository(db *sql.DB) *PostRepository {
	return &PostRepository{db: db}
}

// Create inserts a new post into the database with generated ID and sequence
func (r *PostRepository) Create(post *models.Post) error {
	sequence, err := NextSequence(r.db, "posts")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	post.SetID(id)

	if err := post.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO posts (id, sequence, author, content, photo, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query, id, sequence, post.Author(), post.Content(), post.Photo(), post.CreatedAt(), post.UpdatedAt())
	if err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}

	return nil
}

// Get retrieves a post by ID, excluding soft-deleted posts
func (r *PostRepository) Get(id string) (*models.Post, error) {
	query := `
		SELECT id, sequence, author, content, photo, created_at, updated_at, deleted_at
		FROM posts
		WHERE id = ? AND deleted_at IS NULL
	`

	var (
		postID    string
		sequence  int
		author    string
		content   string
		photo     string
		createdAt time.Time
		updatedAt time.Time
		deletedAt sql.NullTime
	)

	err := r.db.QueryRow(query, id).Scan(&postID, &sequence, &author, &content, &photo, &createdAt, &updatedAt, &deletedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("post %s: %w", id, shared.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query post: %w", err)
	}

	post := models.NewPost(sequence, author, content, photo)
	post.SetID(postID)
	post.SetCreatedAt(createdAt)
	post.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		post.SetDeletedAt(&deletedAt.Time)
	}

	return post, nil
}

// Update modifies an existing post in the database
func (r *PostRepository) Update(post *models.Post) error {
	if err := post.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	post.SetUpdatedAt(now)

	query := `
		UPDATE posts
		SET content = ?, photo = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, post.Content(), post.Photo(), now, post.ID())
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("post %s: %w", post.ID(), shared.ErrNotFound)
	}

	return nil
}

// Delete soft-deletes a post by ID
func (r *PostRepository) Delete(id string) error {
	now := time.Now()

	result, err := r.db.Exec("UPDATE posts SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL", now, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("post %s: %w", id, shared.ErrNotFound)
	}

	return nil
}

// List retrieves all posts matching the given criteria, newest first, excluding soft-deleted posts
func (r *PostRepository) List(criteria map[string]any) ([]*models.Post, error) {
	query := `
		SELECT id, sequence, author, content, photo, created_at, updated_at, deleted_at
		FROM posts
		WHERE deleted_at IS NULL
	`

	args := []any{}

	if author, ok := criteria["author"].(string); ok && author != "" {
		query += " AND author = ?"
		args = append(args, author)
	}

	query += " ORDER BY sequence DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	var posts []*models.Post
	for rows.Next() {
		var (
			postID    string
			sequence  int
			author    string
			content   string
			photo     string
			createdAt time.Time
			updatedAt time.Time
			deletedAt sql.NullTime
		)

		err := rows.Scan(&postID, &sequence, &author, &content, &photo, &createdAt, &updatedAt, &deletedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}

		post := models.NewPost(sequence, author, content, photo)
		post.SetID(postID)
		post.SetCreatedAt(createdAt)
		post.SetUpdatedAt(updatedAt)
		if deletedAt.Valid {
			post.SetDeletedAt(&deletedAt.Time)
		}

		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return posts, nil
}
