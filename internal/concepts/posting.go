package concepts

import (
	"fmt"

	"github.com/nvalenti/fitweek/internal/models"
	"github.com/nvalenti/fitweek/internal/repositories"
	"github.com/nvalenti/fitweek/internal/shared"
)

// Posting manages the social feed. Posts can only be changed or removed by
// their author.
type Posting struct {
	posts *repositories.PostRepository
}

// NewPosting creates a Posting concept over the given repository.
func NewPosting(posts *repositories.PostRepository) *Posting {
	return &Posting{posts: posts}
}

// Create publishes a post. Content is required; the photo URL is optional.
func (p *Posting) Create(author, content, photo string) (*models.Post, error) {
	if content == "" {
		return nil, fmt.Errorf("post content is required: %w", shared.ErrInvalidInput)
	}

	post := models.NewPost(0, author, content, photo)
	if err := p.posts.Create(post); err != nil {
		return nil, err
	}

	return post, nil
}

// Update applies the provided fields to a post. Nil arguments leave the
// stored values untouched. Only the author may update a post.
func (p *Posting) Update(author, postID string, content, photo *string) (*models.Post, error) {
	post, err := p.posts.Get(postID)
	if err != nil {
		return nil, err
	}

	if post.Author() != author {
		return nil, fmt.Errorf("post %s belongs to another user: %w", postID, shared.ErrUnauthorized)
	}

	if content != nil {
		post.SetContent(*content)
	}
	if photo != nil {
		post.SetPhoto(*photo)
	}

	if err := p.posts.Update(post); err != nil {
		return nil, err
	}

	return post, nil
}

// Delete removes a post. Only the author may delete it.
func (p *Posting) Delete(author, postID string) error {
	post, err := p.posts.Get(postID)
	if err != nil {
		return err
	}

	if post.Author() != author {
		return fmt.Errorf("post %s belongs to another user: %w", postID, shared.ErrUnauthorized)
	}

	return p.posts.Delete(postID)
}

// Get retrieves a single post.
func (p *Posting) Get(postID string) (*models.Post, error) {
	return p.posts.Get(postID)
}

// All returns all posts newest first, optionally filtered by author.
func (p *Posting) All(author string) ([]*models.Post, error) {
	criteria := map[string]any{}
	if author != "" {
		criteria["author"] = author
	}
	return p.posts.List(criteria)
}
