package models

import (
	"fmt"
	"time"
)

// Post is a user-authored entry in the social feed, optionally carrying a photo URL.
type Post struct {
	id        string
	sequence  int
	author    string
	content   string
	photo     string
	createdAt time.Time
	updatedAt time.Time
	deletedAt *time.Time
}

// NewPost creates a Post authored by the given user id.
func NewPost(sequence int, author, content, photo string) *Post {
	now := time.Now()
	return &Post{
		sequence:  sequence,
		author:    author,
		content:   content,
		photo:     photo,
		createdAt: now,
		updatedAt: now,
	}
}

func (p *Post) ID() string            { return p.id }
func (p *Post) Sequence() int         { return p.sequence }
func (p *Post) Author() string        { return p.author }
func (p *Post) Content() string       { return p.content }
func (p *Post) Photo() string         { return p.photo }
func (p *Post) CreatedAt() time.Time  { return p.createdAt }
func (p *Post) UpdatedAt() time.Time  { return p.updatedAt }
func (p *Post) DeletedAt() *time.Time { return p.deletedAt }

func (p *Post) SetID(id string)           { p.id = id }
func (p *Post) SetContent(content string) { p.content = content }
func (p *Post) SetPhoto(photo string)     { p.photo = photo }
func (p *Post) SetCreatedAt(t time.Time)  { p.createdAt = t }
func (p *Post) SetUpdatedAt(t time.Time)  { p.updatedAt = t }
func (p *Post) SetDeletedAt(t *time.Time) { p.deletedAt = t }

// Validate checks that the post has an author and content.
func (p *Post) Validate() error {
	if p.author == "" {
		return fmt.Errorf("author is required")
	}
	if p.content == "" {
		return fmt.Errorf("content is required")
	}
	return nil
}
