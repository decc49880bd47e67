package server

import (
	"net/http"
	"time"

	"github.com/nvalenti/fitweek/internal/models"
)

type postResponse struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	Photo     string    `json:"photo,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (api *API) newPostResponse(post *models.Post) postResponse {
	return postResponse{
		ID:        post.ID(),
		Author:    api.usernameOf(post.Author()),
		Content:   post.Content(),
		Photo:     post.Photo(),
		CreatedAt: post.CreatedAt(),
		UpdatedAt: post.UpdatedAt(),
	}
}

func (api *API) handleListPosts(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}

	var author string
	if username := r.URL.Query().Get("author"); username != "" {
		user, err := api.auth.GetByUsername(username)
		if err != nil {
			writeError(w, err)
			return
		}
		author = user.ID()
	}

	posts, err := api.posts.All(author)
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]postResponse, 0, len(posts))
	for _, post := range posts {
		out = append(out, api.newPostResponse(post))
	}

	writeJSON(w, http.StatusOK, map[string]any{"posts": out})
}

func (api *API) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var body struct {
		Content string `json:"content"`
		Photo   string `json:"photo"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}

	post, err := api.posts.Create(userID, body.Content, body.Photo)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, api.newPostResponse(post))
}

func (api *API) handleUpdatePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var body struct {
		Content *string `json:"content"`
		Photo   *string `json:"photo"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}

	post, err := api.posts.Update(userID, r.PathValue("id"), body.Content, body.Photo)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, api.newPostResponse(post))
}

func (api *API) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := api.posts.Delete(userID, r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "post deleted"})
}
