package server

import (
	"net/http"

	"github.com/nvalenti/fitweek/internal/models"
)

// Friend routes address other users by username; handlers resolve them to ids
// before calling the concept.

type friendRequestResponse struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Status string `json:"status"`
}

// usernamesFor maps user ids to usernames, skipping ids that no longer
// resolve (deleted accounts).
func (api *API) usernamesFor(ids []string) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		user, err := api.auth.Get(id)
		if err != nil {
			continue
		}
		names = append(names, user.Username())
	}
	return names
}

// usernameOf resolves a user id, falling back to the raw id for deleted accounts.
func (api *API) usernameOf(id string) string {
	user, err := api.auth.Get(id)
	if err != nil {
		return id
	}
	return user.Username()
}

func (api *API) handleFriends(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	friends, err := api.friends.Friends(userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"friends": api.usernamesFor(friends)})
}

func (api *API) handleRemoveFriend(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	friend, err := api.auth.GetByUsername(r.PathValue("friend"))
	if err != nil {
		writeError(w, err)
		return
	}

	if err := api.friends.RemoveFriend(userID, friend.ID()); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "friend removed"})
}

func (api *API) handleFriendRequests(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	requests, err := api.friends.Requests(userID)
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]friendRequestResponse, 0, len(requests))
	for _, request := range requests {
		out = append(out, friendRequestResponse{
			From:   api.usernameOf(request.From),
			To:     api.usernameOf(request.To),
			Status: string(request.Status),
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{"requests": out})
}

func (api *API) handleSendRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	to, err := api.auth.GetByUsername(r.PathValue("to"))
	if err != nil {
		writeError(w, err)
		return
	}

	request, err := api.friends.SendRequest(userID, to.ID())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, friendRequestResponse{
		From:   api.usernameOf(request.From),
		To:     to.Username(),
		Status: string(models.RequestPending),
	})
}

func (api *API) handleCancelRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	to, err := api.auth.GetByUsername(r.PathValue("to"))
	if err != nil {
		writeError(w, err)
		return
	}

	if err := api.friends.CancelRequest(userID, to.ID()); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "request cancelled"})
}

func (api *API) handleAcceptRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	from, err := api.auth.GetByUsername(r.PathValue("from"))
	if err != nil {
		writeError(w, err)
		return
	}

	if err := api.friends.AcceptRequest(userID, from.ID()); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "request accepted"})
}

func (api *API) handleRejectRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	from, err := api.auth.GetByUsername(r.PathValue("from"))
	if err != nil {
		writeError(w, err)
		return
	}

	if err := api.friends.RejectRequest(userID, from.ID()); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "request rejected"})
}
