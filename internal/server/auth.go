package server

import (
	"net/http"

	"github.com/nvalenti/fitweek/internal/models"
)

// userResponse is the public shape of an account.
type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

func newUserResponse(user *models.User) userResponse {
	return userResponse{ID: user.ID(), Username: user.Username()}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (api *API) handleRegister(w http.ResponseWriter, r *http.Request) {
	var body credentialsRequest
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}

	user, err := api.auth.Register(body.Username, body.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	api.logger.Info("user registered", "username", user.Username())
	writeJSON(w, http.StatusCreated, newUserResponse(user))
}

func (api *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body credentialsRequest
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}

	user, err := api.auth.Authenticate(body.Username, body.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	session, err := api.sessions.Start(user.ID())
	if err != nil {
		writeError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    session.ID,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusOK, newUserResponse(user))
}

func (api *API) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		if err := api.sessions.End(cookie.Value); err != nil {
			writeError(w, err)
			return
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

func (api *API) handleSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	user, err := api.auth.Get(userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newUserResponse(user))
}

func (api *API) handleUpdateUsername(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var body struct {
		Username string `json:"username"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}

	user, err := api.auth.UpdateUsername(userID, body.Username)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newUserResponse(user))
}

func (api *API) handleUpdatePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var body struct {
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}

	if err := api.auth.UpdatePassword(userID, body.Password); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "password updated"})
}

func (api *API) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := api.auth.Delete(userID); err != nil {
		writeError(w, err)
		return
	}

	// Closing every session invalidates the account's cookies too.
	if err := api.sessions.EndAll(userID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "account deleted"})
}
