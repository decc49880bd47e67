package server

import (
	"net/http"

	"github.com/nvalenti/fitweek/internal/models"
)

type ledgerResponse struct {
	Total         int      `json:"total"`
	VerifiedPosts []string `json:"verified_posts"`
}

func newLedgerResponse(ledger *models.PointLedger) ledgerResponse {
	posts := ledger.VerifiedPosts
	if posts == nil {
		posts = []string{}
	}
	return ledgerResponse{Total: ledger.Total, VerifiedPosts: posts}
}

func (api *API) handlePoints(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	ledger, err := api.points.Ledger(userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newLedgerResponse(ledger))
}

type pointChangeRequest struct {
	PostID string `json:"post_id"`
	Points int    `json:"points"`
}

func (api *API) handleAwardPoints(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var body pointChangeRequest
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}

	ledger, err := api.points.Award(userID, body.PostID, body.Points)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newLedgerResponse(ledger))
}

func (api *API) handleRevokePoints(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var body pointChangeRequest
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}

	ledger, err := api.points.Revoke(userID, body.PostID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newLedgerResponse(ledger))
}
