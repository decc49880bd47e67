package server

import (
	"net/http"

	"github.com/nvalenti/fitweek/internal/models"
)

func (api *API) handleCreateRecord(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	record, err := api.tracking.CreateRecord(userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, record)
}

func (api *API) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	record, err := api.tracking.CreateRecord(userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, record)
}

func (api *API) handleSetGoal(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var body struct {
		Goal string `json:"goal"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}

	if err := api.tracking.SetGoal(userID, body.Goal); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"goal": body.Goal})
}

func (api *API) handleCompletion(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	all, err := api.tracking.AllTasksCompleted(userID)
	if err != nil {
		writeError(w, err)
		return
	}

	pct, err := api.tracking.CompletionPercentage(userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"all_completed": all,
		"percentage":    pct,
	})
}

func (api *API) handleResetWeek(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	entry, err := api.tracking.ResetWeek(userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, entry)
}

func (api *API) handleProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	history, err := api.tracking.History(userID)
	if err != nil {
		writeError(w, err)
		return
	}
	if history == nil {
		history = []models.ProgressEntry{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"history": history})
}

func (api *API) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var body struct {
		Name        string   `json:"name"`
		Description string   `json:"description"`
		Reps        int      `json:"reps"`
		Sets        *int     `json:"sets"`
		Weight      *float64 `json:"weight"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}

	task, err := api.tracking.CreateTask(userID, body.Name, body.Description, body.Reps, body.Sets, body.Weight)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, task)
}

func (api *API) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var body struct {
		Reps   *int     `json:"reps"`
		Sets   *int     `json:"sets"`
		Weight *float64 `json:"weight"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}

	task, err := api.tracking.UpdateTask(userID, r.PathValue("name"), body.Reps, body.Sets, body.Weight)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, task)
}

func (api *API) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := api.tracking.DeleteTask(userID, r.PathValue("name")); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "task deleted"})
}

func (api *API) handleToggleTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	completed, err := api.tracking.ToggleCompleted(userID, r.PathValue("name"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"completed": completed})
}

func (api *API) handleReportDifficulty(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var body struct {
		Difficulty models.Difficulty `json:"difficulty"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}

	suggestion, task, err := api.tracking.ReportDifficulty(userID, r.PathValue("name"), body.Difficulty)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"suggestion": suggestion,
		"task":       task,
	})
}
