package rest

import (
	"net/http"

	"faco-weekly/internal/transport/auth"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) listRuns(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.GetUserID(r.Context())
	if err != nil {
		ErrorUnauthorized(w, "Unauthorized")
		return
	}

	runs, err := h.runList.GetRuns(r.Context(), userID)
	if err != nil {
		ErrorInternal(w, "failed to list runs")
		return
	}
	if runs == nil {
		runs = []interface{}{}
	}
	Success(w, "OK", runs)
}

func (h *Handler) getRun(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.GetUserID(r.Context())
	if err != nil {
		ErrorUnauthorized(w, "Unauthorized")
		return
	}

	runID := chi.URLParam(r, "run_id")
	run, err := h.runList.GetRun(r.Context(), runID, userID)
	if err != nil {
		ErrorNotFound(w, "run not found")
		return
	}
	Success(w, "OK", run)
}
