package rest

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"time"

	"faco-weekly/internal/transport/auth"
)

type weeklyRunRequest struct {
	Inicio time.Time
	Fin    time.Time
}

type rawWeeklyRunRequest struct {
	FechaInicio interface{} `json:"fecha_inicio"`
	FechaFin    interface{} `json:"fecha_fin"`
}

// ValidateWeeklyRunRequest parses the run period; both dates are optional and
// default to the trailing seven days.
func ValidateWeeklyRunRequest(r *http.Request) (*weeklyRunRequest, error) {
	var raw rawWeeklyRunRequest
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil && err != io.EOF {
		return nil, err
	}

	inicio, err := parseOptionalDate("fecha_inicio", raw.FechaInicio)
	if err != nil {
		return nil, err
	}
	fin, err := parseOptionalDate("fecha_fin", raw.FechaFin)
	if err != nil {
		return nil, err
	}

	req := &weeklyRunRequest{}
	if fin != nil {
		req.Fin = *fin
	} else {
		req.Fin = time.Now()
	}
	if inicio != nil {
		req.Inicio = *inicio
	} else {
		req.Inicio = req.Fin.AddDate(0, 0, -7)
	}
	if req.Fin.Before(req.Inicio) {
		return nil, &ValidationError{Field: "fecha_fin", Message: "fecha_fin precedes fecha_inicio"}
	}
	return req, nil
}

func (h *Handler) processWeekly(w http.ResponseWriter, r *http.Request) {
	req, err := ValidateWeeklyRunRequest(r)
	if err != nil {
		if _, ok := err.(*ValidationError); ok {
			ErrorBadRequest(w, err.Error())
			return
		}
		ErrorBadRequest(w, "invalid JSON")
		return
	}

	userID, err := auth.GetUserID(r.Context())
	if err != nil {
		ErrorUnauthorized(w, "Unauthorized")
		return
	}

	runID, err := h.runs.StartWeeklyRun(r.Context(), req.Inicio, req.Fin, userID)
	if err != nil {
		log.Printf("[HTTP] startWeeklyRun error: %v", err)
		ErrorInternal(w, "failed to start run")
		return
	}

	SuccessAccepted(w, "Proceso semanal encolado", map[string]interface{}{"run_id": runID})
}
