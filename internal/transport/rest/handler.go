package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type RunStarter interface {
	StartWeeklyRun(ctx context.Context, inicio, fin time.Time, userID int64) (string, error)
	LastRunOutOfWindow(ctx context.Context) (int, bool)
}

type RunListService interface {
	GetRuns(ctx context.Context, userID int64) ([]interface{}, error)
	GetRun(ctx context.Context, runID string, userID int64) (interface{}, error)
}

type Pinger interface {
	Ping() error
}

type Handler struct {
	runs    RunStarter
	runList RunListService
	db      Pinger
}

func NewHandler(runs RunStarter, runList RunListService, db Pinger) *Handler {
	return &Handler{
		runs:    runs,
		runList: runList,
		db:      db,
	}
}

func (h *Handler) InitRouter() *chi.Mux {
	return h.InitRouterWithAuth(nil)
}

func (h *Handler) InitRouterWithAuth(authMiddleware func(http.Handler) http.Handler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
		middleware.Timeout(60*time.Second),
	)

	if authMiddleware != nil {
		r.Use(authMiddleware)
	}

	r.Route("/runs", func(r chi.Router) {
		r.Get("/", h.listRuns)
		r.Get("/{run_id}", h.getRun)
		r.Post("/weekly", h.processWeekly)
	})

	return r
}

// health reports warehouse connectivity and the standing invariant: the last
// run's count of post-filter out-of-window gestiones, which must be 0.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	data := map[string]interface{}{"status": "healthy"}

	if h.db != nil {
		if err := h.db.Ping(); err != nil {
			data["status"] = "unhealthy"
			data["postgres"] = err.Error()
			Response(w, "unhealthy", data, 0, statusError, http.StatusServiceUnavailable)
			return
		}
		data["postgres"] = "connected"
	}

	if count, ok := h.runs.LastRunOutOfWindow(r.Context()); ok {
		data["gestiones_fuera_de_vigencia"] = count
		if count != 0 {
			data["status"] = "unhealthy"
			Response(w, "invariant violated", data, 0, statusError, http.StatusServiceUnavailable)
			return
		}
	}

	Success(w, "OK", data)
}

// HealthHandler exposes the health check for mounting on the public router.
func (h *Handler) HealthHandler() http.HandlerFunc {
	return h.health
}
