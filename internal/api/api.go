package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/weldyapp/weldy/internal/engine"
	"github.com/weldyapp/weldy/internal/knowledge"
	"github.com/weldyapp/weldy/internal/search"
	"github.com/weldyapp/weldy/internal/session"
)

// RequestTimeout bounds every non-streaming request.
const RequestTimeout = 30 * time.Second

// API serves the troubleshooting wizard over HTTP and WebSocket.
type API struct {
	engine  *engine.Engine
	kb      *knowledge.KnowledgeBase
	catalog *engine.Catalog
	store   session.Store
	index   *search.Index
	logger  *zap.Logger
}

// New creates an API. index may be nil, in which case search returns 503.
func New(eng *engine.Engine, store session.Store, index *search.Index, logger *zap.Logger) *API {
	if logger == nil {
		logger = zap.NewNop()
	}
	kb := eng.KnowledgeBase()
	return &API{
		engine:  eng,
		kb:      kb,
		catalog: engine.NewCatalog(kb),
		store:   store,
		index:   index,
		logger:  logger,
	}
}

// RegisterRoutes mounts all API routes onto the given router.
func (a *API) RegisterRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(RequestTimeout))

		r.Get("/api/knowledge/combinations", a.handleCombinations)
		r.Get("/api/knowledge/combinations/{key}/causes", a.handleCombinationCauses)
		r.Get("/api/knowledge/causes/{id}", a.handleSelectCause)
		r.Get("/api/knowledge/thickness-presets", a.handlePresets)
		r.Get("/api/knowledge/things-tried", a.handleThingsTried)
		r.Get("/api/knowledge/search", a.handleSearch)

		r.Post("/api/recommendations/resolve", a.handleResolve)

		r.Route("/api/sessions", func(r chi.Router) {
			r.Get("/", a.handleListSessions)
			r.Post("/", a.handleCreateSession)
			r.Get("/{id}", a.handleGetSession)
			r.Delete("/{id}", a.handleDeleteSession)
			r.Post("/{id}/actions", a.handleSessionAction)
		})

		r.Get("/api/state", a.handleState)
		r.Post("/api/state/actions", a.handleStateAction)
	})

	r.Get("/ws/session", a.handleWebSocket)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// statusFor maps engine and store errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, session.ErrNotFound), engine.IsDataError(err):
		return http.StatusNotFound
	case errors.Is(err, engine.ErrChoiceNotFound),
		errors.Is(err, engine.ErrNoRecommendation),
		errors.Is(err, engine.ErrUnknownAction):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (a *API) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		a.logger.Error("request failed",
			zap.String("path", r.URL.Path),
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.Error(err))
	}
	writeError(w, status, err.Error())
}
