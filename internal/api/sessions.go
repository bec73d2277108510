package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/weldyapp/weldy/internal/engine"
	"github.com/weldyapp/weldy/internal/session"
)

// sessionResponse pairs a stored session with its rendered screen.
type sessionResponse struct {
	Session engine.Session `json:"session"`
	Screen  engine.Screen  `json:"screen"`
}

func (a *API) respond(w http.ResponseWriter, status int, rec session.Record) {
	writeJSON(w, status, sessionResponse{Session: rec.Session, Screen: a.engine.Screen(rec.Session)})
}

func (a *API) handleListSessions(w http.ResponseWriter, r *http.Request) {
	records, err := a.store.List(r.Context())
	if err != nil {
		a.fail(w, r, err)
		return
	}
	if records == nil {
		records = []session.Record{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (a *API) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	rec, err := a.store.Create(r.Context(), a.engine.NewSession())
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.logger.Debug("session created")
	a.respond(w, http.StatusCreated, rec)
}

func (a *API) handleGetSession(w http.ResponseWriter, r *http.Request) {
	rec, err := a.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.respond(w, http.StatusOK, rec)
}

func (a *API) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := a.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		a.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) handleSessionAction(w http.ResponseWriter, r *http.Request) {
	var action engine.Action
	if err := json.NewDecoder(r.Body).Decode(&action); err != nil {
		writeError(w, http.StatusBadRequest, "invalid action")
		return
	}

	rec, err := a.store.Modify(r.Context(), chi.URLParam(r, "id"), func(s engine.Session) (engine.Session, error) {
		return a.engine.Dispatch(s, action)
	})
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.respond(w, http.StatusOK, rec)
}
