package api

import (
	"encoding/json"
	"net/http"

	"github.com/weldyapp/weldy/internal/engine"
	"github.com/weldyapp/weldy/internal/session"
)

// stateResponse is the stateless counterpart of sessionResponse: the whole
// session travels in the query string.
type stateResponse struct {
	Query  string        `json:"query"`
	Screen engine.Screen `json:"screen"`
}

func (a *API) stateResponse(s engine.Session) stateResponse {
	return stateResponse{Query: session.Encode(s).Encode(), Screen: a.engine.Screen(s)}
}

func (a *API) handleState(w http.ResponseWriter, r *http.Request) {
	s := session.Decode(r.URL.Query())
	writeJSON(w, http.StatusOK, a.stateResponse(s))
}

// handleStateAction applies an action to the session encoded in the query
// string and returns the new encoding.
func (a *API) handleStateAction(w http.ResponseWriter, r *http.Request) {
	var action engine.Action
	if err := json.NewDecoder(r.Body).Decode(&action); err != nil {
		writeError(w, http.StatusBadRequest, "invalid action")
		return
	}
	s := session.Decode(r.URL.Query())
	next, err := a.engine.Dispatch(s, action)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, a.stateResponse(next))
}
