package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/weldyapp/weldy/internal/engine"
	"github.com/weldyapp/weldy/internal/knowledge"
	"github.com/weldyapp/weldy/internal/params"
	"github.com/weldyapp/weldy/internal/recommend"
)

func (a *API) handleCombinations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.catalog.Combinations())
}

// causesResponse lists the causes whose defect set matches a combination exactly.
type causesResponse struct {
	Combination engine.Combination `json:"combination"`
	Causes      []knowledge.Cause  `json:"causes"`
}

func (a *API) handleCombinationCauses(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	combo, ok := a.catalog.Combination(key)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("combination %q not found", key))
		return
	}
	causes := a.catalog.CausesForCombination(combo.DefectIDs)
	if causes == nil {
		causes = []knowledge.Cause{}
	}
	writeJSON(w, http.StatusOK, causesResponse{Combination: combo, Causes: causes})
}

func (a *API) handleSelectCause(w http.ResponseWriter, r *http.Request) {
	sel, err := a.catalog.SelectCause(chi.URLParam(r, "id"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sel)
}

func (a *API) handlePresets(w http.ResponseWriter, r *http.Request) {
	presets := a.kb.ThicknessPresets
	if presets == nil {
		presets = []knowledge.ThicknessPreset{}
	}
	writeJSON(w, http.StatusOK, presets)
}

func (a *API) handleThingsTried(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.kb.ThingsTriedByCategory())
}

func (a *API) handleSearch(w http.ResponseWriter, r *http.Request) {
	if a.index == nil {
		writeError(w, http.StatusServiceUnavailable, "symptom search is not enabled")
		return
	}
	q := r.URL.Query().Get("q")
	if q == "" {
		writeError(w, http.StatusBadRequest, "q is required")
		return
	}
	limit := 5
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	results, err := a.index.Search(r.Context(), q, limit)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}

// resolveRequest renders a directive against explicit parameters.
type resolveRequest struct {
	Parameter  string             `json:"parameter"`
	Adjustment string             `json:"adjustment"`
	Details    string             `json:"details,omitempty"`
	Parameters *params.Parameters `json:"parameters,omitempty"`
}

func (a *API) handleResolve(w http.ResponseWriter, r *http.Request) {
	var req resolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Parameter == "" || req.Adjustment == "" {
		writeError(w, http.StatusBadRequest, "parameter and adjustment are required")
		return
	}
	p := params.Default()
	if req.Parameters != nil {
		p = req.Parameters.Clone()
	}
	d := recommend.Directive{Parameter: req.Parameter, Adjustment: req.Adjustment, Details: req.Details}
	writeJSON(w, http.StatusOK, a.engine.Resolver().Specific(d, p))
}
