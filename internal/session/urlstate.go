package session

import (
	"net/url"
	"strings"

	"github.com/weldyapp/weldy/internal/engine"
	"github.com/weldyapp/weldy/internal/params"
)

// Query parameter names for URL-encoded sessions.
const (
	QueryNode      = "node"
	QueryHistory   = "history"
	QueryIndex     = "rec"
	QueryVoltage   = "voltage"
	QueryWireSpeed = "wireSpeed"
	QueryThickness = "thickness"
	QueryTried     = "tried"
)

// Encode serialises a session into query values. Settings are written only
// when the session has them; tried ids are a sorted comma list.
func Encode(s engine.Session) url.Values {
	v := url.Values{}
	v.Set(QueryNode, s.Current)
	for _, h := range s.History {
		v.Add(QueryHistory, h)
	}
	if s.RecommendationIndex > 0 {
		v.Set(QueryIndex, params.FormatNumber(float64(s.RecommendationIndex)))
	}
	if s.Parameters != nil {
		p := s.Parameters
		v.Set(QueryVoltage, params.FormatNumber(p.Voltage))
		v.Set(QueryWireSpeed, params.FormatNumber(p.WireSpeed))
		v.Set(QueryThickness, p.MetalThickness)
		if ids := p.TriedIDs(); len(ids) > 0 {
			v.Set(QueryTried, strings.Join(ids, ","))
		}
	}
	return v
}

// Decode rebuilds a session from query values. A missing node means setup.
// Settings are present iff voltage is present; missing or malformed values
// fall back to 1/8" / 18V / 200 IPM.
func Decode(v url.Values) engine.Session {
	s := engine.Session{
		Position: engine.Position{
			History: append([]string{}, v[QueryHistory]...),
			Current: v.Get(QueryNode),
		},
	}
	if s.Current == "" {
		s.Current = engine.NodeSetup
	}
	if n, ok := params.ParseNumber(v.Get(QueryIndex)); ok && n > 0 {
		s.RecommendationIndex = int(n)
	}
	if !v.Has(QueryVoltage) {
		return s
	}

	p := params.Default()
	p = p.SetParameter(params.KeyVoltage, v.Get(QueryVoltage))
	p = p.SetParameter(params.KeyWireSpeed, v.Get(QueryWireSpeed))
	p = p.SetParameter(params.KeyMetalThickness, v.Get(QueryThickness))
	for _, id := range strings.Split(v.Get(QueryTried), ",") {
		p = p.MarkTried(strings.TrimSpace(id))
	}
	s.Parameters = &p
	return s
}
