package engine

import (
	"errors"
	"fmt"

	"github.com/weldyapp/weldy/internal/knowledge"
	"github.com/weldyapp/weldy/internal/params"
	"github.com/weldyapp/weldy/internal/recommend"
)

// Where accepting a recommendation sends the user.
const (
	AcceptDefectSelection = "defect-selection"
	AcceptSetup           = "setup"
)

// What Restart does with the machine settings.
const (
	RestartReset    = "reset"
	RestartPreserve = "preserve"
)

// Options tune navigation behaviour.
type Options struct {
	AcceptTarget string
	RestartMode  string
	Defaults     params.Parameters
}

// DefaultOptions returns accept-to-defect-selection, reset-on-restart and
// 1/8" / 18V / 200 IPM defaults.
func DefaultOptions() Options {
	return Options{
		AcceptTarget: AcceptDefectSelection,
		RestartMode:  RestartReset,
		Defaults:     params.Default(),
	}
}

// Engine computes screens and applies user actions over a Graph. It holds no
// per-user state and is safe for concurrent use.
type Engine struct {
	graph    Graph
	kb       *knowledge.KnowledgeBase
	resolver *recommend.Resolver
	opts     Options
}

// New creates an Engine. kb supplies thickness presets and may be shared with
// the graph.
func New(graph Graph, kb *knowledge.KnowledgeBase, resolver *recommend.Resolver, opts Options) *Engine {
	if opts.AcceptTarget == "" {
		opts.AcceptTarget = AcceptDefectSelection
	}
	if opts.RestartMode == "" {
		opts.RestartMode = RestartReset
	}
	if opts.Defaults.MetalThickness == "" {
		opts.Defaults = params.Default()
	}
	return &Engine{graph: graph, kb: kb, resolver: resolver, opts: opts}
}

// Graph returns the underlying graph.
func (e *Engine) Graph() Graph { return e.graph }

// KnowledgeBase returns the dataset used for presets and lookups.
func (e *Engine) KnowledgeBase() *knowledge.KnowledgeBase { return e.kb }

// Resolver returns the recommendation resolver.
func (e *Engine) Resolver() *recommend.Resolver { return e.resolver }

// NewSession returns a session on the setup screen with no settings yet.
func (e *Engine) NewSession() Session {
	return Session{Position: Restart(NodeSetup)}
}

// Setup stores p and moves to the first graph node.
func (e *Engine) Setup(s Session, p params.Parameters) Session {
	out := s.Clone()
	p = p.Clone()
	out.Parameters = &p
	out.Position = Advance(Restart(NodeSetup), e.graph.Start())
	out.RecommendationIndex = 0
	return out
}

// Choose follows the choice with id on the current node.
func (e *Engine) Choose(s Session, choiceID string) (Session, error) {
	n, err := e.graph.Resolve(s.Current)
	if err != nil {
		return s, err
	}
	c, ok := n.Choice(choiceID)
	if !ok {
		return s, fmt.Errorf("%w: %q on node %q", ErrChoiceNotFound, choiceID, s.Current)
	}
	out := s.Clone()
	out.Position = Advance(s.Position, c.Next)
	out.RecommendationIndex = 0
	return out, nil
}

// Back returns to the previous node. It is a no-op on an empty history.
func (e *Engine) Back(s Session) Session {
	pos, ok := GoBack(s.Position)
	if !ok {
		return s
	}
	out := s.Clone()
	out.Position = pos
	out.RecommendationIndex = 0
	return out
}

// Restart clears the history. In reset mode the settings are dropped and the
// session returns to setup; in preserve mode it returns to the first graph
// node with settings intact.
func (e *Engine) Restart(s Session) Session {
	out := s.Clone()
	out.RecommendationIndex = 0
	if e.opts.RestartMode == RestartPreserve && s.Parameters != nil {
		out.Position = Advance(Restart(NodeSetup), e.graph.Start())
		return out
	}
	out.Parameters = nil
	out.Position = Restart(NodeSetup)
	return out
}

// TryAnother moves to the next recommendation, or restarts after the last one.
func (e *Engine) TryAnother(s Session) (Session, error) {
	n, err := e.recommendationNode(s)
	if err != nil {
		return s, err
	}
	cursor := cursorFor(n, s.RecommendationIndex)
	next, ok := cursor.Next()
	if !ok {
		return e.Restart(s), nil
	}
	out := s.Clone()
	out.RecommendationIndex = next.Index
	return out, nil
}

// Accept applies the current recommendation to the settings, marks it tried
// and returns to the configured accept target. The settings change and the
// tried flags land in the same returned session.
func (e *Engine) Accept(s Session) (Session, error) {
	n, err := e.recommendationNode(s)
	if err != nil {
		return s, err
	}
	rec := n.Recommendations[cursorFor(n, s.RecommendationIndex).Index]

	p := e.parameters(s)
	p = e.resolver.Apply(p, rec.Directive)
	p = p.MarkTried(rec.MistakeID).MarkTried(rec.ThingsTried...)

	out := s.Clone()
	out.Parameters = &p
	out.RecommendationIndex = 0
	if e.opts.AcceptTarget == AcceptSetup {
		out.Position = Restart(NodeSetup)
	} else {
		out.Position = Advance(Restart(NodeSetup), e.graph.Start())
	}
	return out, nil
}

// SetParameter edits one setting from user text. Unparseable numbers are ignored.
func (e *Engine) SetParameter(s Session, key, text string) Session {
	p := e.parameters(s).SetParameter(key, text)
	out := s.Clone()
	out.Parameters = &p
	return out
}

// ToggleTried flips a checklist entry.
func (e *Engine) ToggleTried(s Session, id string) Session {
	p := e.parameters(s).ToggleTried(id)
	out := s.Clone()
	out.Parameters = &p
	return out
}

// SelectThickness applies a thickness preset, overwriting voltage and wire speed.
func (e *Engine) SelectThickness(s Session, thickness string) (Session, error) {
	preset, ok := e.kb.Preset(thickness)
	if !ok {
		return s, fmt.Errorf("%w: %q", ErrPresetNotFound, thickness)
	}
	p := e.parameters(s).WithPreset(preset.Thickness, preset.Voltage, preset.WireSpeed)
	out := s.Clone()
	out.Parameters = &p
	return out, nil
}

// Screen renders the session's current position. Resolution failures become
// an error screen.
func (e *Engine) Screen(s Session) Screen {
	p := e.parameters(s)
	scr := Screen{
		NodeID:     s.Current,
		Parameters: p,
		Summary:    p.Summary(),
		CanGoBack:  s.CanGoBack(),
	}

	if s.Current == NodeSetup {
		scr.Kind = ScreenSetup
		scr.Title = "Current Machine Settings"
		scr.ThicknessOptions = e.kb.ThicknessOptions()
		return scr
	}

	n, err := e.graph.Resolve(s.Current)
	if err != nil {
		scr.Kind = ScreenError
		scr.Title = "Node not found"
		scr.Error = err.Error()
		return scr
	}

	scr.Kind = n.Kind
	scr.Title = n.Title
	scr.Subtitle = n.Subtitle
	scr.Description = n.Description
	scr.Choices = n.Choices
	if len(n.Recommendations) > 0 {
		scr.Recommendation = e.recommendationView(n, s.RecommendationIndex, p)
	}
	return scr
}

// Suggest renders a directive against the session's settings.
func (e *Engine) Suggest(s Session, d recommend.Directive) recommend.Suggestion {
	return e.resolver.Specific(d, e.parameters(s))
}

func (e *Engine) recommendationView(n Node, index int, p params.Parameters) *RecommendationView {
	cursor := cursorFor(n, index)
	rec := n.Recommendations[cursor.Index]
	sug := e.resolver.Specific(rec.Directive, p)
	action := cursor.NextAction()
	return &RecommendationView{
		Cursor:         cursor,
		Counter:        cursor.Counter(),
		Suggestion:     sug,
		ParameterBadge: "Parameter: " + rec.Directive.ParameterLabel(),
		Question:       rec.Question,
		MistakeID:      rec.MistakeID,
		AcceptLabel:    sug.AcceptLabel(),
		NextAction:     action,
		NextLabel:      action.Label(),
	}
}

func (e *Engine) recommendationNode(s Session) (Node, error) {
	if s.Current == NodeSetup {
		return Node{}, ErrNoRecommendation
	}
	n, err := e.graph.Resolve(s.Current)
	if err != nil {
		return Node{}, err
	}
	if len(n.Recommendations) == 0 {
		return Node{}, fmt.Errorf("%w: %q", ErrNoRecommendation, s.Current)
	}
	return n, nil
}

func (e *Engine) parameters(s Session) params.Parameters {
	if s.Parameters == nil {
		return e.opts.Defaults.Clone()
	}
	return s.Parameters.Clone()
}

func cursorFor(n Node, index int) recommend.Cursor {
	total := len(n.Recommendations)
	if index < 0 {
		index = 0
	}
	if index > total-1 {
		index = total - 1
	}
	return recommend.Cursor{Index: index, Total: total}
}

// IsDataError reports whether err is a data-integrity miss.
func IsDataError(err error) bool {
	return errors.Is(err, ErrNodeNotFound) ||
		errors.Is(err, ErrCauseNotFound) ||
		errors.Is(err, ErrMistakeNotFound) ||
		errors.Is(err, ErrPresetNotFound)
}
