package engine

import (
	"github.com/weldyapp/weldy/internal/decisiontree"
	"github.com/weldyapp/weldy/internal/params"
	"github.com/weldyapp/weldy/internal/recommend"
)

// NodeSetup is the reserved id of the machine-settings screen. It lives
// outside every graph.
const NodeSetup = decisiontree.ReservedSetupID

// ScreenKind identifies what a presentation layer should render.
type ScreenKind string

const (
	ScreenSetup          ScreenKind = "setup"
	ScreenCombinations   ScreenKind = "combinations"
	ScreenCauses         ScreenKind = "causes"
	ScreenQuestion       ScreenKind = "question"
	ScreenRecommendation ScreenKind = "recommendation"
	ScreenDiagnosis      ScreenKind = "diagnosis"
	ScreenSuccess        ScreenKind = "success"
	ScreenError          ScreenKind = "error"
)

// Graph is a navigable set of nodes rooted at Start.
type Graph interface {
	Start() string
	Resolve(id string) (Node, error)
}

// Choice is one selectable option on a node.
type Choice struct {
	ID           string   `json:"id"`
	Label        string   `json:"label"`
	Description  string   `json:"description,omitempty"`
	Descriptions []string `json:"descriptions,omitempty"`
	Image        string   `json:"image,omitempty"`
	DefectIDs    []string `json:"defectIds,omitempty"`
	Next         string   `json:"next"`
}

// Recommendation is a directive offered on a terminal node. MistakeID and
// ThingsTried are marked tried when the user accepts it.
type Recommendation struct {
	Directive   recommend.Directive `json:"directive"`
	MistakeID   string              `json:"mistakeId,omitempty"`
	Question    string              `json:"question,omitempty"`
	ThingsTried []string            `json:"thingsTried,omitempty"`
}

// Node is a resolved graph node.
type Node struct {
	ID              string           `json:"id"`
	Kind            ScreenKind       `json:"kind"`
	Title           string           `json:"title"`
	Subtitle        string           `json:"subtitle,omitempty"`
	Description     string           `json:"description,omitempty"`
	Choices         []Choice         `json:"choices,omitempty"`
	Recommendations []Recommendation `json:"recommendations,omitempty"`
}

// Choice finds a choice by id.
func (n Node) Choice(id string) (Choice, bool) {
	for _, c := range n.Choices {
		if c.ID == id {
			return c, true
		}
	}
	return Choice{}, false
}

// Session is one user's walk through the wizard. It is a plain value: every
// engine action returns a new Session and never mutates its argument.
type Session struct {
	ID string `json:"id,omitempty"`
	Position
	Parameters          *params.Parameters `json:"parameters"`
	RecommendationIndex int                `json:"recommendationIndex"`
}

// Clone returns a deep copy.
func (s Session) Clone() Session {
	out := s
	out.History = append([]string(nil), s.History...)
	if s.Parameters != nil {
		p := s.Parameters.Clone()
		out.Parameters = &p
	}
	return out
}

// RecommendationView is the current suggestion of a recommendation list.
type RecommendationView struct {
	Cursor         recommend.Cursor     `json:"cursor"`
	Counter        string               `json:"counter"`
	Suggestion     recommend.Suggestion `json:"suggestion"`
	ParameterBadge string               `json:"parameterBadge"`
	Question       string               `json:"question,omitempty"`
	MistakeID      string               `json:"mistakeId,omitempty"`
	AcceptLabel    string               `json:"acceptLabel"`
	NextAction     recommend.Action     `json:"nextAction"`
	NextLabel      string               `json:"nextLabel"`
}

// Screen is everything a presentation layer needs to render one step.
type Screen struct {
	Kind             ScreenKind          `json:"kind"`
	NodeID           string              `json:"nodeId"`
	Title            string              `json:"title"`
	Subtitle         string              `json:"subtitle,omitempty"`
	Description      string              `json:"description,omitempty"`
	Choices          []Choice            `json:"choices,omitempty"`
	Recommendation   *RecommendationView `json:"recommendation,omitempty"`
	ThicknessOptions []string            `json:"thicknessOptions,omitempty"`
	Parameters       params.Parameters   `json:"parameters"`
	Summary          string              `json:"summary"`
	CanGoBack        bool                `json:"canGoBack"`
	Error            string              `json:"error,omitempty"`
}
