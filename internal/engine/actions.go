package engine

import (
	"fmt"

	"github.com/weldyapp/weldy/internal/params"
)

// ActionType names a user action.
type ActionType string

const (
	ActionSetup           ActionType = "setup"
	ActionChoose          ActionType = "choose"
	ActionBack            ActionType = "back"
	ActionRestart         ActionType = "restart"
	ActionTryAnother      ActionType = "try_another"
	ActionAccept          ActionType = "accept"
	ActionSetParameter    ActionType = "set_parameter"
	ActionToggleTried     ActionType = "toggle_tried"
	ActionSelectThickness ActionType = "select_thickness"
)

// Action is a serialisable user action. Only the fields relevant to Type are read.
type Action struct {
	Type       ActionType         `json:"type"`
	ChoiceID   string             `json:"choiceId,omitempty"`
	Key        string             `json:"key,omitempty"`
	Value      string             `json:"value,omitempty"`
	ID         string             `json:"id,omitempty"`
	Thickness  string             `json:"thickness,omitempty"`
	Parameters *params.Parameters `json:"parameters,omitempty"`
}

// Dispatch applies a to s. A setup action without parameters uses the
// session's current settings, or the defaults.
func (e *Engine) Dispatch(s Session, a Action) (Session, error) {
	switch a.Type {
	case ActionSetup:
		p := e.parameters(s)
		if a.Parameters != nil {
			p = *a.Parameters
			if p.Tried == nil {
				p.Tried = map[string]bool{}
			}
		}
		return e.Setup(s, p), nil
	case ActionChoose:
		return e.Choose(s, a.ChoiceID)
	case ActionBack:
		return e.Back(s), nil
	case ActionRestart:
		return e.Restart(s), nil
	case ActionTryAnother:
		return e.TryAnother(s)
	case ActionAccept:
		return e.Accept(s)
	case ActionSetParameter:
		return e.SetParameter(s, a.Key, a.Value), nil
	case ActionToggleTried:
		return e.ToggleTried(s, a.ID), nil
	case ActionSelectThickness:
		return e.SelectThickness(s, a.Thickness)
	default:
		return s, fmt.Errorf("%w: %q", ErrUnknownAction, a.Type)
	}
}
