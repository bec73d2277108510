package recommend

import "fmt"

// Action is what the secondary button on a recommendation does.
type Action string

const (
	ActionTryAnother Action = "try_another"
	ActionStartOver  Action = "start_over"
)

// Label returns the button text for the action.
func (a Action) Label() string {
	if a == ActionTryAnother {
		return "Try Another Suggestion"
	}
	return "Start Over"
}

// Cursor walks a diagnosis's recommendation list one entry at a time.
type Cursor struct {
	Index int `json:"index"`
	Total int `json:"total"`
}

// IsLast reports whether no further suggestions remain.
func (c Cursor) IsLast() bool {
	return c.Index >= c.Total-1
}

// NextAction is ActionTryAnother until the last suggestion, then ActionStartOver.
func (c Cursor) NextAction() Action {
	if c.IsLast() {
		return ActionStartOver
	}
	return ActionTryAnother
}

// Next advances the cursor. ok is false on the last suggestion, in which case
// the caller should start over instead.
func (c Cursor) Next() (Cursor, bool) {
	if c.IsLast() {
		return c, false
	}
	return Cursor{Index: c.Index + 1, Total: c.Total}, true
}

// Counter renders "Try This (2/3)".
func (c Cursor) Counter() string {
	return fmt.Sprintf("Try This (%d/%d)", c.Index+1, c.Total)
}
