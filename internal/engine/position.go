package engine

// Position is where a session is in the graph plus the path that led there.
type Position struct {
	History []string `json:"history"`
	Current string   `json:"current"`
}

// Advance moves to next, pushing current onto the history.
func Advance(pos Position, next string) Position {
	history := make([]string, len(pos.History), len(pos.History)+1)
	copy(history, pos.History)
	return Position{
		History: append(history, pos.Current),
		Current: next,
	}
}

// GoBack pops the last history entry. ok is false, and pos is returned
// unchanged, when there is nowhere to go back to.
func GoBack(pos Position) (Position, bool) {
	if len(pos.History) == 0 {
		return pos, false
	}
	last := len(pos.History) - 1
	history := make([]string, last)
	copy(history, pos.History[:last])
	return Position{History: history, Current: pos.History[last]}, true
}

// Restart returns an empty history positioned at start.
func Restart(start string) Position {
	return Position{History: []string{}, Current: start}
}

// CanGoBack reports whether GoBack would move.
func (p Position) CanGoBack() bool {
	return len(p.History) > 0
}
