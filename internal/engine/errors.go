package engine

import "errors"

// Data-integrity errors. They indicate a corrupt or mismatched dataset and are
// surfaced as an error screen rather than retried.
var (
	ErrNodeNotFound    = errors.New("node not found")
	ErrCauseNotFound   = errors.New("cause not found")
	ErrMistakeNotFound = errors.New("mistake not found")
	ErrPresetNotFound  = errors.New("thickness preset not found")
	ErrChoiceNotFound  = errors.New("choice not found")
)

// ErrNoRecommendation is returned by recommendation actions on screens that
// have no recommendation.
var ErrNoRecommendation = errors.New("no recommendation on this screen")

// ErrUnknownAction is returned by Dispatch for unrecognised action types.
var ErrUnknownAction = errors.New("unknown action")
