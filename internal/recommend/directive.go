package recommend

import "strings"

// Kind tags a directive as a numeric machine change or a technique instruction.
type Kind string

const (
	KindNumeric   Kind = "numeric"
	KindTechnique Kind = "technique"
)

// Direction is the way a numeric parameter moves.
type Direction string

const (
	DirectionNone     Direction = ""
	DirectionIncrease Direction = "increase"
	DirectionDecrease Direction = "decrease"
)

// Parameter names used by directives.
const (
	ParamVoltage       = "voltage"
	ParamWireFeedSpeed = "wire_feed_speed"
	ParamStickOut      = "stick_out"
	ParamTravelSpeed   = "travel_speed"
)

// Directive is a generic adjustment such as "increase voltage". Kind and
// Direction are normally authored in the knowledge base; Normalize fills them
// in when they are missing.
type Directive struct {
	Parameter  string    `json:"parameter" yaml:"parameter"`
	Adjustment string    `json:"adjustment" yaml:"adjustment"`
	Details    string    `json:"details" yaml:"details"`
	Kind       Kind      `json:"kind,omitempty" yaml:"kind,omitempty"`
	Direction  Direction `json:"direction,omitempty" yaml:"direction,omitempty"`
}

// Normalize returns a copy with Kind and Direction resolved. It runs once when
// data is loaded so nothing downstream inspects adjustment text.
func (d Directive) Normalize() Directive {
	out := d
	if out.Direction == DirectionNone {
		out.Direction = directionFromText(d.Adjustment)
	}
	if out.Kind == "" {
		if isNumericParameter(d.Parameter) && out.Direction != DirectionNone {
			out.Kind = KindNumeric
		} else {
			out.Kind = KindTechnique
		}
	}
	return out
}

// IsNumeric reports whether the directive changes a machine setting.
func (d Directive) IsNumeric() bool {
	return d.Normalize().Kind == KindNumeric
}

// ParameterLabel renders the parameter name with spaces ("wire feed speed").
func (d Directive) ParameterLabel() string {
	return strings.ReplaceAll(d.Parameter, "_", " ")
}

func directionFromText(text string) Direction {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "increase"):
		return DirectionIncrease
	case strings.Contains(lower, "decrease"):
		return DirectionDecrease
	default:
		return DirectionNone
	}
}

func isNumericParameter(p string) bool {
	return p == ParamVoltage || p == ParamWireFeedSpeed
}
