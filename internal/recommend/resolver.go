package recommend

import (
	"fmt"
	"math"

	"github.com/weldyapp/weldy/internal/params"
)

// StickOutInstruction is shown for every stick-out directive.
const StickOutInstruction = `Check stick-out distance: maintain 3/8"`

// Button labels for accepting a suggestion.
const (
	AcceptNumericLabel   = "Done, I changed it"
	AcceptTechniqueLabel = "Done, I tried this"
)

// Config holds step sizes and floors for numeric adjustments.
type Config struct {
	VoltageStep   float64 `json:"voltage_step" yaml:"voltage_step" koanf:"voltage_step"`
	WireSpeedStep float64 `json:"wire_speed_step" yaml:"wire_speed_step" koanf:"wire_speed_step"`
	MinVoltage    float64 `json:"min_voltage" yaml:"min_voltage" koanf:"min_voltage"`
	MinWireSpeed  float64 `json:"min_wire_speed" yaml:"min_wire_speed" koanf:"min_wire_speed"`
}

// DefaultConfig returns 2V / 20 IPM steps with 12V / 100 IPM floors.
func DefaultConfig() Config {
	return Config{
		VoltageStep:   2,
		WireSpeedStep: 20,
		MinVoltage:    12,
		MinWireSpeed:  100,
	}
}

// Suggestion is a directive rendered against the current parameters.
type Suggestion struct {
	Parameter string  `json:"parameter"`
	Text      string  `json:"text"`
	Details   string  `json:"details,omitempty"`
	Kind      Kind    `json:"kind"`
	From      float64 `json:"from,omitempty"`
	To        float64 `json:"to,omitempty"`
}

// AcceptLabel is the button text for accepting the suggestion.
func (s Suggestion) AcceptLabel() string {
	if s.Kind == KindNumeric {
		return AcceptNumericLabel
	}
	return AcceptTechniqueLabel
}

// Resolver turns directives into concrete suggestions.
type Resolver struct {
	cfg Config
}

// NewResolver creates a Resolver. Zero step or floor values fall back to defaults.
func NewResolver(cfg Config) *Resolver {
	def := DefaultConfig()
	if cfg.VoltageStep <= 0 {
		cfg.VoltageStep = def.VoltageStep
	}
	if cfg.WireSpeedStep <= 0 {
		cfg.WireSpeedStep = def.WireSpeedStep
	}
	if cfg.MinVoltage <= 0 {
		cfg.MinVoltage = def.MinVoltage
	}
	if cfg.MinWireSpeed <= 0 {
		cfg.MinWireSpeed = def.MinWireSpeed
	}
	return &Resolver{cfg: cfg}
}

// Config returns the effective configuration.
func (r *Resolver) Config() Config { return r.cfg }

// SpecificRecommendation renders the text for param/adjustment against p.
func (r *Resolver) SpecificRecommendation(param, adjustment string, p params.Parameters) string {
	return r.Specific(Directive{Parameter: param, Adjustment: adjustment}, p).Text
}

// Specific renders d against p.
func (r *Resolver) Specific(d Directive, p params.Parameters) Suggestion {
	d = d.Normalize()
	s := Suggestion{
		Parameter: d.Parameter,
		Text:      d.Adjustment,
		Details:   d.Details,
		Kind:      KindTechnique,
	}

	switch d.Parameter {
	case ParamVoltage, ParamWireFeedSpeed:
		if d.Kind != KindNumeric || d.Direction == DirectionNone {
			return s
		}
		from, to := r.target(d, p)
		s.Kind = KindNumeric
		s.From = from
		s.To = to
		s.Text = numericText(d, from, to)
	case ParamStickOut:
		s.Text = StickOutInstruction
	}
	return s
}

// Apply returns p with the directive's target applied and the parameter marked
// tried. Directives without a numeric target only mark the parameter.
func (r *Resolver) Apply(p params.Parameters, d Directive) params.Parameters {
	d = d.Normalize()
	out := p.Clone()
	if d.Kind == KindNumeric && d.Direction != DirectionNone {
		_, to := r.target(d, p)
		switch d.Parameter {
		case ParamVoltage:
			out.Voltage = to
		case ParamWireFeedSpeed:
			out.WireSpeed = to
		}
	}
	return out.MarkTried(d.Parameter)
}

func (r *Resolver) target(d Directive, p params.Parameters) (from, to float64) {
	var step, floor float64
	switch d.Parameter {
	case ParamVoltage:
		from, step, floor = p.Voltage, r.cfg.VoltageStep, r.cfg.MinVoltage
	case ParamWireFeedSpeed:
		from, step, floor = p.WireSpeed, r.cfg.WireSpeedStep, r.cfg.MinWireSpeed
	default:
		return p.Voltage, p.Voltage
	}
	if d.Direction == DirectionIncrease {
		return from, from + step
	}
	return from, math.Max(from-step, floor)
}

func numericText(d Directive, from, to float64) string {
	verb := "Increase"
	if d.Direction == DirectionDecrease {
		verb = "Decrease"
	}
	if d.Parameter == ParamVoltage {
		return fmt.Sprintf("%s voltage from %sV to %sV", verb, params.FormatNumber(from), params.FormatNumber(to))
	}
	return fmt.Sprintf("%s wire speed from %s IPM to %s IPM", verb, params.FormatNumber(from), params.FormatNumber(to))
}
