package params

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Parameter keys accepted by SetParameter.
const (
	KeyMetalThickness = "metalThickness"
	KeyVoltage        = "voltage"
	KeyWireSpeed      = "wireSpeed"
)

// Defaults used when no setup values are supplied.
const (
	DefaultThickness = "1/8"
	DefaultVoltage   = 18.0
	DefaultWireSpeed = 200.0
)

// Parameters is the current machine setup plus the things-tried checklist.
type Parameters struct {
	MetalThickness string          `json:"metalThickness" yaml:"metal_thickness"`
	Voltage        float64         `json:"voltage" yaml:"voltage"`
	WireSpeed      float64         `json:"wireSpeed" yaml:"wire_speed"`
	Tried          map[string]bool `json:"tried" yaml:"tried"`
}

// New returns parameters with an empty checklist.
func New(thickness string, voltage, wireSpeed float64) Parameters {
	return Parameters{
		MetalThickness: thickness,
		Voltage:        voltage,
		WireSpeed:      wireSpeed,
		Tried:          map[string]bool{},
	}
}

// Default returns the 1/8" / 18V / 200 IPM starting point.
func Default() Parameters {
	return New(DefaultThickness, DefaultVoltage, DefaultWireSpeed)
}

// Clone returns a deep copy so callers can mutate without aliasing the checklist.
func (p Parameters) Clone() Parameters {
	out := p
	out.Tried = make(map[string]bool, len(p.Tried))
	for k, v := range p.Tried {
		out.Tried[k] = v
	}
	return out
}

// SetParameter returns a copy with key updated from user text. Numeric fields
// keep their previous value when text is empty or does not parse.
func (p Parameters) SetParameter(key, text string) Parameters {
	out := p.Clone()
	text = strings.TrimSpace(text)
	switch key {
	case KeyMetalThickness:
		if text != "" {
			out.MetalThickness = text
		}
	case KeyVoltage:
		if v, ok := ParseNumber(text); ok {
			out.Voltage = v
		}
	case KeyWireSpeed:
		if v, ok := ParseNumber(text); ok {
			out.WireSpeed = v
		}
	}
	return out
}

// ToggleTried flips the checklist entry for id. Unknown ids are added as tried.
func (p Parameters) ToggleTried(id string) Parameters {
	out := p.Clone()
	out.Tried[id] = !out.Tried[id]
	return out
}

// MarkTried sets every id to true.
func (p Parameters) MarkTried(ids ...string) Parameters {
	out := p.Clone()
	for _, id := range ids {
		if id != "" {
			out.Tried[id] = true
		}
	}
	return out
}

// WithPreset overwrites thickness, voltage and wire speed. Manual edits to the
// two numeric fields are discarded.
func (p Parameters) WithPreset(thickness string, voltage, wireSpeed float64) Parameters {
	out := p.Clone()
	out.MetalThickness = thickness
	out.Voltage = voltage
	out.WireSpeed = wireSpeed
	return out
}

// TriedIDs returns the ids currently marked true, sorted.
func (p Parameters) TriedIDs() []string {
	var ids []string
	for id, ok := range p.Tried {
		if ok {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// Summary renders the compact settings bar, e.g. `1/8" • 18V • 200 IPM`.
func (p Parameters) Summary() string {
	return fmt.Sprintf("%s\" • %sV • %s IPM", p.MetalThickness, FormatNumber(p.Voltage), FormatNumber(p.WireSpeed))
}

// ParseNumber parses a user-entered number, rejecting empty, NaN and infinite input.
func ParseNumber(text string) (float64, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// FormatNumber prints v without trailing zeros (18, 18.5).
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ThicknessInches converts a fractional label like "3/16" to decimal inches.
func ThicknessInches(label string) (float64, error) {
	parts := strings.Split(strings.TrimSpace(label), "/")
	switch len(parts) {
	case 1:
		v, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return 0, fmt.Errorf("parsing thickness %q: %w", label, err)
		}
		return v, nil
	case 2:
		num, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return 0, fmt.Errorf("parsing thickness numerator %q: %w", label, err)
		}
		den, err := strconv.ParseFloat(parts[1], 64)
		if err != nil || den == 0 {
			return 0, fmt.Errorf("invalid thickness denominator in %q", label)
		}
		return num / den, nil
	default:
		return 0, fmt.Errorf("invalid thickness %q", label)
	}
}
