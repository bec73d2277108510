package knowledge

import (
	"sort"
	"strings"

	"github.com/weldyapp/weldy/internal/recommend"
)

// KeySeparator joins sorted defect ids into a combination key.
const KeySeparator = "+"

// Defect is a visually identifiable weld symptom.
type Defect struct {
	ID            string `json:"id" yaml:"id"`
	Name          string `json:"name" yaml:"name"`
	HowToIdentify string `json:"how_to_identify" yaml:"how_to_identify"`
}

// Cause is a root cause tied to one or more co-occurring defects.
type Cause struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	DefectIDs   []string `json:"defect_ids" yaml:"defect_ids"`
	MistakeIDs  []string `json:"mistake_ids" yaml:"mistake_ids"`
}

// Key returns the cause's combination key.
func (c Cause) Key() string {
	return CombinationKey(c.DefectIDs)
}

// Mistake is a specific remedial action. Adjustment is the tagged directive
// applied when the user accepts the fix; ThingsTried lists checklist ids that
// the fix covers.
type Mistake struct {
	ID            string               `json:"id" yaml:"id"`
	QuestionToAsk string               `json:"question_to_ask" yaml:"question_to_ask"`
	Fix           string               `json:"fix" yaml:"fix"`
	Adjustment    *recommend.Directive `json:"adjustment,omitempty" yaml:"adjustment,omitempty"`
	ThingsTried   []string             `json:"things_tried,omitempty" yaml:"things_tried,omitempty"`
}

// Directive returns the fix as a directive. Mistakes without an authored
// adjustment become a technique directive carrying the fix text.
func (m Mistake) Directive() recommend.Directive {
	if m.Adjustment != nil {
		return m.Adjustment.Normalize()
	}
	return recommend.Directive{
		Parameter:  m.ID,
		Adjustment: m.Fix,
		Kind:       recommend.KindTechnique,
	}
}

// ThicknessPreset holds default machine settings for a metal thickness.
type ThicknessPreset struct {
	Thickness string  `json:"thickness" yaml:"thickness"`
	Voltage   float64 `json:"voltage" yaml:"voltage"`
	WireSpeed float64 `json:"wire_speed" yaml:"wire_speed"`
}

// ThingTried is a checklist catalog entry.
type ThingTried struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Category    string `json:"category" yaml:"category"`
}

// KnowledgeBase is the static troubleshooting dataset. It is immutable once
// built with Index and safe to share between sessions.
type KnowledgeBase struct {
	Defects          []Defect          `json:"defects" yaml:"defects"`
	Causes           []Cause           `json:"causes" yaml:"causes"`
	Mistakes         []Mistake         `json:"mistakes" yaml:"mistakes"`
	ThicknessPresets []ThicknessPreset `json:"thickness_presets" yaml:"thickness_presets"`
	ThingsTried      []ThingTried      `json:"things_tried" yaml:"things_tried"`
	GoodWeld         []string          `json:"good_weld" yaml:"good_weld"`

	defects  map[string]Defect
	causes   map[string]Cause
	mistakes map[string]Mistake
	presets  map[string]ThicknessPreset
	things   map[string]ThingTried
}

// Index builds the lookup maps and normalizes mistake directives. First
// occurrence of a duplicate id wins; Validate reports duplicates.
func (kb *KnowledgeBase) Index() {
	kb.defects = make(map[string]Defect, len(kb.Defects))
	for _, d := range kb.Defects {
		if _, ok := kb.defects[d.ID]; !ok {
			kb.defects[d.ID] = d
		}
	}
	kb.causes = make(map[string]Cause, len(kb.Causes))
	for _, c := range kb.Causes {
		if _, ok := kb.causes[c.ID]; !ok {
			kb.causes[c.ID] = c
		}
	}
	kb.mistakes = make(map[string]Mistake, len(kb.Mistakes))
	for i, m := range kb.Mistakes {
		if m.Adjustment != nil {
			d := m.Adjustment.Normalize()
			kb.Mistakes[i].Adjustment = &d
			m = kb.Mistakes[i]
		}
		if _, ok := kb.mistakes[m.ID]; !ok {
			kb.mistakes[m.ID] = m
		}
	}
	kb.presets = make(map[string]ThicknessPreset, len(kb.ThicknessPresets))
	for _, p := range kb.ThicknessPresets {
		if _, ok := kb.presets[p.Thickness]; !ok {
			kb.presets[p.Thickness] = p
		}
	}
	kb.things = make(map[string]ThingTried, len(kb.ThingsTried))
	for _, t := range kb.ThingsTried {
		if _, ok := kb.things[t.ID]; !ok {
			kb.things[t.ID] = t
		}
	}
}

// Defect looks up a defect by id.
func (kb *KnowledgeBase) Defect(id string) (Defect, bool) {
	d, ok := kb.defects[id]
	return d, ok
}

// Cause looks up a cause by id.
func (kb *KnowledgeBase) Cause(id string) (Cause, bool) {
	c, ok := kb.causes[id]
	return c, ok
}

// Mistake looks up a mistake by id.
func (kb *KnowledgeBase) Mistake(id string) (Mistake, bool) {
	m, ok := kb.mistakes[id]
	return m, ok
}

// Preset looks up a thickness preset by label.
func (kb *KnowledgeBase) Preset(thickness string) (ThicknessPreset, bool) {
	p, ok := kb.presets[thickness]
	return p, ok
}

// ThingTried looks up a checklist entry by id.
func (kb *KnowledgeBase) ThingTried(id string) (ThingTried, bool) {
	t, ok := kb.things[id]
	return t, ok
}

// ThicknessOptions returns preset labels in dataset order.
func (kb *KnowledgeBase) ThicknessOptions() []string {
	out := make([]string, len(kb.ThicknessPresets))
	for i, p := range kb.ThicknessPresets {
		out[i] = p.Thickness
	}
	return out
}

// InitializeThingsTried returns every catalog id mapped to false.
func (kb *KnowledgeBase) InitializeThingsTried() map[string]bool {
	out := make(map[string]bool, len(kb.ThingsTried))
	for _, t := range kb.ThingsTried {
		out[t.ID] = false
	}
	return out
}

// ThingsTriedByCategory groups the catalog by category, keeping dataset order
// within each group.
func (kb *KnowledgeBase) ThingsTriedByCategory() map[string][]ThingTried {
	out := make(map[string][]ThingTried)
	for _, t := range kb.ThingsTried {
		out[t.Category] = append(out[t.Category], t)
	}
	return out
}

// CombinationKey sorts ids and joins them with "+". The input is not modified.
func CombinationKey(ids []string) string {
	return strings.Join(SortedIDs(ids), KeySeparator)
}

// SortedIDs returns a sorted copy of ids.
func SortedIDs(ids []string) []string {
	out := make([]string, len(ids))
	copy(out, ids)
	sort.Strings(out)
	return out
}

// SplitKey parses a combination key back into defect ids.
func SplitKey(key string) []string {
	if key == "" {
		return nil
	}
	return strings.Split(key, KeySeparator)
}
