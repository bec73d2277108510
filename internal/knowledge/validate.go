package knowledge

import (
	"errors"
	"fmt"
)

// Validate checks referential integrity: unique ids, every cause references
// known defects and mistakes, every mistake references known checklist
// entries, and presets carry positive settings. All problems are returned
// joined.
func (kb *KnowledgeBase) Validate() error {
	var errs []error

	dup := func(kind string, ids []string) {
		seen := make(map[string]bool, len(ids))
		for _, id := range ids {
			if id == "" {
				errs = append(errs, fmt.Errorf("%s with empty id", kind))
				continue
			}
			if seen[id] {
				errs = append(errs, fmt.Errorf("duplicate %s id %q", kind, id))
			}
			seen[id] = true
		}
	}

	defectIDs := make([]string, len(kb.Defects))
	for i, d := range kb.Defects {
		defectIDs[i] = d.ID
	}
	dup("defect", defectIDs)

	causeIDs := make([]string, len(kb.Causes))
	for i, c := range kb.Causes {
		causeIDs[i] = c.ID
	}
	dup("cause", causeIDs)

	mistakeIDs := make([]string, len(kb.Mistakes))
	for i, m := range kb.Mistakes {
		mistakeIDs[i] = m.ID
	}
	dup("mistake", mistakeIDs)

	thingIDs := make([]string, len(kb.ThingsTried))
	for i, t := range kb.ThingsTried {
		thingIDs[i] = t.ID
	}
	dup("things-tried", thingIDs)

	presetIDs := make([]string, len(kb.ThicknessPresets))
	for i, p := range kb.ThicknessPresets {
		presetIDs[i] = p.Thickness
	}
	dup("thickness preset", presetIDs)

	for _, c := range kb.Causes {
		if len(c.DefectIDs) == 0 {
			errs = append(errs, fmt.Errorf("cause %q has no defects", c.ID))
		}
		for _, id := range c.DefectIDs {
			if _, ok := kb.Defect(id); !ok {
				errs = append(errs, fmt.Errorf("cause %q references unknown defect %q", c.ID, id))
			}
		}
		if len(c.MistakeIDs) == 0 {
			errs = append(errs, fmt.Errorf("cause %q has no mistakes", c.ID))
		}
		for _, id := range c.MistakeIDs {
			if _, ok := kb.Mistake(id); !ok {
				errs = append(errs, fmt.Errorf("cause %q references unknown mistake %q", c.ID, id))
			}
		}
	}

	for _, m := range kb.Mistakes {
		if m.Fix == "" {
			errs = append(errs, fmt.Errorf("mistake %q has no fix", m.ID))
		}
		if m.Adjustment != nil && m.Adjustment.Parameter == "" {
			errs = append(errs, fmt.Errorf("mistake %q adjustment has no parameter", m.ID))
		}
		for _, id := range m.ThingsTried {
			if _, ok := kb.ThingTried(id); !ok {
				errs = append(errs, fmt.Errorf("mistake %q references unknown things-tried entry %q", m.ID, id))
			}
		}
	}

	for _, p := range kb.ThicknessPresets {
		if p.Voltage <= 0 || p.WireSpeed <= 0 {
			errs = append(errs, fmt.Errorf("thickness preset %q must have positive voltage and wire speed", p.Thickness))
		}
	}

	return errors.Join(errs...)
}
