package decisiontree

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
)

var imagePattern = regexp.MustCompile(`^resources/images/.*\.jpg$`)

// Validate checks the structural invariants: the start node exists, the
// reserved setup id is unused, node types are known, question nodes have choices whose nextNode resolves and is
// not the containing node, and some path from the start reaches a diagnosis.
func (t *Tree) Validate() error {
	var errs []error

	if _, ok := t.Nodes[t.StartNode]; !ok {
		errs = append(errs, fmt.Errorf("start node %q not found", t.StartNode))
	}
	if _, ok := t.Nodes[ReservedSetupID]; ok || t.StartNode == ReservedSetupID {
		errs = append(errs, fmt.Errorf("node id %q is reserved for the setup screen", ReservedSetupID))
	}

	for _, id := range t.sortedIDs() {
		n := t.Nodes[id]
		switch n.Type {
		case TypeImageQuestion, TypeTextQuestion:
			if len(n.Choices) == 0 {
				errs = append(errs, fmt.Errorf("node %q: question has no choices", id))
			}
			for _, c := range n.Choices {
				if c.ID == "" || c.Text == "" {
					errs = append(errs, fmt.Errorf("node %q: choice missing id or text", id))
				}
				if c.NextNode == id {
					errs = append(errs, fmt.Errorf("node %q: choice %q points back to its own node", id, c.ID))
				}
				if _, ok := t.Nodes[c.NextNode]; !ok {
					errs = append(errs, fmt.Errorf("node %q: choice %q references unknown node %q", id, c.ID, c.NextNode))
				}
			}
		case TypeDiagnosis:
			if n.Diagnosis == "" {
				errs = append(errs, fmt.Errorf("node %q: diagnosis title is empty", id))
			}
			for i, r := range n.Recommendations {
				if r.Parameter == "" || r.Adjustment == "" {
					errs = append(errs, fmt.Errorf("node %q: recommendation %d missing parameter or adjustment", id, i))
				}
			}
		default:
			errs = append(errs, fmt.Errorf("node %q: unknown type %q", id, n.Type))
		}
	}

	if len(errs) == 0 && !t.reachesDiagnosis() {
		errs = append(errs, errors.New("no diagnosis reachable from the start node"))
	}
	return errors.Join(errs...)
}

// Lint reports content-quality warnings that do not break navigation.
func (t *Tree) Lint() []string {
	var warnings []string
	if len(t.Diagnoses()) < 5 {
		warnings = append(warnings, fmt.Sprintf("only %d diagnosis nodes, expected at least 5", len(t.Diagnoses())))
	}
	for _, id := range t.sortedIDs() {
		n := t.Nodes[id]
		if n.Type.IsQuestion() && len(n.Question) <= 10 {
			warnings = append(warnings, fmt.Sprintf("node %q: question is too short", id))
		}
		if n.Type == TypeDiagnosis && len(n.Description) <= 20 {
			warnings = append(warnings, fmt.Sprintf("node %q: diagnosis description is too short", id))
		}
		if n.Type == TypeImageQuestion {
			for _, c := range n.Choices {
				if !imagePattern.MatchString(c.Image) {
					warnings = append(warnings, fmt.Sprintf("node %q: choice %q image %q does not match resources/images/*.jpg", id, c.ID, c.Image))
				}
				if c.Description == "" {
					warnings = append(warnings, fmt.Sprintf("node %q: choice %q has no description", id, c.ID))
				}
			}
		}
		if n.Type == TypeDiagnosis {
			for i, r := range n.Recommendations {
				if r.Details == "" {
					warnings = append(warnings, fmt.Sprintf("node %q: recommendation %d has no details", id, i))
				}
			}
		}
	}
	if start, ok := t.Nodes[t.StartNode]; ok {
		seen := make(map[string]bool)
		for _, c := range start.Choices {
			if c.Image != "" && seen[c.Image] {
				warnings = append(warnings, fmt.Sprintf("start node: duplicate image %q", c.Image))
			}
			seen[c.Image] = true
		}
	}
	return warnings
}

func (t *Tree) reachesDiagnosis() bool {
	visited := make(map[string]bool)
	stack := []string{t.StartNode}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[id] {
			continue
		}
		visited[id] = true
		n, ok := t.Nodes[id]
		if !ok {
			continue
		}
		if n.Type == TypeDiagnosis {
			return true
		}
		for _, c := range n.Choices {
			stack = append(stack, c.NextNode)
		}
	}
	return false
}

func (t *Tree) sortedIDs() []string {
	ids := make([]string, 0, len(t.Nodes))
	for id := range t.Nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
