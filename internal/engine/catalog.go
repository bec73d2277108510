package engine

import (
	"fmt"
	"strings"

	"github.com/weldyapp/weldy/internal/knowledge"
)

// Catalog node ids. Combination and cause nodes extend NodeDefects with path
// segments: "defects/{key}" and "defects/{key}/{causeID}".
const (
	NodeDefects  = "defects"
	NodeGoodWeld = "good-weld"
)

// GoodWeldKey is the combination key of the synthetic no-defect entry.
const GoodWeldKey = "good_weld"

// Combination is a distinct set of co-occurring defects offered on the
// defect-selection screen.
type Combination struct {
	Key          string   `json:"key"`
	DefectIDs    []string `json:"defectIds"`
	Label        string   `json:"label"`
	Descriptions []string `json:"descriptions"`
	Image        string   `json:"image"`
}

// IsGoodWeld reports whether c is the synthetic no-defect entry.
func (c Combination) IsGoodWeld() bool {
	return len(c.DefectIDs) == 0
}

// CauseSelection is a cause together with the mistake offered first.
type CauseSelection struct {
	Cause   knowledge.Cause   `json:"cause"`
	Mistake knowledge.Mistake `json:"mistake"`
}

// Catalog derives the defect -> cause -> fix graph from a knowledge base.
type Catalog struct {
	kb           *knowledge.KnowledgeBase
	combinations []Combination
	byKey        map[string]Combination
}

// NewCatalog builds the catalog graph. The combination list is computed once.
func NewCatalog(kb *knowledge.KnowledgeBase) *Catalog {
	c := &Catalog{kb: kb}
	c.combinations = CombinationsFromCauses(kb, kb.Causes)
	c.byKey = make(map[string]Combination, len(c.combinations))
	for _, combo := range c.combinations {
		c.byKey[combo.Key] = combo
	}
	return c
}

// CombinationImage is the asset path for a combination picture.
func CombinationImage(key string) string {
	return "assets/weld-images/" + key + ".png"
}

// CombinationsFromCauses groups causes by their sorted defect-id key, keeping
// the first occurrence of each key in dataset order, and prepends the good
// weld entry.
func CombinationsFromCauses(kb *knowledge.KnowledgeBase, causes []knowledge.Cause) []Combination {
	out := []Combination{goodWeld(kb)}
	seen := map[string]bool{GoodWeldKey: true}
	for _, cause := range causes {
		key := cause.Key()
		if seen[key] {
			continue
		}
		seen[key] = true

		ids := knowledge.SortedIDs(cause.DefectIDs)
		var names, descriptions []string
		for _, id := range ids {
			d, ok := kb.Defect(id)
			if !ok {
				continue
			}
			names = append(names, d.Name)
			descriptions = append(descriptions, fmt.Sprintf("• %s: %s", d.Name, d.HowToIdentify))
		}
		out = append(out, Combination{
			Key:          key,
			DefectIDs:    ids,
			Label:        strings.Join(names, " + "),
			Descriptions: descriptions,
			Image:        CombinationImage(key),
		})
	}
	return out
}

func goodWeld(kb *knowledge.KnowledgeBase) Combination {
	descriptions := make([]string, len(kb.GoodWeld))
	for i, d := range kb.GoodWeld {
		descriptions[i] = "• " + d
	}
	return Combination{
		Key:          GoodWeldKey,
		DefectIDs:    []string{},
		Label:        "Good Weld",
		Descriptions: descriptions,
		Image:        CombinationImage(GoodWeldKey),
	}
}

// Combinations returns the defect-selection entries, good weld first.
func (c *Catalog) Combinations() []Combination {
	return c.combinations
}

// Combination looks up a combination by key.
func (c *Catalog) Combination(key string) (Combination, bool) {
	combo, ok := c.byKey[key]
	return combo, ok
}

// CausesForCombination returns the causes whose defect set equals defectIDs
// exactly. Subsets and supersets do not match.
func (c *Catalog) CausesForCombination(defectIDs []string) []knowledge.Cause {
	key := knowledge.CombinationKey(defectIDs)
	var out []knowledge.Cause
	for _, cause := range c.kb.Causes {
		if cause.Key() == key {
			out = append(out, cause)
		}
	}
	return out
}

// SelectCause returns the cause and its first mistake.
func (c *Catalog) SelectCause(causeID string) (CauseSelection, error) {
	cause, ok := c.kb.Cause(causeID)
	if !ok {
		return CauseSelection{}, fmt.Errorf("%w: %q", ErrCauseNotFound, causeID)
	}
	if len(cause.MistakeIDs) == 0 {
		return CauseSelection{}, fmt.Errorf("%w: cause %q lists no mistakes", ErrMistakeNotFound, causeID)
	}
	m, ok := c.kb.Mistake(cause.MistakeIDs[0])
	if !ok {
		return CauseSelection{}, fmt.Errorf("%w: %q", ErrMistakeNotFound, cause.MistakeIDs[0])
	}
	return CauseSelection{Cause: cause, Mistake: m}, nil
}

// Start implements Graph.
func (c *Catalog) Start() string {
	return NodeDefects
}

// Resolve implements Graph.
func (c *Catalog) Resolve(id string) (Node, error) {
	if id == NodeGoodWeld {
		return c.goodWeldNode(), nil
	}
	parts := strings.Split(id, "/")
	if parts[0] != NodeDefects || len(parts) > 3 {
		return Node{}, fmt.Errorf("%w: %q", ErrNodeNotFound, id)
	}
	switch len(parts) {
	case 1:
		return c.combinationsNode(), nil
	case 2:
		return c.causesNode(id, parts[1])
	default:
		return c.fixNode(id, parts[1], parts[2])
	}
}

func (c *Catalog) combinationsNode() Node {
	n := Node{
		ID:    NodeDefects,
		Kind:  ScreenCombinations,
		Title: "Which of these looks like your weld?",
	}
	for _, combo := range c.combinations {
		next := NodeDefects + "/" + combo.Key
		if combo.IsGoodWeld() {
			next = NodeGoodWeld
		}
		n.Choices = append(n.Choices, Choice{
			ID:           combo.Key,
			Label:        combo.Label,
			Descriptions: combo.Descriptions,
			Image:        combo.Image,
			DefectIDs:    combo.DefectIDs,
			Next:         next,
		})
	}
	return n
}

func (c *Catalog) goodWeldNode() Node {
	combo := c.combinations[0]
	return Node{
		ID:          NodeGoodWeld,
		Kind:        ScreenSuccess,
		Title:       "Great Weld!",
		Description: strings.Join(combo.Descriptions, "\n"),
	}
}

func (c *Catalog) causesNode(id, key string) (Node, error) {
	combo, ok := c.byKey[key]
	if !ok || combo.IsGoodWeld() {
		return Node{}, fmt.Errorf("%w: %q", ErrNodeNotFound, id)
	}
	n := Node{
		ID:    id,
		Kind:  ScreenCauses,
		Title: fmt.Sprintf("You selected: %s. Which of these applies?", combo.Label),
	}
	for _, cause := range c.CausesForCombination(combo.DefectIDs) {
		choice := Choice{
			ID:    cause.ID,
			Label: cause.Name,
			Next:  id + "/" + cause.ID,
		}
		if len(cause.MistakeIDs) > 0 {
			if m, ok := c.kb.Mistake(cause.MistakeIDs[0]); ok {
				choice.Description = m.QuestionToAsk
			}
		}
		n.Choices = append(n.Choices, choice)
	}
	return n, nil
}

func (c *Catalog) fixNode(id, key, causeID string) (Node, error) {
	combo, ok := c.byKey[key]
	if !ok {
		return Node{}, fmt.Errorf("%w: %q", ErrNodeNotFound, id)
	}
	sel, err := c.SelectCause(causeID)
	if err != nil {
		return Node{}, fmt.Errorf("%w: %q: %w", ErrNodeNotFound, id, err)
	}
	if sel.Cause.Key() != key {
		return Node{}, fmt.Errorf("%w: cause %q does not explain %q", ErrNodeNotFound, causeID, key)
	}

	n := Node{
		ID:          id,
		Kind:        ScreenRecommendation,
		Title:       combo.Label,
		Subtitle:    sel.Cause.Name,
		Description: sel.Cause.Description,
	}
	for _, mid := range sel.Cause.MistakeIDs {
		m, ok := c.kb.Mistake(mid)
		if !ok {
			return Node{}, fmt.Errorf("%w: %q: %w: %q", ErrNodeNotFound, id, ErrMistakeNotFound, mid)
		}
		n.Recommendations = append(n.Recommendations, Recommendation{
			Directive:   m.Directive(),
			MistakeID:   m.ID,
			Question:    m.QuestionToAsk,
			ThingsTried: m.ThingsTried,
		})
	}
	return n, nil
}
