package engine

import (
	"fmt"

	"github.com/weldyapp/weldy/internal/decisiontree"
)

// TreeGraph walks a decision tree. Node ids are the tree's own ids.
type TreeGraph struct {
	tree *decisiontree.Tree
}

// NewTreeGraph wraps a loaded decision tree.
func NewTreeGraph(t *decisiontree.Tree) *TreeGraph {
	return &TreeGraph{tree: t}
}

// Start implements Graph.
func (g *TreeGraph) Start() string {
	return g.tree.StartNode
}

// Resolve implements Graph.
func (g *TreeGraph) Resolve(id string) (Node, error) {
	tn, ok := g.tree.Node(id)
	if !ok {
		return Node{}, fmt.Errorf("%w: %q", ErrNodeNotFound, id)
	}
	switch tn.Type {
	case decisiontree.TypeImageQuestion, decisiontree.TypeTextQuestion:
		n := Node{ID: id, Kind: ScreenQuestion, Title: tn.Question}
		for _, c := range tn.Choices {
			n.Choices = append(n.Choices, Choice{
				ID:          c.ID,
				Label:       c.Text,
				Description: c.Description,
				Image:       c.Image,
				Next:        c.NextNode,
			})
		}
		return n, nil
	case decisiontree.TypeDiagnosis:
		n := Node{ID: id, Kind: ScreenDiagnosis, Title: tn.Diagnosis, Description: tn.Description}
		for _, r := range tn.Recommendations {
			n.Recommendations = append(n.Recommendations, Recommendation{Directive: r})
		}
		return n, nil
	default:
		return Node{}, fmt.Errorf("%w: %q has unknown type %q", ErrNodeNotFound, id, tn.Type)
	}
}
