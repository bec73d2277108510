package decisiontree

import (
	"sort"

	"github.com/weldyapp/weldy/internal/recommend"
)

// ReservedSetupID is the position of the machine-settings screen, which sits
// in front of every tree. Trees may not use it as a node id.
const ReservedSetupID = "setup"

// NodeType discriminates the node union.
type NodeType string

const (
	TypeImageQuestion NodeType = "image-question"
	TypeTextQuestion  NodeType = "text-question"
	TypeDiagnosis     NodeType = "diagnosis"
)

// IsQuestion reports whether nodes of this type carry choices.
func (t NodeType) IsQuestion() bool {
	return t == TypeImageQuestion || t == TypeTextQuestion
}

// Metadata describes the process the tree was authored for.
type Metadata struct {
	Version      string `json:"version"`
	Process      string `json:"process"`
	ShieldingGas string `json:"shielding_gas"`
}

// Choice is one answer to a question node. Image and Description are only
// set on image questions.
type Choice struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	Image       string `json:"image,omitempty"`
	Description string `json:"description,omitempty"`
	NextNode    string `json:"nextNode"`
}

// Node is a question or a diagnosis. Question nodes use Question and Choices;
// diagnosis nodes use Diagnosis, Description and Recommendations.
type Node struct {
	Type            NodeType              `json:"type"`
	Question        string                `json:"question,omitempty"`
	Choices         []Choice              `json:"choices,omitempty"`
	Diagnosis       string                `json:"diagnosis,omitempty"`
	Description     string                `json:"description,omitempty"`
	Recommendations []recommend.Directive `json:"recommendations,omitempty"`
}

// Tree is a rooted graph of typed nodes.
type Tree struct {
	Metadata  Metadata        `json:"metadata"`
	StartNode string          `json:"startNode"`
	Nodes     map[string]Node `json:"nodes"`
}

// Node looks up a node by id.
func (t *Tree) Node(id string) (Node, bool) {
	n, ok := t.Nodes[id]
	return n, ok
}

// Diagnoses returns the sorted ids of all diagnosis nodes.
func (t *Tree) Diagnoses() []string {
	var out []string
	for id, n := range t.Nodes {
		if n.Type == TypeDiagnosis {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}
