package decisiontree

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
)

//go:embed data/decision-tree.json
var defaultTree []byte

// Default returns the embedded MIG decision tree.
func Default() (*Tree, error) {
	t, err := Parse(defaultTree)
	if err != nil {
		return nil, fmt.Errorf("parsing embedded decision tree: %w", err)
	}
	return t, nil
}

// Parse decodes a JSON decision tree and normalizes its recommendations.
func Parse(data []byte) (*Tree, error) {
	var t Tree
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("decoding decision tree: %w", err)
	}
	for id, n := range t.Nodes {
		for i, r := range n.Recommendations {
			n.Recommendations[i] = r.Normalize()
		}
		t.Nodes[id] = n
	}
	return &t, nil
}

// Load reads a decision tree file. An empty path returns the embedded tree.
func Load(path string) (*Tree, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading decision tree: %w", err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return t, nil
}
