package knowledge

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

//go:embed data/weldy.yaml
var defaultData []byte

// Default returns the embedded MIG troubleshooting dataset.
func Default() (*KnowledgeBase, error) {
	kb, err := Parse(defaultData, ".yaml")
	if err != nil {
		return nil, fmt.Errorf("parsing embedded knowledge base: %w", err)
	}
	return kb, nil
}

// Parse decodes a knowledge base. ext selects the format (".json", ".yaml"
// or ".yml").
func Parse(data []byte, ext string) (*KnowledgeBase, error) {
	kb := &KnowledgeBase{}
	switch strings.ToLower(ext) {
	case ".json":
		if err := json.Unmarshal(data, kb); err != nil {
			return nil, fmt.Errorf("decoding json: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, kb); err != nil {
			return nil, fmt.Errorf("decoding yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported knowledge base format %q", ext)
	}
	kb.Index()
	return kb, nil
}

// LoadFile reads a single JSON or YAML knowledge base file.
func LoadFile(path string) (*KnowledgeBase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	kb, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return kb, nil
}

// Load resolves patterns (plain paths or doublestar globs such as
// "kb/**/*.yaml") and merges every matching file, in sorted path order, into
// one knowledge base. An empty pattern list returns the embedded dataset.
func Load(patterns []string) (*KnowledgeBase, error) {
	if len(patterns) == 0 {
		return Default()
	}

	seen := make(map[string]bool)
	var paths []string
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("expanding %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no knowledge base files match %q", pattern)
		}
		for _, m := range matches {
			if !seen[m] && isDataFile(m) {
				seen[m] = true
				paths = append(paths, m)
			}
		}
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no .json/.yaml files in %v", patterns)
	}
	sort.Strings(paths)

	merged := &KnowledgeBase{}
	for _, p := range paths {
		kb, err := LoadFile(p)
		if err != nil {
			return nil, err
		}
		merged.merge(kb)
	}
	merged.Index()
	return merged, nil
}

func (kb *KnowledgeBase) merge(other *KnowledgeBase) {
	kb.Defects = append(kb.Defects, other.Defects...)
	kb.Causes = append(kb.Causes, other.Causes...)
	kb.Mistakes = append(kb.Mistakes, other.Mistakes...)
	kb.ThicknessPresets = append(kb.ThicknessPresets, other.ThicknessPresets...)
	kb.ThingsTried = append(kb.ThingsTried, other.ThingsTried...)
	kb.GoodWeld = append(kb.GoodWeld, other.GoodWeld...)
}

func isDataFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}
