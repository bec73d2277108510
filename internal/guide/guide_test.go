package guide

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/weldyapp/weldy/internal/decisiontree"
	"github.com/weldyapp/weldy/internal/knowledge"
)

func defaultPages(t *testing.T, withTree bool) []Page {
	t.Helper()
	kb, err := knowledge.Default()
	if err != nil {
		t.Fatalf("loading knowledge base: %v", err)
	}
	var tree *decisiontree.Tree
	if withTree {
		tree, err = decisiontree.Default()
		if err != nil {
			t.Fatalf("loading decision tree: %v", err)
		}
	}
	return Pages(kb, tree)
}

func findPage(pages []Page, path string) (Page, bool) {
	for _, p := range pages {
		if p.Path == path {
			return p, true
		}
	}
	return Page{}, false
}

func TestPagesCoverEveryCombination(t *testing.T) {
	pages := defaultPages(t, false)

	for _, path := range []string{"index.md", "settings.md", "checklist.md", "defects/porosity.md", "defects/excessive_spatter-porosity.md"} {
		if _, ok := findPage(pages, path); !ok {
			t.Errorf("missing page %s", path)
		}
	}
	if _, ok := findPage(pages, "tree.md"); ok {
		t.Error("tree page generated without a tree")
	}
	if _, ok := findPage(pages, "defects/good_weld.md"); ok {
		t.Error("good weld should not get a defect page")
	}

	index, _ := findPage(pages, "index.md")
	if !strings.Contains(index.Markdown, "Smooth, even ripples") {
		t.Error("index missing good weld description")
	}
	if !strings.Contains(index.Markdown, "(defects/porosity.md)") {
		t.Error("index missing link to porosity page")
	}
}

func TestCombinationPageListsCausesAndFixes(t *testing.T) {
	p, ok := findPage(defaultPages(t, false), "defects/porosity.md")
	if !ok {
		t.Fatal("porosity page missing")
	}
	for _, want := range []string{"# Porosity", "## How to identify", "1. **", "3. **"} {
		if !strings.Contains(p.Markdown, want) {
			t.Errorf("porosity page missing %q:\n%s", want, p.Markdown)
		}
	}
}

func TestSettingsPage(t *testing.T) {
	p, _ := findPage(defaultPages(t, false), "settings.md")
	for _, want := range []string{`| 1/4" | 22V | 300 IPM |`, "```yaml", `thickness: "1/8"`, "voltage: 18"} {
		if !strings.Contains(p.Markdown, want) {
			t.Errorf("settings page missing %q:\n%s", want, p.Markdown)
		}
	}
}

func TestChecklistPageGroupsCategories(t *testing.T) {
	p, _ := findPage(defaultPages(t, false), "checklist.md")
	gas := strings.Index(p.Markdown, "## Gas shielding")
	prep := strings.Index(p.Markdown, "## Surface preparation")
	if gas < 0 || prep < 0 || prep > gas {
		t.Errorf("categories missing or out of order:\n%s", p.Markdown)
	}
}

func TestTreePage(t *testing.T) {
	p, ok := findPage(defaultPages(t, true), "tree.md")
	if !ok {
		t.Fatal("tree page missing")
	}
	if !strings.Contains(p.Markdown, "MIG (GMAW)") {
		t.Errorf("tree page missing metadata:\n%s", p.Markdown)
	}
}

func TestGenerateWritesSite(t *testing.T) {
	out := t.TempDir()
	pages := defaultPages(t, true)
	g := NewGenerator(out, "Weldy")
	g.WriteMarkdown = true

	n, err := g.Generate(pages)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if n != len(pages) {
		t.Errorf("generated %d pages, want %d", n, len(pages))
	}

	for _, rel := range []string{"style.css", "index.html", "index.md", "defects/porosity.html", "settings.html"} {
		if _, err := os.Stat(filepath.Join(out, filepath.FromSlash(rel))); err != nil {
			t.Errorf("expected %s: %v", rel, err)
		}
	}

	index, err := os.ReadFile(filepath.Join(out, "index.html"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(index), `href="defects/porosity.html"`) {
		t.Error("index links were not rewritten to .html")
	}

	porosity, err := os.ReadFile(filepath.Join(out, "defects", "porosity.html"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(porosity), `href="../style.css"`) {
		t.Error("nested page should reference stylesheet relative to root")
	}
	if !strings.Contains(string(porosity), `class="active"`) {
		t.Error("nested page should mark itself active in the nav")
	}
}

func TestGenerateNoPages(t *testing.T) {
	if _, err := NewGenerator(t.TempDir(), "Weldy").Generate(nil); err == nil {
		t.Error("expected error for empty page list")
	}
}
