package guide

import (
	"fmt"
	"sort"
	"strings"

	"github.com/weldyapp/weldy/internal/decisiontree"
	"github.com/weldyapp/weldy/internal/engine"
	"github.com/weldyapp/weldy/internal/knowledge"
	"github.com/weldyapp/weldy/internal/params"
)

// Page is one markdown document of the guide.
type Page struct {
	Path     string // slash-separated, relative to the guide root, ending in .md
	Title    string
	Markdown string
}

// categoryTitles orders and names the things-tried checklist groups.
var categoryTitles = []struct{ id, title string }{
	{"surface_prep", "Surface preparation"},
	{"gas_shielding", "Gas shielding"},
	{"environment", "Environment"},
	{"stick_out", "Stick-out"},
	{"technique", "Technique"},
	{"equipment", "Equipment"},
	{"practice", "Practice"},
}

// Pages builds the guide's markdown documents from the knowledge base and,
// when tree is non-nil, the decision tree.
func Pages(kb *knowledge.KnowledgeBase, tree *decisiontree.Tree) []Page {
	catalog := engine.NewCatalog(kb)
	pages := []Page{indexPage(kb, catalog, tree)}
	for _, combo := range catalog.Combinations() {
		if combo.IsGoodWeld() {
			continue
		}
		pages = append(pages, combinationPage(kb, catalog, combo))
	}
	pages = append(pages, settingsPage(kb), checklistPage(kb))
	if tree != nil {
		pages = append(pages, treePage(tree))
	}
	return pages
}

func combinationPath(key string) string {
	return "defects/" + strings.ReplaceAll(key, knowledge.KeySeparator, "-") + ".md"
}

func indexPage(kb *knowledge.KnowledgeBase, catalog *engine.Catalog, tree *decisiontree.Tree) Page {
	var b strings.Builder
	b.WriteString("# MIG Weld Troubleshooting Guide\n\n")
	b.WriteString("Find what your weld looks like, pick the cause that applies and try the fixes in order.\n\n")

	b.WriteString("## A good weld\n\n")
	for _, line := range kb.GoodWeld {
		fmt.Fprintf(&b, "- %s\n", line)
	}

	b.WriteString("\n## Defects\n\n")
	for _, combo := range catalog.Combinations() {
		if combo.IsGoodWeld() {
			continue
		}
		fmt.Fprintf(&b, "- [%s](%s)\n", combo.Label, combinationPath(combo.Key))
	}

	b.WriteString("\n## Reference\n\n")
	b.WriteString("- [Machine settings by thickness](settings.md)\n")
	b.WriteString("- [Things to try checklist](checklist.md)\n")
	if tree != nil {
		b.WriteString("- [Guided diagnosis](tree.md)\n")
	}
	return Page{Path: "index.md", Title: "MIG Weld Troubleshooting Guide", Markdown: b.String()}
}

func combinationPage(kb *knowledge.KnowledgeBase, catalog *engine.Catalog, combo engine.Combination) Page {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", combo.Label)
	fmt.Fprintf(&b, "![%s](../%s)\n\n", combo.Label, combo.Image)
	b.WriteString("## How to identify\n\n")
	for _, id := range combo.DefectIDs {
		if d, ok := kb.Defect(id); ok {
			fmt.Fprintf(&b, "- **%s:** %s\n", d.Name, d.HowToIdentify)
		}
	}

	for _, cause := range catalog.CausesForCombination(combo.DefectIDs) {
		fmt.Fprintf(&b, "\n## %s\n\n%s\n\n", cause.Name, cause.Description)
		for i, mid := range cause.MistakeIDs {
			m, ok := kb.Mistake(mid)
			if !ok {
				continue
			}
			fmt.Fprintf(&b, "%d. **%s**", i+1, m.Fix)
			if m.QuestionToAsk != "" {
				fmt.Fprintf(&b, " %s", m.QuestionToAsk)
			}
			b.WriteString("\n")
			if d := m.Directive(); d.Details != "" {
				fmt.Fprintf(&b, "   %s\n", d.Details)
			}
		}
	}
	b.WriteString("\n[Back to all defects](../index.md)\n")
	return Page{Path: combinationPath(combo.Key), Title: combo.Label, Markdown: b.String()}
}

func settingsPage(kb *knowledge.KnowledgeBase) Page {
	var b strings.Builder
	b.WriteString("# Machine Settings by Thickness\n\n")
	b.WriteString("Starting points for C25 shielding gas. Tune from here using the defect pages.\n\n")
	b.WriteString("| Thickness | Voltage | Wire feed speed |\n")
	b.WriteString("|---|---|---|\n")
	for _, p := range kb.ThicknessPresets {
		fmt.Fprintf(&b, "| %s\" | %sV | %s IPM |\n",
			p.Thickness, params.FormatNumber(p.Voltage), params.FormatNumber(p.WireSpeed))
	}

	b.WriteString("\nTo start every session from a preset, set the defaults in `.weldy.yml`:\n\n")
	b.WriteString("```yaml\ndefaults:\n")
	if len(kb.ThicknessPresets) > 0 {
		p := kb.ThicknessPresets[0]
		for _, candidate := range kb.ThicknessPresets {
			if candidate.Thickness == params.DefaultThickness {
				p = candidate
			}
		}
		fmt.Fprintf(&b, "  thickness: %q\n  voltage: %s\n  wire_speed: %s\n",
			p.Thickness, params.FormatNumber(p.Voltage), params.FormatNumber(p.WireSpeed))
	}
	b.WriteString("```\n")
	return Page{Path: "settings.md", Title: "Machine Settings by Thickness", Markdown: b.String()}
}

func checklistPage(kb *knowledge.KnowledgeBase) Page {
	groups := kb.ThingsTriedByCategory()

	var b strings.Builder
	b.WriteString("# Things to Try\n\n")
	seen := make(map[string]bool)
	write := func(title string, items []knowledge.ThingTried) {
		fmt.Fprintf(&b, "## %s\n\n", title)
		for _, t := range items {
			fmt.Fprintf(&b, "- [ ] **%s** %s\n", t.Name, t.Description)
		}
		b.WriteString("\n")
	}
	for _, c := range categoryTitles {
		seen[c.id] = true
		if items := groups[c.id]; len(items) > 0 {
			write(c.title, items)
		}
	}

	// Categories added by custom datasets go last, alphabetically.
	var extra []string
	for id := range groups {
		if !seen[id] {
			extra = append(extra, id)
		}
	}
	sort.Strings(extra)
	for _, id := range extra {
		write(strings.ReplaceAll(id, "_", " "), groups[id])
	}
	return Page{Path: "checklist.md", Title: "Things to Try", Markdown: b.String()}
}

func treePage(tree *decisiontree.Tree) Page {
	var b strings.Builder
	b.WriteString("# Guided Diagnosis\n\n")
	fmt.Fprintf(&b, "Process: %s. Shielding gas: %s.\n\n", tree.Metadata.Process, tree.Metadata.ShieldingGas)

	for _, id := range tree.Diagnoses() {
		n, _ := tree.Node(id)
		fmt.Fprintf(&b, "## %s\n\n", n.Diagnosis)
		if n.Description != "" {
			fmt.Fprintf(&b, "%s\n\n", n.Description)
		}
		for _, r := range n.Recommendations {
			fmt.Fprintf(&b, "- **%s**", r.Adjustment)
			if r.Details != "" {
				fmt.Fprintf(&b, ": %s", r.Details)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	return Page{Path: "tree.md", Title: "Guided Diagnosis", Markdown: b.String()}
}
