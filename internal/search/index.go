package search

import (
	"context"
	"fmt"
	"strings"

	chromem "github.com/philippgille/chromem-go"

	"github.com/weldyapp/weldy/internal/engine"
	"github.com/weldyapp/weldy/internal/knowledge"
)

const collectionName = "combinations"

// Result is one ranked defect combination.
type Result struct {
	Key        string   `json:"key"`
	Label      string   `json:"label"`
	DefectIDs  []string `json:"defectIds"`
	Similarity float32  `json:"similarity"`
}

// Index ranks defect combinations against a free-text symptom description.
type Index struct {
	collection *chromem.Collection
	combos     map[string]engine.Combination
}

// NewIndex embeds every combination of the catalog into an in-memory chromem
// collection.
func NewIndex(ctx context.Context, catalog *engine.Catalog, kb *knowledge.KnowledgeBase, embedder Embedder) (*Index, error) {
	db := chromem.NewDB()
	col, err := db.GetOrCreateCollection(collectionName, nil, ToChromemFunc(embedder))
	if err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}

	idx := &Index{collection: col, combos: make(map[string]engine.Combination)}
	var docs []chromem.Document
	for _, combo := range catalog.Combinations() {
		idx.combos[combo.Key] = combo
		docs = append(docs, chromem.Document{
			ID:       combo.Key,
			Content:  documentText(combo, catalog, kb),
			Metadata: map[string]string{"key": combo.Key, "label": combo.Label},
		})
	}
	if len(docs) == 0 {
		return idx, nil
	}
	if err := col.AddDocuments(ctx, docs, 1); err != nil {
		return nil, fmt.Errorf("indexing combinations: %w", err)
	}
	return idx, nil
}

// documentText is everything a user might say about a combination: defect
// names and identification hints, cause names and descriptions and the
// diagnostic questions of each cause's mistakes.
func documentText(combo engine.Combination, catalog *engine.Catalog, kb *knowledge.KnowledgeBase) string {
	var b strings.Builder
	b.WriteString(combo.Label)
	for _, d := range combo.Descriptions {
		b.WriteString("\n")
		b.WriteString(d)
	}
	if combo.IsGoodWeld() {
		return b.String()
	}
	for _, cause := range catalog.CausesForCombination(combo.DefectIDs) {
		fmt.Fprintf(&b, "\n%s. %s", cause.Name, cause.Description)
		for _, mid := range cause.MistakeIDs {
			if m, ok := kb.Mistake(mid); ok {
				b.WriteString("\n")
				b.WriteString(m.QuestionToAsk)
			}
		}
	}
	return b.String()
}

// Count returns the number of indexed combinations.
func (i *Index) Count() int {
	return i.collection.Count()
}

// Search returns up to limit combinations ranked by similarity to query.
func (i *Index) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("query is required")
	}
	if limit <= 0 {
		limit = 5
	}

	// chromem-go requires nResults <= collection size.
	count := i.collection.Count()
	if count == 0 {
		return nil, nil
	}
	if limit > count {
		limit = count
	}

	matches, err := i.collection.Query(ctx, query, limit, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("chromem query: %w", err)
	}

	out := make([]Result, 0, len(matches))
	for _, m := range matches {
		combo := i.combos[m.ID]
		out = append(out, Result{
			Key:        combo.Key,
			Label:      combo.Label,
			DefectIDs:  combo.DefectIDs,
			Similarity: m.Similarity,
		})
	}
	return out, nil
}
