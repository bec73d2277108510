package cmd

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/weldyapp/weldy/internal/config"
	"github.com/weldyapp/weldy/internal/decisiontree"
	"github.com/weldyapp/weldy/internal/engine"
	"github.com/weldyapp/weldy/internal/knowledge"
	"github.com/weldyapp/weldy/internal/recommend"
	"github.com/weldyapp/weldy/internal/search"
)

// app bundles everything the commands build from config.
type app struct {
	kb       *knowledge.KnowledgeBase
	tree     *decisiontree.Tree // nil in catalog mode
	resolver *recommend.Resolver
	engine   *engine.Engine
}

// validConfig returns the loaded config after validation, providing a
// user-friendly error.
func validConfig() (*config.Config, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w\nRun `weldy init` to create a config file", cfgFile, err)
	}
	return cfg, nil
}

// buildApp loads the knowledge base (and decision tree in tree mode) and
// wires the engine.
func buildApp(c *config.Config) (*app, error) {
	kb, err := knowledge.Load(c.KnowledgeBase)
	if err != nil {
		return nil, fmt.Errorf("loading knowledge base: %w", err)
	}
	if err := kb.Validate(); err != nil {
		return nil, fmt.Errorf("knowledge base is invalid: %w", err)
	}

	a := &app{kb: kb, resolver: recommend.NewResolver(c.Recommendation)}

	var graph engine.Graph
	switch c.Mode {
	case config.ModeTree:
		tree, err := decisiontree.Load(c.DecisionTree)
		if err != nil {
			return nil, err
		}
		if err := tree.Validate(); err != nil {
			return nil, fmt.Errorf("decision tree is invalid: %w", err)
		}
		a.tree = tree
		graph = engine.NewTreeGraph(tree)
	default:
		graph = engine.NewCatalog(kb)
	}

	a.engine = engine.New(graph, kb, a.resolver, c.EngineOptions())
	logger.Debug("engine ready",
		zap.String("mode", string(c.Mode)),
		zap.Int("causes", len(kb.Causes)),
		zap.Int("mistakes", len(kb.Mistakes)),
	)
	return a, nil
}

// buildIndex embeds the catalog for symptom search. It returns nil when
// search is disabled.
func buildIndex(ctx context.Context, c *config.Config, kb *knowledge.KnowledgeBase) (*search.Index, error) {
	if !c.Search.Enabled {
		return nil, nil
	}
	index, err := search.NewIndex(ctx, engine.NewCatalog(kb), kb, search.NewHashEmbedder(c.Search.Dimensions))
	if err != nil {
		return nil, fmt.Errorf("building search index: %w", err)
	}
	logger.Debug("search index ready", zap.Int("combinations", index.Count()))
	return index, nil
}
