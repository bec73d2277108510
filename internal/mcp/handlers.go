package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/weldyapp/weldy/internal/engine"
	"github.com/weldyapp/weldy/internal/params"
	"github.com/weldyapp/weldy/internal/recommend"
	"github.com/weldyapp/weldy/internal/search"
)

func (s *Server) handleListCombinations(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(formatCombinations(s.catalog.Combinations())), nil
}

func (s *Server) handleCausesForCombination(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key, err := request.RequireString("key")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: key"), nil
	}

	combo, ok := s.catalog.Combination(key)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("Unknown combination %q. Use list_combinations to see valid keys.", key)), nil
	}
	if combo.IsGoodWeld() {
		return mcp.NewToolResultText("No defects: the weld looks good.\n\n" + strings.Join(combo.Descriptions, "\n")), nil
	}

	causes := s.catalog.CausesForCombination(combo.DefectIDs)
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %d cause(s)\n", combo.Label, len(causes))
	for _, c := range causes {
		fmt.Fprintf(&sb, "\n- %s (%s)\n  %s\n", c.Name, c.ID, c.Description)
		if len(c.MistakeIDs) > 0 {
			if m, ok := s.kb.Mistake(c.MistakeIDs[0]); ok && m.QuestionToAsk != "" {
				fmt.Fprintf(&sb, "  Ask: %s\n", m.QuestionToAsk)
			}
		}
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func (s *Server) handleSelectCause(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("cause_id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: cause_id"), nil
	}

	sel, err := s.catalog.SelectCause(id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Cause: %s\n%s\n", sel.Cause.Name, sel.Cause.Description)
	for i, mid := range sel.Cause.MistakeIDs {
		m, ok := s.kb.Mistake(mid)
		if !ok {
			continue
		}
		fmt.Fprintf(&sb, "\n%d. %s\n", i+1, m.Fix)
		if m.QuestionToAsk != "" {
			fmt.Fprintf(&sb, "   Ask: %s\n", m.QuestionToAsk)
		}
		d := m.Directive()
		if d.IsNumeric() {
			fmt.Fprintf(&sb, "   Adjusts: %s\n", d.ParameterLabel())
		}
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func (s *Server) handleRecommend(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	parameter, err := request.RequireString("parameter")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: parameter"), nil
	}
	adjustment, err := request.RequireString("adjustment")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: adjustment"), nil
	}

	p := params.New(
		request.GetString("thickness", params.DefaultThickness),
		request.GetFloat("voltage", params.DefaultVoltage),
		request.GetFloat("wire_speed", params.DefaultWireSpeed),
	)
	if p.Voltage <= 0 || p.WireSpeed <= 0 {
		return mcp.NewToolResultError("voltage and wire_speed must be positive"), nil
	}

	sug := s.resolver.Specific(recommend.Directive{Parameter: parameter, Adjustment: adjustment}, p)
	text := sug.Text
	if sug.Kind == recommend.KindNumeric {
		text += fmt.Sprintf("\n(current settings: %s)", p.Summary())
	}
	return mcp.NewToolResultText(text), nil
}

func (s *Server) handleThicknessPreset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	thickness, err := request.RequireString("thickness")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: thickness"), nil
	}

	preset, ok := s.kb.Preset(thickness)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf(
			"No preset for %q. Known thicknesses: %s",
			thickness, strings.Join(s.kb.ThicknessOptions(), ", "),
		)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf(
		"%s\" metal: %sV, %s IPM wire feed speed",
		preset.Thickness, params.FormatNumber(preset.Voltage), params.FormatNumber(preset.WireSpeed),
	)), nil
}

func (s *Server) handleSearchSymptoms(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}
	if s.index == nil {
		return mcp.NewToolResultError("Symptom search is not enabled."), nil
	}

	limit := request.GetInt("limit", 5)
	if limit <= 0 {
		limit = 5
	}

	results, err := s.index.Search(ctx, query, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}
	if len(results) == 0 {
		return mcp.NewToolResultText("No matching defect combinations."), nil
	}
	return mcp.NewToolResultText(formatSearchResults(results)), nil
}

func formatCombinations(combos []engine.Combination) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d combination(s):\n", len(combos))
	for _, c := range combos {
		fmt.Fprintf(&sb, "\n%s [%s]\n", c.Label, c.Key)
		for _, d := range c.Descriptions {
			fmt.Fprintf(&sb, "  %s\n", d)
		}
	}
	return sb.String()
}

// formatSearchResults renders ranked combinations for AI agent consumption.
func formatSearchResults(results []search.Result) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d result(s):\n", len(results))
	for i, r := range results {
		fmt.Fprintf(&sb, "\n%d. %s [%s]\n", i+1, r.Label, r.Key)
		fmt.Fprintf(&sb, "   Similarity: %.1f%%\n", r.Similarity*100)
	}
	return sb.String()
}
