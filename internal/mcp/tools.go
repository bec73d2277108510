package mcp

import "github.com/mark3labs/mcp-go/mcp"

// listCombinationsTool defines the list_combinations MCP tool.
var listCombinationsTool = mcp.NewTool("list_combinations",
	mcp.WithDescription("List every weld defect combination the knowledge base can diagnose, with how to identify each defect."),
)

// causesForCombinationTool defines the causes_for_combination MCP tool.
var causesForCombinationTool = mcp.NewTool("causes_for_combination",
	mcp.WithDescription("List the root causes whose defect set exactly matches a combination."),
	mcp.WithString("key",
		mcp.Required(),
		mcp.Description("Combination key: sorted defect ids joined with '+', e.g. 'porosity' or 'excessive_spatter+porosity'"),
	),
)

// selectCauseTool defines the select_cause MCP tool.
var selectCauseTool = mcp.NewTool("select_cause",
	mcp.WithDescription("Get a root cause with every mistake that produces it, in the order they should be tried."),
	mcp.WithString("cause_id",
		mcp.Required(),
		mcp.Description("Cause id as returned by causes_for_combination"),
	),
)

// recommendTool defines the recommend MCP tool.
var recommendTool = mcp.NewTool("recommend",
	mcp.WithDescription("Turn a generic adjustment into a concrete instruction for the welder's current machine settings."),
	mcp.WithString("parameter",
		mcp.Required(),
		mcp.Description("Parameter the adjustment targets"),
		mcp.Enum("voltage", "wire_feed_speed", "stick_out", "travel_speed", "gas_flow"),
	),
	mcp.WithString("adjustment",
		mcp.Required(),
		mcp.Description("Generic adjustment text, e.g. 'Decrease voltage'"),
	),
	mcp.WithNumber("voltage",
		mcp.Description("Current voltage in volts (default 18)"),
	),
	mcp.WithNumber("wire_speed",
		mcp.Description("Current wire feed speed in inches per minute (default 200)"),
	),
	mcp.WithString("thickness",
		mcp.Description("Metal thickness label, e.g. '1/8' (default 1/8)"),
	),
)

// thicknessPresetTool defines the thickness_preset MCP tool.
var thicknessPresetTool = mcp.NewTool("thickness_preset",
	mcp.WithDescription("Get the recommended starting voltage and wire feed speed for a metal thickness."),
	mcp.WithString("thickness",
		mcp.Required(),
		mcp.Description("Metal thickness label in inches, e.g. '3/16'"),
	),
)

// searchSymptomsTool defines the search_symptoms MCP tool.
var searchSymptomsTool = mcp.NewTool("search_symptoms",
	mcp.WithDescription("Find the defect combinations that best match a free-text description of a weld."),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("What the weld looks like, e.g. 'small holes and lots of spatter'"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of results to return (default 5)"),
	),
)
