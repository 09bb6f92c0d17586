package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// indexManifestsTool returns the tool definition for index_manifests
func indexManifestsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "index_manifests",
		Description: "Lex build manifests into declarations and index them for search",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Absolute path to a manifest file or a directory containing .ninja files",
				},
				"force_relex": map[string]interface{}{
					"type":        "boolean",
					"description": "If true, re-lex all manifests ignoring content hashes (full rebuild)",
					"default":     false,
				},
				"parallelism": map[string]interface{}{
					"type":        "integer",
					"description": "Chunk workers per manifest (0 = number of CPUs)",
					"default":     0,
					"minimum":     0,
				},
			},
			Required: []string{"path"},
		},
	}
}

// searchDeclarationsTool returns the tool definition for search_declarations
func searchDeclarationsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "search_declarations",
		Description: "Full-text search over indexed manifest declarations",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "FTS5 match query (e.g. 'build AND phony')",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of results to return (1-100)",
					"default":     10,
					"minimum":     1,
					"maximum":     100,
				},
			},
			Required: []string{"query"},
		},
	}
}

// getStatusTool returns the tool definition for get_status
func getStatusTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_status",
		Description: "Query index statistics: manifest count, declaration count, index size",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
}
