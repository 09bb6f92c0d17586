// Package mcp implements the Model Context Protocol server for ninjalex.
//
// The server runs on stdio and exposes three tools:
//
//   - index_manifests: lex build manifests into declarations and store them
//   - search_declarations: FTS5 full-text search over stored declarations
//   - get_status: index statistics (manifest count, declaration count, size)
//
// Tool handlers validate parameters before touching storage and return
// structured MCPError values with JSON-RPC error codes. Indexing is guarded
// by a non-blocking lock so a second index_manifests call fails fast instead
// of contending for the single database writer.
package mcp
