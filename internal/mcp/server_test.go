package mcp

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	s, err := NewServer(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.storage.Close() })
	return s
}

func callRequest(name string, args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func TestServer_Initialization(t *testing.T) {
	t.Run("custom path creates database", func(t *testing.T) {
		tmpDir := t.TempDir()

		s, err := NewServer(tmpDir)
		require.NoError(t, err)
		defer s.storage.Close()

		assert.NotNil(t, s.mcp, "MCP server should be initialized")
		assert.NotNil(t, s.storage, "Storage should be initialized")
		assert.NotNil(t, s.indexer, "Indexer should be initialized")

		_, err = os.Stat(filepath.Join(tmpDir, "ninjalex.db"))
		assert.NoError(t, err)
	})
}

func TestHandleIndexManifests(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	dir := t.TempDir()
	path := filepath.Join(dir, "build.ninja")
	require.NoError(t, os.WriteFile(path, []byte("rule cc\n  command = gcc\nbuild a.o: cc a.c\n"), 0o644))

	t.Run("indexes a directory", func(t *testing.T) {
		result, err := s.handleIndexManifests(ctx, callRequest("index_manifests", map[string]interface{}{
			"path": dir,
		}))
		require.NoError(t, err)
		require.NotNil(t, result)

		text := resultText(t, result)
		assert.Contains(t, text, `"manifests_indexed": 1`)
		assert.Contains(t, text, `"declarations_stored": 3`)
	})

	t.Run("missing path parameter", func(t *testing.T) {
		_, err := s.handleIndexManifests(ctx, callRequest("index_manifests", map[string]interface{}{}))
		require.Error(t, err)
		var mcpErr *MCPError
		require.ErrorAs(t, err, &mcpErr)
		assert.Equal(t, ErrorCodeInvalidParams, mcpErr.Code)
	})

	t.Run("relative path rejected", func(t *testing.T) {
		_, err := s.handleIndexManifests(ctx, callRequest("index_manifests", map[string]interface{}{
			"path": "relative/build.ninja",
		}))
		require.Error(t, err)
		var mcpErr *MCPError
		require.ErrorAs(t, err, &mcpErr)
		assert.Equal(t, ErrorCodeInvalidParams, mcpErr.Code)
	})

	t.Run("rejected while another run holds the lock", func(t *testing.T) {
		require.True(t, s.indexLock.TryAcquire())
		defer s.indexLock.Release()

		_, err := s.handleIndexManifests(ctx, callRequest("index_manifests", map[string]interface{}{
			"path": dir,
		}))
		require.Error(t, err)
		var mcpErr *MCPError
		require.ErrorAs(t, err, &mcpErr)
		assert.Equal(t, ErrorCodeIndexingInProgress, mcpErr.Code)
	})
}

func TestHandleSearchDeclarations(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	dir := t.TempDir()
	path := filepath.Join(dir, "build.ninja")
	require.NoError(t, os.WriteFile(path, []byte("rule cc\n  command = gcc\nbuild a.o: cc a.c\n"), 0o644))

	_, err := s.handleIndexManifests(ctx, callRequest("index_manifests", map[string]interface{}{
		"path": dir,
	}))
	require.NoError(t, err)

	t.Run("finds matching declarations", func(t *testing.T) {
		result, err := s.handleSearchDeclarations(ctx, callRequest("search_declarations", map[string]interface{}{
			"query": "build",
		}))
		require.NoError(t, err)

		text := resultText(t, result)
		assert.Contains(t, text, `"count": 1`)
		assert.Contains(t, text, "build a.o: cc a.c")
	})

	t.Run("empty query rejected", func(t *testing.T) {
		_, err := s.handleSearchDeclarations(ctx, callRequest("search_declarations", map[string]interface{}{
			"query": "",
		}))
		require.Error(t, err)
		var mcpErr *MCPError
		require.ErrorAs(t, err, &mcpErr)
		assert.Equal(t, ErrorCodeEmptyQuery, mcpErr.Code)
	})

	t.Run("limit out of range rejected", func(t *testing.T) {
		_, err := s.handleSearchDeclarations(ctx, callRequest("search_declarations", map[string]interface{}{
			"query": "build",
			"limit": float64(500),
		}))
		require.Error(t, err)
		var mcpErr *MCPError
		require.ErrorAs(t, err, &mcpErr)
		assert.Equal(t, ErrorCodeInvalidParams, mcpErr.Code)
	})
}

func TestHandleGetStatus(t *testing.T) {
	s := newTestServer(t)

	result, err := s.handleGetStatus(context.Background(), callRequest("get_status", map[string]interface{}{}))
	require.NoError(t, err)

	text := resultText(t, result)
	assert.Contains(t, text, `"manifests_count": 0`)
	assert.Contains(t, text, `"declarations_count": 0`)
}

// resultText extracts the text payload from a tool result
func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	text, ok := mcp.AsTextContent(result.Content[0])
	require.True(t, ok)
	return text.Text
}
