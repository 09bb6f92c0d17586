package lexer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/ninjalex/pkg/rules"
	"github.com/dshills/ninjalex/pkg/sink"
	"github.com/dshills/ninjalex/pkg/types"
)

func TestScanChunk_InteriorAndEdges(t *testing.T) {
	buf := []byte("a\nbb\nccc\ndddd")
	c := sink.NewCollector()

	edges, err := scanChunk(context.Background(), types.NewRegion(buf), 0, rules.Line, c)
	require.NoError(t, err)

	// First run becomes the leading edge, last run the trailing edge,
	// everything in between is sunk directly.
	require.Len(t, edges, 2)
	assert.Equal(t, types.EdgeLeading, edges[0].Role)
	assert.Equal(t, "a\n", string(edges[0].Bytes()))
	assert.Equal(t, 0, edges[0].Chunk)
	assert.Equal(t, types.EdgeTrailing, edges[1].Role)
	assert.Equal(t, "dddd", string(edges[1].Bytes()))

	decls := c.Declarations()
	require.Len(t, decls, 2)
	assert.Equal(t, "bb\n", decls[0].String())
	assert.Equal(t, "ccc\n", decls[1].String())
	assert.False(t, decls[0].Assembled)
}

func TestScanChunk_NoBoundary(t *testing.T) {
	buf := []byte("no separator here")
	c := sink.NewCollector()

	edges, err := scanChunk(context.Background(), types.NewRegion(buf), 3, rules.Line, c)
	require.NoError(t, err)

	// No boundary: no leading edge, the whole chunk is the trailing edge.
	require.Len(t, edges, 1)
	assert.Equal(t, types.EdgeTrailing, edges[0].Role)
	assert.Equal(t, buf, edges[0].Bytes())
	assert.Equal(t, 3, edges[0].Chunk)
	assert.Equal(t, 0, c.Len())
}

func TestScanChunk_BoundaryAtChunkEnd(t *testing.T) {
	// The final \n needs lookahead past the chunk, so the boundary stays
	// undetected and the trailing edge keeps the last byte.
	buf := []byte("aa\nbb\n")
	c := sink.NewCollector()

	edges, err := scanChunk(context.Background(), types.NewRegion(buf), 0, rules.Line, c)
	require.NoError(t, err)

	require.Len(t, edges, 2)
	assert.Equal(t, "aa\n", string(edges[0].Bytes()))
	assert.Equal(t, "bb\n", string(edges[1].Bytes()))
	assert.Equal(t, 0, c.Len())
}

func TestScanChunk_EmptyChunk(t *testing.T) {
	edges, err := scanChunk(context.Background(), types.Region{}, 0, rules.Line, sink.NewCollector())
	require.NoError(t, err)
	assert.Empty(t, edges)
}

func TestScanChunk_GlobalOffsets(t *testing.T) {
	buf := []byte("XXXXa\nbb\ncc")
	chunk := types.NewRegion(buf).Slice(4, 11) // "a\nbb\ncc"
	c := sink.NewCollector()

	edges, err := scanChunk(context.Background(), chunk, 1, rules.Line, c)
	require.NoError(t, err)

	require.Len(t, edges, 2)
	assert.Equal(t, int64(4), edges[0].Start)
	assert.Equal(t, int64(9), edges[1].Start)

	decls := c.Declarations()
	require.Len(t, decls, 1)
	assert.Equal(t, int64(6), decls[0].Start)
	assert.Equal(t, "bb\n", decls[0].String())
}
