package lexer

import (
	"context"

	"github.com/dshills/ninjalex/pkg/types"
)

// scanChunk scans one chunk with a 3-byte sliding window. A rule hit at
// window i means the current run ends at i+2. Runs with a known start and
// end are sunk immediately as interior declarations. The first run is
// returned as the leading edge (its true start may live in the previous
// chunk) and the bytes after the last boundary as the trailing edge, which
// always exists for a non-empty chunk. Sink errors abort the scan and
// propagate unmodified.
func scanChunk(ctx context.Context, chunk types.Region, idx int, rule types.SeparatorRule, snk types.Sink) ([]types.Edge, error) {
	if chunk.Len == 0 {
		return nil, nil
	}

	b := chunk.Bytes()
	edges := make([]types.Edge, 0, 2)
	start := int64(0)

	for i := int64(0); i+2 < int64(len(b)); i++ {
		if !rule(b[i], b[i+1], b[i+2]) {
			continue
		}
		end := i + 2
		if start == 0 {
			// The prefix may continue a run from the previous chunk;
			// only the assembler can prove it complete.
			edges = append(edges, types.Edge{
				Region: chunk.Slice(0, end),
				Role:   types.EdgeLeading,
				Chunk:  idx,
			})
		} else {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if err := snk.Accept(types.Declaration{Region: chunk.Slice(start, end)}); err != nil {
				return nil, err
			}
		}
		start = end
	}

	edges = append(edges, types.Edge{
		Region: chunk.Slice(start, chunk.Len),
		Role:   types.EdgeTrailing,
		Chunk:  idx,
	})
	return edges, nil
}
