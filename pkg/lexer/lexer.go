package lexer

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/dshills/ninjalex/pkg/types"
)

const (
	// DefaultMinChunkSize is the smallest chunk worth dispatching to its
	// own worker. Inputs below it run as a single chunk.
	DefaultMinChunkSize = 4096
)

// Options controls buffer partitioning.
type Options struct {
	// Parallelism is the number of chunk workers (default: runtime.NumCPU()).
	// The effective count is clamped down by MinChunkSize, to 1 if necessary.
	Parallelism int
	// MinChunkSize is the minimum bytes per chunk (default: DefaultMinChunkSize).
	MinChunkSize int
}

// Process splits buf into logical declarations and hands each one to snk.
// The buffer is partitioned into contiguous chunks scanned concurrently;
// declarations crossing chunk seams are reconstructed afterwards by a
// single-threaded assembly pass. See the package documentation for ordering
// and fidelity guarantees.
//
// An empty buffer yields zero declarations and immediate success. The first
// worker or sink failure aborts the operation; the assembly phase never runs
// after a failure.
func Process(ctx context.Context, buf []byte, rule types.SeparatorRule, snk types.Sink, opts Options) error {
	if rule == nil {
		return types.ErrNilRule
	}
	if snk == nil {
		return types.ErrNilSink
	}
	if len(buf) == 0 {
		return nil
	}

	n := chunkCount(len(buf), opts)
	size := int64(len(buf)) / int64(n)
	whole := types.NewRegion(buf)

	// Indexed by chunk number, not completion order: the assembler depends
	// on the static partition order.
	edges := make([][]types.Edge, n)

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < n; i++ {
		lo := int64(i) * size
		hi := lo + size
		if i == n-1 {
			hi = int64(len(buf)) // last chunk absorbs the remainder
		}
		chunk := whole.Slice(lo, hi)
		g.Go(func() error {
			es, err := scanChunk(gctx, chunk, i, rule, snk)
			if err != nil {
				return fmt.Errorf("chunk %d at offset %d: %w", i, chunk.Start, err)
			}
			edges[i] = es
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	return assemble(ctx, edges, rule, snk)
}

// chunkCount derives the number of chunks from the requested parallelism
// and the minimum chunk size floor.
func chunkCount(bufLen int, opts Options) int {
	n := opts.Parallelism
	if n <= 0 {
		n = runtime.NumCPU()
	}
	minChunk := opts.MinChunkSize
	if minChunk <= 0 {
		minChunk = DefaultMinChunkSize
	}
	if maxN := bufLen / minChunk; n > maxN {
		n = maxN
	}
	if n < 1 {
		n = 1
	}
	return n
}
