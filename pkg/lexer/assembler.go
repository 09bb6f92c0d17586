package lexer

import (
	"context"

	"github.com/dshills/ninjalex/pkg/types"
)

// assemble merges the per-chunk edge lists, in static chunk order, into the
// declarations that span chunk seams and sinks them in increasing offset
// order. Edges of adjacent chunks are adjacent in the shared buffer, so a
// merge is always a widened view, never a copy.
//
// The running tail is re-scanned only at windows the chunk workers could not
// examine: those whose lookahead crossed a chunk seam. A chunk without a
// leading edge contained no boundary at all, so its whole trailing edge is
// folded into the running tail; any number of consecutive separator-free
// chunks collapse into one declaration this way.
func assemble(ctx context.Context, chunks [][]types.Edge, rule types.SeparatorRule, snk types.Sink) error {
	if len(chunks) == 0 {
		return nil
	}

	emit := func(r types.Region) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return snk.Accept(types.Declaration{Region: r, Assembled: true})
	}

	lead, trail := splitEdges(chunks[0])
	if lead != nil {
		// Chunk 0 has no left neighbor: its leading edge starts at the
		// buffer start and is already a complete declaration.
		if err := emit(lead.Region); err != nil {
			return err
		}
	}
	run := trail.Region
	winPos := trail.End() - 2

	for c := 1; c < len(chunks); c++ {
		lead, trail = splitEdges(chunks[c])
		if lead != nil {
			ext := run.Extend(lead.Len)
			rest, err := drain(ext, winPos, rule, emit)
			if err != nil {
				return err
			}
			// The leading edge ended at an in-chunk boundary, so the
			// remainder is complete even though the closing window is not
			// visible inside the merged view.
			if err := emit(rest); err != nil {
				return err
			}
			run = trail.Region
		} else {
			ext := run.Extend(trail.Len)
			rest, err := drain(ext, winPos, rule, emit)
			if err != nil {
				return err
			}
			run = rest
		}
		winPos = trail.End() - 2
	}

	// End of buffer closes the final run, boundary or not.
	if run.Len > 0 {
		return emit(run)
	}
	return nil
}

// drain applies the rule to windows starting at global position winPos,
// sinking every completed run and returning the remainder. Windows may
// begin before the run start (the predecessor byte can belong to the
// previous declaration); hits that would end at or before the run start are
// vacuous and skipped.
func drain(r types.Region, winPos int64, rule types.SeparatorRule, emit func(types.Region) error) (types.Region, error) {
	for i := winPos; i+2 < r.End(); i++ {
		if i < 0 {
			continue
		}
		if !rule(r.Buf[i], r.Buf[i+1], r.Buf[i+2]) {
			continue
		}
		if end := i + 2; end > r.Start {
			if err := emit(r.Slice(0, end-r.Start)); err != nil {
				return types.Region{}, err
			}
			r = r.TrimFront(end)
		}
	}
	return r, nil
}

// splitEdges separates a chunk's edge list into its optional leading edge
// and its mandatory trailing edge.
func splitEdges(edges []types.Edge) (lead, trail *types.Edge) {
	for i := range edges {
		switch edges[i].Role {
		case types.EdgeLeading:
			lead = &edges[i]
		case types.EdgeTrailing:
			trail = &edges[i]
		}
	}
	return lead, trail
}
