package types

// EdgeRole identifies which end of a chunk an edge segment touches.
type EdgeRole string

const (
	// EdgeLeading is the chunk prefix up to the first in-chunk boundary.
	// Its true start may live in the previous chunk.
	EdgeLeading EdgeRole = "leading"
	// EdgeTrailing is the chunk suffix after the last in-chunk boundary,
	// or the whole chunk when no boundary was found.
	EdgeTrailing EdgeRole = "trailing"
)

// Edge is an incomplete declaration fragment touching a chunk boundary,
// pending cross-chunk merge. Every non-empty chunk produces exactly one
// trailing edge; a leading edge exists only when the chunk contained at
// least one boundary. Edges are consumed once by the assembler.
type Edge struct {
	Region
	Role  EdgeRole
	Chunk int // originating chunk index
}
