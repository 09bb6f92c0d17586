package types

// SeparatorRule is a pure predicate over a 3-byte sliding window
// (b0, b1, b2). Returning true means a statement boundary lies between b1
// and b2: the current declaration ends just after b1 and b2 starts the next
// one. b0 is the preceding byte (escape checks) and b2 doubles as one byte
// of lookahead, which is how escaped line breaks are told apart from raw
// ones.
//
// A rule must be deterministic and free of side effects; it is invoked
// concurrently from every chunk worker.
type SeparatorRule func(b0, b1, b2 byte) bool
