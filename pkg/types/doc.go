// Package types defines the shared contracts of the declaration splitting
// engine: byte regions, separator rules, edge segments, declarations, and
// the sink capability that consumes them.
//
// All types here are plain data. A Region is an immutable view into one
// shared read-only buffer; derived regions alias the same backing array and
// never copy bytes. Because the buffer is read-only for the lifetime of a
// split operation, regions and edges may be shared freely across goroutines
// without locking. The Sink is the only shared mutable collaborator and must
// provide its own thread safety.
package types
