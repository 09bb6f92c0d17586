package types

// Sink receives finalized declarations. Interior declarations arrive
// concurrently from chunk workers in no particular cross-chunk order;
// assembled declarations arrive afterwards from a single goroutine in
// strictly increasing offset order. Implementations must be safe for
// concurrent use and should not block: a stalling sink stalls the whole
// pipeline.
//
// Returning a non-nil error aborts the split; the error is propagated to
// the caller unmodified.
type Sink interface {
	Accept(decl Declaration) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(decl Declaration) error

// Accept calls f(decl).
func (f SinkFunc) Accept(decl Declaration) error {
	return f(decl)
}
