package types

import "errors"

// Domain errors for splitting inputs
var (
	// ErrNilRule is returned when no separator rule was supplied
	ErrNilRule = errors.New("separator rule must not be nil")
	// ErrNilSink is returned when no sink was supplied
	ErrNilSink = errors.New("sink must not be nil")
)
