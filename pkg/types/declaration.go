package types

// Declaration is a maximal byte run bounded by two separator boundaries, or
// by the start and end of the input buffer. Concatenating all declarations
// of one split in offset order reproduces the input exactly.
type Declaration struct {
	Region

	// Assembled reports that the declaration was finalized during the
	// post-barrier assembly phase rather than inside a single chunk worker.
	// The byte content is identical either way; only the classification
	// depends on how the buffer was partitioned.
	Assembled bool
}

// String returns the declaration content as a string, copying the bytes.
func (d Declaration) String() string {
	return string(d.Bytes())
}
