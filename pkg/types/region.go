package types

import "errors"

// Region is a zero-copy view over a shared read-only buffer. Start is a
// global byte offset into Buf, so a region always knows where its content
// lives in the original input. Treat all fields as read-only after creation;
// derived views are produced with Slice, Extend, and TrimFront.
type Region struct {
	Buf   []byte // shared backing buffer, read-only
	Start int64  // global offset of the first byte
	Len   int64  // number of bytes in the view
}

// NewRegion returns a region covering the entire buffer.
func NewRegion(buf []byte) Region {
	return Region{Buf: buf, Start: 0, Len: int64(len(buf))}
}

// End returns the global offset one past the last byte.
func (r Region) End() int64 {
	return r.Start + r.Len
}

// Bytes returns the viewed bytes. The returned slice aliases the shared
// buffer and must not be modified.
func (r Region) Bytes() []byte {
	return r.Buf[r.Start:r.End()]
}

// Slice returns a sub-view using offsets relative to the region start.
// It shares the backing buffer.
func (r Region) Slice(from, to int64) Region {
	return Region{Buf: r.Buf, Start: r.Start + from, Len: to - from}
}

// Extend returns a view widened by n bytes past the current end. The caller
// guarantees the adjacent bytes belong to the same logical run; this is how
// the assembler joins edge segments without copying.
func (r Region) Extend(n int64) Region {
	return Region{Buf: r.Buf, Start: r.Start, Len: r.Len + n}
}

// TrimFront returns the view starting at global offset to, keeping the
// current end.
func (r Region) TrimFront(to int64) Region {
	return Region{Buf: r.Buf, Start: to, Len: r.End() - to}
}

// Validate checks the region invariant against its backing buffer.
func (r Region) Validate() error {
	if r.Start < 0 || r.Len < 0 {
		return errors.New("region offsets must be non-negative")
	}
	if r.End() > int64(len(r.Buf)) {
		return errors.New("region extends past end of buffer")
	}
	return nil
}
