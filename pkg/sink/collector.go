package sink

import (
	"sort"
	"sync"
	"sync/atomic"

	"github.com/dshills/ninjalex/pkg/types"
)

// Collector accumulates declarations from concurrent chunk workers. It is
// safe for concurrent use. Declarations arrive in no particular cross-chunk
// order; Declarations and Join restore global offset order.
type Collector struct {
	mu    sync.Mutex
	decls []types.Declaration
}

// NewCollector creates an empty Collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Accept stores the declaration. It never fails.
func (c *Collector) Accept(decl types.Declaration) error {
	c.mu.Lock()
	c.decls = append(c.decls, decl)
	c.mu.Unlock()
	return nil
}

// Len returns the number of collected declarations.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.decls)
}

// Declarations returns the collected declarations sorted by global offset.
func (c *Collector) Declarations() []types.Declaration {
	c.mu.Lock()
	out := make([]types.Declaration, len(c.decls))
	copy(out, c.decls)
	c.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}

// Join concatenates all declarations in offset order. For a lossless split
// the result equals the original input buffer.
func (c *Collector) Join() []byte {
	decls := c.Declarations()
	n := int64(0)
	for _, d := range decls {
		n += d.Len
	}
	out := make([]byte, 0, n)
	for _, d := range decls {
		out = append(out, d.Bytes()...)
	}
	return out
}

// Discard counts declarations and drops them. Safe for concurrent use.
type Discard struct {
	n atomic.Int64
}

// Accept counts the declaration and discards it.
func (d *Discard) Accept(types.Declaration) error {
	d.n.Add(1)
	return nil
}

// Count returns how many declarations were accepted.
func (d *Discard) Count() int64 {
	return d.n.Load()
}
