// Package lexer splits a large manifest buffer into logical declarations in
// parallel, before any grammar-level parsing happens.
//
// The buffer is partitioned into contiguous chunks, one worker per chunk.
// Each worker scans its chunk with a 3-byte sliding window and a caller
// supplied separator rule, handing fully self-contained declarations to the
// sink immediately. Runs touching a chunk boundary cannot be proven complete
// locally; they are returned as edge segments. After all workers join, a
// single-threaded assembly pass merges the edges across chunk seams and
// sinks the spanning declarations in offset order.
//
// # Basic Usage
//
//	buf, _ := os.ReadFile("build.ninja")
//	c := sink.NewCollector()
//	err := lexer.Process(ctx, buf, rules.Ninja, c, lexer.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, decl := range c.Declarations() {
//	    fmt.Printf("%d: %q\n", decl.Start, decl.String())
//	}
//
// # Guarantees
//
// Concatenating all declarations in offset order reproduces the input
// exactly, byte for byte, regardless of chunk count. The multiset of
// declarations is invariant under partitioning; only the Assembled
// classification differs. No byte at a chunk seam is ever claimed twice.
//
// # Concurrency
//
// Interior declarations reach the sink concurrently and in no particular
// cross-chunk order; a caller needing global order sorts by offset (see
// sink.Collector). Assembled declarations arrive strictly after all workers
// have joined, from one goroutine, in increasing offset order. The buffer is
// never written to, so no locking exists anywhere in the engine; the sink is
// the only shared mutable collaborator and provides its own thread safety.
//
// The first worker or sink error wins: the remaining workers are cancelled
// through the group context, the assembly phase is skipped, and the error is
// surfaced with the chunk index and offset it came from.
package lexer
