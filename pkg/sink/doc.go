// Package sink provides reference implementations of the types.Sink
// capability: a thread-safe collector used by the indexer and tests, and a
// discarding counter used by benchmarks.
package sink
