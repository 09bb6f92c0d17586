// Package indexer coordinates the manifest indexing pipeline:
// read -> lex -> store.
//
// Manifests are discovered on disk, lexed into declarations with the
// parallel splitting engine, and persisted per-file in one transaction.
// Files are processed concurrently with a bounded worker pool; a SHA-256
// content hash per manifest makes re-indexing incremental, so unchanged
// files are skipped without lexing.
//
// # Basic Usage
//
//	idx := indexer.New(store)
//	stats, err := idx.IndexPath(ctx, "/path/to/project", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	log.Printf("indexed %d manifests, %d declarations",
//	    stats.ManifestsIndexed, stats.DeclarationsStored)
//
// Individual file failures are recorded in Statistics.ErrorMessages and do
// not abort the run; only infrastructure failures (storage, cancellation)
// do.
package indexer
