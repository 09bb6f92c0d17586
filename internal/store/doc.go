// Package store persists lexed manifests and their declarations in SQLite.
//
// Each manifest row carries a SHA-256 content hash so the indexer can skip
// files that have not changed since the last run. Declarations keep their
// global byte offsets, so re-reading the manifest at a stored offset yields
// the original bytes. An FTS5 mirror of declaration content backs the
// search_declarations tool and the CLI search command.
//
// # Drivers
//
// Two SQLite drivers are supported through build tags:
//   - cgo (default with CGO_ENABLED=1): mattn/go-sqlite3
//   - pure Go (tag purego or CGO_ENABLED=0): modernc.org/sqlite
//
// Both ship FTS5. The database runs in WAL mode with a single writer
// connection, which is the configuration SQLite performs best under here.
package store
