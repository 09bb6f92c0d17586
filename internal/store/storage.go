package store

import (
	"context"
	"time"
)

// Storage defines the interface for persisting and querying lexed manifests
type Storage interface {
	// Manifest operations
	CreateManifest(ctx context.Context, m *Manifest) error
	GetManifest(ctx context.Context, path string) (*Manifest, error)
	GetManifestByID(ctx context.Context, id int64) (*Manifest, error)
	UpdateManifest(ctx context.Context, m *Manifest) error
	ListManifests(ctx context.Context) ([]*Manifest, error)
	DeleteManifest(ctx context.Context, id int64) error

	// Declaration operations
	InsertDeclaration(ctx context.Context, d *Declaration) error
	ListDeclarationsByManifest(ctx context.Context, manifestID int64) ([]*Declaration, error)
	DeleteDeclarationsByManifest(ctx context.Context, manifestID int64) error
	SearchDeclarations(ctx context.Context, query string, limit int) ([]*SearchResult, error)

	// Status operations
	GetStatus(ctx context.Context) (*Status, error)

	// Database operations
	Close() error
	BeginTx(ctx context.Context) (Tx, error)
}

// Tx represents a database transaction
type Tx interface {
	Commit() error
	Rollback() error
	Storage // Embed Storage interface for transaction operations
}

// Manifest represents a tracked build manifest file
type Manifest struct {
	ID          int64
	Path        string
	ContentHash [32]byte
	SizeBytes   int64
	DeclCount   int
	LexedAt     time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Declaration represents one logical statement extracted from a manifest.
// StartOffset and Length address the original file, so the content can be
// re-derived from the manifest bytes at any time.
type Declaration struct {
	ID          int64
	ManifestID  int64
	Seq         int
	StartOffset int64
	Length      int64
	Content     string
	Assembled   bool
	CreatedAt   time.Time
}

// SearchResult is a declaration matched by full-text search, joined with
// the path of the manifest it came from
type SearchResult struct {
	Declaration
	ManifestPath string
}

// Status contains aggregate statistics about the database
type Status struct {
	ManifestsCount    int
	DeclarationsCount int
	IndexSizeMB       float64
}
