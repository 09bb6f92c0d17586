package indexer

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dshills/ninjalex/internal/store"
	"github.com/dshills/ninjalex/pkg/lexer"
	"github.com/dshills/ninjalex/pkg/rules"
	"github.com/dshills/ninjalex/pkg/sink"
	"github.com/dshills/ninjalex/pkg/types"
)

// Indexer coordinates the indexing pipeline: read -> lex -> store
type Indexer struct {
	storage store.Storage

	// Worker pool configuration
	workers int
}

// Config contains configuration for the indexer
type Config struct {
	Workers      int                 // Concurrent manifest files (default: runtime.NumCPU())
	Parallelism  int                 // Chunk workers per manifest (default: runtime.NumCPU())
	MinChunkSize int                 // Minimum bytes per chunk (default: lexer.DefaultMinChunkSize)
	Rule         types.SeparatorRule // Separator rule (default: rules.Ninja)
	Extensions   []string            // Manifest file extensions (default: .ninja)
	ForceRelex   bool                // Re-lex files even when the content hash is unchanged
}

// Statistics contains statistics about one indexing run
type Statistics struct {
	ManifestsIndexed   int
	ManifestsSkipped   int
	ManifestsFailed    int
	DeclarationsStored int
	Duration           time.Duration
	ErrorMessages      []string
}

// New creates a new Indexer instance
func New(storage store.Storage) *Indexer {
	return &Indexer{
		storage: storage,
		workers: runtime.NumCPU(),
	}
}

// IndexPath indexes a single manifest file or every manifest under a
// directory tree.
func (idx *Indexer) IndexPath(ctx context.Context, path string, config *Config) (*Statistics, error) {
	if config == nil {
		config = &Config{}
	}
	if config.Workers <= 0 {
		config.Workers = runtime.NumCPU()
	}
	if config.Rule == nil {
		config.Rule = rules.Ninja
	}
	if len(config.Extensions) == 0 {
		config.Extensions = []string{".ninja"}
	}
	idx.workers = config.Workers

	startTime := time.Now()
	stats := &Statistics{ErrorMessages: make([]string, 0)}

	files, err := discoverManifests(path, config)
	if err != nil {
		return nil, fmt.Errorf("failed to discover manifests: %w", err)
	}

	if err := idx.indexFiles(ctx, files, config, stats); err != nil {
		return nil, err
	}

	stats.Duration = time.Since(startTime)
	return stats, nil
}

// discoverManifests resolves path to the list of manifest files to index
func discoverManifests(path string, config *Config) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	var files []string
	err = filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			// Skip hidden directories
			if strings.HasPrefix(info.Name(), ".") && p != path {
				return filepath.SkipDir
			}
			return nil
		}
		for _, ext := range config.Extensions {
			if strings.HasSuffix(p, ext) {
				files = append(files, p)
				break
			}
		}
		return nil
	})
	return files, err
}

// indexFiles lexes and stores a set of manifests concurrently
func (idx *Indexer) indexFiles(ctx context.Context, files []string, config *Config, stats *Statistics) error {
	semaphore := make(chan struct{}, idx.workers)

	var (
		indexed int32
		skipped int32
		failed  int32
		decls   int32
	)

	g, gctx := errgroup.WithContext(ctx)
	var mu sync.Mutex // Protects stats.ErrorMessages

	for _, filePath := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case semaphore <- struct{}{}:
			}
			defer func() { <-semaphore }()

			n, wasSkipped, err := idx.indexFile(gctx, filePath, config)
			if err != nil {
				atomic.AddInt32(&failed, 1)
				mu.Lock()
				stats.ErrorMessages = append(stats.ErrorMessages, fmt.Sprintf("%s: %v", filePath, err))
				mu.Unlock()
				// Continue with other files
				return nil
			}
			if wasSkipped {
				atomic.AddInt32(&skipped, 1)
				return nil
			}
			atomic.AddInt32(&indexed, 1)
			atomic.AddInt32(&decls, int32(n))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	stats.ManifestsIndexed = int(indexed)
	stats.ManifestsSkipped = int(skipped)
	stats.ManifestsFailed = int(failed)
	stats.DeclarationsStored = int(decls)
	return nil
}

// indexFile lexes one manifest and stores its declarations in a single
// transaction. Returns the number of declarations stored and whether the
// file was skipped as unchanged.
func (idx *Indexer) indexFile(ctx context.Context, filePath string, config *Config) (int, bool, error) {
	buf, err := os.ReadFile(filePath)
	if err != nil {
		return 0, false, err
	}
	hash := sha256.Sum256(buf)

	existing, err := idx.storage.GetManifest(ctx, filePath)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return 0, false, err
	}
	if existing != nil && existing.ContentHash == hash && !config.ForceRelex {
		return 0, true, nil
	}

	// Lex the whole buffer before touching the database; a lexing failure
	// must not leave a half-replaced manifest behind.
	collector := sink.NewCollector()
	opts := lexer.Options{Parallelism: config.Parallelism, MinChunkSize: config.MinChunkSize}
	if err := lexer.Process(ctx, buf, config.Rule, collector, opts); err != nil {
		return 0, false, fmt.Errorf("failed to lex manifest: %w", err)
	}
	decls := collector.Declarations()

	tx, err := idx.storage.BeginTx(ctx)
	if err != nil {
		return 0, false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	manifest := existing
	if manifest == nil {
		manifest = &store.Manifest{Path: filePath}
		manifest.ContentHash = hash
		manifest.SizeBytes = int64(len(buf))
		manifest.DeclCount = len(decls)
		manifest.LexedAt = time.Now()
		if err := tx.CreateManifest(ctx, manifest); err != nil {
			return 0, false, err
		}
	} else {
		if err := tx.DeleteDeclarationsByManifest(ctx, manifest.ID); err != nil {
			return 0, false, fmt.Errorf("failed to delete old declarations: %w", err)
		}
		manifest.ContentHash = hash
		manifest.SizeBytes = int64(len(buf))
		manifest.DeclCount = len(decls)
		manifest.LexedAt = time.Now()
		if err := tx.UpdateManifest(ctx, manifest); err != nil {
			return 0, false, err
		}
	}

	for i, d := range decls {
		row := &store.Declaration{
			ManifestID:  manifest.ID,
			Seq:         i,
			StartOffset: d.Start,
			Length:      d.Len,
			Content:     d.String(),
			Assembled:   d.Assembled,
		}
		if err := tx.InsertDeclaration(ctx, row); err != nil {
			return 0, false, fmt.Errorf("failed to store declaration %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, false, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return len(decls), false, nil
}
