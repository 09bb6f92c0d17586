package indexer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/ninjalex/internal/store"
)

func newTestStorage(t *testing.T) *store.SQLiteStorage {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "index.db")
	s, err := store.NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func writeManifest(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestIndexPath_SingleFile(t *testing.T) {
	s := newTestStorage(t)
	idx := New(s)
	ctx := context.Background()

	dir := t.TempDir()
	path := writeManifest(t, dir, "build.ninja",
		"rule cc\n  command = gcc -c $in -o $out\nbuild main.o: cc main.c\n")

	stats, err := idx.IndexPath(ctx, path, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.ManifestsIndexed)
	assert.Equal(t, 0, stats.ManifestsFailed)
	assert.Equal(t, 3, stats.DeclarationsStored)
	assert.Empty(t, stats.ErrorMessages)

	m, err := s.GetManifest(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 3, m.DeclCount)

	decls, err := s.ListDeclarationsByManifest(ctx, m.ID)
	require.NoError(t, err)
	require.Len(t, decls, 3)
	assert.Equal(t, "rule cc\n", decls[0].Content)
	assert.Equal(t, "  command = gcc -c $in -o $out\n", decls[1].Content)
	assert.Equal(t, "build main.o: cc main.c\n", decls[2].Content)
	assert.Equal(t, int64(0), decls[0].StartOffset)
	assert.Equal(t, int64(len(decls[0].Content)), decls[1].StartOffset)
}

func TestIndexPath_Directory(t *testing.T) {
	s := newTestStorage(t)
	idx := New(s)
	ctx := context.Background()

	dir := t.TempDir()
	writeManifest(t, dir, "build.ninja", "build a: phony\n")
	writeManifest(t, dir, "rules.ninja", "rule touch\n  command = touch $out\n")
	writeManifest(t, dir, "notes.txt", "not a manifest\n")

	sub := filepath.Join(dir, ".git")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	writeManifest(t, sub, "hidden.ninja", "build b: phony\n")

	stats, err := idx.IndexPath(ctx, dir, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.ManifestsIndexed)
	assert.Equal(t, 3, stats.DeclarationsStored)

	manifests, err := s.ListManifests(ctx)
	require.NoError(t, err)
	assert.Len(t, manifests, 2)
}

func TestIndexPath_SkipsUnchanged(t *testing.T) {
	s := newTestStorage(t)
	idx := New(s)
	ctx := context.Background()

	dir := t.TempDir()
	path := writeManifest(t, dir, "build.ninja", "build a: phony\n")

	_, err := idx.IndexPath(ctx, path, nil)
	require.NoError(t, err)

	stats, err := idx.IndexPath(ctx, path, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.ManifestsIndexed)
	assert.Equal(t, 1, stats.ManifestsSkipped)

	stats, err = idx.IndexPath(ctx, path, &Config{ForceRelex: true})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.ManifestsIndexed)
	assert.Equal(t, 0, stats.ManifestsSkipped)
}

func TestIndexPath_ReindexReplacesDeclarations(t *testing.T) {
	s := newTestStorage(t)
	idx := New(s)
	ctx := context.Background()

	dir := t.TempDir()
	path := writeManifest(t, dir, "build.ninja", "build a: phony\nbuild b: phony\n")

	_, err := idx.IndexPath(ctx, path, nil)
	require.NoError(t, err)

	writeManifest(t, dir, "build.ninja", "build c: phony\n")
	stats, err := idx.IndexPath(ctx, path, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.ManifestsIndexed)

	m, err := s.GetManifest(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 1, m.DeclCount)

	decls, err := s.ListDeclarationsByManifest(ctx, m.ID)
	require.NoError(t, err)
	require.Len(t, decls, 1)
	assert.Equal(t, "build c: phony\n", decls[0].Content)
}

func TestIndexPath_RecordsFileErrors(t *testing.T) {
	s := newTestStorage(t)
	idx := New(s)
	ctx := context.Background()

	dir := t.TempDir()
	writeManifest(t, dir, "good.ninja", "build a: phony\n")
	// A dangling symlink survives discovery but fails to read.
	require.NoError(t, os.Symlink(filepath.Join(dir, "gone"), filepath.Join(dir, "bad.ninja")))

	stats, err := idx.IndexPath(ctx, dir, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.ManifestsIndexed)
	assert.Equal(t, 1, stats.ManifestsFailed)
	require.Len(t, stats.ErrorMessages, 1)
	assert.Contains(t, stats.ErrorMessages[0], "bad.ninja")
}

func TestIndexPath_MissingPath(t *testing.T) {
	s := newTestStorage(t)
	idx := New(s)

	_, err := idx.IndexPath(context.Background(), "/no/such/path", nil)
	assert.Error(t, err)
}

func TestIndexLock(t *testing.T) {
	var lock IndexLock
	assert.True(t, lock.TryAcquire())
	assert.False(t, lock.TryAcquire())
	lock.Release()
	assert.True(t, lock.TryAcquire())
}
