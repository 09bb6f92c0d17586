package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when trying to create a duplicate entity
	ErrAlreadyExists = errors.New("already exists")
)

// SQLiteStorage implements the Storage interface using SQLite
type SQLiteStorage struct {
	db *sql.DB
}

// openDatabase opens a SQLite database with appropriate settings
func openDatabase(dbPath string) (*sql.DB, error) {
	db, err := sql.Open(DriverName, dbPath)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// SQLite benefits from a single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return db, nil
}

// NewSQLiteStorage creates a new SQLite storage instance
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	db, err := openDatabase(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Apply migrations
	if err := ApplyMigrations(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	return &SQLiteStorage{db: db}, nil
}

// Close closes the database connection
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// BeginTx starts a new transaction
func (s *SQLiteStorage) BeginTx(ctx context.Context) (Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &sqliteTx{tx: tx, storage: s}, nil
}

// querier is an interface that both *sql.DB and *sql.Tx implement
type querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// sqliteTx wraps a SQL transaction
type sqliteTx struct {
	tx      *sql.Tx
	storage *SQLiteStorage
}

func (t *sqliteTx) Commit() error {
	return t.tx.Commit()
}

func (t *sqliteTx) Rollback() error {
	return t.tx.Rollback()
}

// Manifest operations

func (s *SQLiteStorage) createManifestWithQuerier(ctx context.Context, q querier, m *Manifest) error {
	query := `
		INSERT INTO manifests (path, content_hash, size_bytes, decl_count, lexed_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	now := time.Now()
	result, err := q.ExecContext(ctx, query,
		m.Path, m.ContentHash[:], m.SizeBytes, m.DeclCount, m.LexedAt, now, now)
	if err != nil {
		return fmt.Errorf("failed to create manifest: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = id
	m.CreatedAt = now
	m.UpdatedAt = now
	return nil
}

func (s *SQLiteStorage) CreateManifest(ctx context.Context, m *Manifest) error {
	return s.createManifestWithQuerier(ctx, s.db, m)
}

func (t *sqliteTx) CreateManifest(ctx context.Context, m *Manifest) error {
	return t.storage.createManifestWithQuerier(ctx, t.tx, m)
}

const manifestColumns = `id, path, content_hash, size_bytes, decl_count, lexed_at, created_at, updated_at`

// scanManifest scans one manifest row from either a *sql.Row or *sql.Rows
func scanManifest(scan func(dest ...interface{}) error) (*Manifest, error) {
	var m Manifest
	var hash []byte
	var lexedAt sql.NullTime
	err := scan(&m.ID, &m.Path, &hash, &m.SizeBytes, &m.DeclCount,
		&lexedAt, &m.CreatedAt, &m.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	copy(m.ContentHash[:], hash)
	if lexedAt.Valid {
		m.LexedAt = lexedAt.Time
	}
	return &m, nil
}

func (s *SQLiteStorage) getManifestWithQuerier(ctx context.Context, q querier, path string) (*Manifest, error) {
	row := q.QueryRowContext(ctx, `SELECT `+manifestColumns+` FROM manifests WHERE path = ?`, path)
	return scanManifest(row.Scan)
}

func (s *SQLiteStorage) GetManifest(ctx context.Context, path string) (*Manifest, error) {
	return s.getManifestWithQuerier(ctx, s.db, path)
}

func (t *sqliteTx) GetManifest(ctx context.Context, path string) (*Manifest, error) {
	return t.storage.getManifestWithQuerier(ctx, t.tx, path)
}

func (s *SQLiteStorage) getManifestByIDWithQuerier(ctx context.Context, q querier, id int64) (*Manifest, error) {
	row := q.QueryRowContext(ctx, `SELECT `+manifestColumns+` FROM manifests WHERE id = ?`, id)
	return scanManifest(row.Scan)
}

func (s *SQLiteStorage) GetManifestByID(ctx context.Context, id int64) (*Manifest, error) {
	return s.getManifestByIDWithQuerier(ctx, s.db, id)
}

func (t *sqliteTx) GetManifestByID(ctx context.Context, id int64) (*Manifest, error) {
	return t.storage.getManifestByIDWithQuerier(ctx, t.tx, id)
}

func (s *SQLiteStorage) updateManifestWithQuerier(ctx context.Context, q querier, m *Manifest) error {
	query := `
		UPDATE manifests
		SET content_hash = ?, size_bytes = ?, decl_count = ?, lexed_at = ?, updated_at = ?
		WHERE id = ?
	`
	now := time.Now()
	_, err := q.ExecContext(ctx, query,
		m.ContentHash[:], m.SizeBytes, m.DeclCount, m.LexedAt, now, m.ID)
	if err != nil {
		return fmt.Errorf("failed to update manifest: %w", err)
	}
	m.UpdatedAt = now
	return nil
}

func (s *SQLiteStorage) UpdateManifest(ctx context.Context, m *Manifest) error {
	return s.updateManifestWithQuerier(ctx, s.db, m)
}

func (t *sqliteTx) UpdateManifest(ctx context.Context, m *Manifest) error {
	return t.storage.updateManifestWithQuerier(ctx, t.tx, m)
}

func (s *SQLiteStorage) listManifestsWithQuerier(ctx context.Context, q querier) ([]*Manifest, error) {
	rows, err := q.QueryContext(ctx, `SELECT `+manifestColumns+` FROM manifests ORDER BY path`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var manifests []*Manifest
	for rows.Next() {
		m, err := scanManifest(rows.Scan)
		if err != nil {
			return nil, err
		}
		manifests = append(manifests, m)
	}
	return manifests, rows.Err()
}

func (s *SQLiteStorage) ListManifests(ctx context.Context) ([]*Manifest, error) {
	return s.listManifestsWithQuerier(ctx, s.db)
}

func (t *sqliteTx) ListManifests(ctx context.Context) ([]*Manifest, error) {
	return t.storage.listManifestsWithQuerier(ctx, t.tx)
}

func (s *SQLiteStorage) deleteManifestWithQuerier(ctx context.Context, q querier, id int64) error {
	_, err := q.ExecContext(ctx, `DELETE FROM manifests WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete manifest: %w", err)
	}
	return nil
}

func (s *SQLiteStorage) DeleteManifest(ctx context.Context, id int64) error {
	return s.deleteManifestWithQuerier(ctx, s.db, id)
}

func (t *sqliteTx) DeleteManifest(ctx context.Context, id int64) error {
	return t.storage.deleteManifestWithQuerier(ctx, t.tx, id)
}

// Declaration operations

func (s *SQLiteStorage) insertDeclarationWithQuerier(ctx context.Context, q querier, d *Declaration) error {
	query := `
		INSERT INTO declarations (manifest_id, seq, start_offset, length, content, assembled, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	now := time.Now()
	result, err := q.ExecContext(ctx, query,
		d.ManifestID, d.Seq, d.StartOffset, d.Length, d.Content, d.Assembled, now)
	if err != nil {
		return fmt.Errorf("failed to insert declaration: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	d.ID = id
	d.CreatedAt = now
	return nil
}

func (s *SQLiteStorage) InsertDeclaration(ctx context.Context, d *Declaration) error {
	return s.insertDeclarationWithQuerier(ctx, s.db, d)
}

func (t *sqliteTx) InsertDeclaration(ctx context.Context, d *Declaration) error {
	return t.storage.insertDeclarationWithQuerier(ctx, t.tx, d)
}

func (s *SQLiteStorage) listDeclarationsWithQuerier(ctx context.Context, q querier, manifestID int64) ([]*Declaration, error) {
	query := `
		SELECT id, manifest_id, seq, start_offset, length, content, assembled, created_at
		FROM declarations
		WHERE manifest_id = ?
		ORDER BY start_offset
	`
	rows, err := q.QueryContext(ctx, query, manifestID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var decls []*Declaration
	for rows.Next() {
		var d Declaration
		if err := rows.Scan(&d.ID, &d.ManifestID, &d.Seq, &d.StartOffset,
			&d.Length, &d.Content, &d.Assembled, &d.CreatedAt); err != nil {
			return nil, err
		}
		decls = append(decls, &d)
	}
	return decls, rows.Err()
}

func (s *SQLiteStorage) ListDeclarationsByManifest(ctx context.Context, manifestID int64) ([]*Declaration, error) {
	return s.listDeclarationsWithQuerier(ctx, s.db, manifestID)
}

func (t *sqliteTx) ListDeclarationsByManifest(ctx context.Context, manifestID int64) ([]*Declaration, error) {
	return t.storage.listDeclarationsWithQuerier(ctx, t.tx, manifestID)
}

func (s *SQLiteStorage) deleteDeclarationsWithQuerier(ctx context.Context, q querier, manifestID int64) error {
	_, err := q.ExecContext(ctx, `DELETE FROM declarations WHERE manifest_id = ?`, manifestID)
	if err != nil {
		return fmt.Errorf("failed to delete declarations: %w", err)
	}
	return nil
}

func (s *SQLiteStorage) DeleteDeclarationsByManifest(ctx context.Context, manifestID int64) error {
	return s.deleteDeclarationsWithQuerier(ctx, s.db, manifestID)
}

func (t *sqliteTx) DeleteDeclarationsByManifest(ctx context.Context, manifestID int64) error {
	return t.storage.deleteDeclarationsWithQuerier(ctx, t.tx, manifestID)
}

func (s *SQLiteStorage) searchDeclarationsWithQuerier(ctx context.Context, q querier, query string, limit int) ([]*SearchResult, error) {
	if limit <= 0 {
		limit = 10
	}
	sqlQuery := `
		SELECT d.id, d.manifest_id, d.seq, d.start_offset, d.length, d.content, d.assembled, d.created_at,
		       m.path
		FROM declarations_fts f
		JOIN declarations d ON d.id = f.rowid
		JOIN manifests m ON m.id = d.manifest_id
		WHERE declarations_fts MATCH ?
		ORDER BY rank
		LIMIT ?
	`
	rows, err := q.QueryContext(ctx, sqlQuery, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search declarations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []*SearchResult
	for rows.Next() {
		var r SearchResult
		if err := rows.Scan(&r.ID, &r.ManifestID, &r.Seq, &r.StartOffset,
			&r.Length, &r.Content, &r.Assembled, &r.CreatedAt, &r.ManifestPath); err != nil {
			return nil, err
		}
		results = append(results, &r)
	}
	return results, rows.Err()
}

func (s *SQLiteStorage) SearchDeclarations(ctx context.Context, query string, limit int) ([]*SearchResult, error) {
	return s.searchDeclarationsWithQuerier(ctx, s.db, query, limit)
}

func (t *sqliteTx) SearchDeclarations(ctx context.Context, query string, limit int) ([]*SearchResult, error) {
	return t.storage.searchDeclarationsWithQuerier(ctx, t.tx, query, limit)
}

// Status operations

func (s *SQLiteStorage) getStatusWithQuerier(ctx context.Context, q querier) (*Status, error) {
	var status Status
	if err := q.QueryRowContext(ctx, `SELECT COUNT(*) FROM manifests`).Scan(&status.ManifestsCount); err != nil {
		return nil, err
	}
	if err := q.QueryRowContext(ctx, `SELECT COUNT(*) FROM declarations`).Scan(&status.DeclarationsCount); err != nil {
		return nil, err
	}

	var pageCount, pageSize int64
	if err := q.QueryRowContext(ctx, `PRAGMA page_count`).Scan(&pageCount); err == nil {
		if err := q.QueryRowContext(ctx, `PRAGMA page_size`).Scan(&pageSize); err == nil {
			status.IndexSizeMB = float64(pageCount*pageSize) / (1024 * 1024)
		}
	}
	return &status, nil
}

func (s *SQLiteStorage) GetStatus(ctx context.Context) (*Status, error) {
	return s.getStatusWithQuerier(ctx, s.db)
}

func (t *sqliteTx) GetStatus(ctx context.Context) (*Status, error) {
	return t.storage.getStatusWithQuerier(ctx, t.tx)
}

// Database operations on a transaction

// Close is a no-op on a transaction; the owning storage closes the database.
func (t *sqliteTx) Close() error {
	return nil
}

// BeginTx on a transaction returns the transaction itself; SQLite does not
// support nested transactions.
func (t *sqliteTx) BeginTx(ctx context.Context) (Tx, error) {
	return t, nil
}
