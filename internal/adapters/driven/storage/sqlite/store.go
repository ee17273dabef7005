package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/gdpr-rag/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/gdpr-rag/internal/core/domain"
	"github.com/custodia-labs/gdpr-rag/internal/core/ports/driven"
)

// DBName is the index database file inside the index directory.
const DBName = "index.db"

// Ensure IndexStore implements the interface.
var _ driven.IndexStore = (*IndexStore)(nil)

// IndexStore reads and writes the index database in one directory.
type IndexStore struct {
	dir string
}

// NewIndexStore creates a store rooted at dir. Nothing is touched on disk
// until Save is called.
func NewIndexStore(dir string) *IndexStore {
	if dir == "" {
		dir = domain.DefaultIndexDir
	}
	return &IndexStore{dir: dir}
}

// Dir returns the index directory.
func (s *IndexStore) Dir() string {
	return s.dir
}

func (s *IndexStore) dbPath() string {
	return filepath.Join(s.dir, DBName)
}

// Exists reports whether a database with a manifest is present.
func (s *IndexStore) Exists(ctx context.Context) (bool, error) {
	if _, err := os.Stat(s.dbPath()); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("stat index: %w", err)
	}

	db, err := openDB(s.dbPath())
	if err != nil {
		return false, err
	}
	defer db.Close()

	var n int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM manifest").Scan(&n); err != nil {
		// Unreadable still counts as present. Load reports the corruption.
		return true, nil
	}
	return n == 1, nil
}

// Clear removes the index directory and everything in it.
func (s *IndexStore) Clear(_ context.Context) error {
	if err := os.RemoveAll(s.dir); err != nil {
		return fmt.Errorf("clearing index directory: %w", err)
	}
	return nil
}

// Save writes the manifest and all entries, replacing any prior index.
func (s *IndexStore) Save(ctx context.Context, manifest domain.IndexManifest, entries []domain.IndexEntry) error {
	if manifest.ChunkCount != len(entries) {
		return fmt.Errorf("%w: manifest lists %d chunks, got %d entries",
			domain.ErrInvalidInput, manifest.ChunkCount, len(entries))
	}
	for _, e := range entries {
		if len(e.Vector) != manifest.Dimensions {
			return fmt.Errorf("chunk %s: %w: got %d, want %d",
				e.Chunk.ID, domain.ErrDimensionMismatch, len(e.Vector), manifest.Dimensions)
		}
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating index directory: %w", err)
	}

	tmpPath := s.dbPath() + ".partial"
	if err := removeDB(tmpPath); err != nil {
		return err
	}

	if err := writeDB(ctx, tmpPath, manifest, entries); err != nil {
		_ = removeDB(tmpPath)
		return err
	}

	if err := removeDB(s.dbPath()); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, s.dbPath()); err != nil {
		return fmt.Errorf("installing index: %w", err)
	}
	return nil
}

func writeDB(ctx context.Context, path string, manifest domain.IndexManifest, entries []domain.IndexEntry) error {
	db, err := openDB(path)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := migrate(db, migrations.FS); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO manifest (id, build_id, embedding_provider, embedding_model,
			dimensions, chunk_count, source_path, created_at)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?)`,
		manifest.BuildID, manifest.EmbeddingProvider, manifest.EmbeddingModel,
		manifest.Dimensions, manifest.ChunkCount, manifest.SourcePath,
		manifest.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("inserting manifest: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO entries (seq, chunk_id, article, position, summary, content, vector)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing entry insert: %w", err)
	}
	defer stmt.Close()

	for i, e := range entries {
		_, err := stmt.ExecContext(ctx, i, e.Chunk.ID, e.Chunk.ArticleNumber, e.Chunk.Position,
			e.Chunk.Summary, e.Chunk.Content, float32SliceToBytes(e.Vector))
		if err != nil {
			return fmt.Errorf("inserting chunk %s: %w", e.Chunk.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing index: %w", err)
	}
	return nil
}

// Load reads the manifest and all entries in insertion order.
func (s *IndexStore) Load(ctx context.Context) (*domain.IndexManifest, []domain.IndexEntry, error) {
	if _, err := os.Stat(s.dbPath()); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, fmt.Errorf("%w: %s", domain.ErrIndexNotFound, s.dir)
		}
		return nil, nil, fmt.Errorf("stat index: %w", err)
	}

	db, err := openDB(s.dbPath())
	if err != nil {
		return nil, nil, err
	}
	defer db.Close()

	manifest, err := loadManifest(ctx, db)
	if err != nil {
		return nil, nil, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT chunk_id, article, position, summary, content, vector
		FROM entries ORDER BY seq`)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: querying entries: %w", domain.ErrIndexCorrupt, err)
	}
	defer rows.Close()

	entries := make([]domain.IndexEntry, 0, manifest.ChunkCount)
	for rows.Next() {
		var (
			e    domain.IndexEntry
			blob []byte
		)
		if err := rows.Scan(&e.Chunk.ID, &e.Chunk.ArticleNumber, &e.Chunk.Position,
			&e.Chunk.Summary, &e.Chunk.Content, &blob); err != nil {
			return nil, nil, fmt.Errorf("%w: scanning entry: %w", domain.ErrIndexCorrupt, err)
		}
		if len(blob) != manifest.Dimensions*4 {
			return nil, nil, fmt.Errorf("%w: chunk %s has %d vector bytes, want %d",
				domain.ErrIndexCorrupt, e.Chunk.ID, len(blob), manifest.Dimensions*4)
		}
		e.Vector = bytesToFloat32Slice(blob)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", domain.ErrIndexCorrupt, err)
	}

	if len(entries) != manifest.ChunkCount {
		return nil, nil, fmt.Errorf("%w: manifest lists %d chunks, found %d",
			domain.ErrIndexCorrupt, manifest.ChunkCount, len(entries))
	}
	return manifest, entries, nil
}

func loadManifest(ctx context.Context, db *sql.DB) (*domain.IndexManifest, error) {
	var (
		m         domain.IndexManifest
		createdAt string
	)
	err := db.QueryRowContext(ctx, `
		SELECT build_id, embedding_provider, embedding_model, dimensions,
			chunk_count, source_path, created_at
		FROM manifest WHERE id = 1`).Scan(
		&m.BuildID, &m.EmbeddingProvider, &m.EmbeddingModel, &m.Dimensions,
		&m.ChunkCount, &m.SourcePath, &createdAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: reading manifest: %w", domain.ErrIndexCorrupt, err)
	}
	m.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing manifest time: %w", domain.ErrIndexCorrupt, err)
	}
	return &m, nil
}

func openDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return db, nil
}

// removeDB deletes a database file and its journal side files.
func removeDB(path string) error {
	for _, p := range []string{path, path + "-journal", path + "-wal", path + "-shm"} {
		if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("removing %s: %w", filepath.Base(p), err)
		}
	}
	return nil
}

// migrate runs all pending migrations.
func migrate(db *sql.DB, fsys fs.FS) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_index.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// float32SliceToBytes converts a []float32 to a byte slice for storage.
func float32SliceToBytes(floats []float32) []byte {
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte slice back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}
