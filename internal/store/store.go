// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists catalog resources in SQLite and serves the
// filtered, paginated queries behind local search. Full-text matching uses
// an FTS5 index kept in sync by triggers.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/campusware/unihub/pkg/types"
)

const dbFile = "unihub.db"

// ErrNotFound is returned when a resource id does not exist.
var ErrNotFound = errors.New("resource not found")

// ErrInvalidResource is returned when a resource violates the catalog
// invariants (unknown type, missing link, bad access level).
var ErrInvalidResource = errors.New("invalid resource")

// Store manages the resource catalog SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the catalog database at cfg.DataDir/unihub.db and
// creates the schema if it does not exist.
func Open(cfg types.StoreConfig) (*Store, error) {
	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = "data"
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS resources (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL,
			description TEXT,
			type TEXT NOT NULL,
			format TEXT,
			author TEXT,
			publisher TEXT,
			year INTEGER,
			isbn TEXT,
			tags TEXT,
			level INTEGER,
			file_url TEXT,
			external_link TEXT,
			source TEXT,
			source_external_id TEXT,
			uploader_id TEXT NOT NULL,
			uploader_role TEXT,
			access_level TEXT NOT NULL,
			approved INTEGER NOT NULL DEFAULT 0,
			views INTEGER NOT NULL DEFAULT 0,
			downloads INTEGER NOT NULL DEFAULT 0,
			shares INTEGER NOT NULL DEFAULT 0,
			average_rating REAL NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		// One local copy per external record: re-import is idempotent.
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_resources_source
			ON resources(source, source_external_id)
			WHERE source IS NOT NULL AND source != ''`,
		`CREATE TABLE IF NOT EXISTS resource_departments (
			resource_id TEXT NOT NULL REFERENCES resources(id) ON DELETE CASCADE,
			department_id TEXT NOT NULL,
			PRIMARY KEY (resource_id, department_id)
		)`,
		`CREATE TABLE IF NOT EXISTS resource_courses (
			resource_id TEXT NOT NULL REFERENCES resources(id) ON DELETE CASCADE,
			course_id TEXT NOT NULL,
			PRIMARY KEY (resource_id, course_id)
		)`,
		`CREATE TABLE IF NOT EXISTS ratings (
			resource_id TEXT NOT NULL REFERENCES resources(id) ON DELETE CASCADE,
			rater_id TEXT NOT NULL,
			score INTEGER NOT NULL,
			review TEXT,
			created_at TEXT NOT NULL,
			PRIMARY KEY (resource_id, rater_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_resources_created ON resources(created_at)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='resources_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE resources_fts USING fts5(title, description, tags, content=resources, content_rowid=rowid)`,
			`CREATE TRIGGER resources_ai AFTER INSERT ON resources BEGIN
				INSERT INTO resources_fts(rowid, title, description, tags)
				VALUES (new.rowid, new.title, new.description, new.tags);
			END`,
			`CREATE TRIGGER resources_ad AFTER DELETE ON resources BEGIN
				INSERT INTO resources_fts(resources_fts, rowid, title, description, tags)
				VALUES('delete', old.rowid, old.title, old.description, old.tags);
			END`,
			`CREATE TRIGGER resources_au AFTER UPDATE ON resources BEGIN
				INSERT INTO resources_fts(resources_fts, rowid, title, description, tags)
				VALUES('delete', old.rowid, old.title, old.description, old.tags);
				INSERT INTO resources_fts(rowid, title, description, tags)
				VALUES (new.rowid, new.title, new.description, new.tags);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// validate enforces the catalog invariants before a resource is persisted.
func validate(r *types.Resource) error {
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidResource)
	}
	if !types.ValidResourceType(r.Type) {
		return fmt.Errorf("%w: unknown resource type %q", ErrInvalidResource, r.Type)
	}
	if !types.ValidAccessLevel(r.AccessLevel) {
		return fmt.Errorf("%w: unknown access level %q", ErrInvalidResource, r.AccessLevel)
	}
	if r.Type == types.ResourceLink && r.ExternalLink == "" {
		return fmt.Errorf("%w: link resources require an external link", ErrInvalidResource)
	}
	if r.FileURL == "" && r.ExternalLink == "" {
		return fmt.Errorf("%w: a file reference or an external link is required", ErrInvalidResource)
	}
	if r.UploaderID == "" {
		return fmt.Errorf("%w: uploader identity is required", ErrInvalidResource)
	}
	return nil
}

// CreateResource validates and inserts a resource together with its
// department and course associations. Missing ID, timestamps, and the
// staff auto-approval are filled in here.
func (s *Store) CreateResource(ctx context.Context, r *types.Resource) error {
	if err := validate(r); err != nil {
		return err
	}

	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now
	}
	r.UpdatedAt = now
	if r.UploaderRole == types.RoleStaff {
		r.Approved = true
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	tagsJSON, _ := json.Marshal(r.Tags)
	_, err = tx.ExecContext(ctx,
		`INSERT INTO resources (id, title, description, type, format, author, publisher, year, isbn,
			tags, level, file_url, external_link, source, source_external_id,
			uploader_id, uploader_role, access_level, approved, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Title, r.Description, string(r.Type), r.Format, r.Author, r.Publisher, r.Year, r.ISBN,
		string(tagsJSON), r.Level, r.FileURL, r.ExternalLink, r.Source, r.SourceExternalID,
		r.UploaderID, r.UploaderRole, string(r.AccessLevel), boolToInt(r.Approved),
		r.CreatedAt.Format(time.RFC3339Nano), r.UpdatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("inserting resource: %w", err)
	}

	for _, deptID := range r.DepartmentIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO resource_departments (resource_id, department_id) VALUES (?, ?)`,
			r.ID, deptID,
		); err != nil {
			return fmt.Errorf("inserting department association: %w", err)
		}
	}
	for _, courseID := range r.CourseIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO resource_courses (resource_id, course_id) VALUES (?, ?)`,
			r.ID, courseID,
		); err != nil {
			return fmt.Errorf("inserting course association: %w", err)
		}
	}

	return tx.Commit()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
