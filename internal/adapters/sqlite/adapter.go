// Package sqlite provides a SQLite-backed implementation of the analysis history port.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ewilliams-labs/enisai/internal/core/domain"
	_ "github.com/mattn/go-sqlite3" // Import the driver anonymously
)

// Adapter implements the repository port for SQLite
type Adapter struct {
	db *sql.DB
}

// NewAdapter creates a connection and runs the schema migration
func NewAdapter(storagePath string) (*Adapter, error) {
	db, err := sql.Open("sqlite3", storagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}

	// Verify connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping sqlite db: %w", err)
	}

	// SQLite serializes writers anyway, and ":memory:" databases are per connection.
	db.SetMaxOpenConns(1)

	adapter := &Adapter{db: db}

	if err := adapter.migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return adapter, nil
}

// Close ensures the DB connection is closed gracefully
func (a *Adapter) Close() error {
	return a.db.Close()
}

// timeLayout is fixed width so created_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

const selectAnalysis = `
	SELECT id, filename, stored_name, size, tags, features, label, songs, created_at
	FROM analyses
`

func (a *Adapter) Save(ctx context.Context, an domain.Analysis) error {
	tags, err := json.Marshal(an.Tags)
	if err != nil {
		return fmt.Errorf("failed to encode tags: %w", err)
	}
	features, err := json.Marshal(an.Features)
	if err != nil {
		return fmt.Errorf("failed to encode features: %w", err)
	}
	songs, err := json.Marshal(an.Classification.Songs)
	if err != nil {
		return fmt.Errorf("failed to encode songs: %w", err)
	}

	query := `
		INSERT INTO analyses (id, filename, stored_name, size, tags, features, label, songs, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			filename=excluded.filename,
			stored_name=excluded.stored_name,
			size=excluded.size,
			tags=excluded.tags,
			features=excluded.features,
			label=excluded.label,
			songs=excluded.songs;
	`
	if _, err := a.db.ExecContext(
		ctx,
		query,
		an.ID,
		an.Filename,
		an.StoredName,
		an.Size,
		string(tags),
		string(features),
		string(an.Classification.Label),
		string(songs),
		an.CreatedAt.UTC().Format(timeLayout),
	); err != nil {
		return fmt.Errorf("failed to save analysis %s: %w", an.ID, err)
	}
	return nil
}

func (a *Adapter) GetByID(ctx context.Context, id string) (domain.Analysis, error) {
	row := a.db.QueryRowContext(ctx, selectAnalysis+" WHERE id = ?", id)
	an, err := scanAnalysis(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Analysis{}, domain.ErrNotFound
		}
		return domain.Analysis{}, fmt.Errorf("failed to load analysis: %w", err)
	}
	return an, nil
}

// List returns up to limit analyses, newest first.
func (a *Adapter) List(ctx context.Context, limit int) ([]domain.Analysis, error) {
	rows, err := a.db.QueryContext(ctx, selectAnalysis+" ORDER BY created_at DESC, rowid DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	out := []domain.Analysis{}
	for rows.Next() {
		an, err := scanAnalysis(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}
		out = append(out, an)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate analyses: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAnalysis(s scanner) (domain.Analysis, error) {
	var (
		an        domain.Analysis
		storedAs  sql.NullString
		tags      sql.NullString
		features  string
		label     string
		songs     string
		createdAt string
	)
	if err := s.Scan(&an.ID, &an.Filename, &storedAs, &an.Size, &tags, &features, &label, &songs, &createdAt); err != nil {
		return domain.Analysis{}, err
	}
	if storedAs.Valid {
		an.StoredName = storedAs.String
	}
	if tags.Valid && tags.String != "" {
		if err := json.Unmarshal([]byte(tags.String), &an.Tags); err != nil {
			return domain.Analysis{}, fmt.Errorf("decode tags: %w", err)
		}
	}
	if err := json.Unmarshal([]byte(features), &an.Features); err != nil {
		return domain.Analysis{}, fmt.Errorf("decode features: %w", err)
	}
	an.Classification.Label = domain.GenreLabel(label)
	if err := json.Unmarshal([]byte(songs), &an.Classification.Songs); err != nil {
		return domain.Analysis{}, fmt.Errorf("decode songs: %w", err)
	}
	ts, err := time.Parse(timeLayout, createdAt)
	if err != nil {
		return domain.Analysis{}, fmt.Errorf("decode created_at: %w", err)
	}
	an.CreatedAt = ts
	return an, nil
}

func (a *Adapter) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS analyses (
		id TEXT PRIMARY KEY,
		filename TEXT NOT NULL,
		stored_name TEXT,
		size INTEGER NOT NULL DEFAULT 0,
		tags TEXT,
		features TEXT NOT NULL,
		label TEXT NOT NULL,
		songs TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_analyses_created_at ON analyses(created_at);
	CREATE INDEX IF NOT EXISTS idx_analyses_label ON analyses(label);
	`
	if _, err := a.db.Exec(query); err != nil {
		return err
	}

	// Older databases predate tag extraction.
	if _, err := a.db.Exec("ALTER TABLE analyses ADD COLUMN tags TEXT"); err != nil {
		if !isDuplicateColumnError(err) {
			return err
		}
	}

	return nil
}

func isDuplicateColumnError(err error) bool {
	return err != nil && (strings.Contains(err.Error(), "duplicate column") || strings.Contains(err.Error(), "already exists"))
}
