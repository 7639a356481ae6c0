// Package favorites persists the user's saved insights in SQLite.
package favorites

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Favorite is one saved insight.
type Favorite struct {
	InsightID string    `json:"insight_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Store keeps favorites in a SQLite database.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates a SQLite database at dbPath and initializes the
// schema. Parent directories are created if they do not exist.
func NewStore(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Store{db: db}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS favorites (
		insight_id TEXT PRIMARY KEY,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_favorites_created_at ON favorites(created_at);
	`
	_, err := db.Exec(schema)
	return err
}

// Add saves an insight. Adding an already-saved insight is a no-op.
func (s *Store) Add(ctx context.Context, insightID string) error {
	if insightID == "" {
		return fmt.Errorf("insight id is required")
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO favorites (insight_id, created_at) VALUES (?, ?)`,
		insightID, time.Now(),
	)
	return err
}

// Remove deletes a saved insight. Removing an unknown ID is a no-op.
func (s *Store) Remove(ctx context.Context, insightID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM favorites WHERE insight_id = ?`, insightID)
	return err
}

// List returns all favorites, oldest first.
func (s *Store) List(ctx context.Context) ([]*Favorite, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT insight_id, created_at FROM favorites ORDER BY created_at`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	favorites := make([]*Favorite, 0)
	for rows.Next() {
		var fav Favorite
		if err := rows.Scan(&fav.InsightID, &fav.CreatedAt); err != nil {
			return nil, err
		}
		favorites = append(favorites, &fav)
	}
	return favorites, rows.Err()
}

// IsFavorite reports whether an insight is saved.
func (s *Store) IsFavorite(ctx context.Context, insightID string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM favorites WHERE insight_id = ?`, insightID,
	).Scan(&n)
	return n > 0, err
}

// Count returns the number of saved insights.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM favorites`).Scan(&count)
	return count, err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
