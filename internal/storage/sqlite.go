package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates or opens a SQLite database.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init schema: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS scenes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		position INTEGER NOT NULL DEFAULT 0,
		content TEXT NOT NULL,
		version INTEGER NOT NULL DEFAULT 1,
		updated_at TIMESTAMP NOT NULL
	)`)
	return err
}

func (s *SQLiteStore) SaveScene(ctx context.Context, scene *Scene) error {
	scene.Version = 1
	scene.UpdatedAt = time.Now().UTC()

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO scenes (title, position, content, version, updated_at) VALUES (?, ?, ?, ?, ?)`,
		scene.Title, scene.Position, scene.Content, scene.Version, scene.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert scene: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read inserted id: %w", err)
	}
	scene.ID = id
	return nil
}

func (s *SQLiteStore) GetScene(ctx context.Context, id int64) (*Scene, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, title, position, content, version, updated_at FROM scenes WHERE id = ?`, id)

	var scene Scene
	err := row.Scan(&scene.ID, &scene.Title, &scene.Position, &scene.Content, &scene.Version, &scene.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load scene %d: %w", id, err)
	}
	return &scene, nil
}

func (s *SQLiteStore) ListScenes(ctx context.Context) ([]*Scene, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, position, content, version, updated_at FROM scenes ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list scenes: %w", err)
	}
	defer rows.Close()

	var scenes []*Scene
	for rows.Next() {
		var scene Scene
		if err := rows.Scan(&scene.ID, &scene.Title, &scene.Position, &scene.Content, &scene.Version, &scene.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan scene row: %w", err)
		}
		scenes = append(scenes, &scene)
	}
	return scenes, rows.Err()
}

// UpdateContent performs a compare-and-swap on the scene's version, then reads
// the row back to verify the stored content matches what was written.
func (s *SQLiteStore) UpdateContent(ctx context.Context, id int64, content string, expectVersion int64) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE scenes SET content = ?, version = version + 1, updated_at = ? WHERE id = ? AND version = ?`,
		content, time.Now().UTC(), id, expectVersion)
	if err != nil {
		return fmt.Errorf("failed to update scene %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		// Distinguish a missing scene from a stale version.
		if _, err := s.GetScene(ctx, id); err != nil {
			return err
		}
		return ErrVersionConflict
	}

	updated, err := s.GetScene(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to verify scene %d: %w", id, err)
	}
	if updated.Content != content {
		return fmt.Errorf("scene %d: %w", id, ErrVerifyFailed)
	}
	return nil
}
