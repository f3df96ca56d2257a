package repository

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"
)

// ============================================================
// Export Archive
// ============================================================

//go:embed migrations/*.sql
var migrations embed.FS

var ErrNotFound = errors.New("export not found")

// Export: один скачанный вариант разметки. В редактор обратно не загружается.
type Export struct {
	ID        string `json:"id"`
	SessionID string `json:"session_id"`
	MapName   string `json:"map_name"`
	AreaCount int    `json:"area_count"`
	Markup    string `json:"markup,omitempty"`
	CreatedAt string `json:"created_at"`
}

type Repository struct {
	db *sql.DB
}

func New(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Init применяет встроенные миграции по порядку имен.
func (r *Repository) Init(ctx context.Context) error {
	if err := r.runMigrations(ctx); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	return nil
}

// Save записывает выгрузку и возвращает ее с заполненными id и created_at.
func (r *Repository) Save(ctx context.Context, sessionID, mapName string, areaCount int, markup string) (*Export, error) {
	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO exports (id, session_id, map_name, area_count, markup)
        VALUES (?, ?, ?, ?, ?)
    `, id, sessionID, mapName, areaCount, markup)
	if err != nil {
		return nil, fmt.Errorf("insert export: %w", err)
	}
	return r.GetByID(ctx, id)
}

func (r *Repository) GetByID(ctx context.Context, id string) (*Export, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT id, session_id, map_name, area_count, markup, created_at
        FROM exports
        WHERE id = ?
    `, id)

	var e Export
	if err := row.Scan(&e.ID, &e.SessionID, &e.MapName, &e.AreaCount, &e.Markup, &e.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

// List возвращает последние выгрузки (новые первыми) без текста разметки.
func (r *Repository) List(ctx context.Context, limit int) ([]Export, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, session_id, map_name, area_count, created_at
        FROM exports
        ORDER BY created_at DESC, rowid DESC
        LIMIT ?
    `, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Export{}
	for rows.Next() {
		var e Export
		if err := rows.Scan(&e.ID, &e.SessionID, &e.MapName, &e.AreaCount, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// ============================================================
// Migrations
// ============================================================

func (r *Repository) runMigrations(ctx context.Context) error {
	entries, err := migrations.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("read migrations: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		data, err := migrations.ReadFile("migrations/" + name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if _, err := r.db.ExecContext(ctx, string(data)); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
	}
	return nil
}

// OpenSQLite открывает sqlite по указанному пути.
func OpenSQLite(dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_pragma=busy_timeout=5000", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}
