package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"inventory-chat/domain"

	_ "modernc.org/sqlite" // SQLite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS items (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	name        TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	created_at  TEXT NOT NULL,
	updated_at  TEXT NOT NULL,
	deleted_at  TEXT
);`

// maxNameLength caps item names, matching the HTTP surface's validation.
const maxNameLength = 255

// SQLiteItemStore implements the domain.ItemStore interface on SQLite.
// Deletes are soft (deleted_at) so that Restore can bring items back. After
// each successful mutation the configured observer hook runs synchronously;
// a hook failure propagates to the caller but the row change stays.
type SQLiteItemStore struct {
	db       *sql.DB
	observer domain.ItemObserver
}

// NewSQLiteItemStore opens (and if needed initializes) the database at path.
// Use ":memory:" for an ephemeral store.
func NewSQLiteItemStore(path string) (*SQLiteItemStore, error) {
	if path == "" {
		return nil, errors.New("database path cannot be empty")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if path == ":memory:" {
		// One connection, or each pooled connection would get its own
		// private in-memory database.
		db.SetMaxOpenConns(1)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return &SQLiteItemStore{db: db}, nil
}

// SetObserver attaches the lifecycle observer. Must be called before the
// store handles mutations; kept separate from the constructor because the
// observer's sync engine needs the store itself.
func (s *SQLiteItemStore) SetObserver(observer domain.ItemObserver) {
	s.observer = observer
}

// Close closes the underlying database.
func (s *SQLiteItemStore) Close() error {
	return s.db.Close()
}

func validate(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("name is required")
	}
	if len(name) > maxNameLength {
		return fmt.Errorf("name exceeds %d characters", maxNameLength)
	}
	return nil
}

// Create inserts a new item and fires the Created hook.
func (s *SQLiteItemStore) Create(ctx context.Context, name, description string) (*domain.Item, error) {
	if err := validate(name); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO items (name, description, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		name, description, now.Format(time.RFC3339Nano), now.Format(time.RFC3339Nano))
	if err != nil {
		return nil, fmt.Errorf("failed to insert item: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read inserted id: %w", err)
	}

	item := &domain.Item{ID: id, Name: name, Description: description, CreatedAt: now, UpdatedAt: now}
	if s.observer != nil {
		if err := s.observer.Created(ctx, item); err != nil {
			return nil, err
		}
	}
	return item, nil
}

// Update modifies a live item and fires the Updated hook.
func (s *SQLiteItemStore) Update(ctx context.Context, id int64, name, description string) (*domain.Item, error) {
	if err := validate(name); err != nil {
		return nil, err
	}

	current, err := s.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	_, err = s.db.ExecContext(ctx,
		`UPDATE items SET name = ?, description = ?, updated_at = ? WHERE id = ? AND deleted_at IS NULL`,
		name, description, now.Format(time.RFC3339Nano), id)
	if err != nil {
		return nil, fmt.Errorf("failed to update item %d: %w", id, err)
	}

	item := &domain.Item{ID: id, Name: name, Description: description, CreatedAt: current.CreatedAt, UpdatedAt: now}
	if s.observer != nil {
		if err := s.observer.Updated(ctx, item); err != nil {
			return nil, err
		}
	}
	return item, nil
}

// Delete soft-deletes a live item and fires the Deleted hook.
func (s *SQLiteItemStore) Delete(ctx context.Context, id int64) error {
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`UPDATE items SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`,
		now.Format(time.RFC3339Nano), id)
	if err != nil {
		return fmt.Errorf("failed to delete item %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return domain.ErrItemNotFound
	}

	if s.observer != nil {
		return s.observer.Deleted(ctx, id)
	}
	return nil
}

// Restore clears a soft delete and fires the Restored hook.
func (s *SQLiteItemStore) Restore(ctx context.Context, id int64) (*domain.Item, error) {
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`UPDATE items SET deleted_at = NULL, updated_at = ? WHERE id = ? AND deleted_at IS NOT NULL`,
		now.Format(time.RFC3339Nano), id)
	if err != nil {
		return nil, fmt.Errorf("failed to restore item %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return nil, domain.ErrItemNotFound
	}

	item, err := s.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.observer != nil {
		if err := s.observer.Restored(ctx, item); err != nil {
			return nil, err
		}
	}
	return item, nil
}

// Find returns a live item by ID.
func (s *SQLiteItemStore) Find(ctx context.Context, id int64) (*domain.Item, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, description, created_at, updated_at FROM items WHERE id = ? AND deleted_at IS NULL`, id)
	return scanItem(row)
}

// FindWithDeleted returns an item by ID regardless of soft-delete state.
func (s *SQLiteItemStore) FindWithDeleted(ctx context.Context, id int64) (*domain.Item, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, description, created_at, updated_at FROM items WHERE id = ?`, id)
	return scanItem(row)
}

// All returns every live item ordered by ID.
func (s *SQLiteItemStore) All(ctx context.Context) ([]domain.Item, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, description, created_at, updated_at FROM items WHERE deleted_at IS NULL ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*domain.Item, error) {
	var item domain.Item
	var createdAt, updatedAt string
	err := row.Scan(&item.ID, &item.Name, &item.Description, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan item: %w", err)
	}
	if item.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if item.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return nil, fmt.Errorf("failed to parse updated_at: %w", err)
	}
	return &item, nil
}
