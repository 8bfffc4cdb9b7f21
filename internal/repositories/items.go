package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/dirtflix/dfx/internal/models"
	"github.com/dirtflix/dfx/internal/shared"
)

// ItemRepository implements models.Repository[*models.CachedItem] for the
// local item cache.
//
// The cache is keyed by the server's item id (UNIQUE constraint), so the same
// item fetched twice yields one row.
type ItemRepository struct {
	db *sql.DB
}

// NewItemRepository creates a new ItemRepository with the given database connection
func NewItemRepository(db *sql.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

// Create inserts a new cached item with generated ID and sequence
func (r *ItemRepository) Create(item *models.CachedItem) error {
	sequence, err := NextSequence(r.db, "items")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	item.SetID(id)

	if err := item.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO items (id, sequence, server_item_id, name, kind, production_year, community_rating, critic_rating, genres, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		id,
		sequence,
		item.ServerItemID(),
		item.Name(),
		string(item.Kind()),
		item.Year(),
		item.Rating(),
		item.CriticRating(),
		item.GenresColumn(),
		item.CreatedAt(),
		item.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert item: %w", err)
	}

	return nil
}

// Get retrieves a cached item by ID, excluding soft-deleted items
func (r *ItemRepository) Get(id string) (*models.CachedItem, error) {
	query := `
		SELECT id, sequence, server_item_id, name, kind, production_year, community_rating, critic_rating, genres, created_at, updated_at, deleted_at
		FROM items
		WHERE id = ? AND deleted_at IS NULL
	`

	return r.scanOne(r.db.QueryRow(query, id))
}

// GetByServerID retrieves a cached item by the server's item id
func (r *ItemRepository) GetByServerID(serverItemID string) (*models.CachedItem, error) {
	query := `
		SELECT id, sequence, server_item_id, name, kind, production_year, community_rating, critic_rating, genres, created_at, updated_at, deleted_at
		FROM items
		WHERE server_item_id = ? AND deleted_at IS NULL
	`

	return r.scanOne(r.db.QueryRow(query, serverItemID))
}

// Update modifies an existing cached item
func (r *ItemRepository) Update(item *models.CachedItem) error {
	if err := item.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	item.SetUpdatedAt(now)

	query := `
		UPDATE items
		SET name = ?, kind = ?, production_year = ?, community_rating = ?, critic_rating = ?, genres = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query,
		item.Name(),
		string(item.Kind()),
		item.Year(),
		item.Rating(),
		item.CriticRating(),
		item.GenresColumn(),
		now,
		item.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrItemNotFound, item.ID())
	}

	return nil
}

// Delete soft-deletes a cached item by setting deleted_at
func (r *ItemRepository) Delete(id string) error {
	query := `
		UPDATE items
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrItemNotFound, id)
	}

	return nil
}

// List retrieves all cached items ordered by sequence, excluding soft-deleted ones
func (r *ItemRepository) List() ([]*models.CachedItem, error) {
	query := `
		SELECT id, sequence, server_item_id, name, kind, production_year, community_rating, critic_rating, genres, created_at, updated_at, deleted_at
		FROM items
		WHERE deleted_at IS NULL
		ORDER BY sequence
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	var items []*models.CachedItem
	for rows.Next() {
		item, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

// ListByKind retrieves cached items of one kind ordered by sequence
func (r *ItemRepository) ListByKind(kind models.Kind) ([]*models.CachedItem, error) {
	query := `
		SELECT id, sequence, server_item_id, name, kind, production_year, community_rating, critic_rating, genres, created_at, updated_at, deleted_at
		FROM items
		WHERE kind = ? AND deleted_at IS NULL
		ORDER BY sequence
	`

	rows, err := r.db.Query(query, string(kind))
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	var items []*models.CachedItem
	for rows.Next() {
		item, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

// Clear soft-deletes every cached item and returns the affected count.
func (r *ItemRepository) Clear() (int, error) {
	result, err := r.db.Exec(`UPDATE items SET deleted_at = ? WHERE deleted_at IS NULL`, time.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to clear items: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return int(rows), nil
}

// Count returns the number of cached items, excluding soft-deleted ones
func (r *ItemRepository) Count() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM items WHERE deleted_at IS NULL`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count items: %w", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *ItemRepository) scanOne(row *sql.Row) (*models.CachedItem, error) {
	item, err := r.scanRow(row)
	if err == sql.ErrNoRows {
		return nil, shared.ErrItemNotFound
	}
	return item, err
}

func (r *ItemRepository) scanRow(row rowScanner) (*models.CachedItem, error) {
	var (
		id, serverItemID, name, kind, genres string
		sequence, year                       int
		rating, criticRating                 float64
		createdAt, updatedAt                 time.Time
		deletedAt                            *time.Time
	)

	err := row.Scan(&id, &sequence, &serverItemID, &name, &kind, &year, &rating, &criticRating, &genres, &createdAt, &updatedAt, &deletedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan item: %w", err)
	}

	return models.RestoreCachedItem(id, sequence, serverItemID, name, kind, year, rating, criticRating, genres, createdAt, updatedAt, deletedAt), nil
}
