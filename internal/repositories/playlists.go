package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/dirtflix/dfx/internal/models"
	"github.com/dirtflix/dfx/internal/shared"
)

// PlaylistRepository implements models.Repository[*models.SavedPlaylist],
// recording playlists created on the server through dfx.
type PlaylistRepository struct {
	db *sql.DB
}

// NewPlaylistRepository creates a new PlaylistRepository with the given database connection
func NewPlaylistRepository(db *sql.DB) *PlaylistRepository {
	return &PlaylistRepository{db: db}
}

// Create inserts a new saved playlist with generated ID and sequence
func (r *PlaylistRepository) Create(playlist *models.SavedPlaylist) error {
	sequence, err := NextSequence(r.db, "playlists")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	playlist.SetID(id)

	if err := playlist.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO playlists (id, sequence, server_playlist_id, user_id, name, description, item_count, public, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		id,
		sequence,
		playlist.ServerPlaylistID(),
		playlist.UserID(),
		playlist.Name(),
		playlist.Description(),
		playlist.ItemCount(),
		playlist.Public(),
		playlist.CreatedAt(),
		playlist.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert playlist: %w", err)
	}

	return nil
}

// Get retrieves a saved playlist by ID, excluding soft-deleted ones
func (r *PlaylistRepository) Get(id string) (*models.SavedPlaylist, error) {
	query := `
		SELECT id, sequence, server_playlist_id, user_id, name, description, item_count, public, created_at, updated_at, deleted_at
		FROM playlists
		WHERE id = ? AND deleted_at IS NULL
	`

	return r.scanOne(r.db.QueryRow(query, id))
}

// GetByServerID retrieves a saved playlist by the server's playlist id
func (r *PlaylistRepository) GetByServerID(serverPlaylistID string) (*models.SavedPlaylist, error) {
	query := `
		SELECT id, sequence, server_playlist_id, user_id, name, description, item_count, public, created_at, updated_at, deleted_at
		FROM playlists
		WHERE server_playlist_id = ? AND deleted_at IS NULL
	`

	return r.scanOne(r.db.QueryRow(query, serverPlaylistID))
}

// Update modifies an existing saved playlist
func (r *PlaylistRepository) Update(playlist *models.SavedPlaylist) error {
	if err := playlist.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	playlist.SetUpdatedAt(now)

	query := `
		UPDATE playlists
		SET name = ?, description = ?, item_count = ?, public = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query,
		playlist.Name(),
		playlist.Description(),
		playlist.ItemCount(),
		playlist.Public(),
		now,
		playlist.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update playlist: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, playlist.ID())
	}

	return nil
}

// Delete soft-deletes a saved playlist by setting deleted_at
func (r *PlaylistRepository) Delete(id string) error {
	query := `
		UPDATE playlists
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete playlist: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, id)
	}

	return nil
}

// List retrieves all saved playlists ordered by sequence, excluding soft-deleted ones
func (r *PlaylistRepository) List() ([]*models.SavedPlaylist, error) {
	query := `
		SELECT id, sequence, server_playlist_id, user_id, name, description, item_count, public, created_at, updated_at, deleted_at
		FROM playlists
		WHERE deleted_at IS NULL
		ORDER BY sequence
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list playlists: %w", err)
	}
	defer rows.Close()

	var playlists []*models.SavedPlaylist
	for rows.Next() {
		playlist, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		playlists = append(playlists, playlist)
	}

	return playlists, rows.Err()
}

func (r *PlaylistRepository) scanOne(row *sql.Row) (*models.SavedPlaylist, error) {
	playlist, err := r.scanRow(row)
	if err == sql.ErrNoRows {
		return nil, shared.ErrPlaylistNotFound
	}
	return playlist, err
}

func (r *PlaylistRepository) scanRow(row rowScanner) (*models.SavedPlaylist, error) {
	var (
		id, serverPlaylistID, userID, name, description string
		sequence, itemCount                             int
		public                                          bool
		createdAt, updatedAt                            time.Time
		deletedAt                                       *time.Time
	)

	err := row.Scan(&id, &sequence, &serverPlaylistID, &userID, &name, &description, &itemCount, &public, &createdAt, &updatedAt, &deletedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan playlist: %w", err)
	}

	return models.RestoreSavedPlaylist(id, sequence, serverPlaylistID, userID, name, description, itemCount, public, createdAt, updatedAt, deletedAt), nil
}
