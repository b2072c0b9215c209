package playlist

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	apperrors "github.com/Taichi-iskw/vidshare/internal/errors"
	"github.com/Taichi-iskw/vidshare/internal/ids"
	"github.com/Taichi-iskw/vidshare/internal/model"
	"github.com/Taichi-iskw/vidshare/internal/page"
	"github.com/Taichi-iskw/vidshare/internal/repository/common"
)

const columns = "id, owner_id, name, description, created_at, updated_at"

func scan(row pgx.Row) (model.Playlist, error) {
	var p model.Playlist
	err := row.Scan(&p.ID, &p.OwnerID, &p.Name, &p.Description, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// playlistRepository implements Repository using PostgreSQL
type playlistRepository struct {
	pool common.Pool
}

// NewRepository creates a new playlist repository
func NewRepository(pool common.Pool) Repository {
	return &playlistRepository{
		pool: pool,
	}
}

// Create creates a new playlist record
func (r *playlistRepository) Create(ctx context.Context, playlist *model.Playlist) error {
	sql := `INSERT INTO playlists (id, owner_id, name, description)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`
	err := r.pool.QueryRow(ctx, sql, playlist.ID, playlist.OwnerID, playlist.Name, playlist.Description).
		Scan(&playlist.CreatedAt, &playlist.UpdatedAt)
	if err != nil {
		return common.HandlePostgreSQLError(err, "failed to create playlist")
	}
	playlist.VideoIDs = []uuid.UUID{}
	return nil
}

// GetByID retrieves a playlist with its video ids
func (r *playlistRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Playlist, error) {
	return r.View(ctx, id, nil)
}

// View reads a playlist and its entries from one snapshot, then runs join on it
func (r *playlistRepository) View(ctx context.Context, id uuid.UUID, join func(ctx context.Context, q common.Querier, p *model.Playlist) error) (*model.Playlist, error) {
	var p model.Playlist
	err := common.InSnapshot(ctx, r.pool, "failed to get playlist", func(tx pgx.Tx) error {
		var err error
		if p, err = scan(tx.QueryRow(ctx, "SELECT "+columns+" FROM playlists WHERE id = $1", id)); err != nil {
			return notFoundOr(err, "failed to get playlist")
		}

		videoIDs, err := r.videoIDs(ctx, tx, []uuid.UUID{p.ID})
		if err != nil {
			return err
		}
		p.VideoIDs = videoIDs[p.ID]
		if p.VideoIDs == nil {
			p.VideoIDs = []uuid.UUID{}
		}

		if join != nil {
			return join(ctx, tx, &p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Update updates the whitelisted fields of a playlist
func (r *playlistRepository) Update(ctx context.Context, id uuid.UUID, fields Update) (*model.Playlist, error) {
	sql := `UPDATE playlists SET
			name = COALESCE($2, name),
			description = COALESCE($3, description),
			updated_at = now()
		WHERE id = $1
		RETURNING ` + columns
	if _, err := scan(r.pool.QueryRow(ctx, sql, id, fields.Name, fields.Description)); err != nil {
		return nil, notFoundOr(err, "failed to update playlist")
	}
	return r.GetByID(ctx, id)
}

// Delete deletes a playlist by its ID
func (r *playlistRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM playlists WHERE id = $1", id)
	if err != nil {
		return common.HandlePostgreSQLError(err, "failed to delete playlist")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.New(apperrors.CodeNotFound, "playlist not found")
	}
	return nil
}

// AddVideo appends a video to a playlist
func (r *playlistRepository) AddVideo(ctx context.Context, playlistID, videoID uuid.UUID) error {
	return common.InTx(ctx, r.pool, "add video to playlist", func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, "INSERT INTO playlist_videos (playlist_id, video_id) VALUES ($1, $2)", playlistID, videoID); err != nil {
			return common.HandlePostgreSQLError(err, "failed to add video to playlist")
		}
		if _, err := tx.Exec(ctx, "UPDATE playlists SET updated_at = now() WHERE id = $1", playlistID); err != nil {
			return common.HandlePostgreSQLError(err, "failed to touch playlist")
		}
		return nil
	})
}

// RemoveVideo removes all occurrences of a video from a playlist
func (r *playlistRepository) RemoveVideo(ctx context.Context, playlistID, videoID uuid.UUID) (int64, error) {
	var removed int64
	err := common.InTx(ctx, r.pool, "remove video from playlist", func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, "DELETE FROM playlist_videos WHERE playlist_id = $1 AND video_id = $2", playlistID, videoID)
		if err != nil {
			return common.HandlePostgreSQLError(err, "failed to remove video from playlist")
		}
		removed = tag.RowsAffected()
		if removed == 0 {
			return nil
		}
		if _, err := tx.Exec(ctx, "UPDATE playlists SET updated_at = now() WHERE id = $1", playlistID); err != nil {
			return common.HandlePostgreSQLError(err, "failed to touch playlist")
		}
		return nil
	})
	return removed, err
}

// ListByOwner retrieves one window of a user's playlists with their video ids
func (r *playlistRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, w page.Window) (*page.Page[model.Playlist], error) {
	q := page.Query[model.Playlist]{
		From:    "playlists p",
		Columns: "p.id, p.owner_id, p.name, p.description, p.created_at, p.updated_at",
		Filter:  (&page.Filter{}).Where("p.owner_id = ?", ownerID),
		Scan: func(row pgx.Rows) (model.Playlist, error) {
			return scan(row)
		},
		Join: func(ctx context.Context, db common.Querier, items []model.Playlist) error {
			if len(items) == 0 {
				return nil
			}
			playlistIDs := make([]uuid.UUID, len(items))
			for i, p := range items {
				playlistIDs[i] = p.ID
			}
			videoIDs, err := r.videoIDs(ctx, db, playlistIDs)
			if err != nil {
				return err
			}
			for i := range items {
				items[i].VideoIDs = videoIDs[items[i].ID]
				if items[i].VideoIDs == nil {
					items[i].VideoIDs = []uuid.UUID{}
				}
			}
			return nil
		},
	}
	return page.Fetch(ctx, r.pool, q, w, "failed to list playlists")
}

// videoIDs loads the entries of several playlists in one statement, each in insertion order
func (r *playlistRepository) videoIDs(ctx context.Context, db common.Querier, playlistIDs []uuid.UUID) (map[uuid.UUID][]uuid.UUID, error) {
	sql := `SELECT playlist_id, video_id FROM playlist_videos
		WHERE playlist_id = ANY($1::uuid[])
		ORDER BY playlist_id, position`
	rows, err := db.Query(ctx, sql, ids.Strings(playlistIDs))
	if err != nil {
		return nil, common.HandlePostgreSQLError(err, "failed to load playlist videos")
	}
	defer rows.Close()

	out := make(map[uuid.UUID][]uuid.UUID, len(playlistIDs))
	for rows.Next() {
		var playlistID, videoID uuid.UUID
		if err := rows.Scan(&playlistID, &videoID); err != nil {
			return nil, common.HandlePostgreSQLError(err, "failed to scan playlist video")
		}
		out[playlistID] = append(out[playlistID], videoID)
	}
	if err := rows.Err(); err != nil {
		return nil, common.HandlePostgreSQLError(err, "failed to load playlist videos")
	}
	return out, nil
}

func notFoundOr(err error, operation string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.Wrap(err, apperrors.CodeNotFound, "playlist not found")
	}
	return common.HandlePostgreSQLError(err, operation)
}
