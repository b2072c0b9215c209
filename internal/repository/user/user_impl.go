package user

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	apperrors "github.com/Taichi-iskw/vidshare/internal/errors"
	"github.com/Taichi-iskw/vidshare/internal/model"
	"github.com/Taichi-iskw/vidshare/internal/page"
	"github.com/Taichi-iskw/vidshare/internal/repository/common"
)

const userColumns = "id, username, email, display_name, avatar_ref, cover_ref, password_hash, created_at, updated_at"

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.DisplayName, &u.AvatarRef, &u.CoverRef,
		&u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// userRepository implements Repository using PostgreSQL
type userRepository struct {
	pool common.Pool
}

// NewRepository creates a new user repository
func NewRepository(pool common.Pool) Repository {
	return &userRepository{
		pool: pool,
	}
}

// NormalizeUsername lower-cases and trims a username
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// Create creates a new user record
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	sql := `INSERT INTO users (id, username, email, display_name, avatar_ref, cover_ref, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`
	err := r.pool.QueryRow(ctx, sql, user.ID, user.Username, user.Email, user.DisplayName,
		user.AvatarRef, user.CoverRef, user.PasswordHash).
		Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return common.HandlePostgreSQLError(err, "failed to create user")
	}
	return nil
}

// GetByID retrieves a user by ID
func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	sql := "SELECT " + userColumns + " FROM users WHERE id = $1"
	user, err := scanUser(r.pool.QueryRow(ctx, sql, id))
	if err != nil {
		return nil, notFoundOr(err, "failed to get user")
	}
	return user, nil
}

// GetByUsername retrieves a user by username
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	sql := "SELECT " + userColumns + " FROM users WHERE username = $1"
	user, err := scanUser(r.pool.QueryRow(ctx, sql, NormalizeUsername(username)))
	if err != nil {
		return nil, notFoundOr(err, "failed to get user by username")
	}
	return user, nil
}

// Exists checks for a user by ID
func (r *userRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)", id).Scan(&exists)
	if err != nil {
		return false, common.HandlePostgreSQLError(err, "failed to check user")
	}
	return exists, nil
}

// UpdateAccount updates display name and email
func (r *userRepository) UpdateAccount(ctx context.Context, id uuid.UUID, fields AccountUpdate) (*model.User, error) {
	sql := `UPDATE users SET
			display_name = COALESCE($2, display_name),
			email = COALESCE($3, email),
			updated_at = now()
		WHERE id = $1
		RETURNING ` + userColumns
	user, err := scanUser(r.pool.QueryRow(ctx, sql, id, fields.DisplayName, fields.Email))
	if err != nil {
		return nil, notFoundOr(err, "failed to update account")
	}
	return user, nil
}

// UpdatePassword replaces the password hash
func (r *userRepository) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	tag, err := r.pool.Exec(ctx, "UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1", id, hash)
	if err != nil {
		return common.HandlePostgreSQLError(err, "failed to update password")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.New(apperrors.CodeNotFound, "user not found")
	}
	return nil
}

// UpdateAvatar replaces the avatar reference
func (r *userRepository) UpdateAvatar(ctx context.Context, id uuid.UUID, ref string) (*model.User, error) {
	sql := "UPDATE users SET avatar_ref = $2, updated_at = now() WHERE id = $1 RETURNING " + userColumns
	user, err := scanUser(r.pool.QueryRow(ctx, sql, id, ref))
	if err != nil {
		return nil, notFoundOr(err, "failed to update avatar")
	}
	return user, nil
}

// UpdateCover replaces the cover image reference
func (r *userRepository) UpdateCover(ctx context.Context, id uuid.UUID, ref string) (*model.User, error) {
	sql := "UPDATE users SET cover_ref = $2, updated_at = now() WHERE id = $1 RETURNING " + userColumns
	user, err := scanUser(r.pool.QueryRow(ctx, sql, id, ref))
	if err != nil {
		return nil, notFoundOr(err, "failed to update cover image")
	}
	return user, nil
}

// WatchHistory lists watched videos
func (r *userRepository) WatchHistory(ctx context.Context, id uuid.UUID, w page.Window, join page.Join[HistoryEntry]) (*page.Page[HistoryEntry], error) {
	q := page.Query[HistoryEntry]{
		From:    "watch_history h JOIN videos v ON v.id = h.video_id",
		Columns: "h.video_id, h.watched_at",
		Filter:  (&page.Filter{}).Where("h.user_id = ?", id).Where("(v.is_published OR v.owner_id = ?)", id),
		Join:    join,
		Scan: func(row pgx.Rows) (HistoryEntry, error) {
			var e HistoryEntry
			err := row.Scan(&e.VideoID, &e.WatchedAt)
			return e, err
		},
	}
	return page.Fetch(ctx, r.pool, q, w, "failed to get watch history")
}

// Profile loads a channel profile with subscription counts
func (r *userRepository) Profile(ctx context.Context, username string, viewer uuid.UUID) (*model.ChannelProfile, error) {
	sql := `SELECT u.id, u.username, u.display_name, u.email, u.avatar_ref, u.cover_ref,
			(SELECT count(*) FROM subscriptions s WHERE s.channel_id = u.id)::bigint,
			(SELECT count(*) FROM subscriptions s WHERE s.subscriber_id = u.id)::bigint,
			EXISTS (SELECT 1 FROM subscriptions s WHERE s.channel_id = u.id AND s.subscriber_id = $2)
		FROM users u
		WHERE u.username = $1`

	var p model.ChannelProfile
	err := r.pool.QueryRow(ctx, sql, NormalizeUsername(username), viewer).Scan(
		&p.ID, &p.Username, &p.DisplayName, &p.Email, &p.Avatar, &p.CoverImage,
		&p.SubscriberCount, &p.SubscribedToCount, &p.IsSubscribed)
	if err != nil {
		return nil, notFoundOr(err, "failed to get channel profile")
	}
	return &p, nil
}

func notFoundOr(err error, operation string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.Wrap(err, apperrors.CodeNotFound, "user not found")
	}
	return common.HandlePostgreSQLError(err, operation)
}
