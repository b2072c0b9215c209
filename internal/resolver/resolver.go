// Package resolver inlines related records into listing views.
//
// Relations are resolved in batches: one id = ANY($1) lookup per hop for a whole
// page, never one lookup per row. The resolver never sorts; output follows the
// order of its input, repeated ids included.
package resolver

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	apperrors "github.com/Taichi-iskw/vidshare/internal/errors"
	"github.com/Taichi-iskw/vidshare/internal/ids"
	"github.com/Taichi-iskw/vidshare/internal/logging"
	"github.com/Taichi-iskw/vidshare/internal/model"
	"github.com/Taichi-iskw/vidshare/internal/repository/common"
	"github.com/Taichi-iskw/vidshare/internal/repository/video"
)

// Resolver looks up related records for already-fetched rows
type Resolver struct {
	db common.Querier
}

// New creates a resolver over the given store handle
func New(db common.Querier) *Resolver {
	return &Resolver{db: db}
}

// On returns a resolver that reads through q, typically the transaction that
// produced the rows being resolved
func (r *Resolver) On(q common.Querier) *Resolver {
	return New(q)
}

// Users loads the projected users for ids, keyed by id
func (r *Resolver) Users(ctx context.Context, userIDs []uuid.UUID, p Projection) (map[uuid.UUID]model.PublicUser, error) {
	found := make(map[uuid.UUID]model.PublicUser, len(userIDs))
	if len(userIDs) == 0 {
		return found, nil
	}

	sql := "SELECT " + p.columns() + " FROM users WHERE id = ANY($1::uuid[])"
	rows, err := r.db.Query(ctx, sql, ids.Strings(distinct(userIDs)))
	if err != nil {
		return nil, common.HandlePostgreSQLError(err, "failed to resolve users")
	}
	defer rows.Close()

	for rows.Next() {
		u, err := p.scan(rows)
		if err != nil {
			return nil, common.HandlePostgreSQLError(err, "failed to scan user")
		}
		found[u.ID] = u
	}
	if err := rows.Err(); err != nil {
		return nil, common.HandlePostgreSQLError(err, "failed to iterate users")
	}
	return found, nil
}

// One resolves a to-one user relation for every item in place. A key that
// matches no user is an integrity fault: it is reported and returned.
func One[T any](ctx context.Context, r *Resolver, items []T, relation string, p Projection,
	key func(*T) uuid.UUID, set func(*T, model.PublicUser)) error {
	if len(items) == 0 {
		return nil
	}

	keys := make([]uuid.UUID, len(items))
	for i := range items {
		keys[i] = key(&items[i])
	}

	users, err := r.Users(ctx, keys, p)
	if err != nil {
		return err
	}

	for i := range items {
		u, ok := users[keys[i]]
		if !ok {
			return missing(relation, keys[i])
		}
		set(&items[i], u)
	}
	return nil
}

// WithOwners wraps videos with their owners
func (r *Resolver) WithOwners(ctx context.Context, videos []model.Video, p Projection) ([]model.VideoView, error) {
	views := make([]model.VideoView, len(videos))
	for i, v := range videos {
		views[i].Video = v
	}
	err := One(ctx, r, views, "video.owner", p, videoOwner, setVideoOwner)
	if err != nil {
		return nil, err
	}
	return views, nil
}

// Videos resolves video ids to videos with their owners, keeping the order and
// repetitions of videoIDs
func (r *Resolver) Videos(ctx context.Context, videoIDs []uuid.UUID, owner Projection) ([]model.VideoView, error) {
	if len(videoIDs) == 0 {
		return []model.VideoView{}, nil
	}

	sql := "SELECT " + video.Columns("") + " FROM videos WHERE id = ANY($1::uuid[])"
	rows, err := r.db.Query(ctx, sql, ids.Strings(distinct(videoIDs)))
	if err != nil {
		return nil, common.HandlePostgreSQLError(err, "failed to resolve videos")
	}
	defer rows.Close()

	found := make(map[uuid.UUID]model.Video, len(videoIDs))
	for rows.Next() {
		v, err := video.Scan(rows)
		if err != nil {
			return nil, common.HandlePostgreSQLError(err, "failed to scan video")
		}
		found[v.ID] = v
	}
	if err := rows.Err(); err != nil {
		return nil, common.HandlePostgreSQLError(err, "failed to iterate videos")
	}
	rows.Close()

	videos := make([]model.Video, len(videoIDs))
	for i, id := range videoIDs {
		v, ok := found[id]
		if !ok {
			return nil, missing("video", id)
		}
		videos[i] = v
	}
	return r.WithOwners(ctx, videos, owner)
}

func videoOwner(v *model.VideoView) uuid.UUID { return v.OwnerID }

func setVideoOwner(v *model.VideoView, u model.PublicUser) { v.Owner = u }

func missing(relation string, id uuid.UUID) error {
	err := apperrors.New(apperrors.CodeIntegrity, fmt.Sprintf("%s %s does not resolve", relation, id))
	logging.ReportDefect(err, logrus.Fields{"relation": relation, "missing_id": id.String()})
	return err
}

func distinct(list []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(list))
	out := make([]uuid.UUID, 0, len(list))
	for _, id := range list {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
