package resolver

import (
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	apperrors "github.com/Taichi-iskw/vidshare/internal/errors"
	"github.com/Taichi-iskw/vidshare/internal/model"
)

// Field is a user column that may appear in a resolved view.
// Credentials are not fields and can never be projected.
type Field string

const (
	Username    Field = "username"
	DisplayName Field = "display_name"
	Email       Field = "email"
	Avatar      Field = "avatar"
	CoverImage  Field = "cover_image"
)

var fieldColumns = map[Field]string{
	Username:    "username",
	DisplayName: "display_name",
	Email:       "email",
	Avatar:      "avatar_ref",
	CoverImage:  "cover_ref",
}

// Projection is an allow-list of user fields. The id is always included.
type Projection struct {
	fields []Field
}

// Named projections used by the listings
var (
	// PublicProfile is the owner shape of feeds, comments and subscriptions
	PublicProfile = Projection{fields: []Field{Username, Avatar}}
	// HistoryOwner is the owner shape of watch-history and playlist videos
	HistoryOwner = Projection{fields: []Field{Username, DisplayName, Avatar}}
	// FullProfile exposes every public field
	FullProfile = Projection{fields: []Field{Username, DisplayName, Email, Avatar, CoverImage}}
)

// Project builds a projection from field names, rejecting anything outside the allow-list
func Project(names ...string) (Projection, error) {
	seen := make(map[Field]bool, len(names))
	p := Projection{}
	for _, name := range names {
		f := Field(strings.ToLower(strings.TrimSpace(name)))
		if _, ok := fieldColumns[f]; !ok {
			return Projection{}, apperrors.New(apperrors.CodeInvalidArg, fmt.Sprintf("field %q cannot be projected", name))
		}
		if seen[f] {
			continue
		}
		seen[f] = true
		p.fields = append(p.fields, f)
	}
	return p, nil
}

// Fields returns the projected fields in order
func (p Projection) Fields() []Field {
	return append([]Field(nil), p.fields...)
}

// columns renders the select list
func (p Projection) columns() string {
	cols := make([]string, 0, len(p.fields)+1)
	cols = append(cols, "id")
	for _, f := range p.fields {
		cols = append(cols, fieldColumns[f])
	}
	return strings.Join(cols, ", ")
}

// scan reads a row selected with columns into a PublicUser
func (p Projection) scan(row pgx.Row) (model.PublicUser, error) {
	var u model.PublicUser
	dest := make([]any, 0, len(p.fields)+1)
	dest = append(dest, &u.ID)
	for _, f := range p.fields {
		switch f {
		case Username:
			dest = append(dest, &u.Username)
		case DisplayName:
			dest = append(dest, &u.DisplayName)
		case Email:
			dest = append(dest, &u.Email)
		case Avatar:
			dest = append(dest, &u.Avatar)
		case CoverImage:
			dest = append(dest, &u.CoverImage)
		}
	}
	err := row.Scan(dest...)
	return u, err
}
