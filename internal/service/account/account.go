// Package account registers users and manages their profile and watch history.
package account

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/Taichi-iskw/vidshare/internal/errors"
	"github.com/Taichi-iskw/vidshare/internal/ids"
	"github.com/Taichi-iskw/vidshare/internal/media"
	"github.com/Taichi-iskw/vidshare/internal/model"
	"github.com/Taichi-iskw/vidshare/internal/page"
	"github.com/Taichi-iskw/vidshare/internal/repository/common"
	"github.com/Taichi-iskw/vidshare/internal/repository/user"
	"github.com/Taichi-iskw/vidshare/internal/resolver"
)

// RegisterInput carries a new account. AvatarPath is required, CoverPath is optional.
type RegisterInput struct {
	Username    string
	Email       string
	DisplayName string
	Password    string
	AvatarPath  string
	CoverPath   string
}

// Service is interface for account operations
type Service interface {
	Register(ctx context.Context, in RegisterInput) (*model.User, error)
	Me(ctx context.Context, actor uuid.UUID) (*model.User, error)
	ChangePassword(ctx context.Context, actor uuid.UUID, oldPassword, newPassword string) error
	UpdateAccount(ctx context.Context, actor uuid.UUID, fields user.AccountUpdate) (*model.User, error)
	UpdateAvatar(ctx context.Context, actor uuid.UUID, localPath string) (*model.User, error)
	UpdateCover(ctx context.Context, actor uuid.UUID, localPath string) (*model.User, error)
	WatchHistory(ctx context.Context, actor uuid.UUID, params page.Params) (*page.Page[model.VideoView], error)
	ChannelProfile(ctx context.Context, username string, viewer uuid.UUID) (*model.ChannelProfile, error)
}

// service implements Service
type service struct {
	users    user.Repository
	media    media.Store
	resolver *resolver.Resolver
	cost     int
}

// NewService creates a new account Service
func NewService(users user.Repository, store media.Store, res *resolver.Resolver) Service {
	return &service{
		users:    users,
		media:    store,
		resolver: res,
		cost:     bcrypt.DefaultCost,
	}
}

// Register validates the input, stores the images and creates the account
func (s *service) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	u := &model.User{
		ID:          ids.New(),
		Username:    user.NormalizeUsername(in.Username),
		Email:       strings.ToLower(strings.TrimSpace(in.Email)),
		DisplayName: strings.TrimSpace(in.DisplayName),
	}

	if u.Username == "" || u.Email == "" || u.DisplayName == "" || strings.TrimSpace(in.Password) == "" {
		return nil, apperrors.New(apperrors.CodeInvalidArg, "username, email, display name and password are required")
	}
	if err := validateEmail(u.Email); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.AvatarPath) == "" {
		return nil, apperrors.New(apperrors.CodeInvalidArg, "avatar file is required")
	}

	hash, err := s.hash(in.Password)
	if err != nil {
		return nil, err
	}
	u.PasswordHash = hash

	avatar, err := s.media.Put(ctx, media.KindAvatar, in.AvatarPath)
	if err != nil {
		return nil, err
	}
	u.AvatarRef = avatar.Ref

	if strings.TrimSpace(in.CoverPath) != "" {
		cover, err := s.media.Put(ctx, media.KindCover, in.CoverPath)
		if err != nil {
			return nil, err
		}
		u.CoverRef = cover.Ref
	}

	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{"user_id": u.ID, "username": u.Username}).Info("user registered")
	return u, nil
}

// ChangePassword replaces the password after checking the current one
func (s *service) ChangePassword(ctx context.Context, actor uuid.UUID, oldPassword, newPassword string) error {
	if strings.TrimSpace(newPassword) == "" {
		return apperrors.New(apperrors.CodeInvalidArg, "new password is required")
	}

	u, err := s.users.GetByID(ctx, actor)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(oldPassword)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return apperrors.New(apperrors.CodeInvalidArg, "invalid old password")
		}
		return apperrors.Wrap(err, apperrors.CodeInternal, "failed to verify password")
	}

	hash, err := s.hash(newPassword)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, actor, hash)
}

// UpdateAccount changes the display name and/or email
func (s *service) UpdateAccount(ctx context.Context, actor uuid.UUID, fields user.AccountUpdate) (*model.User, error) {
	if fields.DisplayName != nil {
		name := strings.TrimSpace(*fields.DisplayName)
		if name == "" {
			return nil, apperrors.New(apperrors.CodeInvalidArg, "display name cannot be empty")
		}
		fields.DisplayName = &name
	}
	if fields.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*fields.Email))
		if err := validateEmail(email); err != nil {
			return nil, err
		}
		fields.Email = &email
	}
	if fields.DisplayName == nil && fields.Email == nil {
		return nil, apperrors.New(apperrors.CodeInvalidArg, "display name or email is required")
	}
	return s.users.UpdateAccount(ctx, actor, fields)
}

// UpdateAvatar uploads a new avatar image
func (s *service) UpdateAvatar(ctx context.Context, actor uuid.UUID, localPath string) (*model.User, error) {
	if strings.TrimSpace(localPath) == "" {
		return nil, apperrors.New(apperrors.CodeInvalidArg, "avatar file is required")
	}
	obj, err := s.media.Put(ctx, media.KindAvatar, localPath)
	if err != nil {
		return nil, err
	}
	return s.users.UpdateAvatar(ctx, actor, obj.Ref)
}

// UpdateCover uploads a new cover image
func (s *service) UpdateCover(ctx context.Context, actor uuid.UUID, localPath string) (*model.User, error) {
	if strings.TrimSpace(localPath) == "" {
		return nil, apperrors.New(apperrors.CodeInvalidArg, "cover image file is required")
	}
	obj, err := s.media.Put(ctx, media.KindCover, localPath)
	if err != nil {
		return nil, err
	}
	return s.users.UpdateCover(ctx, actor, obj.Ref)
}

// WatchHistory lists the actor's watched videos, most recent first, with their
// owners. Videos are resolved on the snapshot that read the history.
func (s *service) WatchHistory(ctx context.Context, actor uuid.UUID, params page.Params) (*page.Page[model.VideoView], error) {
	w, err := user.HistorySorts.Resolve(params)
	if err != nil {
		return nil, err
	}

	var videos []model.VideoView
	history, err := s.users.WatchHistory(ctx, actor, w, func(ctx context.Context, q common.Querier, items []user.HistoryEntry) error {
		videoIDs := make([]uuid.UUID, len(items))
		for i, e := range items {
			videoIDs[i] = e.VideoID
		}
		var err error
		videos, err = s.resolver.On(q).Videos(ctx, videoIDs, resolver.HistoryOwner)
		return err
	})
	if err != nil {
		return nil, err
	}

	return page.With(history, videos), nil
}

// Me returns the actor's own account. The password hash never leaves the model.
func (s *service) Me(ctx context.Context, actor uuid.UUID) (*model.User, error) {
	return s.users.GetByID(ctx, actor)
}

// ChannelProfile returns a channel's public profile with subscription counts
func (s *service) ChannelProfile(ctx context.Context, username string, viewer uuid.UUID) (*model.ChannelProfile, error) {
	if user.NormalizeUsername(username) == "" {
		return nil, apperrors.New(apperrors.CodeInvalidArg, "username is required")
	}
	return s.users.Profile(ctx, username, viewer)
}

func (s *service) hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", apperrors.Wrap(err, apperrors.CodeInvalidArg, "password is too long")
		}
		return "", apperrors.Wrap(err, apperrors.CodeInternal, "failed to hash password")
	}
	return string(hash), nil
}

func validateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return apperrors.New(apperrors.CodeInvalidArg, "invalid email address")
	}
	return nil
}
