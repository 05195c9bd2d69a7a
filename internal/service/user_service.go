package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"

	"github.com/ChrisUBS/DentixPro/internal/cache"
	apperrors "github.com/ChrisUBS/DentixPro/internal/errors"
	"github.com/ChrisUBS/DentixPro/internal/model"
	"github.com/ChrisUBS/DentixPro/internal/repository"
)

const userCacheTTL = 5 * time.Minute

// UserService exposes profile operations. Self-service methods enforce
// field-level write restrictions; admin methods operate on any user.
type UserService interface {
	Me(ctx context.Context, userID string) (*model.PublicUser, error)
	UpdateSelf(ctx context.Context, userID string, patch *model.SelfUpdate) (*model.PublicUser, error)
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
	AdminListUsers(ctx context.Context, role string, page, pageSize int64) (*repository.Page[*model.PublicUser], error)
	AdminGetUser(ctx context.Context, targetID string) (*model.PublicUser, error)
	AdminUpdateUser(ctx context.Context, targetID string, patch *model.AdminUserUpdate) (*model.PublicUser, error)
	AdminResetPassword(ctx context.Context, targetID, newPassword string) error
}

type userService struct {
	users repository.UserRepository
	cache *cache.Client
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(users repository.UserRepository, cache *cache.Client) UserService {
	return &userService{users: users, cache: cache}
}

func (s *userService) cacheKey(userID string) string {
	return "user:" + userID
}

// Me returns the caller's public view, served from cache when fresh.
func (s *userService) Me(ctx context.Context, userID string) (*model.PublicUser, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(userID)); data != nil {
		var cached model.PublicUser
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	view, err := s.publicView(ctx, userID)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(view); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(userID), payload, userCacheTTL)
	}
	return view, nil
}

// UpdateSelf applies a partial profile update for the caller. The
// protected fields (userId, password, role, _id) are silently dropped
// rather than rejected.
func (s *userService) UpdateSelf(ctx context.Context, userID string, patch *model.SelfUpdate) (*model.PublicUser, error) {
	if patch == nil || patch.Empty() {
		return nil, apperrors.Invalid("no data provided to update")
	}

	set := bson.M{}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if utf8.RuneCountInString(name) < minNameLen {
			return nil, apperrors.Invalid("name must be at least %d characters long", minNameLen)
		}
		set["name"] = name
	}
	if patch.Email != nil {
		set["email"] = strings.ToLower(strings.TrimSpace(*patch.Email))
	}
	if len(set) == 0 {
		return nil, apperrors.Invalid("no valid fields provided to update")
	}

	if err := s.users.UpdateFields(ctx, userID, set); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(userID))

	return s.publicView(ctx, userID)
}

// ChangePassword replaces the caller's password digest after verifying
// the current password.
func (s *userService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if utf8.RuneCountInString(newPassword) < minPasswordLen {
		return apperrors.Invalid("new password must be at least %d characters long", minPasswordLen)
	}

	user, err := s.users.FindByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return apperrors.NotFound("user not found")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(currentPassword)); err != nil {
		return apperrors.Unauthenticated("current password is incorrect")
	}

	return s.replacePassword(ctx, userID, newPassword)
}

// AdminListUsers returns one page of users, optionally filtered by
// role, without password digests.
func (s *userService) AdminListUsers(ctx context.Context, role string, page, pageSize int64) (*repository.Page[*model.PublicUser], error) {
	users, err := s.users.List(ctx, role, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	views := make([]*model.PublicUser, 0, len(users.Data))
	for i := range users.Data {
		views = append(views, users.Data[i].Public())
	}
	return &repository.Page[*model.PublicUser]{Data: views, Pagination: users.Pagination}, nil
}

// AdminGetUser returns the public view of any user.
func (s *userService) AdminGetUser(ctx context.Context, targetID string) (*model.PublicUser, error) {
	return s.publicView(ctx, targetID)
}

// AdminUpdateUser applies a partial update to any user. Identity and
// password fields are silently dropped; the role, when present, must be
// a known role.
func (s *userService) AdminUpdateUser(ctx context.Context, targetID string, patch *model.AdminUserUpdate) (*model.PublicUser, error) {
	if patch == nil || patch.Empty() {
		return nil, apperrors.Invalid("no data provided to update")
	}

	set := bson.M{}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Email != nil {
		set["email"] = strings.ToLower(strings.TrimSpace(*patch.Email))
	}
	if patch.Role != nil {
		if !model.ValidRole(*patch.Role) {
			return nil, apperrors.Invalid("invalid role, must be 'admin' or 'user'")
		}
		set["role"] = *patch.Role
	}
	if len(set) == 0 {
		return nil, apperrors.Invalid("no valid fields provided to update")
	}

	target, err := s.users.FindByUserID(ctx, targetID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if target == nil {
		return nil, apperrors.NotFound("user not found")
	}

	if err := s.users.UpdateFields(ctx, targetID, set); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(targetID))

	return s.publicView(ctx, targetID)
}

// AdminResetPassword replaces any user's password digest. No
// current-password check is performed on this path.
func (s *userService) AdminResetPassword(ctx context.Context, targetID, newPassword string) error {
	if utf8.RuneCountInString(newPassword) < minPasswordLen {
		return apperrors.Invalid("new password must be at least %d characters long", minPasswordLen)
	}

	target, err := s.users.FindByUserID(ctx, targetID)
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}
	if target == nil {
		return apperrors.NotFound("user not found")
	}

	return s.replacePassword(ctx, targetID, newPassword)
}

func (s *userService) replacePassword(ctx context.Context, userID, newPassword string) error {
	digest, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.UpdateFields(ctx, userID, bson.M{"password": string(digest)}); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(userID))
	return nil
}

func (s *userService) publicView(ctx context.Context, userID string) (*model.PublicUser, error) {
	user, err := s.users.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, apperrors.NotFound("user not found")
	}
	return user.Public(), nil
}
