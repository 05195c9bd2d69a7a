package auth

import (
	"context"

	apperrors "github.com/ChrisUBS/DentixPro/internal/errors"
	"github.com/ChrisUBS/DentixPro/internal/model"
)

// UserFinder is the slice of the user repository the guard needs.
type UserFinder interface {
	FindByUserID(ctx context.Context, userID string) (*model.User, error)
}

// Guard resolves a caller's role and gates admin-only operations. The
// role is re-read from storage on every call rather than trusted from
// the token, so revoking admin takes effect immediately.
type Guard struct {
	users UserFinder
}

// NewGuard creates a new authorization guard.
func NewGuard(users UserFinder) *Guard {
	return &Guard{users: users}
}

// RequireAdmin returns the caller when it exists and holds the admin
// role, and a Forbidden error otherwise.
func (g *Guard) RequireAdmin(ctx context.Context, userID string) (*model.User, error) {
	user, err := g.users.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Role != model.RoleAdmin {
		return nil, apperrors.Forbidden("access denied: administrator permissions required")
	}
	return user, nil
}
