package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/ChrisUBS/DentixPro/internal/auth"
	apperrors "github.com/ChrisUBS/DentixPro/internal/errors"
	"github.com/ChrisUBS/DentixPro/internal/model"
	"github.com/ChrisUBS/DentixPro/internal/repository"
)

const (
	bcryptCost     = 10
	minNameLen     = 3
	minPasswordLen = 8
)

var emailPattern = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)

// errInvalidCredentials is shared by the unknown-email and wrong-password
// paths so the two are indistinguishable to the caller.
var errInvalidCredentials = apperrors.Unauthenticated("invalid credentials")

// TokenPair is the credential pair issued on login and signup.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthService handles authentication operations.
type AuthService interface {
	Signup(ctx context.Context, name, email, password, role string) (*TokenPair, *model.PublicUser, error)
	Login(ctx context.Context, email, password string) (*TokenPair, *model.PublicUser, error)
	Refresh(ctx context.Context, refreshToken string) (accessToken string, err error)
	Logout(ctx context.Context, refreshToken string) error
}

type authService struct {
	users      repository.UserRepository
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, jwtService *auth.JWTService, tokenStore auth.TokenStoreInterface) AuthService {
	return &authService{
		users:      users,
		jwtService: jwtService,
		tokenStore: tokenStore,
	}
}

// Signup registers a new user and logs them in. The role defaults to
// "user" when not supplied.
func (s *authService) Signup(ctx context.Context, name, email, password, role string) (*TokenPair, *model.PublicUser, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	role = strings.ToLower(strings.TrimSpace(role))
	if role == "" {
		role = model.RoleUser
	}

	if utf8.RuneCountInString(name) < minNameLen {
		return nil, nil, apperrors.Invalid("name must be at least %d characters long", minNameLen)
	}
	if !emailPattern.MatchString(email) {
		return nil, nil, apperrors.Invalid("invalid email")
	}
	if utf8.RuneCountInString(password) < minPasswordLen {
		return nil, nil, apperrors.Invalid("password must be at least %d characters long", minPasswordLen)
	}
	if !model.ValidRole(role) {
		return nil, nil, apperrors.Invalid("invalid role, must be 'admin' or 'user'")
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, nil, fmt.Errorf("check user existence: %w", err)
	}
	if existing != nil {
		return nil, nil, apperrors.Conflict("a user with this email already exists")
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		UserID:    primitive.NewObjectID().Hex(),
		Name:      name,
		Email:     email,
		Password:  string(digest),
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.users.Insert(ctx, user); err != nil {
		return nil, nil, fmt.Errorf("create user: %w", err)
	}

	tokens, err := s.issueTokens(ctx, user.UserID)
	if err != nil {
		return nil, nil, err
	}
	return tokens, user.Public(), nil
}

// Login authenticates a user by email and password.
func (s *authService) Login(ctx context.Context, email, password string) (*TokenPair, *model.PublicUser, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, nil, errInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, nil, errInvalidCredentials
	}

	tokens, err := s.issueTokens(ctx, user.UserID)
	if err != nil {
		return nil, nil, err
	}
	return tokens, user.Public(), nil
}

// Refresh validates a refresh token and returns a new access token.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil || claims.ID == "" {
		return "", apperrors.Unauthenticated("invalid or expired refresh token")
	}

	storedUserID, err := s.tokenStore.GetRefreshToken(ctx, claims.ID)
	if err != nil || storedUserID != claims.UserID {
		return "", apperrors.Unauthenticated("invalid or expired refresh token")
	}

	accessToken, err := s.jwtService.GenerateAccessToken(claims.UserID)
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}
	return accessToken, nil
}

// Logout revokes a refresh token.
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	tokenID, err := s.jwtService.ExtractTokenID(refreshToken)
	if err != nil {
		return apperrors.Unauthenticated("invalid or expired refresh token")
	}
	return s.tokenStore.DeleteRefreshToken(ctx, tokenID)
}

func (s *authService) issueTokens(ctx context.Context, userID string) (*TokenPair, error) {
	accessToken, err := s.jwtService.GenerateAccessToken(userID)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	tokenID, refreshToken, err := s.jwtService.GenerateRefreshToken(userID)
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	if err := s.tokenStore.StoreRefreshToken(ctx, tokenID, userID, auth.RefreshTokenExpiry); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
