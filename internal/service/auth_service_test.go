package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"

	"github.com/ChrisUBS/DentixPro/internal/auth"
	apperrors "github.com/ChrisUBS/DentixPro/internal/errors"
	"github.com/ChrisUBS/DentixPro/internal/model"
	"github.com/ChrisUBS/DentixPro/internal/repository"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Insert(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByUserID(ctx context.Context, userID string) (*model.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) UpdateFields(ctx context.Context, userID string, fields bson.M) error {
	args := m.Called(ctx, userID, fields)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context, role string, page, pageSize int64) (*repository.Page[model.User], error) {
	args := m.Called(ctx, role, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.Page[model.User]), args.Error(1)
}

// MockTokenStore is a mock implementation of TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) StoreRefreshToken(ctx context.Context, tokenID, userID string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, userID, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) GetRefreshToken(ctx context.Context, tokenID string) (string, error) {
	args := m.Called(ctx, tokenID)
	return args.String(0), args.Error(1)
}

func (m *MockTokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

func TestAuthService_Signup(t *testing.T) {
	tests := []struct {
		name         string
		userName     string
		email        string
		password     string
		role         string
		setupMock    func(*MockUserRepository, *MockTokenStore)
		expectedKind apperrors.Kind
		expectedRole string
	}{
		{
			name:     "successful signup with default role",
			userName: "Jane Doe",
			email:    "jane@example.com",
			password: "password123",
			role:     "",
			setupMock: func(mRepo *MockUserRepository, mToken *MockTokenStore) {
				mRepo.On("FindByEmail", mock.Anything, "jane@example.com").Return(nil, nil)
				mRepo.On("Insert", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
				mToken.On("StoreRefreshToken", mock.Anything, mock.Anything, mock.Anything, auth.RefreshTokenExpiry).Return(nil)
			},
			expectedRole: model.RoleUser,
		},
		{
			name:     "signup normalizes email case",
			userName: "Jane Doe",
			email:    "  Jane@Example.COM ",
			password: "password123",
			role:     "admin",
			setupMock: func(mRepo *MockUserRepository, mToken *MockTokenStore) {
				mRepo.On("FindByEmail", mock.Anything, "jane@example.com").Return(nil, nil)
				mRepo.On("Insert", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
				mToken.On("StoreRefreshToken", mock.Anything, mock.Anything, mock.Anything, auth.RefreshTokenExpiry).Return(nil)
			},
			expectedRole: model.RoleAdmin,
		},
		{
			name:         "name too short",
			userName:     "Jo",
			email:        "jo@example.com",
			password:     "password123",
			setupMock:    func(mRepo *MockUserRepository, mToken *MockTokenStore) {},
			expectedKind: apperrors.KindInvalidInput,
		},
		{
			name:         "invalid email",
			userName:     "Jane Doe",
			email:        "not-an-email",
			password:     "password123",
			setupMock:    func(mRepo *MockUserRepository, mToken *MockTokenStore) {},
			expectedKind: apperrors.KindInvalidInput,
		},
		{
			name:         "password too short",
			userName:     "Jane Doe",
			email:        "jane@example.com",
			password:     "short",
			setupMock:    func(mRepo *MockUserRepository, mToken *MockTokenStore) {},
			expectedKind: apperrors.KindInvalidInput,
		},
		{
			name:         "unknown role",
			userName:     "Jane Doe",
			email:        "jane@example.com",
			password:     "password123",
			role:         "superuser",
			setupMock:    func(mRepo *MockUserRepository, mToken *MockTokenStore) {},
			expectedKind: apperrors.KindInvalidInput,
		},
		{
			name:     "email already registered",
			userName: "Jane Doe",
			email:    "jane@example.com",
			password: "password123",
			setupMock: func(mRepo *MockUserRepository, mToken *MockTokenStore) {
				mRepo.On("FindByEmail", mock.Anything, "jane@example.com").Return(&model.User{Email: "jane@example.com"}, nil)
			},
			expectedKind: apperrors.KindConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			mockTokenStore := new(MockTokenStore)
			tt.setupMock(mockRepo, mockTokenStore)

			jwtService := auth.NewJWTService("test-secret")
			service := NewAuthService(mockRepo, jwtService, mockTokenStore)

			tokens, user, err := service.Signup(context.Background(), tt.userName, tt.email, tt.password, tt.role)

			if tt.expectedKind != apperrors.KindInternal {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedKind, apperrors.KindOf(err))
				assert.Nil(t, tokens)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, tokens.AccessToken)
				assert.NotEmpty(t, tokens.RefreshToken)
				assert.Equal(t, tt.expectedRole, user.Role)
				assert.Len(t, user.UserID, 24)
			}

			mockRepo.AssertExpectations(t)
			mockTokenStore.AssertExpectations(t)
		})
	}
}

func TestAuthService_Signup_HashesPassword(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockTokenStore := new(MockTokenStore)

	var stored *model.User
	mockRepo.On("FindByEmail", mock.Anything, "jane@example.com").Return(nil, nil)
	mockRepo.On("Insert", mock.Anything, mock.AnythingOfType("*model.User")).
		Run(func(args mock.Arguments) { stored = args.Get(1).(*model.User) }).
		Return(nil)
	mockTokenStore.On("StoreRefreshToken", mock.Anything, mock.Anything, mock.Anything, auth.RefreshTokenExpiry).Return(nil)

	service := NewAuthService(mockRepo, auth.NewJWTService("test-secret"), mockTokenStore)
	_, _, err := service.Signup(context.Background(), "Jane Doe", "jane@example.com", "password123", "")

	assert.NoError(t, err)
	assert.NotEqual(t, "password123", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("password123")))
}

func TestAuthService_Login(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcryptCost)

	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(*MockUserRepository, *MockTokenStore)
		expectedError error
	}{
		{
			name:     "successful login",
			email:    "jane@example.com",
			password: "password123",
			setupMock: func(mRepo *MockUserRepository, mToken *MockTokenStore) {
				mRepo.On("FindByEmail", mock.Anything, "jane@example.com").Return(&model.User{
					UserID:   "64f1c2d4e5a6b7c8d9e0f1a2",
					Email:    "jane@example.com",
					Password: string(hashed),
					Role:     model.RoleUser,
				}, nil)
				mToken.On("StoreRefreshToken", mock.Anything, mock.Anything, "64f1c2d4e5a6b7c8d9e0f1a2", auth.RefreshTokenExpiry).Return(nil)
			},
		},
		{
			// The stored email is lowercase; login must normalize its
			// input the same way signup does before the lookup.
			name:     "mixed-case email is normalized",
			email:    "  Jane@Example.COM ",
			password: "password123",
			setupMock: func(mRepo *MockUserRepository, mToken *MockTokenStore) {
				mRepo.On("FindByEmail", mock.Anything, "jane@example.com").Return(&model.User{
					UserID:   "64f1c2d4e5a6b7c8d9e0f1a2",
					Email:    "jane@example.com",
					Password: string(hashed),
					Role:     model.RoleUser,
				}, nil)
				mToken.On("StoreRefreshToken", mock.Anything, mock.Anything, "64f1c2d4e5a6b7c8d9e0f1a2", auth.RefreshTokenExpiry).Return(nil)
			},
		},
		{
			name:     "unknown email",
			email:    "nobody@example.com",
			password: "password123",
			setupMock: func(mRepo *MockUserRepository, mToken *MockTokenStore) {
				mRepo.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, nil)
			},
			expectedError: errInvalidCredentials,
		},
		{
			name:     "wrong password",
			email:    "jane@example.com",
			password: "wrong-password",
			setupMock: func(mRepo *MockUserRepository, mToken *MockTokenStore) {
				mRepo.On("FindByEmail", mock.Anything, "jane@example.com").Return(&model.User{
					UserID:   "64f1c2d4e5a6b7c8d9e0f1a2",
					Email:    "jane@example.com",
					Password: string(hashed),
				}, nil)
			},
			expectedError: errInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			mockTokenStore := new(MockTokenStore)
			tt.setupMock(mockRepo, mockTokenStore)

			service := NewAuthService(mockRepo, auth.NewJWTService("test-secret"), mockTokenStore)
			tokens, user, err := service.Login(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, tokens)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, tokens.AccessToken)
				assert.NotEmpty(t, tokens.RefreshToken)
				assert.Equal(t, "jane@example.com", user.Email)
			}

			mockRepo.AssertExpectations(t)
			mockTokenStore.AssertExpectations(t)
		})
	}
}

// Unknown-email and wrong-password failures must be the same error, so
// login responses cannot be used to probe which emails are registered.
func TestAuthService_Login_IndistinguishableFailures(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcryptCost)

	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, nil)
	mockRepo.On("FindByEmail", mock.Anything, "jane@example.com").Return(&model.User{
		UserID:   "64f1c2d4e5a6b7c8d9e0f1a2",
		Email:    "jane@example.com",
		Password: string(hashed),
	}, nil)

	service := NewAuthService(mockRepo, auth.NewJWTService("test-secret"), new(MockTokenStore))

	_, _, errUnknown := service.Login(context.Background(), "nobody@example.com", "password123")
	_, _, errWrongPass := service.Login(context.Background(), "jane@example.com", "bad-password")

	assert.Error(t, errUnknown)
	assert.Error(t, errWrongPass)
	assert.Equal(t, errUnknown.Error(), errWrongPass.Error())
	assert.Equal(t, apperrors.KindOf(errUnknown), apperrors.KindOf(errWrongPass))
}

func TestAuthService_Refresh(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")
	tokenID, refreshToken, err := jwtService.GenerateRefreshToken("64f1c2d4e5a6b7c8d9e0f1a2")
	assert.NoError(t, err)

	tests := []struct {
		name         string
		token        string
		setupMock    func(*MockTokenStore)
		expectedKind apperrors.Kind
	}{
		{
			name:  "valid refresh token",
			token: refreshToken,
			setupMock: func(m *MockTokenStore) {
				m.On("GetRefreshToken", mock.Anything, tokenID).Return("64f1c2d4e5a6b7c8d9e0f1a2", nil)
			},
			expectedKind: apperrors.KindInternal,
		},
		{
			name:         "garbage token",
			token:        "not.a.token",
			setupMock:    func(m *MockTokenStore) {},
			expectedKind: apperrors.KindUnauthenticated,
		},
		{
			name:  "revoked token",
			token: refreshToken,
			setupMock: func(m *MockTokenStore) {
				m.On("GetRefreshToken", mock.Anything, tokenID).Return("", assert.AnError)
			},
			expectedKind: apperrors.KindUnauthenticated,
		},
		{
			name:  "token bound to another user",
			token: refreshToken,
			setupMock: func(m *MockTokenStore) {
				m.On("GetRefreshToken", mock.Anything, tokenID).Return("000000000000000000000000", nil)
			},
			expectedKind: apperrors.KindUnauthenticated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockTokenStore := new(MockTokenStore)
			tt.setupMock(mockTokenStore)

			service := NewAuthService(new(MockUserRepository), jwtService, mockTokenStore)
			accessToken, err := service.Refresh(context.Background(), tt.token)

			if tt.expectedKind != apperrors.KindInternal {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedKind, apperrors.KindOf(err))
				assert.Empty(t, accessToken)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, accessToken)

				claims, err := jwtService.ValidateToken(accessToken)
				assert.NoError(t, err)
				assert.Equal(t, "64f1c2d4e5a6b7c8d9e0f1a2", claims.UserID)
			}

			mockTokenStore.AssertExpectations(t)
		})
	}
}

func TestAuthService_Logout(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")
	tokenID, refreshToken, err := jwtService.GenerateRefreshToken("64f1c2d4e5a6b7c8d9e0f1a2")
	assert.NoError(t, err)

	t.Run("deletes stored token", func(t *testing.T) {
		mockTokenStore := new(MockTokenStore)
		mockTokenStore.On("DeleteRefreshToken", mock.Anything, tokenID).Return(nil)

		service := NewAuthService(new(MockUserRepository), jwtService, mockTokenStore)
		assert.NoError(t, service.Logout(context.Background(), refreshToken))
		mockTokenStore.AssertExpectations(t)
	})

	t.Run("rejects invalid token", func(t *testing.T) {
		service := NewAuthService(new(MockUserRepository), jwtService, new(MockTokenStore))
		err := service.Logout(context.Background(), "not.a.token")
		assert.Error(t, err)
		assert.Equal(t, apperrors.KindUnauthenticated, apperrors.KindOf(err))
	})
}
