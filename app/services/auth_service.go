package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/stockroom/app/models"
	"github.com/shashiranjanraj/stockroom/app/repositories"
	"github.com/shashiranjanraj/stockroom/pkg/apperr"
	"github.com/shashiranjanraj/stockroom/pkg/auth"
	"github.com/shashiranjanraj/stockroom/pkg/database"
)

// TokenResponse is the body returned by a successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// ErrInvalidCredentials covers both an unknown email and a wrong password.
var ErrInvalidCredentials = apperr.New(apperr.CodeInvalid, "Invalid credentials")

type AuthService struct {
	store  *database.Store
	tokens *auth.Manager
}

func NewAuthService(store *database.Store, tokens *auth.Manager) *AuthService {
	return &AuthService{store: store, tokens: tokens}
}

// Register stores a new user with a bcrypt hash of the password. A duplicate
// email fails on the unique index and is reported as an internal error.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	hash, err := auth.HashPassword(*in.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	user := &models.User{Email: *in.Email, HashedPassword: hash}
	err = s.store.WithinTx(ctx, func(tx *gorm.DB) error {
		return repositories.NewUserRepository(tx).Create(ctx, user)
	})
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return user, nil
}

// Users lists every user, hashes included.
func (s *AuthService) Users(ctx context.Context) ([]models.User, error) {
	users, err := repositories.NewUserRepository(s.store.DB(ctx)).All(ctx)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return users, nil
}

// Login checks the credentials and issues a bearer token for the email.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*TokenResponse, error) {
	user, err := repositories.NewUserRepository(s.store.DB(ctx)).FindByEmail(ctx, in.Username)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if user == nil || !auth.CheckPassword(user.HashedPassword, in.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.CreateAccessToken(user.Email)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return &TokenResponse{AccessToken: token, TokenType: "bearer"}, nil
}
