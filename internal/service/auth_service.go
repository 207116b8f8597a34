package service

import (
	"context"
	"errors"
	"time"

	"app/internal/model"
	"app/internal/repository"
	"app/internal/util"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// tokenTTL is the fixed validity window of issued credentials.
const tokenTTL = time.Hour

// AuthResult is what register and login hand back to the client: the user's
// identity plus a fresh credential.
type AuthResult struct {
	UID         string
	Email       string
	DisplayName *string
	Token       string
}

// AuthService registers users, verifies their credentials on login, and
// issues and validates session tokens.
type AuthService interface {
	Register(ctx context.Context, email, password string, displayName *string) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	VerifyToken(tokenString string) (uid, email string, err error)
}

type authService struct {
	userRepo  repository.UserRepository
	jwtSecret string
	logger    zerolog.Logger
}

// NewAuthService creates a new AuthService signing tokens with jwtSecret.
func NewAuthService(userRepo repository.UserRepository, jwtSecret string, logger zerolog.Logger) AuthService {
	return &authService{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
		logger:    logger.With().Str("service", "AuthService").Logger(),
	}
}

// Register creates a user with a server-assigned UID and an argon2id password
// hash, then issues a token for the new account.
func (s *authService) Register(ctx context.Context, email, password string, displayName *string) (*AuthResult, error) {
	hash, err := util.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		UID:          uuid.NewString(),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: hash,
	}
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailAlreadyRegistered
		}
		return nil, err
	}
	s.logger.Info().Str("uid", user.UID).Msg("User registered")

	token, err := util.GenerateToken(user.UID, user.Email, s.jwtSecret, tokenTTL)
	if err != nil {
		return nil, err
	}
	return &AuthResult{UID: user.UID, Email: user.Email, DisplayName: user.DisplayName, Token: token}, nil
}

// Login verifies the password against the stored hash and issues a token.
// Unknown emails and wrong passwords are indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	ok, err := util.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	// Best-effort: a failed last-login update must not fail the login.
	if err := s.userRepo.UpdateLastLogin(ctx, user.UID, time.Now().UTC()); err != nil {
		s.logger.Error().Err(err).Str("uid", user.UID).Msg("Failed to update last login")
	}
	s.logger.Info().Str("uid", user.UID).Msg("User logged in")

	token, err := util.GenerateToken(user.UID, user.Email, s.jwtSecret, tokenTTL)
	if err != nil {
		return nil, err
	}
	return &AuthResult{UID: user.UID, Email: user.Email, DisplayName: user.DisplayName, Token: token}, nil
}

// VerifyToken validates the token and returns the identity it binds.
func (s *authService) VerifyToken(tokenString string) (string, string, error) {
	claims, err := util.ValidateToken(tokenString, s.jwtSecret)
	if err != nil {
		return "", "", err
	}
	return claims.Subject, claims.Email, nil
}
