package service

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"simplecrud/internal/config"
	"simplecrud/internal/models"
	"simplecrud/internal/repository"
	"simplecrud/internal/security"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrFieldsRequired     = errors.New("email and password required")
)

type AuthService struct {
	directory *repository.UserDirectory
	cfg       *config.AppConfig
	log       zerolog.Logger

	// nextID hands out registration ids; seeded at 1 so the first call
	// returns 2, the slot after the seeded directory record.
	nextID atomic.Int64
}

func NewAuthService(directory *repository.UserDirectory, cfg *config.AppConfig, log zerolog.Logger) *AuthService {
	s := &AuthService{
		directory: directory,
		cfg:       cfg,
		log:       log,
	}
	s.nextID.Store(1)
	return s
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthResult struct {
	Token string
	User  models.User
}

// Login authenticates iff both fields are non-empty. The password is never
// compared against anything; presence is the whole contract in this mock.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (AuthResult, error) {
	if input.Email == "" || input.Password == "" {
		return AuthResult{}, ErrInvalidCredentials
	}

	token, err := security.GenerateSessionToken(s.cfg.Security.TokenSecret, input.Email)
	if err != nil {
		return AuthResult{}, err
	}

	now := time.Now().UTC()
	user := models.User{
		ID:        1,
		Email:     input.Email,
		CreatedAt: now,
		LastLogin: now,
	}
	if known, err := s.directory.FindByEmail(ctx, input.Email); err == nil {
		user.ID = known.ID
		user.CreatedAt = known.CreatedAt
	}

	s.log.Info().Str("email", input.Email).Msg("session issued")
	return AuthResult{Token: token, User: user}, nil
}

type RegisterInput struct {
	Email    string
	Password string
}

// Register returns a freshly identified user. The record is deliberately not
// added to the directory and no uniqueness check is made against it:
// registration hands back an identity and nothing more.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (models.User, error) {
	if input.Email == "" || input.Password == "" {
		return models.User{}, ErrFieldsRequired
	}

	now := time.Now().UTC()
	user := models.User{
		ID:        int(s.nextID.Add(1)),
		Email:     input.Email,
		CreatedAt: now,
		LastLogin: now,
	}

	s.log.Info().Str("email", input.Email).Int("id", user.ID).Msg("user registered")
	return user, nil
}

// Logout is a stateless no-op. There is nothing to revoke server-side; the
// endpoint exists so clients can round-trip before clearing local state.
func (s *AuthService) Logout(ctx context.Context) error {
	return nil
}
