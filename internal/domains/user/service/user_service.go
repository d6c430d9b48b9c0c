package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"library-backend/internal/domains/user/model"
	"library-backend/internal/domains/user/repository"
	"library-backend/internal/shared/apperror"
)

type UserService struct {
	repo     repository.Repository
	tokens   TokenIssuer
	throttle *LoginThrottle
	cost     int
	// compared against when the user does not exist so both paths cost a bcrypt check
	dummyHash []byte
	now       func() time.Time
}

var _ ServiceInterface = (*UserService)(nil)

func NewUserService(repo repository.Repository, tokens TokenIssuer, throttle *LoginThrottle, cfg Config) (*UserService, error) {
	cost := cfg.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	dummy, err := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), cost)
	if err != nil {
		return nil, fmt.Errorf("init password hasher: %w", err)
	}

	return &UserService{
		repo:      repo,
		tokens:    tokens,
		throttle:  throttle,
		cost:      cost,
		dummyHash: dummy,
		now:       time.Now,
	}, nil
}

// Register creates a user. Username is checked first so a request that
// collides on both fields reports the username.
func (s *UserService) Register(ctx context.Context, req model.RegisterRequest) (*model.RegisterResponse, error) {
	// 1. VALIDATE INPUT
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperror.Validationf("invalid request", err)
	}

	role, err := model.ParseRole(req.Role)
	if err != nil {
		return nil, err
	}

	// 2. CHECK USERNAME
	_, err = s.repo.FindByUsername(ctx, req.Username)
	switch {
	case err == nil:
		return nil, model.ErrUsernameAlreadyExists
	case !errors.Is(err, model.ErrUserNotFound):
		return nil, fmt.Errorf("check username: %w", err)
	}

	// 3. HASH PASSWORD
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// 4. PERSIST (unique constraints catch concurrent duplicates)
	u := &model.User{
		ID:           uuid.New(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	log.Info().Str("username", u.Username).Str("role", string(u.Role)).Msg("user registered")

	return &model.RegisterResponse{
		ID:       u.ID,
		Username: u.Username,
		Role:     u.Role,
		Message:  "User registered successfully",
	}, nil
}

// Login verifies credentials and issues a bearer token
func (s *UserService) Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error) {
	// 1. VALIDATE INPUT
	if err := req.Validate(); err != nil {
		return nil, apperror.Validationf("invalid request", err)
	}

	// 2. THROTTLE
	if s.throttle.Locked(ctx, req.Username) {
		return nil, model.ErrTooManyAttempts
	}

	// 3. FIND USER
	u, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		if !errors.Is(err, model.ErrUserNotFound) {
			return nil, fmt.Errorf("find user: %w", err)
		}
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(req.Password))
		s.throttle.RecordFailure(ctx, req.Username)
		return nil, model.ErrInvalidCredentials
	}

	// 4. VERIFY PASSWORD
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		s.throttle.RecordFailure(ctx, req.Username)
		return nil, model.ErrInvalidCredentials
	}

	s.throttle.Reset(ctx, req.Username)

	// 5. ISSUE TOKEN
	token, expiresAt, err := s.tokens.Issue(u.Username)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	log.Info().Str("username", u.Username).Msg("user logged in")

	return &model.LoginResponse{
		Token:     token,
		Username:  u.Username,
		Role:      u.Role,
		ExpiresAt: expiresAt,
	}, nil
}
