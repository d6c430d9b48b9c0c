package service

import (
	"context"
	"time"

	"library-backend/internal/domains/user/model"
)

// ServiceInterface - registration and login
type ServiceInterface interface {
	Register(ctx context.Context, req model.RegisterRequest) (*model.RegisterResponse, error)
	Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error)
}

// TokenIssuer signs a token for a username
type TokenIssuer interface {
	Issue(subject string) (string, time.Time, error)
}

type Config struct {
	BcryptCost      int
	MaxFailedLogins int
	LockoutWindow   time.Duration
}
