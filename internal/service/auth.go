package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/umalmyha/customer-registry/internal/auth"
	apperrors "github.com/umalmyha/customer-registry/internal/errors"
	"github.com/umalmyha/customer-registry/internal/model"
	"github.com/umalmyha/customer-registry/internal/repository"
	"github.com/umalmyha/customer-registry/pkg/db/transactor"
)

// AuthService registers API operators and issues access tokens for them
type AuthService interface {
	Signup(context.Context, string, string) (*model.User, error)
	Login(context.Context, string, string, time.Time) (*model.Jwt, error)
}

type authService struct {
	jwtIssuer *auth.JwtIssuer
	trx       transactor.Transactor
	userRepo  repository.UserRepository
}

// NewAuthService builds AuthService
func NewAuthService(jwtIssuer *auth.JwtIssuer, trx transactor.Transactor, userRepo repository.UserRepository) AuthService {
	return &authService{
		jwtIssuer: jwtIssuer,
		trx:       trx,
		userRepo:  userRepo,
	}
}

func (s *authService) Signup(ctx context.Context, email string, password string) (*model.User, error) {
	var u *model.User

	err := s.trx.WithinTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.userRepo.FindByEmail(ctx, email)
		if err != nil {
			return fmt.Errorf("failed to read user %s - %w", email, err)
		}

		if existing != nil {
			return apperrors.ErrUserEmailReserved
		}

		hash, err := auth.HashPassword(password)
		if err != nil {
			return fmt.Errorf("failed to hash password - %w", err)
		}

		u = &model.User{
			ID:           uuid.NewString(),
			Email:        email,
			PasswordHash: hash,
		}
		return s.userRepo.Create(ctx, u)
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (s *authService) Login(ctx context.Context, email string, password string, at time.Time) (*model.Jwt, error) {
	u, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to read user %s - %w", email, err)
	}

	if u == nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := auth.ComparePassword(u.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}
	return s.jwtIssuer.Sign(u, at)
}
