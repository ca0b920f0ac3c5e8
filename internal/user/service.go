package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/nekogravitycat/court-reservation/internal/auth"
)

// Service defines business logic related to users.
type Service interface {
	Register(ctx context.Context, in RegisterInput) (*User, error)
	Login(ctx context.Context, email, password string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	List(ctx context.Context, filter UserFilter) ([]*User, int, error)
	Update(ctx context.Context, id string, in UpdateInput) (*User, error)
	// EnsureAdmin creates the bootstrap admin account unless the email is taken.
	EnsureAdmin(ctx context.Context, email, password string) error
}

type service struct {
	repo   Repository
	hasher auth.PasswordHasher
	logger zerolog.Logger

	minPasswordLength int
}

// NewService creates a new user Service.
func NewService(repo Repository, hasher auth.PasswordHasher, logger zerolog.Logger) Service {
	return &service{
		repo:              repo,
		hasher:            hasher,
		logger:            logger.With().Str("component", "user").Logger(),
		minPasswordLength: 8,
	}
}

func validType(t string) bool {
	return t == auth.TypeUser || t == auth.TypeGymOwner
}

func (s *service) Register(ctx context.Context, in RegisterInput) (*User, error) {
	cleanEmail := normalizeEmail(in.Email)
	if cleanEmail == "" {
		return nil, ErrEmailRequired
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if len(in.Password) < s.minPasswordLength {
		return nil, ErrPasswordTooShort
	}
	userType := in.Type
	if userType == "" {
		userType = auth.TypeUser
	}
	if !validType(userType) {
		return nil, ErrInvalidType
	}

	// Check if email is already used.
	_, err := s.repo.GetByEmail(ctx, cleanEmail)
	if err == nil {
		return nil, ErrEmailAlreadyUsed
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &User{
		Email:        cleanEmail,
		PasswordHash: hash,
		Name:         name,
		Phone:        strings.TrimSpace(in.Phone),
		Type:         userType,
		IsActive:     true,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, ErrEmailAlreadyUsed) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info().Str("user_id", u.ID).Str("type", u.Type).Msg("user registered")
	return u, nil
}

func (s *service) Login(ctx context.Context, email, password string) (*User, error) {
	cleanEmail := normalizeEmail(email)
	if cleanEmail == "" || strings.TrimSpace(password) == "" {
		return nil, ErrInvalidCredentials
	}

	u, err := s.repo.GetByEmail(ctx, cleanEmail)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to fetch user by email: %w", err)
	}

	if !u.IsActive {
		return nil, ErrInactiveUser
	}

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	// Best effort; a failed timestamp update does not fail the login.
	now := time.Now().UTC()
	if err := s.repo.UpdateLastLogin(ctx, u.ID, now); err != nil {
		s.logger.Warn().Err(err).Str("user_id", u.ID).Msg("failed to record last login")
	} else {
		u.LastLoginAt = &now
	}

	return u, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter UserFilter) ([]*User, int, error) {
	if filter.Type != "" && !validType(filter.Type) {
		return nil, 0, ErrInvalidType
	}
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, in UpdateInput) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		u.Name = name
	}
	if in.Phone != nil {
		u.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Type != nil {
		if !validType(*in.Type) {
			return nil, ErrInvalidType
		}
		u.Type = *in.Type
	}
	if in.IsActive != nil {
		u.IsActive = *in.IsActive
	}
	if in.IsAdmin != nil {
		u.IsAdmin = *in.IsAdmin
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) EnsureAdmin(ctx context.Context, email, password string) error {
	cleanEmail := normalizeEmail(email)
	if cleanEmail == "" || password == "" {
		return nil
	}

	_, err := s.repo.GetByEmail(ctx, cleanEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("failed to look up admin: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	u := &User{
		Email:        cleanEmail,
		PasswordHash: hash,
		Name:         "Administrator",
		Type:         auth.TypeGymOwner,
		IsAdmin:      true,
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, u); err != nil && !errors.Is(err, ErrEmailAlreadyUsed) {
		return fmt.Errorf("failed to create admin: %w", err)
	}

	s.logger.Info().Str("email", cleanEmail).Msg("admin account created")
	return nil
}

// normalizeEmail trims spaces and lowercases the email.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
