package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/nekogravitycat/hotel-booking-backend/internal/auth"
	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/apperror"
)

const (
	MinNameLength     = 3
	MaxNameLength     = 25
	MinPasswordLength = 8
)

// SignUpRequest carries the fields needed to register an account.
type SignUpRequest struct {
	Name     string
	Email    string
	Password string
}

// Service defines business logic related to users.
type Service interface {
	SignUp(ctx context.Context, req SignUpRequest) (*User, error)
	Login(ctx context.Context, email, password string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	// NewAccount validates and hashes an account without storing it, so the
	// caller can persist it as part of a larger write.
	NewAccount(req SignUpRequest, authority auth.Authority) (*User, error)
	// EnsureAdmin creates the bootstrap ADMIN unless one already exists.
	EnsureAdmin(ctx context.Context, req SignUpRequest) (bool, error)
	ResolveIdentity(ctx context.Context, email string) (auth.Principal, error)
}

type service struct {
	repo   Repository
	hasher auth.PasswordHasher
	log    logrus.FieldLogger
}

// NewService creates a new user Service.
func NewService(repo Repository, hasher auth.PasswordHasher, log logrus.FieldLogger) Service {
	return &service{
		repo:   repo,
		hasher: hasher,
		log:    log,
	}
}

func (s *service) SignUp(ctx context.Context, req SignUpRequest) (*User, error) {
	u, err := s.NewAccount(req, auth.AuthorityUser)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	s.log.WithField("user_id", u.ID).Info("user signed up")
	return u, nil
}

func (s *service) Login(ctx context.Context, email, password string) (*User, error) {
	cleanEmail := NormalizeEmail(email)
	if cleanEmail == "" || password == "" {
		return nil, auth.ErrInvalidCredentials
	}

	u, err := s.repo.GetByEmail(ctx, cleanEmail)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, auth.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to fetch user by email: %w", err)
	}

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return nil, auth.ErrInvalidCredentials
	}

	return u, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) NewAccount(req SignUpRequest, authority auth.Authority) (*User, error) {
	fields := map[string]string{}

	name := strings.TrimSpace(req.Name)
	if n := utf8.RuneCountInString(name); n < MinNameLength || n > MaxNameLength {
		fields["name"] = fmt.Sprintf("must be between %d and %d characters", MinNameLength, MaxNameLength)
	}
	email := NormalizeEmail(req.Email)
	if email == "" || !strings.Contains(email, "@") {
		fields["email"] = "must be a valid email address"
	}
	if len(req.Password) < MinPasswordLength {
		fields["password"] = fmt.Sprintf("password must have at least %d characters", MinPasswordLength)
	}
	if !authority.Valid() {
		fields["authority"] = "is invalid"
	}
	if len(fields) > 0 {
		return nil, apperror.Validation(fields)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	return &User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Authority:    authority,
	}, nil
}

func (s *service) EnsureAdmin(ctx context.Context, req SignUpRequest) (bool, error) {
	exists, err := s.repo.ExistsWithAuthority(ctx, auth.AuthorityAdmin)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	u, err := s.NewAccount(req, auth.AuthorityAdmin)
	if err != nil {
		return false, err
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return false, err
	}

	s.log.WithFields(logrus.Fields{"user_id": u.ID, "email": u.Email}).Info("bootstrap admin created")
	return true, nil
}

// ResolveIdentity maps a token subject to the current account state.
// A subject without an account is treated as an invalid token.
func (s *service) ResolveIdentity(ctx context.Context, email string) (auth.Principal, error) {
	u, err := s.repo.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return auth.Principal{}, auth.ErrInvalidToken
		}
		return auth.Principal{}, err
	}
	return u.Principal(), nil
}

// NormalizeEmail trims spaces and lowercases the email.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
