// Package service provides the business logic of the LOG-SGB dashboard:
// the access gate, catalog maintenance, the shipment wizard and the monthly
// aggregator. Persistence is delegated to repository interfaces.
package service

import (
	"context"
	"errors"
	"strings"

	"github.com/serragrande/logsgb/internal/models"
	"github.com/serragrande/logsgb/internal/repository"
)

// Access gate errors. Handlers surface these as generic messages that never
// distinguish the underlying cause.
var (
	// ErrInvalidCredentials covers unknown users and wrong passwords alike.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAccessDenied is returned for rejected accounts.
	ErrAccessDenied = errors.New("access denied")
	// ErrAlreadyRegistered covers every registration failure.
	ErrAlreadyRegistered = errors.New("already registered")
	// ErrMissingCredentials is returned when username or password is empty.
	ErrMissingCredentials = errors.New("username and password required")
	// ErrNotSuperAdmin is returned when a non-super-admin attempts an
	// approval operation.
	ErrNotSuperAdmin = errors.New("not authorized")
)

// UserRepository defines the persistence operations required by the gate.
type UserRepository interface {
	// FindByCredentials returns the account matching the pair exactly,
	// or repository.ErrNoUser.
	FindByCredentials(ctx context.Context, username, password string) (*models.UserAccount, error)
	// Insert creates a new registration record.
	Insert(ctx context.Context, u models.UserAccount) (models.UserAccount, error)
	// ListByStatus returns the accounts with the given status.
	ListByStatus(ctx context.Context, status string) ([]models.UserAccount, error)
	// UpdateStatus transitions an account's status.
	UpdateStatus(ctx context.Context, id string, status string) error
}

// SuperAdmin is the single hardcoded identity allowed to approve or reject
// registrations. The pair bypasses the store lookup entirely.
type SuperAdmin struct {
	Username string
	Password string
}

// AuthService implements the tri-state access gate.
type AuthService struct {
	repo  UserRepository
	super SuperAdmin
}

// NewAuthService constructs the gate over the given repository.
func NewAuthService(repo UserRepository, super SuperAdmin) *AuthService {
	return &AuthService{repo: repo, super: super}
}

// normalize lower-cases and trims a submitted username.
func normalize(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// Login matches the submitted pair against the account records. The
// super-admin pair short-circuits to an always-approved admin session.
// Rejected accounts fail with ErrAccessDenied; pending accounts obtain a
// holding session.
func (s *AuthService) Login(ctx context.Context, username, password string) (models.Session, error) {
	username = normalize(username)
	if username == "" || password == "" {
		return models.Session{}, ErrInvalidCredentials
	}

	if username == s.super.Username && password == s.super.Password {
		return models.Session{
			Username: s.super.Username,
			Admin:    true,
			Status:   models.StatusApproved,
		}, nil
	}

	u, err := s.repo.FindByCredentials(ctx, username, password)
	if errors.Is(err, repository.ErrNoUser) {
		return models.Session{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.Session{}, err
	}
	if u.Status == models.StatusRejected {
		return models.Session{}, ErrAccessDenied
	}
	return models.Session{Username: u.Username, Admin: u.Admin, Status: u.Status}, nil
}

// Register inserts a new pending account. Any store failure, including a
// duplicate username, surfaces as ErrAlreadyRegistered.
func (s *AuthService) Register(ctx context.Context, username, password string) error {
	username = normalize(username)
	if username == "" || password == "" {
		return ErrMissingCredentials
	}
	_, err := s.repo.Insert(ctx, models.UserAccount{
		Username: username,
		Password: password,
		Status:   models.StatusPending,
		Admin:    false,
	})
	if err != nil {
		return ErrAlreadyRegistered
	}
	return nil
}

// IsSuperAdmin reports whether the session belongs to the hardcoded
// super-admin identity. This is a plain identity comparison, not a role
// hierarchy.
func (s *AuthService) IsSuperAdmin(sess models.Session) bool {
	return sess.Username == s.super.Username
}

// PendingUsers lists accounts awaiting approval. Super-admin only.
func (s *AuthService) PendingUsers(ctx context.Context, actor models.Session) ([]models.UserAccount, error) {
	if !s.IsSuperAdmin(actor) {
		return nil, ErrNotSuperAdmin
	}
	return s.repo.ListByStatus(ctx, models.StatusPending)
}

// SetStatus approves or rejects the account with the given ID. Super-admin
// only.
func (s *AuthService) SetStatus(ctx context.Context, actor models.Session, userID string, approve bool) error {
	if !s.IsSuperAdmin(actor) {
		return ErrNotSuperAdmin
	}
	status := models.StatusRejected
	if approve {
		status = models.StatusApproved
	}
	return s.repo.UpdateStatus(ctx, userID, status)
}
