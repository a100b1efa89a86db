package user

import (
	"context"
	"fmt"
	"time"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=user
type Repository interface {
	ListUsers(ctx context.Context) ([]User, error)
	GetUser(ctx context.Context, username string) (*User, error)
	SaveUser(ctx context.Context, u *User) (string, error)
	DeleteUser(ctx context.Context, username string) (bool, error)
}

type Service struct {
	repo Repository
	// allowBootstrap enables the hardcoded recovery login. Deployments
	// that have a managed admin account should turn this off.
	allowBootstrap bool
	now            func() time.Time
}

func NewService(repo Repository, allowBootstrap bool) *Service {
	return &Service{
		repo:           repo,
		allowBootstrap: allowBootstrap,
		now:            time.Now,
	}
}

// Register creates a new account with a fresh salt and hash. Duplicate
// usernames and the reserved bootstrap name are rejected.
func (s *Service) Register(ctx context.Context, username, password, firstName, lastName, role string) (*User, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("register: username and password are required")
	}

	if username == BootstrapUsername {
		return nil, ErrBootstrapProtected
	}

	if existing, err := s.repo.GetUser(ctx, username); err == nil && existing != nil {
		return nil, ErrDuplicateUsername
	}

	if role == "" {
		role = RoleUser
	}

	salt := NewSalt()
	u := &User{
		Username:     username,
		PasswordHash: HashPassword(password, salt),
		Salt:         salt,
		FirstName:    firstName,
		LastName:     lastName,
		Role:         role,
		RegisterDate: s.now().Format("2006-01-02 15:04:05"),
	}

	if _, err := s.repo.SaveUser(ctx, u); err != nil {
		return nil, fmt.Errorf("saving user: %w", err)
	}

	return u, nil
}

// Authenticate verifies a username/password pair. The bootstrap account
// short-circuits the hash check entirely when enabled.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*User, error) {
	if s.allowBootstrap && username == BootstrapUsername {
		if password != bootstrapPassword {
			return nil, ErrInvalidCredentials
		}

		return s.ensureBootstrap(ctx)
	}

	u, err := s.repo.GetUser(ctx, username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !u.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	return u, nil
}

// ensureBootstrap materializes the recovery account record so it shows
// up in user listings. Its stored hash is a placeholder; the real check
// happens in Authenticate.
func (s *Service) ensureBootstrap(ctx context.Context) (*User, error) {
	if u, err := s.repo.GetUser(ctx, BootstrapUsername); err == nil {
		return u, nil
	}

	u := &User{
		Username:     BootstrapUsername,
		PasswordHash: "hardcoded_special_case",
		Salt:         "not_used_for_bootstrap",
		FirstName:    "Recovery",
		LastName:     "Admin",
		Role:         RoleAdmin,
		RegisterDate: s.now().Format("2006-01-02 15:04:05"),
	}

	if _, err := s.repo.SaveUser(ctx, u); err != nil {
		return nil, fmt.Errorf("creating bootstrap account: %w", err)
	}

	return u, nil
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}

	return users, nil
}

func (s *Service) Get(ctx context.Context, username string) (*User, error) {
	return s.repo.GetUser(ctx, username)
}

// Update replaces profile fields and optionally the password. The
// bootstrap account is exempt from all edits.
func (s *Service) Update(ctx context.Context, username, firstName, lastName, role, newPassword string) (*User, error) {
	if username == BootstrapUsername {
		return nil, ErrBootstrapProtected
	}

	u, err := s.repo.GetUser(ctx, username)
	if err != nil {
		return nil, err
	}

	if firstName != "" {
		u.FirstName = firstName
	}

	if lastName != "" {
		u.LastName = lastName
	}

	if role != "" {
		u.Role = role
	}

	if newPassword != "" {
		u.Salt = NewSalt()
		u.PasswordHash = HashPassword(newPassword, u.Salt)
	}

	if _, err := s.repo.SaveUser(ctx, u); err != nil {
		return nil, fmt.Errorf("updating user: %w", err)
	}

	return u, nil
}

func (s *Service) Delete(ctx context.Context, username string) (bool, error) {
	if username == BootstrapUsername {
		return false, ErrBootstrapProtected
	}

	removed, err := s.repo.DeleteUser(ctx, username)
	if err != nil {
		return false, fmt.Errorf("deleting user: %w", err)
	}

	return removed, nil
}
