// Package store persists user accounts in userinfo/users.json.
package store

import (
	"context"
	"path/filepath"

	"github.com/enertech-th/fieldforms/internal/jsonstore"
	"github.com/enertech-th/fieldforms/internal/user"
)

type Store struct {
	users *jsonstore.Collection[user.User]
}

func New(dataRoot string) *Store {
	return &Store{
		users: jsonstore.New(jsonstore.Options[user.User]{
			Path:     filepath.Join(dataRoot, "userinfo", "users.json"),
			ArrayKey: "users",
			ID:       func(u *user.User) string { return u.Username },
			SetID:    func(u *user.User, id string) { u.Username = id },
		}),
	}
}

func (s *Store) ListUsers(_ context.Context) ([]user.User, error) {
	return s.users.LoadAll(), nil
}

func (s *Store) GetUser(_ context.Context, username string) (*user.User, error) {
	u, ok := s.users.GetByID(username)
	if !ok {
		return nil, user.ErrNotFound
	}

	return u, nil
}

func (s *Store) SaveUser(_ context.Context, u *user.User) (string, error) {
	return s.users.Save(u)
}

func (s *Store) DeleteUser(_ context.Context, username string) (bool, error) {
	return s.users.Delete(username)
}
