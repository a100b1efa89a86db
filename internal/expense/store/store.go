// Package store persists expense forms in expenses/expense_forms.json.
package store

import (
	"context"
	"path/filepath"
	"time"

	"github.com/enertech-th/fieldforms/internal/expense"
	"github.com/enertech-th/fieldforms/internal/jsonstore"
)

type Store struct {
	forms *jsonstore.Collection[expense.Form]
}

// New creates a store rooted at dataRoot (forms live under expenses/).
func New(dataRoot string) *Store {
	return &Store{
		forms: jsonstore.New(jsonstore.Options[expense.Form]{
			Path:     filepath.Join(dataRoot, "expenses", "expense_forms.json"),
			ArrayKey: "forms",
			ID:       func(f *expense.Form) string { return f.ID },
			SetID:    func(f *expense.Form, id string) { f.ID = id },
			NewID: func(_ []expense.Form, f *expense.Form) string {
				return expense.NewID(f.IssuedBy, time.Now())
			},
		}),
	}
}

func (s *Store) ListForms(_ context.Context) ([]expense.Form, error) {
	return s.forms.LoadAll(), nil
}

func (s *Store) GetForm(_ context.Context, id string) (*expense.Form, error) {
	form, ok := s.forms.GetByID(id)
	if !ok {
		return nil, expense.ErrNotFound
	}

	return form, nil
}

func (s *Store) SaveForm(_ context.Context, form *expense.Form) (string, error) {
	return s.forms.Save(form)
}

func (s *Store) DeleteForm(_ context.Context, id string) (bool, error) {
	return s.forms.Delete(id)
}
