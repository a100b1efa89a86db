// Package store persists timesheet entries in
// timesheet/timesheet_entries.json.
package store

import (
	"context"
	"path/filepath"
	"time"

	"github.com/enertech-th/fieldforms/internal/jsonstore"
	"github.com/enertech-th/fieldforms/internal/timesheet"
)

type Store struct {
	entries *jsonstore.Collection[timesheet.Entry]
}

func New(dataRoot string) *Store {
	return &Store{
		entries: jsonstore.New(jsonstore.Options[timesheet.Entry]{
			Path:     filepath.Join(dataRoot, "timesheet", "timesheet_entries.json"),
			ArrayKey: "entries",
			ID:       func(e *timesheet.Entry) string { return e.ID },
			SetID:    func(e *timesheet.Entry, id string) { e.ID = id },
			NewID: func(existing []timesheet.Entry, e *timesheet.Entry) string {
				return timesheet.NextID(existing, e.CreatedBy, e, time.Now())
			},
		}),
	}
}

func (s *Store) ListEntries(_ context.Context) ([]timesheet.Entry, error) {
	return s.entries.LoadAll(), nil
}

func (s *Store) GetEntry(_ context.Context, id string) (*timesheet.Entry, error) {
	entry, ok := s.entries.GetByID(id)
	if !ok {
		return nil, timesheet.ErrNotFound
	}

	return entry, nil
}

func (s *Store) SaveEntry(_ context.Context, e *timesheet.Entry) (string, error) {
	return s.entries.Save(e)
}

func (s *Store) DeleteEntry(_ context.Context, id string) (bool, error) {
	return s.entries.Delete(id)
}
