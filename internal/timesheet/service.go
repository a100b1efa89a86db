package timesheet

import (
	"context"
	"fmt"
	"strings"
	"time"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=timesheet
type Repository interface {
	ListEntries(ctx context.Context) ([]Entry, error)
	GetEntry(ctx context.Context, id string) (*Entry, error)
	SaveEntry(ctx context.Context, e *Entry) (string, error)
	DeleteEntry(ctx context.Context, id string) (bool, error)
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) List(ctx context.Context) ([]Entry, error) {
	entries, err := s.repo.ListEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing timesheet entries: %w", err)
	}

	SortByCreation(entries)

	return entries, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Entry, Breakdown, error) {
	entry, err := s.repo.GetEntry(ctx, id)
	if err != nil {
		return nil, Breakdown{}, err
	}

	return entry, ComputeCharge(entry), nil
}

// Save validates the entry, assigns a TS-<user>-<date>-<NN> identifier
// on first save, refreshes the cached total from the computed breakdown
// and persists it. Existing IDs replace the stored entry in place.
func (s *Service) Save(ctx context.Context, e *Entry, username string) (string, Breakdown, error) {
	if err := e.Validate(); err != nil {
		return "", Breakdown{}, err
	}

	if e.CreatedBy == "" {
		e.CreatedBy = username
	}

	if e.CreationDate == "" {
		e.CreationDate = s.now().Format("2006/01/02")
	}

	if e.Status == "" {
		e.Status = StatusDraft
	}

	if e.ID == "" {
		existing, err := s.repo.ListEntries(ctx)
		if err != nil {
			return "", Breakdown{}, fmt.Errorf("scanning existing IDs: %w", err)
		}

		e.ID = NextID(existing, username, e, s.now())
	}

	breakdown := ComputeCharge(e)
	e.TotalServiceCharge, _ = breakdown.GrandTotal.Float64()

	id, err := s.repo.SaveEntry(ctx, e)
	if err != nil {
		return "", Breakdown{}, fmt.Errorf("saving timesheet entry: %w", err)
	}

	return id, breakdown, nil
}

func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	removed, err := s.repo.DeleteEntry(ctx, id)
	if err != nil {
		return false, fmt.Errorf("deleting timesheet entry: %w", err)
	}

	return removed, nil
}

// ListByClient returns entries for a client, case-insensitively.
func (s *Service) ListByClient(ctx context.Context, client string) ([]Entry, error) {
	entries, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	var matched []Entry

	for i := range entries {
		if strings.EqualFold(entries[i].Client, client) {
			matched = append(matched, entries[i])
		}
	}

	return matched, nil
}

// ListByDateRange returns entries with at least one time entry inside
// the inclusive [start, end] range.
func (s *Service) ListByDateRange(ctx context.Context, start, end time.Time) ([]Entry, error) {
	entries, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	var matched []Entry

	for i := range entries {
		for j := range entries[i].TimeEntries {
			d, err := ParseDate(entries[i].TimeEntries[j].Date)
			if err != nil {
				continue
			}

			if !d.Before(start) && !d.After(end) {
				matched = append(matched, entries[i])
				break
			}
		}
	}

	return matched, nil
}
