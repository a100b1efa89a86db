package expense

import (
	"context"
	"fmt"
	"time"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=expense
type Repository interface {
	ListForms(ctx context.Context) ([]Form, error)
	GetForm(ctx context.Context, id string) (*Form, error)
	SaveForm(ctx context.Context, form *Form) (string, error)
	DeleteForm(ctx context.Context, id string) (bool, error)
}

// Service owns all expense-form mutation. Totals are recomputed on every
// save and read so stale cached values never reach a caller.
type Service struct {
	repo Repository
	home string
	now  func() time.Time
}

func NewService(repo Repository, homeCurrency string) *Service {
	return &Service{
		repo: repo,
		home: homeCurrency,
		now:  time.Now,
	}
}

func (s *Service) List(ctx context.Context) ([]Form, error) {
	forms, err := s.repo.ListForms(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing expense forms: %w", err)
	}

	for i := range forms {
		forms[i].RefreshTotals(s.home)
	}

	return forms, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Form, Totals, error) {
	form, err := s.repo.GetForm(ctx, id)
	if err != nil {
		return nil, Totals{}, err
	}

	totals := form.RefreshTotals(s.home)

	return form, totals, nil
}

// Save validates the form, recomputes its cached totals, assigns an ID on
// first save and persists it. Saving an existing ID replaces the stored
// form in place.
func (s *Service) Save(ctx context.Context, form *Form, username string) (string, Totals, error) {
	if err := form.Validate(); err != nil {
		return "", Totals{}, err
	}

	if form.IssuedBy == "" {
		form.IssuedBy = username
	}

	if form.ID == "" {
		form.ID = NewID(username, s.now())
	}

	totals := form.RefreshTotals(s.home)

	id, err := s.repo.SaveForm(ctx, form)
	if err != nil {
		return "", Totals{}, fmt.Errorf("saving expense form: %w", err)
	}

	return id, totals, nil
}

func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	removed, err := s.repo.DeleteForm(ctx, id)
	if err != nil {
		return false, fmt.Errorf("deleting expense form: %w", err)
	}

	return removed, nil
}

// ImportResult reports which imported lines were appended and which
// collided with lines already on the form.
type ImportResult struct {
	Added     []Item
	Conflicts []Conflict
}

type Conflict struct {
	Incoming Item
	Existing Item
}

type lineKey struct {
	Date     string
	Amount   float64
	Currency string
	Detail   string
}

// ImportLines appends parsed card-statement lines to the form, skipping
// lines that duplicate an existing item (same date, amount, currency and
// detail). Nothing is persisted when every line conflicts.
func (s *Service) ImportLines(ctx context.Context, formID string, items []Item) (*ImportResult, error) {
	if len(items) == 0 {
		return &ImportResult{}, nil
	}

	form, err := s.repo.GetForm(ctx, formID)
	if err != nil {
		return nil, err
	}

	existing := make(map[lineKey]Item, len(form.Expenses))
	for _, it := range form.Expenses {
		existing[lineKey{it.Date, it.Amount, it.Currency, it.Detail}] = it
	}

	result := &ImportResult{}

	for _, it := range items {
		if err := it.Validate(); err != nil {
			return nil, fmt.Errorf("imported line: %w", err)
		}

		if prev, found := existing[lineKey{it.Date, it.Amount, it.Currency, it.Detail}]; found {
			result.Conflicts = append(result.Conflicts, Conflict{Incoming: it, Existing: prev})
			continue
		}

		result.Added = append(result.Added, it)
	}

	if len(result.Added) == 0 {
		return result, nil
	}

	form.Expenses = append(form.Expenses, result.Added...)
	form.RefreshTotals(s.home)

	if _, err := s.repo.SaveForm(ctx, form); err != nil {
		return nil, fmt.Errorf("saving imported lines: %w", err)
	}

	return result, nil
}
