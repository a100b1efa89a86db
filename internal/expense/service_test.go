package expense_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/enertech-th/fieldforms/internal/expense"
)

func TestService_Save(t *testing.T) {
	type testCase struct {
		name      string
		form      expense.Form
		setupMock func(m *expense.MockRepository)
		wantErr   bool
		check     func(t *testing.T, form *expense.Form)
	}

	tests := []testCase{
		{
			name: "AssignsIDAndIssuer",
			form: expense.Form{
				ProjectName:  "Plant Upgrade",
				WorkLocation: expense.LocationThailand,
				FundHome:     1000,
				Expenses: []expense.Item{
					{Date: "2024-03-01", Amount: 600, Currency: "THB"},
				},
			},
			setupMock: func(m *expense.MockRepository) {
				m.EXPECT().
					SaveForm(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, f *expense.Form) (string, error) {
						return f.ID, nil
					})
			},
			check: func(t *testing.T, form *expense.Form) {
				assert.True(t, strings.HasPrefix(form.ID, "EXP-somchai-"), "got %s", form.ID)
				assert.Equal(t, "somchai", form.IssuedBy)
				assert.InDelta(t, 600, form.TotalExpenseHome, 0.001)
				assert.InDelta(t, 400, form.RemainingFundsHome, 0.001)
			},
		},
		{
			name: "KeepsExistingID",
			form: expense.Form{
				ID:           "EXP-somchai-2024-03-01-120000",
				ProjectName:  "Plant Upgrade",
				WorkLocation: expense.LocationThailand,
				IssuedBy:     "somchai",
				Expenses: []expense.Item{
					{Date: "2024-03-01", Amount: 600, Currency: "THB"},
				},
			},
			setupMock: func(m *expense.MockRepository) {
				m.EXPECT().
					SaveForm(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, f *expense.Form) (string, error) {
						return f.ID, nil
					})
			},
			check: func(t *testing.T, form *expense.Form) {
				assert.Equal(t, "EXP-somchai-2024-03-01-120000", form.ID)
			},
		},
		{
			name: "InvalidFormNotPersisted",
			form: expense.Form{
				ProjectName:  "",
				WorkLocation: expense.LocationThailand,
			},
			wantErr: true,
		},
		{
			name: "RepoError",
			form: expense.Form{
				ProjectName:  "Plant Upgrade",
				WorkLocation: expense.LocationThailand,
				Expenses: []expense.Item{
					{Date: "2024-03-01", Amount: 600, Currency: "THB"},
				},
			},
			setupMock: func(m *expense.MockRepository) {
				m.EXPECT().
					SaveForm(gomock.Any(), gomock.Any()).
					Return("", errors.New("disk full"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := expense.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := expense.NewService(repo, "THB")

			form := tt.form
			_, _, err := svc.Save(context.Background(), &form, "somchai")

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)

			if tt.check != nil {
				tt.check(t, &form)
			}
		})
	}
}

func TestService_ImportLines(t *testing.T) {
	existing := expense.Form{
		ID:           "EXP-somchai-2024-03-01-120000",
		ProjectName:  "Plant Upgrade",
		WorkLocation: expense.LocationThailand,
		IssuedBy:     "somchai",
		Expenses: []expense.Item{
			{Date: "2024-03-01", Detail: "Fuel stop", Amount: 600, Currency: "THB"},
		},
	}

	t.Run("AppendsNewAndReportsConflicts", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := expense.NewMockRepository(ctrl)

		form := existing
		repo.EXPECT().GetForm(gomock.Any(), form.ID).Return(&form, nil)
		repo.EXPECT().
			SaveForm(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, f *expense.Form) (string, error) {
				assert.Len(t, f.Expenses, 2)
				return f.ID, nil
			})

		svc := expense.NewService(repo, "THB")

		result, err := svc.ImportLines(context.Background(), form.ID, []expense.Item{
			{Date: "2024-03-01", Detail: "Fuel stop", Amount: 600, Currency: "THB"},
			{Date: "2024-03-02", Detail: "Hotel", Amount: 1500, Currency: "THB"},
		})

		require.NoError(t, err)
		assert.Len(t, result.Added, 1)
		require.Len(t, result.Conflicts, 1)
		assert.Equal(t, "Fuel stop", result.Conflicts[0].Existing.Detail)
	})

	t.Run("AllConflictsSkipsPersist", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := expense.NewMockRepository(ctrl)

		form := existing
		repo.EXPECT().GetForm(gomock.Any(), form.ID).Return(&form, nil)
		// No SaveForm expected.

		svc := expense.NewService(repo, "THB")

		result, err := svc.ImportLines(context.Background(), form.ID, []expense.Item{
			{Date: "2024-03-01", Detail: "Fuel stop", Amount: 600, Currency: "THB"},
		})

		require.NoError(t, err)
		assert.Empty(t, result.Added)
		assert.Len(t, result.Conflicts, 1)
	})

	t.Run("UnknownForm", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := expense.NewMockRepository(ctrl)
		repo.EXPECT().GetForm(gomock.Any(), "nope").Return(nil, expense.ErrNotFound)

		svc := expense.NewService(repo, "THB")

		_, err := svc.ImportLines(context.Background(), "nope", []expense.Item{
			{Date: "2024-03-02", Amount: 100, Currency: "THB"},
		})

		assert.ErrorIs(t, err, expense.ErrNotFound)
	})
}

func TestService_Get_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := expense.NewMockRepository(ctrl)
	repo.EXPECT().GetForm(gomock.Any(), "missing").Return(nil, expense.ErrNotFound)

	svc := expense.NewService(repo, "THB")

	_, _, err := svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, expense.ErrNotFound)
}
