package user_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/enertech-th/fieldforms/internal/user"
)

func TestService_Register(t *testing.T) {
	type testCase struct {
		name      string
		username  string
		password  string
		role      string
		setupMock func(m *user.MockRepository)
		wantErr   error
		wantRole  string
	}

	tests := []testCase{
		{
			name:     "Success",
			username: "somchai",
			password: "s3cret",
			setupMock: func(m *user.MockRepository) {
				m.EXPECT().GetUser(gomock.Any(), "somchai").Return(nil, user.ErrNotFound)
				m.EXPECT().
					SaveUser(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, u *user.User) (string, error) {
						assert.NotEmpty(t, u.Salt)
						assert.NotEmpty(t, u.PasswordHash)
						assert.NotEqual(t, "s3cret", u.PasswordHash)
						return u.Username, nil
					})
			},
			wantRole: user.RoleUser,
		},
		{
			name:     "ExplicitRole",
			username: "arthit",
			password: "s3cret",
			role:     user.RoleManager,
			setupMock: func(m *user.MockRepository) {
				m.EXPECT().GetUser(gomock.Any(), "arthit").Return(nil, user.ErrNotFound)
				m.EXPECT().
					SaveUser(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, u *user.User) (string, error) {
						return u.Username, nil
					})
			},
			wantRole: user.RoleManager,
		},
		{
			name:     "DuplicateUsername",
			username: "somchai",
			password: "s3cret",
			setupMock: func(m *user.MockRepository) {
				m.EXPECT().GetUser(gomock.Any(), "somchai").Return(&user.User{Username: "somchai"}, nil)
			},
			wantErr: user.ErrDuplicateUsername,
		},
		{
			name:     "ReservedBootstrapName",
			username: user.BootstrapUsername,
			password: "whatever",
			wantErr:  user.ErrBootstrapProtected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := user.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := user.NewService(repo, true)

			u, err := svc.Register(context.Background(), tt.username, tt.password, "First", "Last", tt.role)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantRole, u.Role)
			assert.True(t, u.CheckPassword(tt.password))
		})
	}
}

func TestService_Register_EmptyCredentials(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := user.NewService(user.NewMockRepository(ctrl), true)

	_, err := svc.Register(context.Background(), "", "pw", "", "", "")
	assert.Error(t, err)

	_, err = svc.Register(context.Background(), "somchai", "", "", "", "")
	assert.Error(t, err)
}

func TestService_Authenticate(t *testing.T) {
	salt := user.NewSalt()
	stored := &user.User{
		Username:     "somchai",
		Salt:         salt,
		PasswordHash: user.HashPassword("s3cret", salt),
	}

	t.Run("Success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := user.NewMockRepository(ctrl)
		repo.EXPECT().GetUser(gomock.Any(), "somchai").Return(stored, nil)

		svc := user.NewService(repo, true)

		u, err := svc.Authenticate(context.Background(), "somchai", "s3cret")
		require.NoError(t, err)
		assert.Equal(t, "somchai", u.Username)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := user.NewMockRepository(ctrl)
		repo.EXPECT().GetUser(gomock.Any(), "somchai").Return(stored, nil)

		svc := user.NewService(repo, true)

		_, err := svc.Authenticate(context.Background(), "somchai", "wrong")
		assert.ErrorIs(t, err, user.ErrInvalidCredentials)
	})

	t.Run("UnknownUser", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := user.NewMockRepository(ctrl)
		repo.EXPECT().GetUser(gomock.Any(), "ghost").Return(nil, user.ErrNotFound)

		svc := user.NewService(repo, true)

		_, err := svc.Authenticate(context.Background(), "ghost", "pw")
		assert.ErrorIs(t, err, user.ErrInvalidCredentials)
	})
}

func TestService_Authenticate_Bootstrap(t *testing.T) {
	t.Run("EnabledBypassesHash", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := user.NewMockRepository(ctrl)
		repo.EXPECT().GetUser(gomock.Any(), user.BootstrapUsername).Return(nil, user.ErrNotFound)
		repo.EXPECT().
			SaveUser(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, u *user.User) (string, error) {
				assert.Equal(t, user.RoleAdmin, u.Role)
				return u.Username, nil
			})

		svc := user.NewService(repo, true)

		u, err := svc.Authenticate(context.Background(), user.BootstrapUsername, "a")
		require.NoError(t, err)
		assert.Equal(t, user.RoleAdmin, u.Role)
	})

	t.Run("EnabledWrongPassword", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc := user.NewService(user.NewMockRepository(ctrl), true)

		_, err := svc.Authenticate(context.Background(), user.BootstrapUsername, "b")
		assert.ErrorIs(t, err, user.ErrInvalidCredentials)
	})

	t.Run("DisabledFallsThroughToStore", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := user.NewMockRepository(ctrl)
		repo.EXPECT().GetUser(gomock.Any(), user.BootstrapUsername).Return(nil, user.ErrNotFound)

		svc := user.NewService(repo, false)

		_, err := svc.Authenticate(context.Background(), user.BootstrapUsername, "a")
		assert.ErrorIs(t, err, user.ErrInvalidCredentials)
	})
}

func TestService_Update(t *testing.T) {
	t.Run("RehashesNewPassword", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		salt := user.NewSalt()
		stored := &user.User{
			Username:     "somchai",
			Salt:         salt,
			PasswordHash: user.HashPassword("old", salt),
		}

		repo := user.NewMockRepository(ctrl)
		repo.EXPECT().GetUser(gomock.Any(), "somchai").Return(stored, nil)
		repo.EXPECT().
			SaveUser(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, u *user.User) (string, error) {
				return u.Username, nil
			})

		svc := user.NewService(repo, true)

		u, err := svc.Update(context.Background(), "somchai", "", "", "", "new")
		require.NoError(t, err)
		assert.True(t, u.CheckPassword("new"))
		assert.False(t, u.CheckPassword("old"))
		assert.NotEqual(t, salt, u.Salt)
	})

	t.Run("BootstrapProtected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc := user.NewService(user.NewMockRepository(ctrl), true)

		_, err := svc.Update(context.Background(), user.BootstrapUsername, "x", "", "", "")
		assert.ErrorIs(t, err, user.ErrBootstrapProtected)
	})
}

func TestService_Delete_BootstrapProtected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := user.NewService(user.NewMockRepository(ctrl), true)

	_, err := svc.Delete(context.Background(), user.BootstrapUsername)
	assert.ErrorIs(t, err, user.ErrBootstrapProtected)
}
