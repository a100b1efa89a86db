package user_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enertech-th/fieldforms/internal/user"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	salt := user.NewSalt()
	require.Len(t, salt, 32, "salt must be 16 bytes hex-encoded")

	u := &user.User{
		Username:     "somchai",
		Salt:         salt,
		PasswordHash: user.HashPassword("s3cret", salt),
	}

	assert.True(t, u.CheckPassword("s3cret"))
	assert.False(t, u.CheckPassword("S3cret"))
	assert.False(t, u.CheckPassword(""))
}

func TestHashPassword_Deterministic(t *testing.T) {
	salt := "00112233445566778899aabbccddeeff"

	first := user.HashPassword("password", salt)
	second := user.HashPassword("password", salt)

	assert.Equal(t, first, second)
	assert.Len(t, first, 64, "hash must be 32 bytes hex-encoded")

	// A different salt must change the hash.
	other := user.HashPassword("password", user.NewSalt())
	assert.NotEqual(t, first, other)
}

func TestCheckPassword_MissingSaltOrHash(t *testing.T) {
	assert.False(t, (&user.User{PasswordHash: "abc"}).CheckPassword("x"))
	assert.False(t, (&user.User{Salt: "abc"}).CheckPassword("x"))
}

func TestNewSalt_Unique(t *testing.T) {
	assert.NotEqual(t, user.NewSalt(), user.NewSalt())
}

func TestIsBootstrap(t *testing.T) {
	assert.True(t, (&user.User{Username: user.BootstrapUsername}).IsBootstrap())
	assert.False(t, (&user.User{Username: "somchai"}).IsBootstrap())
}
