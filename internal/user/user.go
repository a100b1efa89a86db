// Package user implements account records and password verification.
//
// The hash format is a bit-exact contract with the files written by the
// previous tool: PBKDF2-HMAC-SHA256, 100 000 iterations, the salt being
// the UTF-8 bytes of a 16-byte hex string, output hex-encoded.
package user

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"

	"golang.org/x/crypto/pbkdf2"
)

// Roles.
const (
	RoleUser    = "user"
	RoleManager = "manager"
	RoleAdmin   = "admin"
)

// BootstrapUsername is the reserved recovery account. It authenticates
// via a hardcoded check instead of the hash and cannot be edited or
// deleted.
const BootstrapUsername = "a"

// bootstrapPassword is the hardcoded recovery credential carried over
// from the original tool.
const bootstrapPassword = "a"

var (
	ErrNotFound           = errors.New("user not found")
	ErrDuplicateUsername  = errors.New("username already registered")
	ErrBootstrapProtected = errors.New("bootstrap account cannot be modified")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

const (
	hashIterations = 100000
	hashKeyLen     = 32
	saltBytes      = 16
)

type User struct {
	Username     string `json:"username"`
	PasswordHash string `json:"password_hash"`
	Salt         string `json:"salt"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Role         string `json:"position"`
	RegisterDate string `json:"register_date"`
}

// NewSalt returns a fresh 16-byte random salt, hex-encoded.
func NewSalt() string {
	b := make([]byte, saltBytes)
	if _, err := rand.Read(b); err != nil {
		panic(err) // crypto/rand never fails on supported platforms
	}

	return hex.EncodeToString(b)
}

// HashPassword derives the stored hash for a password and hex salt.
func HashPassword(password, salt string) string {
	key := pbkdf2.Key([]byte(password), []byte(salt), hashIterations, hashKeyLen, sha256.New)
	return hex.EncodeToString(key)
}

// CheckPassword reports whether the password matches the stored hash.
func (u *User) CheckPassword(password string) bool {
	if u.Salt == "" || u.PasswordHash == "" {
		return false
	}

	computed := HashPassword(password, u.Salt)

	return subtle.ConstantTimeCompare([]byte(computed), []byte(u.PasswordHash)) == 1
}

// IsBootstrap reports whether this is the reserved recovery account.
func (u *User) IsBootstrap() bool {
	return u.Username == BootstrapUsername
}
