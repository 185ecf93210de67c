package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUser_PublicDropsHash(t *testing.T) {
	u := &User{ID: 1, Email: "alice@example.com", DisplayName: "Alice", PasswordHash: "$argon2id$..."}

	p := u.Public()

	assert.Equal(t, &User{ID: 1, Email: "alice@example.com", DisplayName: "Alice"}, p)
	assert.Equal(t, "$argon2id$...", u.PasswordHash, "original is untouched")
}

func TestUser_PublicNil(t *testing.T) {
	var u *User
	assert.Nil(t, u.Public())
}
