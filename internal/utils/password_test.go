package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("counter-pass", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "counter-pass", hash)
	assert.True(t, CheckPasswordHash("counter-pass", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)
}

func TestHashPasswordUnsetCostUsesDefault(t *testing.T) {
	hash, err := HashPassword("counter-pass", 0)
	require.NoError(t, err)
	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}

func TestPasswordProblems(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     []string
	}{
		{"ok", "counter-pass", nil},
		{"short", "abc", []string{"Password must be at least 8 characters"}},
		{"too long for bcrypt", strings.Repeat("x", 73), []string{"Password cannot be longer than 72 bytes"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PasswordProblems(tt.password))
		})
	}
}

func TestGeneratePassword(t *testing.T) {
	a, err := GeneratePassword(16)
	require.NoError(t, err)
	b, err := GeneratePassword(16)
	require.NoError(t, err)

	assert.Len(t, a, 16)
	assert.NotEqual(t, a, b)
	for _, r := range a {
		assert.True(t, strings.ContainsRune(passwordAlphabet, r), "unexpected character %q", r)
	}
	assert.Empty(t, PasswordProblems(a))

	_, err = GeneratePassword(4)
	assert.Error(t, err)
}
