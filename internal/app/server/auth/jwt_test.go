package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_IssueAndValidate(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	token, err := m.Issue(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, 42, userID)
}

func TestManager_RejectsWrongSecret(t *testing.T) {
	token, err := NewManager("secret-a", time.Hour).Issue(42)
	require.NoError(t, err)

	_, err = NewManager("secret-b", time.Hour).Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestManager_RejectsExpiredToken(t *testing.T) {
	m := NewManager("test-secret", -time.Minute)

	token, err := m.Issue(42)
	require.NoError(t, err)

	_, err = m.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestManager_RejectsGarbage(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	_, err := m.Validate("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
