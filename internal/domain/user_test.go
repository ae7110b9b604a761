package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserID_StablePerEmail(t *testing.T) {
	id := UserID("alice@example.com")

	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, id, UserID("  Alice@Example.COM "))
	assert.NotEqual(t, id, UserID("bob@example.com"))
}

func TestNewUser(t *testing.T) {
	u := NewUser(" Grace ", "grace@example.com")

	assert.Equal(t, "Grace", u.Name)
	assert.Equal(t, "grace@example.com", u.Email)
	assert.Equal(t, UserID("grace@example.com"), u.ID)
	assert.Equal(t, "user:"+u.ID, u.SessionID())

	assert.Equal(t, "Demo User", NewUser("", "x@y.z").Name)
}

func TestDemoUser(t *testing.T) {
	u := DemoUser()

	assert.Equal(t, "Demo User", u.Name)
	assert.Equal(t, "demo@example.com", u.Email)
	assert.Equal(t, UserID("demo@example.com"), u.ID)
	assert.NotEmpty(t, u.Avatar)
}
