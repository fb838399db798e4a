package identity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("creates active customer", func(t *testing.T) {
		user, err := NewUser("Asha Rao", "asha@example.com", "password1")
		require.NoError(t, err)
		require.NotNil(t, user)

		assert.Equal(t, "Asha Rao", user.Name)
		assert.Equal(t, "asha@example.com", user.Email)
		assert.Equal(t, RoleCustomer, user.Role)
		assert.Equal(t, UserStatusActive, user.Status)
		assert.Empty(t, user.OrderHistory)
		assert.NotEqual(t, "password1", user.PasswordHash)
	})

	t.Run("normalizes email to lowercase", func(t *testing.T) {
		user, err := NewUser("Asha Rao", "Asha@Example.COM", "password1")
		require.NoError(t, err)
		assert.Equal(t, "asha@example.com", user.Email)
	})

	t.Run("publishes UserRegistered event", func(t *testing.T) {
		user, err := NewUser("Asha Rao", "asha@example.com", "password1")
		require.NoError(t, err)

		events := user.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeUserRegistered, events[0].EventType())
	})

	t.Run("fails with invalid email", func(t *testing.T) {
		_, err := NewUser("Asha Rao", "not-an-email", "password1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "email format")
	})

	t.Run("fails with short password", func(t *testing.T) {
		_, err := NewUser("Asha Rao", "asha@example.com", "pw1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least 8 characters")
	})

	t.Run("fails with password missing a number", func(t *testing.T) {
		_, err := NewUser("Asha Rao", "asha@example.com", "passwords")
		require.Error(t, err)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewUser("", "asha@example.com", "password1")
		require.Error(t, err)
	})
}

func TestNewAdminUser(t *testing.T) {
	user, err := NewAdminUser("Admin", "admin@example.com", "password1")
	require.NoError(t, err)

	assert.Equal(t, RoleAdmin, user.Role)
	assert.True(t, user.IsAdmin())
}

func TestUserPassword(t *testing.T) {
	t.Run("verifies correct password", func(t *testing.T) {
		user, err := NewUser("Asha Rao", "asha@example.com", "password1")
		require.NoError(t, err)

		assert.True(t, user.VerifyPassword("password1"))
		assert.False(t, user.VerifyPassword("wrong-password1"))
	})

	t.Run("changes password with correct old password", func(t *testing.T) {
		user, err := NewUser("Asha Rao", "asha@example.com", "password1")
		require.NoError(t, err)

		require.NoError(t, user.ChangePassword("password1", "newpassword2"))
		assert.True(t, user.VerifyPassword("newpassword2"))
		assert.False(t, user.VerifyPassword("password1"))
	})

	t.Run("rejects change with wrong old password", func(t *testing.T) {
		user, err := NewUser("Asha Rao", "asha@example.com", "password1")
		require.NoError(t, err)

		require.Error(t, user.ChangePassword("wrong1", "newpassword2"))
	})
}

func TestUserOrderHistory(t *testing.T) {
	t.Run("appends orders", func(t *testing.T) {
		user, err := NewUser("Asha Rao", "asha@example.com", "password1")
		require.NoError(t, err)

		first := uuid.New()
		second := uuid.New()
		require.NoError(t, user.AppendOrder(first))
		require.NoError(t, user.AppendOrder(second))

		assert.Equal(t, UUIDList{first, second}, user.OrderHistory)
	})

	t.Run("ignores duplicate orders", func(t *testing.T) {
		user, err := NewUser("Asha Rao", "asha@example.com", "password1")
		require.NoError(t, err)

		orderID := uuid.New()
		require.NoError(t, user.AppendOrder(orderID))
		require.NoError(t, user.AppendOrder(orderID))

		assert.Len(t, user.OrderHistory, 1)
	})

	t.Run("rejects empty order id", func(t *testing.T) {
		user, err := NewUser("Asha Rao", "asha@example.com", "password1")
		require.NoError(t, err)

		require.Error(t, user.AppendOrder(uuid.Nil))
	})
}

func TestUserLocking(t *testing.T) {
	t.Run("locks after max failed attempts", func(t *testing.T) {
		user, err := NewUser("Asha Rao", "asha@example.com", "password1")
		require.NoError(t, err)

		assert.False(t, user.RecordLoginFailure(3, time.Hour))
		assert.False(t, user.RecordLoginFailure(3, time.Hour))
		assert.True(t, user.RecordLoginFailure(3, time.Hour))

		assert.True(t, user.IsLocked())
		assert.False(t, user.CanLogin())
	})

	t.Run("expired lock allows login", func(t *testing.T) {
		user, err := NewUser("Asha Rao", "asha@example.com", "password1")
		require.NoError(t, err)

		require.NoError(t, user.Lock(-time.Minute))
		assert.False(t, user.IsLocked())
		assert.True(t, user.CanLogin())
	})

	t.Run("successful login resets lock", func(t *testing.T) {
		user, err := NewUser("Asha Rao", "asha@example.com", "password1")
		require.NoError(t, err)
		require.NoError(t, user.Lock(-time.Minute))

		user.RecordLoginSuccess()
		assert.Equal(t, UserStatusActive, user.Status)
		assert.Zero(t, user.FailedAttempts)
		require.NotNil(t, user.LastLoginAt)
	})

	t.Run("deactivated user cannot login", func(t *testing.T) {
		user, err := NewUser("Asha Rao", "asha@example.com", "password1")
		require.NoError(t, err)

		require.NoError(t, user.Deactivate())
		assert.False(t, user.CanLogin())
	})
}

func TestPromoteToAdmin(t *testing.T) {
	user, err := NewUser("Asha Rao", "asha@example.com", "password1")
	require.NoError(t, err)

	require.NoError(t, user.PromoteToAdmin())
	assert.True(t, user.IsAdmin())

	require.Error(t, user.PromoteToAdmin())
}
