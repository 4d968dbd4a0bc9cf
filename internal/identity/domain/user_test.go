package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUserNormalizesEmail(t *testing.T) {
	user, err := NewUser(uuid.New(), "  Ana@Tienda.LOCAL ", "hash", RoleUser, time.Now().UTC())
	require.NoError(t, err)

	assert.Equal(t, "ana@tienda.local", user.Email())
	assert.True(t, user.IsActive())
	assert.False(t, user.IsAdmin())
}

func TestNewUserValidation(t *testing.T) {
	now := time.Now().UTC()

	_, err := NewUser(uuid.New(), "sin-arroba", "hash", RoleUser, now)
	assert.Error(t, err)

	_, err = NewUser(uuid.New(), "ana@tienda.local", "", RoleUser, now)
	assert.Error(t, err)

	_, err = NewUser(uuid.New(), "ana@tienda.local", "hash", Role("superuser"), now)
	assert.Error(t, err)
}

func TestParseRole(t *testing.T) {
	role, err := ParseRole("admin")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, role)

	_, err = ParseRole("root")
	assert.Error(t, err)
}

func TestCustomerUpdateIsEmpty(t *testing.T) {
	assert.True(t, CustomerUpdate{}.IsEmpty())

	phone := "600123456"
	assert.False(t, CustomerUpdate{Phone: &phone}.IsEmpty())
}

func TestNewCustomerRequiresEmailAndName(t *testing.T) {
	now := time.Now().UTC()

	_, err := NewCustomer(uuid.New(), "", "Ana García", "", "", now)
	assert.Error(t, err)

	_, err = NewCustomer(uuid.New(), "ana@tienda.local", "", "", "", now)
	assert.Error(t, err)

	customer, err := NewCustomer(uuid.New(), "Ana@Tienda.local", "Ana García", "600123456", "Calle Mayor 12", now)
	require.NoError(t, err)
	assert.Equal(t, "ana@tienda.local", customer.Email())
}
