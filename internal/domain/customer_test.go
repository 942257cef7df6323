package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUserRole(t *testing.T) {
	tests := map[string]UserRole{
		"CUSTOMER": RoleCustomer,
		" staff ":  RoleStaff,
		"Admin":    RoleAdmin,
		"manager":  RoleManager,
	}

	for raw, want := range tests {
		role, err := ParseUserRole(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, role)
	}

	_, err := ParseUserRole("OWNER")
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestUserRole_ManagesSalon(t *testing.T) {
	assert.True(t, RoleAdmin.ManagesSalon())
	assert.True(t, RoleManager.ManagesSalon())
	assert.False(t, RoleStaff.ManagesSalon())
	assert.False(t, RoleCustomer.ManagesSalon())
}
