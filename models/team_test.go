package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanAssignRole_StarterUnique(t *testing.T) {
	players := []TeamPlayer{
		{UserID: 1, Role: RoleTop},
		{UserID: 2, Role: RoleJungla},
	}

	assert.False(t, CanAssignRole(players, 3, RoleTop))
	assert.True(t, CanAssignRole(players, 3, RoleMedio))
	// Reassigning the current top laner to top again is allowed.
	assert.True(t, CanAssignRole(players, 1, RoleTop))
}

func TestCanAssignRole_BenchAndStaffLimits(t *testing.T) {
	var players []TeamPlayer
	for i := 0; i < MaxSuplentes; i++ {
		players = append(players, TeamPlayer{UserID: 10 + i, Role: RoleSuplente})
	}
	players = append(players,
		TeamPlayer{UserID: 20, Role: RoleStaff},
		TeamPlayer{UserID: 21, Role: RoleStaff},
	)

	assert.False(t, CanAssignRole(players, 99, RoleSuplente))
	assert.False(t, CanAssignRole(players, 99, RoleStaff))
	// A current suplente can keep their slot.
	assert.True(t, CanAssignRole(players, 10, RoleSuplente))
}

func TestCanAssignRole_UnknownRole(t *testing.T) {
	assert.False(t, CanAssignRole(nil, 1, PlayerRole("coach")))
	assert.False(t, ValidPlayerRole(PlayerRole("coach")))
	assert.True(t, ValidPlayerRole(RoleSuplente))
}
