package models

import "time"

// PlayerRole is a player's position within a roster.
type PlayerRole string

const (
	RoleTop      PlayerRole = "top"
	RoleJungla   PlayerRole = "jungla"
	RoleMedio    PlayerRole = "medio"
	RoleADC      PlayerRole = "adc"
	RoleSupport  PlayerRole = "support"
	RoleStaff    PlayerRole = "staff"
	RoleSuplente PlayerRole = "suplente"
)

// Roster limits: one starter per lane, a short bench, a small staff.
const (
	MaxSuplentes = 5
	MaxStaff     = 2
)

type Team struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Code      string    `json:"code" db:"code"`
	CreatedBy int       `json:"created_by" db:"created_by"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	LogoKey *string `json:"-" db:"logo_key"`
	LogoURL *string `json:"logo,omitempty" db:"-"`

	Players []TeamPlayer `json:"players,omitempty" db:"-"`
}

type TeamPlayer struct {
	TeamID   int        `json:"team_id" db:"team_id"`
	UserID   int        `json:"user_id" db:"user_id"`
	Nickname string     `json:"nickname" db:"nickname"`
	Role     PlayerRole `json:"role" db:"role"`
	OpggLink *string    `json:"opgg_link,omitempty" db:"opgg_link"`
}

func ValidPlayerRole(r PlayerRole) bool {
	switch r {
	case RoleTop, RoleJungla, RoleMedio, RoleADC, RoleSupport, RoleStaff, RoleSuplente:
		return true
	}
	return false
}

func isStarterRole(r PlayerRole) bool {
	switch r {
	case RoleTop, RoleJungla, RoleMedio, RoleADC, RoleSupport:
		return true
	}
	return false
}

// CanAssignRole reports whether adding one more player with the given role
// keeps the roster within limits. The player being reassigned (if any) is
// identified by userID and excluded from the count.
func CanAssignRole(players []TeamPlayer, userID int, role PlayerRole) bool {
	count := 0
	for _, p := range players {
		if p.UserID == userID {
			continue
		}
		if p.Role == role {
			count++
		}
	}
	switch {
	case isStarterRole(role):
		return count < 1
	case role == RoleSuplente:
		return count < MaxSuplentes
	case role == RoleStaff:
		return count < MaxStaff
	}
	return false
}
