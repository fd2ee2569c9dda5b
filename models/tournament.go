package models

import "time"

type Game string

const (
	GameLol      Game = "lol"
	GameValorant Game = "valorant"
)

// TournamentStatus gates registration: only "abierto" accepts new teams.
type TournamentStatus string

const (
	StatusAbierto TournamentStatus = "abierto"
	StatusCerrado TournamentStatus = "cerrado"
)

type Tournament struct {
	ID          int              `json:"id" db:"id"`
	Name        string           `json:"name" db:"name"`
	Game        Game             `json:"game" db:"game"`
	Status      TournamentStatus `json:"status" db:"status"`
	Date        time.Time        `json:"date" db:"date"`
	Description *string          `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time        `json:"created_at" db:"created_at"`
}

func ValidGame(g Game) bool {
	return g == GameLol || g == GameValorant
}

func ValidTournamentStatus(s TournamentStatus) bool {
	return s == StatusAbierto || s == StatusCerrado
}

// Registration links a team to a tournament.
type Registration struct {
	ID           int       `json:"id" db:"id"`
	TournamentID int       `json:"tournament_id" db:"tournament_id"`
	TeamID       int       `json:"team_id" db:"team_id"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
