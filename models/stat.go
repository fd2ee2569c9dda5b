package models

import "time"

// TeamStat is a team's accumulated league record within one tournament.
// A team with no row simply has not played yet; readers default to zeros.
type TeamStat struct {
	TournamentID int       `json:"tournament_id" db:"tournament_id"`
	TeamID       int       `json:"team_id" db:"team_id"`
	Wins         int       `json:"wins" db:"wins"`
	Losses       int       `json:"losses" db:"losses"`
	Points       int       `json:"points" db:"points"`
	GamesPlayed  int       `json:"games_played" db:"games_played"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
