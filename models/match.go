package models

import "time"

type MatchFormat string

const (
	FormatBO1 MatchFormat = "BO1"
	FormatBO3 MatchFormat = "BO3"
	FormatBO5 MatchFormat = "BO5"
)

type MatchStatus string

const (
	MatchStatusPending   MatchStatus = "pending"
	MatchStatusCompleted MatchStatus = "completed"
	MatchStatusCancelled MatchStatus = "cancelled"
	MatchStatusLive      MatchStatus = "live"
)

// Match is one fixture of a tournament jornada. Team names and logos are
// denormalized at scheduling time so listings don't fan out into team lookups.
type Match struct {
	ID           int `json:"id" db:"id"`
	TournamentID int `json:"tournament_id" db:"tournament_id"`
	Jornada      int `json:"jornada" db:"jornada"`

	Team1ID   int     `json:"team1_id" db:"team1_id"`
	Team1Name string  `json:"team1_name" db:"team1_name"`
	Team1Logo *string `json:"team1_logo,omitempty" db:"team1_logo"`
	Team2ID   int     `json:"team2_id" db:"team2_id"`
	Team2Name string  `json:"team2_name" db:"team2_name"`
	Team2Logo *string `json:"team2_logo,omitempty" db:"team2_logo"`

	MatchDate time.Time   `json:"match_date" db:"match_date"`
	MatchTime string      `json:"match_time" db:"match_time"`
	Format    MatchFormat `json:"match_format" db:"match_format"`
	Status    MatchStatus `json:"status" db:"status"`

	ScoreTeam1 int `json:"score_team1" db:"score_team1"`
	ScoreTeam2 int `json:"score_team2" db:"score_team2"`
}

func ValidMatchFormat(f MatchFormat) bool {
	return f == FormatBO1 || f == FormatBO3 || f == FormatBO5
}

func ValidMatchStatus(s MatchStatus) bool {
	switch s {
	case MatchStatusPending, MatchStatusCompleted, MatchStatusCancelled, MatchStatusLive:
		return true
	}
	return false
}
