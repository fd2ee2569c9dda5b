package schedule

import (
	"encoding/json"
	"time"

	"github.com/Riverafc7/esports-club-platform/models"
)

// rawMatch mirrors the loose shapes older API responses used for matches.
// Every field the canonical shape defines may instead arrive under a legacy
// name, so all of them are pointers to tell "absent" from "zero".
type rawMatch struct {
	ID           *int `json:"id"`
	TournamentID *int `json:"tournament_id"`
	Jornada      *int `json:"jornada"`
	Round        *int `json:"round"`

	Team1ID   *int    `json:"team1_id"`
	HomeID    *int    `json:"home_team_id"`
	Team2ID   *int    `json:"team2_id"`
	AwayID    *int    `json:"away_team_id"`
	Team1Name *string `json:"team1_name"`
	HomeName  *string `json:"home_team_name"`
	Team2Name *string `json:"team2_name"`
	AwayName  *string `json:"away_team_name"`
	Team1Logo *string `json:"team1_logo"`
	Team2Logo *string `json:"team2_logo"`

	MatchDate *time.Time `json:"match_date"`
	Date      *time.Time `json:"date"`
	MatchTime *string    `json:"match_time"`
	Time      *string    `json:"time"`

	MatchFormat *string `json:"match_format"`
	Format      *string `json:"format"`
	Status      *string `json:"status"`

	ScoreTeam1 *int `json:"score_team1"`
	HomeScore  *int `json:"home_score"`
	ScoreTeam2 *int `json:"score_team2"`
	AwayScore  *int `json:"away_score"`
}

func intOr(primary, fallback *int) int {
	if primary != nil {
		return *primary
	}
	if fallback != nil {
		return *fallback
	}
	return 0
}

func strOr(primary, fallback *string, def string) string {
	if primary != nil && *primary != "" {
		return *primary
	}
	if fallback != nil && *fallback != "" {
		return *fallback
	}
	return def
}

// NormalizeMatch folds the legacy field names into the canonical Match shape.
// Fallback order is always canonical name first, legacy name second, then the
// default: jornada<-round, team1_id<-home_team_id, team2_id<-away_team_id,
// team names likewise, match_date<-date, match_time<-time,
// match_format<-format (default BO1), scores<-home/away_score (default 0),
// status defaults to pending. This is the single place heterogeneous upstream
// shapes get repaired; view code only ever sees models.Match.
func NormalizeMatch(raw rawMatch) models.Match {
	m := models.Match{
		ID:           intOr(raw.ID, nil),
		TournamentID: intOr(raw.TournamentID, nil),
		Jornada:      intOr(raw.Jornada, raw.Round),
		Team1ID:      intOr(raw.Team1ID, raw.HomeID),
		Team2ID:      intOr(raw.Team2ID, raw.AwayID),
		Team1Name:    strOr(raw.Team1Name, raw.HomeName, ""),
		Team2Name:    strOr(raw.Team2Name, raw.AwayName, ""),
		Team1Logo:    raw.Team1Logo,
		Team2Logo:    raw.Team2Logo,
		MatchTime:    strOr(raw.MatchTime, raw.Time, ""),
		Format:       models.MatchFormat(strOr(raw.MatchFormat, raw.Format, string(models.FormatBO1))),
		Status:       models.MatchStatus(strOr(raw.Status, nil, string(models.MatchStatusPending))),
		ScoreTeam1:   intOr(raw.ScoreTeam1, raw.HomeScore),
		ScoreTeam2:   intOr(raw.ScoreTeam2, raw.AwayScore),
	}
	if raw.MatchDate != nil {
		m.MatchDate = *raw.MatchDate
	} else if raw.Date != nil {
		m.MatchDate = *raw.Date
	}
	return m
}

// DecodeMatches parses a JSON array of matches in any of the supported
// upstream shapes and returns them normalized.
func DecodeMatches(data []byte) ([]models.Match, error) {
	var raws []rawMatch
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, err
	}
	matches := make([]models.Match, 0, len(raws))
	for _, r := range raws {
		matches = append(matches, NormalizeMatch(r))
	}
	return matches, nil
}
