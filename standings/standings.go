// Package standings builds the ranked classification table shown on a
// tournament's detail page from independently fetched team and stat lists.
package standings

import (
	"sort"

	"github.com/Riverafc7/esports-club-platform/models"
)

type Zone string

const (
	// Positions 1-5 qualify for playoffs, 6-7 are within reach, the rest
	// are out. Fixed club policy, not configurable.
	ZoneTitle     Zone = "title"
	ZoneContender Zone = "contender"
	ZoneNone      Zone = ""

	titleZoneSize     = 5
	contenderZoneSize = 2
)

type Row struct {
	TeamID      int     `json:"team_id"`
	TeamName    string  `json:"team_name"`
	TeamLogo    *string `json:"team_logo,omitempty"`
	Wins        int     `json:"wins"`
	Losses      int     `json:"losses"`
	Points      int     `json:"points"`
	GamesPlayed int     `json:"games_played"`
	Position    int     `json:"position"`
	Zone        Zone    `json:"zone,omitempty"`
}

// ZoneForPosition classifies a 1-based table position.
func ZoneForPosition(pos int) Zone {
	switch {
	case pos >= 1 && pos <= titleZoneSize:
		return ZoneTitle
	case pos <= titleZoneSize+contenderZoneSize:
		return ZoneContender
	}
	return ZoneNone
}

// BuildTable produces one row per team, ordered by points descending with
// win-loss differential as the tie-break. Teams without a stats row count as
// zeros. Teams equal on both keys keep their input order, so the sort must
// stay stable.
func BuildTable(teams []models.Team, stats []models.TeamStat) []Row {
	byTeam := make(map[int]models.TeamStat, len(stats))
	for _, s := range stats {
		byTeam[s.TeamID] = s
	}

	rows := make([]Row, 0, len(teams))
	for _, t := range teams {
		s := byTeam[t.ID] // zero value when absent
		rows = append(rows, Row{
			TeamID:      t.ID,
			TeamName:    t.Name,
			TeamLogo:    t.LogoURL,
			Wins:        s.Wins,
			Losses:      s.Losses,
			Points:      s.Points,
			GamesPlayed: s.GamesPlayed,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Points != rows[j].Points {
			return rows[i].Points > rows[j].Points
		}
		return rows[i].Wins-rows[i].Losses > rows[j].Wins-rows[j].Losses
	})

	for i := range rows {
		rows[i].Position = i + 1
		rows[i].Zone = ZoneForPosition(i + 1)
	}
	return rows
}
