package standings

import (
	"testing"

	"github.com/Riverafc7/esports-club-platform/models"
	"github.com/stretchr/testify/assert"
)

func team(id int, name string) models.Team {
	return models.Team{ID: id, Name: name}
}

func TestBuildTable_TieBreakByDifferential(t *testing.T) {
	teams := []models.Team{team(1, "Alpha"), team(2, "Beta")}
	stats := []models.TeamStat{
		{TeamID: 2, Points: 6, Wins: 1, Losses: 1},
		{TeamID: 1, Points: 6, Wins: 2, Losses: 0},
	}

	rows := BuildTable(teams, stats)

	assert.Equal(t, 1, rows[0].TeamID)
	assert.Equal(t, 2, rows[1].TeamID)
	assert.Equal(t, 1, rows[0].Position)
	assert.Equal(t, 2, rows[1].Position)
}

func TestBuildTable_MissingStatsDefaultToZero(t *testing.T) {
	teams := []models.Team{team(1, "Alpha"), team(2, "Beta")}
	stats := []models.TeamStat{{TeamID: 2, Points: 3, Wins: 1}}

	rows := BuildTable(teams, stats)

	assert.Equal(t, 2, rows[0].TeamID)
	assert.Equal(t, "Alpha", rows[1].TeamName)
	assert.Zero(t, rows[1].Points)
	assert.Zero(t, rows[1].GamesPlayed)
}

func TestBuildTable_StableOnFullTie(t *testing.T) {
	teams := []models.Team{team(7, "First"), team(3, "Second"), team(9, "Third")}

	rows := BuildTable(teams, nil)

	assert.Equal(t, []int{7, 3, 9}, []int{rows[0].TeamID, rows[1].TeamID, rows[2].TeamID})
}

func TestZoneForPosition(t *testing.T) {
	assert.Equal(t, ZoneTitle, ZoneForPosition(1))
	assert.Equal(t, ZoneTitle, ZoneForPosition(5))
	assert.Equal(t, ZoneContender, ZoneForPosition(6))
	assert.Equal(t, ZoneContender, ZoneForPosition(7))
	assert.Equal(t, ZoneNone, ZoneForPosition(8))
}

func TestBuildTable_ZonesAssigned(t *testing.T) {
	teams := make([]models.Team, 0, 8)
	for i := 1; i <= 8; i++ {
		teams = append(teams, team(i, "t"))
	}

	rows := BuildTable(teams, nil)

	assert.Equal(t, ZoneTitle, rows[4].Zone)
	assert.Equal(t, ZoneContender, rows[5].Zone)
	assert.Equal(t, ZoneNone, rows[7].Zone)
}
