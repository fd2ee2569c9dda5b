package services

import (
	"testing"

	"github.com/Riverafc7/esports-club-platform/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completed(t1, t2, s1, s2 int) models.Match {
	return models.Match{
		Team1ID: t1, Team2ID: t2,
		ScoreTeam1: s1, ScoreTeam2: s2,
		Status: models.MatchStatusCompleted,
	}
}

func TestComputeStats_ThreePointsPerWin(t *testing.T) {
	matches := []models.Match{
		completed(1, 2, 2, 0),
		completed(1, 3, 1, 2),
		completed(2, 3, 2, 1),
	}

	stats := ComputeStats(7, matches)
	require.Len(t, stats, 3)

	byTeam := make(map[int]models.TeamStat)
	for _, s := range stats {
		assert.Equal(t, 7, s.TournamentID)
		byTeam[s.TeamID] = s
	}

	assert.Equal(t, 1, byTeam[1].Wins)
	assert.Equal(t, 1, byTeam[1].Losses)
	assert.Equal(t, 3, byTeam[1].Points)
	assert.Equal(t, 2, byTeam[1].GamesPlayed)

	assert.Equal(t, 3, byTeam[2].Points)
	assert.Equal(t, 3, byTeam[3].Points)
}

func TestComputeStats_IgnoresUnfinishedMatches(t *testing.T) {
	matches := []models.Match{
		{Team1ID: 1, Team2ID: 2, Status: models.MatchStatusPending},
		{Team1ID: 1, Team2ID: 2, Status: models.MatchStatusLive, ScoreTeam1: 1},
		{Team1ID: 1, Team2ID: 2, Status: models.MatchStatusCancelled, ScoreTeam1: 2},
	}

	assert.Empty(t, ComputeStats(1, matches))
}

func TestComputeStats_EqualScoresCountForNeither(t *testing.T) {
	stats := ComputeStats(1, []models.Match{completed(1, 2, 0, 0)})

	require.Len(t, stats, 2)
	for _, s := range stats {
		assert.Zero(t, s.Wins)
		assert.Zero(t, s.Losses)
		assert.Zero(t, s.Points)
		assert.Equal(t, 1, s.GamesPlayed)
	}
}
