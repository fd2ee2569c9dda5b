package schedule

import (
	"testing"

	"github.com/Riverafc7/esports-club-platform/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func m(tournament, jornada, t1, t2 int) models.Match {
	return models.Match{TournamentID: tournament, Jornada: jornada, Team1ID: t1, Team2ID: t2}
}

func TestRoundRobin_EveryPairOnce(t *testing.T) {
	ids := []int{1, 2, 3, 4, 5, 6}
	pairings := RoundRobin(ids)

	require.Len(t, pairings, len(ids)*(len(ids)-1)/2)

	met := make(map[[2]int]int)
	perRound := make(map[int]map[int]bool)
	for _, p := range pairings {
		a, b := p.HomeID, p.AwayID
		if a > b {
			a, b = b, a
		}
		met[[2]int{a, b}]++

		if perRound[p.Jornada] == nil {
			perRound[p.Jornada] = make(map[int]bool)
		}
		assert.False(t, perRound[p.Jornada][p.HomeID], "team %d plays twice in jornada %d", p.HomeID, p.Jornada)
		assert.False(t, perRound[p.Jornada][p.AwayID], "team %d plays twice in jornada %d", p.AwayID, p.Jornada)
		perRound[p.Jornada][p.HomeID] = true
		perRound[p.Jornada][p.AwayID] = true
	}
	for pair, count := range met {
		assert.Equal(t, 1, count, "pair %v", pair)
	}
	assert.Len(t, perRound, len(ids)-1)
}

func TestRoundRobin_OddFieldGetsByes(t *testing.T) {
	pairings := RoundRobin([]int{1, 2, 3})

	require.Len(t, pairings, 3)
	for _, p := range pairings {
		assert.NotZero(t, p.HomeID)
		assert.NotZero(t, p.AwayID)
	}
}

func TestRoundRobin_TooFewTeams(t *testing.T) {
	assert.Nil(t, RoundRobin(nil))
	assert.Nil(t, RoundRobin([]int{7}))
}

func TestCombinedRounds_MergesTournamentsPerJornada(t *testing.T) {
	// Tournament A plays jornadas 1-2, tournament B only jornada 1.
	matches := []models.Match{
		m(1, 1, 10, 11), m(1, 2, 10, 12),
		m(2, 1, 20, 21),
	}
	names := map[int]string{1: "Liga LoL", 2: "Copa Valorant"}

	rounds := CombinedRounds(matches, names)

	require.Len(t, rounds, 2)

	require.Len(t, rounds[0].Matches, 2)
	assert.Equal(t, "Liga LoL", rounds[0].Matches[0].TournamentName)
	assert.Equal(t, "Copa Valorant", rounds[0].Matches[1].TournamentName)

	require.Len(t, rounds[1].Matches, 1)
	assert.Equal(t, 1, rounds[1].Matches[0].TournamentID)
}

func TestCombinedRounds_EmptyRoundsArePresent(t *testing.T) {
	rounds := CombinedRounds([]models.Match{m(1, 3, 10, 11)}, map[int]string{1: "Liga"})

	require.Len(t, rounds, 3)
	assert.NotNil(t, rounds[0].Matches)
	assert.Empty(t, rounds[0].Matches)
	assert.Empty(t, rounds[1].Matches)
	assert.Len(t, rounds[2].Matches, 1)
}

func TestTournamentRounds(t *testing.T) {
	rounds := TournamentRounds([]models.Match{m(1, 2, 1, 2), m(1, 1, 3, 4), m(1, 2, 5, 6)})

	require.Len(t, rounds, 2)
	assert.Len(t, rounds[0], 1)
	assert.Len(t, rounds[1], 2)
}

func TestRoundNav_Clamping(t *testing.T) {
	nav := NewRoundNav(3)

	nav.Prev()
	assert.Equal(t, 1, nav.Current())

	nav.Next()
	nav.Next()
	assert.Equal(t, 3, nav.Current())
	nav.Next()
	assert.Equal(t, 3, nav.Current())

	nav.Select(99)
	assert.Equal(t, 3, nav.Current())
	nav.Select(-1)
	assert.Equal(t, 1, nav.Current())
}

func TestDecodeMatches_LegacyFieldFallback(t *testing.T) {
	payload := []byte(`[
		{"id": 1, "tournament_id": 5, "round": 2,
		 "home_team_id": 10, "away_team_id": 11,
		 "home_team_name": "Lions", "away_team_name": "Wolves",
		 "format": "BO3", "home_score": 2, "away_score": 1,
		 "time": "18:00"},
		{"id": 2, "tournament_id": 5, "jornada": 1,
		 "team1_id": 12, "team2_id": 13,
		 "team1_name": "Hawks", "team2_name": "Bears",
		 "match_format": "BO5", "status": "completed"}
	]`)

	matches, err := DecodeMatches(payload)
	require.NoError(t, err)
	require.Len(t, matches, 2)

	legacy := matches[0]
	assert.Equal(t, 2, legacy.Jornada)
	assert.Equal(t, 10, legacy.Team1ID)
	assert.Equal(t, "Wolves", legacy.Team2Name)
	assert.Equal(t, models.FormatBO3, legacy.Format)
	assert.Equal(t, 2, legacy.ScoreTeam1)
	assert.Equal(t, "18:00", legacy.MatchTime)
	assert.Equal(t, models.MatchStatusPending, legacy.Status)

	canonical := matches[1]
	assert.Equal(t, 1, canonical.Jornada)
	assert.Equal(t, models.FormatBO5, canonical.Format)
	assert.Equal(t, models.MatchStatusCompleted, canonical.Status)
}

func TestNormalizeMatch_Defaults(t *testing.T) {
	got := NormalizeMatch(rawMatch{})

	assert.Equal(t, models.FormatBO1, got.Format)
	assert.Equal(t, models.MatchStatusPending, got.Status)
	assert.Zero(t, got.ScoreTeam1)
	assert.Zero(t, got.ScoreTeam2)
}
