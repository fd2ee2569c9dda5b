package schedule

import "github.com/Riverafc7/esports-club-platform/models"

// TaggedMatch is a match decorated with its tournament's display name for the
// combined calendar, where fixtures from several tournaments share a round.
type TaggedMatch struct {
	models.Match
	TournamentName string `json:"tournament_name"`
}

// Round is one jornada's worth of matches in the combined view.
type Round struct {
	Jornada int           `json:"jornada"`
	Matches []TaggedMatch `json:"matches"`
}

// CombinedRounds merges matches from any number of tournaments into one
// calendar. Matches are bucketed by (tournament, jornada) and then every
// tournament's bucket for round r is concatenated into the round-r entry.
// The result always covers 1..max jornada observed; a round nobody plays in
// is present with an empty match list so callers can index any round safely.
func CombinedRounds(matches []models.Match, tournamentNames map[int]string) []Round {
	type bucketKey struct{ tournament, jornada int }
	buckets := make(map[bucketKey][]models.Match)
	tournamentOrder := make([]int, 0)
	seen := make(map[int]bool)
	maxJornada := 0

	for _, m := range matches {
		if m.Jornada < 1 {
			continue
		}
		if m.Jornada > maxJornada {
			maxJornada = m.Jornada
		}
		if !seen[m.TournamentID] {
			seen[m.TournamentID] = true
			tournamentOrder = append(tournamentOrder, m.TournamentID)
		}
		k := bucketKey{m.TournamentID, m.Jornada}
		buckets[k] = append(buckets[k], m)
	}

	rounds := make([]Round, 0, maxJornada)
	for j := 1; j <= maxJornada; j++ {
		round := Round{Jornada: j, Matches: []TaggedMatch{}}
		for _, tid := range tournamentOrder {
			for _, m := range buckets[bucketKey{tid, j}] {
				round.Matches = append(round.Matches, TaggedMatch{
					Match:          m,
					TournamentName: tournamentNames[tid],
				})
			}
		}
		rounds = append(rounds, round)
	}
	return rounds
}

// TournamentRounds buckets a single tournament's matches by jornada. Same
// indexing guarantee as CombinedRounds: every round in 1..max is present.
func TournamentRounds(matches []models.Match) [][]models.Match {
	maxJornada := 0
	for _, m := range matches {
		if m.Jornada > maxJornada {
			maxJornada = m.Jornada
		}
	}

	rounds := make([][]models.Match, maxJornada)
	for i := range rounds {
		rounds[i] = []models.Match{}
	}
	for _, m := range matches {
		if m.Jornada < 1 {
			continue
		}
		rounds[m.Jornada-1] = append(rounds[m.Jornada-1], m)
	}
	return rounds
}
