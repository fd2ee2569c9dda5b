// Package schedule owns jornada generation and the per-round match views
// used by the tournament detail page and a team's personal calendar.
package schedule

// Pairing is one generated fixture: two team IDs and the jornada they play in.
type Pairing struct {
	Jornada int
	HomeID  int
	AwayID  int
}

// RoundRobin generates a single round-robin schedule with the circle method:
// one team is fixed, the rest rotate, every rotation is a jornada. With an
// odd field a bye slot is inserted and the team paired against it rests.
// Every pair of teams meets exactly once.
func RoundRobin(teamIDs []int) []Pairing {
	if len(teamIDs) < 2 {
		return nil
	}

	const bye = 0
	ids := make([]int, len(teamIDs))
	copy(ids, teamIDs)
	if len(ids)%2 != 0 {
		ids = append(ids, bye)
	}

	n := len(ids)
	rounds := n - 1
	pairings := make([]Pairing, 0, rounds*n/2)

	for round := 1; round <= rounds; round++ {
		for i := 0; i < n/2; i++ {
			home, away := ids[i], ids[n-1-i]
			if home == bye || away == bye {
				continue
			}
			// Alternate venues on the fixed seat so the first team
			// doesn't host every jornada.
			if i == 0 && round%2 == 0 {
				home, away = away, home
			}
			pairings = append(pairings, Pairing{Jornada: round, HomeID: home, AwayID: away})
		}
		// Rotate all but the first seat clockwise.
		last := ids[n-1]
		copy(ids[2:], ids[1:n-1])
		ids[1] = last
	}

	return pairings
}
