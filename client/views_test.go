package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/Riverafc7/esports-club-platform/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTournamentView(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/tournaments/3", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":3,"name":"Liga de Primavera","game":"lol","status":"abierto"}`))
	})
	mux.HandleFunc("/api/tournament/3/teams", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":10,"name":"Alfa"},{"id":11,"name":"Beta"}]`))
	})
	mux.HandleFunc("/api/tournament/3/stats", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"team_id":10,"team_name":"Alfa","points":3,"position":1,"zone":"title"}]`))
	})
	mux.HandleFunc("/api/tournament/3/matches", func(w http.ResponseWriter, r *http.Request) {
		// One canonical match and one in the legacy shape.
		w.Write([]byte(`[
			{"id":1,"tournament_id":3,"jornada":1,"team1_id":10,"team2_id":11,"team1_name":"Alfa","team2_name":"Beta"},
			{"id":2,"tournament_id":3,"round":3,"home_team_id":11,"away_team_id":10,"home_team_name":"Beta","away_team_name":"Alfa"}
		]`))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	view, err := New(server.URL).LoadTournamentView(context.Background(), 3)
	require.NoError(t, err)

	assert.Equal(t, "Liga de Primavera", view.Tournament.Name)
	assert.Len(t, view.Teams, 2)
	require.Len(t, view.Standings, 1)
	assert.Equal(t, 1, view.Standings[0].Position)

	// Legacy "round" 3 sets the calendar span; jornada 2 exists but is empty.
	require.Len(t, view.Rounds, 3)
	assert.Len(t, view.Rounds[0], 1)
	assert.Empty(t, view.Rounds[1])
	require.Len(t, view.Rounds[2], 1)
	assert.Equal(t, 11, view.Rounds[2][0].Team1ID)
	assert.Equal(t, "Beta", view.Rounds[2][0].Team1Name)

	assert.Equal(t, 3, view.Nav.Total())
	view.Nav.Next()
	view.Nav.Next()
	view.Nav.Next()
	assert.Equal(t, 3, view.Nav.Current(), "next past the last round is a no-op")
}

func TestRegisterForTournament_ClosedRejectedLocally(t *testing.T) {
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	t.Cleanup(server.Close)

	closed := &models.Tournament{ID: 5, Status: models.StatusCerrado}
	err := New(server.URL).RegisterForTournament(context.Background(), "a.b.c", closed)

	assert.ErrorIs(t, err, ErrTournamentClosed)
	assert.Zero(t, hits.Load(), "no request may be sent for a closed tournament")
}

func TestRegisterForTournament_ServerMessageSurfacedUnchanged(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message":"el equipo ya está inscrito"}`))
	}))
	t.Cleanup(server.Close)

	open := &models.Tournament{ID: 5, Status: models.StatusAbierto}
	err := New(server.URL).RegisterForTournament(context.Background(), "a.b.c", open)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "el equipo ya está inscrito", apiErr.Message)
}
