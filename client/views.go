package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/Riverafc7/esports-club-platform/models"
	"github.com/Riverafc7/esports-club-platform/schedule"
	"github.com/Riverafc7/esports-club-platform/standings"
	"golang.org/x/sync/errgroup"
)

// ErrTournamentClosed is returned before any request is sent when the
// tournament no longer accepts registrations.
var ErrTournamentClosed = errors.New("tournament registration is closed")

// TournamentView is everything the tournament detail page renders: the
// classification table, the calendar grouped by jornada, and the round
// navigator.
type TournamentView struct {
	Tournament *models.Tournament
	Teams      []models.Team
	Standings  []standings.Row
	Rounds     [][]models.Match
	Nav        *schedule.RoundNav
}

// LoadTournamentView fetches the page's data sets concurrently and folds the
// match list into per-jornada buckets.
func (c *Client) LoadTournamentView(ctx context.Context, tournamentID int) (*TournamentView, error) {
	view := &TournamentView{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		view.Tournament, err = c.Tournament(gctx, tournamentID)
		return err
	})
	g.Go(func() error {
		var err error
		view.Teams, err = c.TournamentTeams(gctx, tournamentID)
		return err
	})
	g.Go(func() error {
		var err error
		view.Standings, err = c.TournamentStandings(gctx, tournamentID)
		return err
	})
	g.Go(func() error {
		matches, err := c.TournamentMatches(gctx, tournamentID)
		if err != nil {
			return err
		}
		view.Rounds = schedule.TournamentRounds(matches)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load tournament %d: %w", tournamentID, err)
	}

	view.Nav = schedule.NewRoundNav(len(view.Rounds))
	return view, nil
}

// TeamScheduleView is the personal calendar page: the caller's team fixtures
// across every tournament, merged per jornada.
type TeamScheduleView struct {
	Rounds []schedule.Round
	Nav    *schedule.RoundNav
}

func (c *Client) LoadTeamSchedule(ctx context.Context, accessToken string) (*TeamScheduleView, error) {
	rounds, err := c.TeamCalendar(ctx, accessToken)
	if err != nil {
		return nil, err
	}
	return &TeamScheduleView{
		Rounds: rounds,
		Nav:    schedule.NewRoundNav(len(rounds)),
	}, nil
}

// RegisterForTournament signs the caller's team up. Closed tournaments are
// rejected locally so no request is ever sent for them; a server-side
// rejection keeps the server's message.
func (c *Client) RegisterForTournament(ctx context.Context, accessToken string, tournament *models.Tournament) error {
	if tournament.Status != models.StatusAbierto {
		return ErrTournamentClosed
	}
	return c.RegisterTeam(ctx, accessToken, tournament.ID)
}
