package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/Riverafc7/esports-club-platform/live"
	"github.com/Riverafc7/esports-club-platform/models"
	"github.com/Riverafc7/esports-club-platform/repositories"
	"github.com/Riverafc7/esports-club-platform/schedule"
)

const (
	pointsPerWin    = 3
	jornadaInterval = 7 * 24 * time.Hour
	defaultKickoff  = "18:00"
)

// ScheduleService backs the admin panel: regenerating a tournament's match
// calendar and recomputing its stats table from completed results.
type ScheduleService interface {
	RegenerateMatches(ctx context.Context, tournamentID int) ([]models.Match, error)
	UpdateStats(ctx context.Context, tournamentID int) ([]models.TeamStat, error)
	ListMatches(ctx context.Context) ([]models.Match, error)
	UpdateMatch(ctx context.Context, matchID int, input UpdateMatchInput) (*models.Match, error)
	TournamentMatches(ctx context.Context, tournamentID int) ([]models.Match, error)
	TeamCalendar(ctx context.Context, teamID int) ([]schedule.Round, error)
}

type UpdateMatchInput struct {
	Jornada    *int                `json:"jornada"`
	MatchDate  *time.Time          `json:"match_date"`
	MatchTime  *string             `json:"match_time"`
	Format     *models.MatchFormat `json:"match_format"`
	Status     *models.MatchStatus `json:"status"`
	ScoreTeam1 *int                `json:"score_team1"`
	ScoreTeam2 *int                `json:"score_team2"`
}

type scheduleService struct {
	matchRepo      repositories.MatchRepository
	tournamentRepo repositories.TournamentRepository
	teamRepo       repositories.TeamRepository
	statRepo       repositories.StatRepository
	hub            *live.Hub
	logger         *slog.Logger
}

func NewScheduleService(
	matchRepo repositories.MatchRepository,
	tournamentRepo repositories.TournamentRepository,
	teamRepo repositories.TeamRepository,
	statRepo repositories.StatRepository,
	hub *live.Hub,
	logger *slog.Logger,
) ScheduleService {
	return &scheduleService{
		matchRepo:      matchRepo,
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		statRepo:       statRepo,
		hub:            hub,
		logger:         logger,
	}
}

// RegenerateMatches wipes the tournament's pending fixtures and builds a
// fresh single round-robin calendar from the currently registered teams.
// Completed, live and cancelled matches are left untouched.
func (s *scheduleService) RegenerateMatches(ctx context.Context, tournamentID int) ([]models.Match, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to get tournament %d: %w", tournamentID, err)
	}

	teams, err := s.teamRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list registered teams: %w", err)
	}
	if len(teams) < 2 {
		return nil, ErrNotEnoughTeams
	}

	byID := make(map[int]models.Team, len(teams))
	ids := make([]int, 0, len(teams))
	for _, t := range teams {
		byID[t.ID] = t
		ids = append(ids, t.ID)
	}
	sort.Ints(ids) // deterministic pairing order

	pairings := schedule.RoundRobin(ids)

	matches := make([]*models.Match, 0, len(pairings))
	for _, p := range pairings {
		home, away := byID[p.HomeID], byID[p.AwayID]
		matches = append(matches, &models.Match{
			TournamentID: tournamentID,
			Jornada:      p.Jornada,
			Team1ID:      home.ID,
			Team1Name:    home.Name,
			Team1Logo:    home.LogoKey,
			Team2ID:      away.ID,
			Team2Name:    away.Name,
			Team2Logo:    away.LogoKey,
			MatchDate:    tournament.Date.Add(time.Duration(p.Jornada-1) * jornadaInterval),
			MatchTime:    defaultKickoff,
			Format:       models.FormatBO1,
			Status:       models.MatchStatusPending,
		})
	}

	if err := s.matchRepo.DeleteByTournamentAndStatus(ctx, tournamentID, models.MatchStatusPending); err != nil {
		return nil, fmt.Errorf("failed to clear pending matches: %w", err)
	}
	if err := s.matchRepo.BatchCreate(ctx, matches); err != nil {
		return nil, fmt.Errorf("failed to insert generated matches: %w", err)
	}

	s.logger.Info("regenerated tournament schedule",
		slog.Int("tournament_id", tournamentID),
		slog.Int("teams", len(teams)),
		slog.Int("matches", len(matches)),
	)
	s.hub.Broadcast(live.Event{
		Type:         live.EventScheduleGenerated,
		TournamentID: tournamentID,
		Payload:      map[string]int{"matches": len(matches)},
	})

	return s.matchRepo.ListByTournament(ctx, tournamentID)
}

// UpdateStats recomputes the whole stats table from completed matches.
// A win is worth 3 points; registered teams without a completed match get no
// row (readers default them to zero).
func (s *scheduleService) UpdateStats(ctx context.Context, tournamentID int) ([]models.TeamStat, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to get tournament %d: %w", tournamentID, err)
	}

	matches, err := s.matchRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}

	stats := ComputeStats(tournamentID, matches)
	if err := s.statRepo.ReplaceForTournament(ctx, tournamentID, stats); err != nil {
		return nil, fmt.Errorf("failed to store stats: %w", err)
	}

	s.hub.Broadcast(live.Event{
		Type:         live.EventStatsUpdated,
		TournamentID: tournamentID,
		Payload:      stats,
	})
	return stats, nil
}

// ComputeStats folds completed matches into per-team records. Draws don't
// exist in this league (a BO series always has a winner); equal scores on a
// completed match are counted for neither side.
func ComputeStats(tournamentID int, matches []models.Match) []models.TeamStat {
	type record struct{ wins, losses, played int }
	records := make(map[int]*record)
	order := make([]int, 0)

	touch := func(teamID int) *record {
		r, ok := records[teamID]
		if !ok {
			r = &record{}
			records[teamID] = r
			order = append(order, teamID)
		}
		return r
	}

	for _, m := range matches {
		if m.Status != models.MatchStatusCompleted {
			continue
		}
		r1, r2 := touch(m.Team1ID), touch(m.Team2ID)
		r1.played++
		r2.played++
		switch {
		case m.ScoreTeam1 > m.ScoreTeam2:
			r1.wins++
			r2.losses++
		case m.ScoreTeam2 > m.ScoreTeam1:
			r2.wins++
			r1.losses++
		}
	}

	sort.Ints(order)
	stats := make([]models.TeamStat, 0, len(order))
	for _, teamID := range order {
		r := records[teamID]
		stats = append(stats, models.TeamStat{
			TournamentID: tournamentID,
			TeamID:       teamID,
			Wins:         r.wins,
			Losses:       r.losses,
			Points:       r.wins * pointsPerWin,
			GamesPlayed:  r.played,
		})
	}
	return stats
}

func (s *scheduleService) ListMatches(ctx context.Context) ([]models.Match, error) {
	return s.matchRepo.ListAll(ctx)
}

func (s *scheduleService) UpdateMatch(ctx context.Context, matchID int, input UpdateMatchInput) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match %d: %w", matchID, err)
	}

	if input.Jornada != nil {
		if *input.Jornada < 1 {
			return nil, fmt.Errorf("%w: jornada must be positive", ErrValidationFailed)
		}
		match.Jornada = *input.Jornada
	}
	if input.MatchDate != nil {
		match.MatchDate = *input.MatchDate
	}
	if input.MatchTime != nil {
		match.MatchTime = *input.MatchTime
	}
	if input.Format != nil {
		if !models.ValidMatchFormat(*input.Format) {
			return nil, fmt.Errorf("%w: unknown match format %q", ErrValidationFailed, *input.Format)
		}
		match.Format = *input.Format
	}
	if input.Status != nil {
		if !models.ValidMatchStatus(*input.Status) {
			return nil, fmt.Errorf("%w: unknown match status %q", ErrValidationFailed, *input.Status)
		}
		match.Status = *input.Status
	}
	if input.ScoreTeam1 != nil {
		match.ScoreTeam1 = *input.ScoreTeam1
	}
	if input.ScoreTeam2 != nil {
		match.ScoreTeam2 = *input.ScoreTeam2
	}

	if err := s.matchRepo.Update(ctx, match); err != nil {
		return nil, fmt.Errorf("failed to update match %d: %w", matchID, err)
	}

	s.hub.Broadcast(live.Event{
		Type:         live.EventMatchUpdated,
		TournamentID: match.TournamentID,
		Payload:      match,
	})
	return match, nil
}

func (s *scheduleService) TournamentMatches(ctx context.Context, tournamentID int) ([]models.Match, error) {
	matches, err := s.matchRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournament matches: %w", err)
	}
	return matches, nil
}

// TeamCalendar merges a team's matches from every tournament it plays in
// into one jornada-indexed calendar.
func (s *scheduleService) TeamCalendar(ctx context.Context, teamID int) ([]schedule.Round, error) {
	matches, err := s.matchRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list team matches: %w", err)
	}

	names := make(map[int]string)
	for _, m := range matches {
		if _, ok := names[m.TournamentID]; ok {
			continue
		}
		t, err := s.tournamentRepo.GetByID(ctx, m.TournamentID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve tournament %d: %w", m.TournamentID, err)
		}
		names[m.TournamentID] = t.Name
	}

	return schedule.CombinedRounds(matches, names), nil
}
