package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Riverafc7/esports-club-platform/models"
	"github.com/Riverafc7/esports-club-platform/repositories"
	"github.com/Riverafc7/esports-club-platform/standings"
	"golang.org/x/sync/errgroup"
)

type TournamentInput struct {
	Name        string                  `json:"name"`
	Game        models.Game             `json:"game"`
	Status      models.TournamentStatus `json:"status"`
	Date        time.Time               `json:"date"`
	Description *string                 `json:"description"`
}

type TournamentService interface {
	List(ctx context.Context) ([]models.Tournament, error)
	GetByID(ctx context.Context, id int) (*models.Tournament, error)
	Create(ctx context.Context, input TournamentInput) (*models.Tournament, error)
	Update(ctx context.Context, id int, input TournamentInput) (*models.Tournament, error)
	Delete(ctx context.Context, id int) error

	Register(ctx context.Context, tournamentID, userID int) error
	Leave(ctx context.Context, tournamentID, userID int) error
	Standings(ctx context.Context, tournamentID int) ([]standings.Row, error)

	CloseExpired(ctx context.Context) error
}

type tournamentService struct {
	tournamentRepo repositories.TournamentRepository
	teamRepo       repositories.TeamRepository
	statRepo       repositories.StatRepository
	teamService    TeamService
	logger         *slog.Logger
}

func NewTournamentService(
	tournamentRepo repositories.TournamentRepository,
	teamRepo repositories.TeamRepository,
	statRepo repositories.StatRepository,
	teamService TeamService,
	logger *slog.Logger,
) TournamentService {
	return &tournamentService{
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		statRepo:       statRepo,
		teamService:    teamService,
		logger:         logger,
	}
}

func (s *tournamentService) List(ctx context.Context) ([]models.Tournament, error) {
	return s.tournamentRepo.List(ctx)
}

func (s *tournamentService) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	t, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to get tournament %d: %w", id, err)
	}
	return t, nil
}

func validateTournamentInput(input TournamentInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return fmt.Errorf("%w: tournament name is required", ErrValidationFailed)
	}
	if !models.ValidGame(input.Game) {
		return fmt.Errorf("%w: unknown game %q", ErrValidationFailed, input.Game)
	}
	if !models.ValidTournamentStatus(input.Status) {
		return fmt.Errorf("%w: unknown status %q", ErrValidationFailed, input.Status)
	}
	if input.Date.IsZero() {
		return fmt.Errorf("%w: tournament date is required", ErrValidationFailed)
	}
	return nil
}

func (s *tournamentService) Create(ctx context.Context, input TournamentInput) (*models.Tournament, error) {
	if err := validateTournamentInput(input); err != nil {
		return nil, err
	}

	tournament := &models.Tournament{
		Name:        strings.TrimSpace(input.Name),
		Game:        input.Game,
		Status:      input.Status,
		Date:        input.Date,
		Description: input.Description,
	}
	if err := s.tournamentRepo.Create(ctx, tournament); err != nil {
		if errors.Is(err, repositories.ErrTournamentNameConflict) {
			return nil, ErrTournamentNameTaken
		}
		return nil, fmt.Errorf("failed to create tournament: %w", err)
	}
	return tournament, nil
}

func (s *tournamentService) Update(ctx context.Context, id int, input TournamentInput) (*models.Tournament, error) {
	if err := validateTournamentInput(input); err != nil {
		return nil, err
	}

	tournament, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	tournament.Name = strings.TrimSpace(input.Name)
	tournament.Game = input.Game
	tournament.Status = input.Status
	tournament.Date = input.Date
	tournament.Description = input.Description

	if err := s.tournamentRepo.Update(ctx, tournament); err != nil {
		if errors.Is(err, repositories.ErrTournamentNameConflict) {
			return nil, ErrTournamentNameTaken
		}
		return nil, fmt.Errorf("failed to update tournament %d: %w", id, err)
	}
	return tournament, nil
}

func (s *tournamentService) Delete(ctx context.Context, id int) error {
	if err := s.tournamentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return ErrTournamentNotFound
		}
		return fmt.Errorf("failed to delete tournament %d: %w", id, err)
	}
	return nil
}

// Register signs the caller's team up. Closed tournaments reject the attempt
// before anything is written.
func (s *tournamentService) Register(ctx context.Context, tournamentID, userID int) error {
	tournament, err := s.GetByID(ctx, tournamentID)
	if err != nil {
		return err
	}
	if tournament.Status != models.StatusAbierto {
		return ErrTournamentClosed
	}

	team, err := s.teamRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return ErrUserNotInTeam
		}
		return fmt.Errorf("failed to find user's team: %w", err)
	}
	if team.CreatedBy != userID {
		return ErrOwnerActionForbidden
	}

	reg := &models.Registration{TournamentID: tournamentID, TeamID: team.ID}
	if err := s.tournamentRepo.Register(ctx, reg); err != nil {
		if errors.Is(err, repositories.ErrRegistrationConflict) {
			return ErrAlreadyRegistered
		}
		return fmt.Errorf("failed to register team: %w", err)
	}
	return nil
}

func (s *tournamentService) Leave(ctx context.Context, tournamentID, userID int) error {
	team, err := s.teamRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return ErrUserNotInTeam
		}
		return fmt.Errorf("failed to find user's team: %w", err)
	}
	if team.CreatedBy != userID {
		return ErrOwnerActionForbidden
	}

	if err := s.tournamentRepo.Unregister(ctx, tournamentID, team.ID); err != nil {
		if errors.Is(err, repositories.ErrRegistrationNotFound) {
			return ErrNotRegistered
		}
		return fmt.Errorf("failed to unregister team: %w", err)
	}
	return nil
}

// Standings fetches the tournament's teams and stat rows concurrently and
// folds them into the classification table.
func (s *tournamentService) Standings(ctx context.Context, tournamentID int) ([]standings.Row, error) {
	if _, err := s.GetByID(ctx, tournamentID); err != nil {
		return nil, err
	}

	var (
		teams []models.Team
		stats []models.TeamStat
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		teams, err = s.teamService.ListByTournament(gctx, tournamentID)
		return err
	})
	g.Go(func() error {
		var err error
		stats, err = s.statRepo.ListByTournament(gctx, tournamentID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load standings data: %w", err)
	}

	return standings.BuildTable(teams, stats), nil
}

// CloseExpired is the scheduler entry point: any open tournament whose date
// has passed gets flipped to cerrado.
func (s *tournamentService) CloseExpired(ctx context.Context) error {
	closed, err := s.tournamentRepo.CloseAllPastDate(ctx, time.Now())
	if err != nil {
		return fmt.Errorf("failed to close expired tournaments: %w", err)
	}
	if closed > 0 {
		s.logger.Info("closed expired tournaments", slog.Int("count", closed))
	}
	return nil
}
