package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Riverafc7/esports-club-platform/models"
)

var (
	ErrTournamentNotFound     = errors.New("tournament not found")
	ErrTournamentNameConflict = errors.New("tournament name conflict")
	ErrRegistrationNotFound   = errors.New("tournament registration not found")
	ErrRegistrationConflict   = errors.New("team is already registered for this tournament")
)

type TournamentRepository interface {
	Create(ctx context.Context, tournament *models.Tournament) error
	GetByID(ctx context.Context, id int) (*models.Tournament, error)
	Update(ctx context.Context, tournament *models.Tournament) error
	Delete(ctx context.Context, id int) error
	List(ctx context.Context) ([]models.Tournament, error)
	CloseAllPastDate(ctx context.Context, now time.Time) (int, error)

	Register(ctx context.Context, reg *models.Registration) error
	Unregister(ctx context.Context, tournamentID, teamID int) error
	ListRegistrations(ctx context.Context, tournamentID int) ([]models.Registration, error)
	ListRegistrationsByTeam(ctx context.Context, teamID int) ([]models.Registration, error)
}

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

const tournamentColumns = `id, name, game, status, date, description, created_at`

func (r *postgresTournamentRepository) scanTournament(row interface{ Scan(...interface{}) error }) (*models.Tournament, error) {
	var t models.Tournament
	err := row.Scan(&t.ID, &t.Name, &t.Game, &t.Status, &t.Date, &t.Description, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to scan tournament: %w", err)
	}
	return &t, nil
}

func (r *postgresTournamentRepository) Create(ctx context.Context, tournament *models.Tournament) error {
	query := `
		INSERT INTO tournaments (name, game, status, date, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		tournament.Name, tournament.Game, tournament.Status, tournament.Date, tournament.Description,
	).Scan(&tournament.ID, &tournament.CreatedAt)
	if err != nil {
		if mapped := constraintError(err, pqUniqueViolation, "tournaments_name_key", ErrTournamentNameConflict); mapped != nil {
			return mapped
		}
		return err
	}
	return nil
}

func (r *postgresTournamentRepository) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	query := `SELECT ` + tournamentColumns + ` FROM tournaments WHERE id = $1`
	return r.scanTournament(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresTournamentRepository) Update(ctx context.Context, tournament *models.Tournament) error {
	query := `
		UPDATE tournaments
		SET name = $1, game = $2, status = $3, date = $4, description = $5
		WHERE id = $6`

	result, err := r.db.ExecContext(ctx, query,
		tournament.Name, tournament.Game, tournament.Status, tournament.Date,
		tournament.Description, tournament.ID,
	)
	if err != nil {
		if mapped := constraintError(err, pqUniqueViolation, "tournaments_name_key", ErrTournamentNameConflict); mapped != nil {
			return mapped
		}
		return err
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tournaments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) List(ctx context.Context) ([]models.Tournament, error) {
	query := `SELECT ` + tournamentColumns + ` FROM tournaments ORDER BY date ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tournaments := make([]models.Tournament, 0)
	for rows.Next() {
		t, errScan := r.scanTournament(rows)
		if errScan != nil {
			return nil, errScan
		}
		tournaments = append(tournaments, *t)
	}
	return tournaments, rows.Err()
}

// CloseAllPastDate flips every still-open tournament whose date has passed to
// cerrado and reports how many rows changed. Used by the background scheduler.
func (r *postgresTournamentRepository) CloseAllPastDate(ctx context.Context, now time.Time) (int, error) {
	query := `UPDATE tournaments SET status = $1 WHERE status = $2 AND date < $3`
	result, err := r.db.ExecContext(ctx, query, models.StatusCerrado, models.StatusAbierto, now)
	if err != nil {
		return 0, err
	}
	affected, err := result.RowsAffected()
	return int(affected), err
}

func (r *postgresTournamentRepository) Register(ctx context.Context, reg *models.Registration) error {
	query := `
		INSERT INTO tournament_registrations (tournament_id, team_id)
		VALUES ($1, $2)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, reg.TournamentID, reg.TeamID).
		Scan(&reg.ID, &reg.CreatedAt)
	if err != nil {
		if mapped := constraintError(err, pqUniqueViolation, "tournament_registrations_tournament_id_team_id_key", ErrRegistrationConflict); mapped != nil {
			return mapped
		}
		return err
	}
	return nil
}

func (r *postgresTournamentRepository) Unregister(ctx context.Context, tournamentID, teamID int) error {
	query := `DELETE FROM tournament_registrations WHERE tournament_id = $1 AND team_id = $2`
	result, err := r.db.ExecContext(ctx, query, tournamentID, teamID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrRegistrationNotFound)
}

func (r *postgresTournamentRepository) ListRegistrations(ctx context.Context, tournamentID int) ([]models.Registration, error) {
	query := `
		SELECT id, tournament_id, team_id, created_at
		FROM tournament_registrations
		WHERE tournament_id = $1
		ORDER BY created_at ASC`
	return r.listRegistrations(ctx, query, tournamentID)
}

func (r *postgresTournamentRepository) ListRegistrationsByTeam(ctx context.Context, teamID int) ([]models.Registration, error) {
	query := `
		SELECT id, tournament_id, team_id, created_at
		FROM tournament_registrations
		WHERE team_id = $1
		ORDER BY created_at ASC`
	return r.listRegistrations(ctx, query, teamID)
}

func (r *postgresTournamentRepository) listRegistrations(ctx context.Context, query string, arg int) ([]models.Registration, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	regs := make([]models.Registration, 0)
	for rows.Next() {
		var reg models.Registration
		if err := rows.Scan(&reg.ID, &reg.TournamentID, &reg.TeamID, &reg.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan registration: %w", err)
		}
		regs = append(regs, reg)
	}
	return regs, rows.Err()
}
