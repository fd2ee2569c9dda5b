package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Riverafc7/esports-club-platform/models"
)

var (
	ErrTeamNotFound       = errors.New("team not found")
	ErrTeamNameConflict   = errors.New("team name conflict")
	ErrTeamCodeConflict   = errors.New("team code conflict")
	ErrPlayerNotFound     = errors.New("team player not found")
	ErrPlayerAlreadyAdded = errors.New("user is already on the team")
)

type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, id int) (*models.Team, error)
	GetByCode(ctx context.Context, code string) (*models.Team, error)
	GetByUserID(ctx context.Context, userID int) (*models.Team, error)
	Update(ctx context.Context, team *models.Team) error
	Delete(ctx context.Context, id int) error
	ListByTournament(ctx context.Context, tournamentID int) ([]models.Team, error)

	AddPlayer(ctx context.Context, player *models.TeamPlayer) error
	UpdatePlayer(ctx context.Context, player *models.TeamPlayer) error
	RemovePlayer(ctx context.Context, teamID, userID int) error
	ListPlayers(ctx context.Context, teamID int) ([]models.TeamPlayer, error)
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

const teamColumns = `id, name, code, created_by, logo_key, created_at`

func (r *postgresTeamRepository) scanTeam(row interface{ Scan(...interface{}) error }) (*models.Team, error) {
	var t models.Team
	err := row.Scan(&t.ID, &t.Name, &t.Code, &t.CreatedBy, &t.LogoKey, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to scan team: %w", err)
	}
	return &t, nil
}

func (r *postgresTeamRepository) Create(ctx context.Context, team *models.Team) error {
	query := `
		INSERT INTO teams (name, code, created_by)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, team.Name, team.Code, team.CreatedBy).
		Scan(&team.ID, &team.CreatedAt)
	if err != nil {
		if mapped := constraintError(err, pqUniqueViolation, "teams_name_key", ErrTeamNameConflict); mapped != nil {
			return mapped
		}
		if mapped := constraintError(err, pqUniqueViolation, "teams_code_key", ErrTeamCodeConflict); mapped != nil {
			return mapped
		}
		return err
	}
	return nil
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id int) (*models.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams WHERE id = $1`
	return r.scanTeam(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresTeamRepository) GetByCode(ctx context.Context, code string) (*models.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams WHERE code = $1`
	return r.scanTeam(r.db.QueryRowContext(ctx, query, code))
}

// GetByUserID returns the team the user belongs to, as owner or as player.
func (r *postgresTeamRepository) GetByUserID(ctx context.Context, userID int) (*models.Team, error) {
	query := `
		SELECT DISTINCT t.id, t.name, t.code, t.created_by, t.logo_key, t.created_at
		FROM teams t
		LEFT JOIN team_players tp ON tp.team_id = t.id
		WHERE t.created_by = $1 OR tp.user_id = $1
		LIMIT 1`
	return r.scanTeam(r.db.QueryRowContext(ctx, query, userID))
}

func (r *postgresTeamRepository) Update(ctx context.Context, team *models.Team) error {
	query := `UPDATE teams SET name = $1, logo_key = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, team.Name, team.LogoKey, team.ID)
	if err != nil {
		if mapped := constraintError(err, pqUniqueViolation, "teams_name_key", ErrTeamNameConflict); mapped != nil {
			return mapped
		}
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM teams WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) ListByTournament(ctx context.Context, tournamentID int) ([]models.Team, error) {
	query := `
		SELECT t.id, t.name, t.code, t.created_by, t.logo_key, t.created_at
		FROM teams t
		JOIN tournament_registrations reg ON reg.team_id = t.id
		WHERE reg.tournament_id = $1
		ORDER BY reg.created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]models.Team, 0)
	for rows.Next() {
		t, errScan := r.scanTeam(rows)
		if errScan != nil {
			return nil, errScan
		}
		teams = append(teams, *t)
	}
	return teams, rows.Err()
}

func (r *postgresTeamRepository) AddPlayer(ctx context.Context, player *models.TeamPlayer) error {
	query := `
		INSERT INTO team_players (team_id, user_id, nickname, role, opgg_link)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.ExecContext(ctx, query,
		player.TeamID, player.UserID, player.Nickname, player.Role, player.OpggLink,
	)
	if err != nil {
		if mapped := constraintError(err, pqUniqueViolation, "team_players_team_id_user_id_key", ErrPlayerAlreadyAdded); mapped != nil {
			return mapped
		}
		return err
	}
	return nil
}

func (r *postgresTeamRepository) UpdatePlayer(ctx context.Context, player *models.TeamPlayer) error {
	query := `
		UPDATE team_players SET nickname = $1, role = $2, opgg_link = $3
		WHERE team_id = $4 AND user_id = $5`

	result, err := r.db.ExecContext(ctx, query,
		player.Nickname, player.Role, player.OpggLink, player.TeamID, player.UserID,
	)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresTeamRepository) RemovePlayer(ctx context.Context, teamID, userID int) error {
	query := `DELETE FROM team_players WHERE team_id = $1 AND user_id = $2`
	result, err := r.db.ExecContext(ctx, query, teamID, userID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresTeamRepository) ListPlayers(ctx context.Context, teamID int) ([]models.TeamPlayer, error) {
	query := `
		SELECT team_id, user_id, nickname, role, opgg_link
		FROM team_players
		WHERE team_id = $1
		ORDER BY user_id ASC`

	rows, err := r.db.QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := make([]models.TeamPlayer, 0)
	for rows.Next() {
		var p models.TeamPlayer
		if err := rows.Scan(&p.TeamID, &p.UserID, &p.Nickname, &p.Role, &p.OpggLink); err != nil {
			return nil, fmt.Errorf("failed to scan team player: %w", err)
		}
		players = append(players, p)
	}
	return players, rows.Err()
}
