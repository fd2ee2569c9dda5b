package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Riverafc7/esports-club-platform/models"
)

var ErrMatchNotFound = errors.New("match not found")

type MatchRepository interface {
	BatchCreate(ctx context.Context, matches []*models.Match) error
	GetByID(ctx context.Context, id int) (*models.Match, error)
	Update(ctx context.Context, match *models.Match) error
	ListByTournament(ctx context.Context, tournamentID int) ([]models.Match, error)
	ListByTeam(ctx context.Context, teamID int) ([]models.Match, error)
	ListAll(ctx context.Context) ([]models.Match, error)
	DeleteByTournamentAndStatus(ctx context.Context, tournamentID int, status models.MatchStatus) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

const matchColumns = `id, tournament_id, jornada,
	team1_id, team1_name, team1_logo, team2_id, team2_name, team2_logo,
	match_date, match_time, match_format, status, score_team1, score_team2`

func (r *postgresMatchRepository) scanMatch(row interface{ Scan(...interface{}) error }) (*models.Match, error) {
	var m models.Match
	err := row.Scan(
		&m.ID, &m.TournamentID, &m.Jornada,
		&m.Team1ID, &m.Team1Name, &m.Team1Logo,
		&m.Team2ID, &m.Team2Name, &m.Team2Logo,
		&m.MatchDate, &m.MatchTime, &m.Format, &m.Status,
		&m.ScoreTeam1, &m.ScoreTeam2,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to scan match: %w", err)
	}
	return &m, nil
}

// BatchCreate inserts a generated schedule in a single transaction so a
// half-written jornada never becomes visible.
func (r *postgresMatchRepository) BatchCreate(ctx context.Context, matches []*models.Match) error {
	if len(matches) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("BatchCreate failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO matches
			(tournament_id, jornada, team1_id, team1_name, team1_logo,
			 team2_id, team2_name, team2_logo, match_date, match_time,
			 match_format, status, score_team1, score_team2)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id`)
	if err != nil {
		return fmt.Errorf("BatchCreate failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, m := range matches {
		err = stmt.QueryRowContext(ctx,
			m.TournamentID, m.Jornada, m.Team1ID, m.Team1Name, m.Team1Logo,
			m.Team2ID, m.Team2Name, m.Team2Logo, m.MatchDate, m.MatchTime,
			m.Format, m.Status, m.ScoreTeam1, m.ScoreTeam2,
		).Scan(&m.ID)
		if err != nil {
			return fmt.Errorf("BatchCreate failed for jornada %d: %w", m.Jornada, err)
		}
	}

	return tx.Commit()
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id int) (*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`
	return r.scanMatch(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresMatchRepository) Update(ctx context.Context, match *models.Match) error {
	query := `
		UPDATE matches
		SET jornada = $1, match_date = $2, match_time = $3, match_format = $4,
		    status = $5, score_team1 = $6, score_team2 = $7
		WHERE id = $8`

	result, err := r.db.ExecContext(ctx, query,
		match.Jornada, match.MatchDate, match.MatchTime, match.Format,
		match.Status, match.ScoreTeam1, match.ScoreTeam2, match.ID,
	)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) ListByTournament(ctx context.Context, tournamentID int) ([]models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches
		WHERE tournament_id = $1
		ORDER BY jornada ASC, match_date ASC, id ASC`
	return r.list(ctx, query, tournamentID)
}

func (r *postgresMatchRepository) ListByTeam(ctx context.Context, teamID int) ([]models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches
		WHERE team1_id = $1 OR team2_id = $1
		ORDER BY jornada ASC, match_date ASC, id ASC`
	return r.list(ctx, query, teamID)
}

func (r *postgresMatchRepository) ListAll(ctx context.Context) ([]models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches
		ORDER BY tournament_id ASC, jornada ASC, id ASC`
	return r.list(ctx, query)
}

func (r *postgresMatchRepository) DeleteByTournamentAndStatus(ctx context.Context, tournamentID int, status models.MatchStatus) error {
	query := `DELETE FROM matches WHERE tournament_id = $1 AND status = $2`
	_, err := r.db.ExecContext(ctx, query, tournamentID, status)
	return err
}

func (r *postgresMatchRepository) list(ctx context.Context, query string, args ...interface{}) ([]models.Match, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]models.Match, 0)
	for rows.Next() {
		m, errScan := r.scanMatch(rows)
		if errScan != nil {
			return nil, errScan
		}
		matches = append(matches, *m)
	}
	return matches, rows.Err()
}
