package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Riverafc7/esports-club-platform/models"
)

type StatRepository interface {
	ListByTournament(ctx context.Context, tournamentID int) ([]models.TeamStat, error)
	ReplaceForTournament(ctx context.Context, tournamentID int, stats []models.TeamStat) error
}

type postgresStatRepository struct {
	db *sql.DB
}

func NewPostgresStatRepository(db *sql.DB) StatRepository {
	return &postgresStatRepository{db: db}
}

func (r *postgresStatRepository) ListByTournament(ctx context.Context, tournamentID int) ([]models.TeamStat, error) {
	query := `
		SELECT tournament_id, team_id, wins, losses, points, games_played, updated_at
		FROM team_stats
		WHERE tournament_id = $1
		ORDER BY team_id ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := make([]models.TeamStat, 0)
	for rows.Next() {
		var s models.TeamStat
		if err := rows.Scan(&s.TournamentID, &s.TeamID, &s.Wins, &s.Losses, &s.Points, &s.GamesPlayed, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan team stat: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// ReplaceForTournament swaps a tournament's stat rows atomically: the table
// is always a full recompute from completed matches, never an increment.
func (r *postgresStatRepository) ReplaceForTournament(ctx context.Context, tournamentID int, stats []models.TeamStat) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("ReplaceForTournament failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM team_stats WHERE tournament_id = $1`, tournamentID); err != nil {
		return fmt.Errorf("ReplaceForTournament failed to clear stats: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO team_stats (tournament_id, team_id, wins, losses, points, games_played, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`)
	if err != nil {
		return fmt.Errorf("ReplaceForTournament failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	now := time.Now()
	for _, s := range stats {
		if _, err := stmt.ExecContext(ctx, tournamentID, s.TeamID, s.Wins, s.Losses, s.Points, s.GamesPlayed, now); err != nil {
			return fmt.Errorf("ReplaceForTournament failed for team %d: %w", s.TeamID, err)
		}
	}

	return tx.Commit()
}
