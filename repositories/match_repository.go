package repositories

import (
	"context"
	"fmt"

	"github.com/Dosada05/swiss-tournament/models"
)

func (q *postgresQueries) InsertMatch(ctx context.Context, match *models.Match) error {
	err := q.exec.QueryRowContext(ctx, `
		INSERT INTO matches (tournament_id, player_a_id, player_b_id, winner_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, reported_at`,
		match.TournamentID, match.PlayerAID, match.PlayerBID, match.WinnerID,
	).Scan(&match.ID, &match.ReportedAt)
	if err != nil {
		if mapped := mapConstraintError(err); mapped != err {
			return mapped
		}
		return fmt.Errorf("failed to insert match: %w", err)
	}
	return nil
}

func (q *postgresQueries) MatchExists(ctx context.Context, tournamentID, playerA, playerB int) (bool, error) {
	low, high := orderedPair(playerA, playerB)
	var exists bool
	err := q.exec.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM matches
			WHERE tournament_id = $1
			  AND LEAST(player_a_id, player_b_id) = $2
			  AND GREATEST(player_a_id, player_b_id) = $3
		)`, tournamentID, low, high,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to look up match %d-%d in tournament %d: %w", low, high, tournamentID, err)
	}
	return exists, nil
}

func (q *postgresQueries) MatchesForTournament(ctx context.Context, tournamentID int) ([]*models.Match, error) {
	rows, err := q.exec.QueryContext(ctx, `
		SELECT id, tournament_id, player_a_id, player_b_id, winner_id, reported_at
		FROM matches
		WHERE tournament_id = $1
		ORDER BY id ASC`, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches for tournament %d: %w", tournamentID, err)
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		var m models.Match
		if err := rows.Scan(&m.ID, &m.TournamentID, &m.PlayerAID, &m.PlayerBID, &m.WinnerID, &m.ReportedAt); err != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", err)
		}
		matches = append(matches, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during match rows iteration: %w", err)
	}
	return matches, nil
}

func (q *postgresQueries) ClearMatches(ctx context.Context, tournamentID *int) error {
	if tournamentID == nil {
		return q.clear(ctx, "matches", `DELETE FROM matches`)
	}
	return q.clear(ctx, "matches", `DELETE FROM matches WHERE tournament_id = $1`, *tournamentID)
}
