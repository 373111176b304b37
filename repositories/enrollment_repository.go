package repositories

import (
	"context"
	"fmt"

	"github.com/Dosada05/swiss-tournament/models"
)

func (q *postgresQueries) Enroll(ctx context.Context, playerID, tournamentID int) error {
	_, err := q.exec.ExecContext(ctx,
		`INSERT INTO enrollments (player_id, tournament_id) VALUES ($1, $2)`,
		playerID, tournamentID,
	)
	if err != nil {
		if mapped := mapConstraintError(err); mapped != err {
			return mapped
		}
		return fmt.Errorf("failed to enroll player %d in tournament %d: %w", playerID, tournamentID, err)
	}
	return nil
}

func (q *postgresQueries) IsEnrolled(ctx context.Context, playerID, tournamentID int) (bool, error) {
	var enrolled bool
	err := q.exec.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM enrollments WHERE player_id = $1 AND tournament_id = $2)`,
		playerID, tournamentID,
	).Scan(&enrolled)
	if err != nil {
		return false, fmt.Errorf("failed to check enrollment of player %d in tournament %d: %w", playerID, tournamentID, err)
	}
	return enrolled, nil
}

func (q *postgresQueries) EnrolledPlayers(ctx context.Context, tournamentID int) ([]*models.Player, error) {
	rows, err := q.exec.QueryContext(ctx, `
		SELECT p.id, p.name, p.created_at
		FROM enrollments e
		JOIN players p ON p.id = e.player_id
		WHERE e.tournament_id = $1
		ORDER BY e.seq ASC`, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list players of tournament %d: %w", tournamentID, err)
	}
	return scanPlayers(rows)
}

func (q *postgresQueries) ClearEnrollments(ctx context.Context, tournamentID *int) error {
	if tournamentID == nil {
		return q.clear(ctx, "enrollments", `DELETE FROM enrollments`)
	}
	return q.clear(ctx, "enrollments", `DELETE FROM enrollments WHERE tournament_id = $1`, *tournamentID)
}
