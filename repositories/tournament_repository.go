package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/swiss-tournament/models"
)

func (q *postgresQueries) CreateTournament(ctx context.Context, name string) (*models.Tournament, error) {
	t := &models.Tournament{Name: name}
	err := q.exec.QueryRowContext(ctx,
		`INSERT INTO tournaments (name) VALUES ($1) RETURNING id, created_at`,
		name,
	).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create tournament: %w", err)
	}
	return t, nil
}

func (q *postgresQueries) GetTournament(ctx context.Context, id int) (*models.Tournament, error) {
	t := &models.Tournament{}
	err := q.exec.QueryRowContext(ctx,
		`SELECT id, name, created_at FROM tournaments WHERE id = $1`, id,
	).Scan(&t.ID, &t.Name, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to get tournament %d: %w", id, err)
	}
	return t, nil
}

func (q *postgresQueries) ListTournaments(ctx context.Context) ([]*models.Tournament, error) {
	rows, err := q.exec.QueryContext(ctx, `SELECT id, name, created_at FROM tournaments ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	defer rows.Close()

	tournaments := make([]*models.Tournament, 0)
	for rows.Next() {
		var t models.Tournament
		if err := rows.Scan(&t.ID, &t.Name, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan tournament row: %w", err)
		}
		tournaments = append(tournaments, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tournament rows: %w", err)
	}
	return tournaments, nil
}

func (q *postgresQueries) ClearTournaments(ctx context.Context) error {
	return q.clear(ctx, "tournaments", `DELETE FROM tournaments`)
}
