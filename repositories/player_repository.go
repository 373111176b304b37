package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/swiss-tournament/models"
)

func (q *postgresQueries) CreatePlayer(ctx context.Context, name string) (*models.Player, error) {
	p := &models.Player{Name: name}
	err := q.exec.QueryRowContext(ctx,
		`INSERT INTO players (name) VALUES ($1) RETURNING id, created_at`,
		name,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}
	return p, nil
}

func (q *postgresQueries) GetPlayer(ctx context.Context, id int) (*models.Player, error) {
	p := &models.Player{}
	err := q.exec.QueryRowContext(ctx,
		`SELECT id, name, created_at FROM players WHERE id = $1`, id,
	).Scan(&p.ID, &p.Name, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player %d: %w", id, err)
	}
	return p, nil
}

func (q *postgresQueries) ListPlayers(ctx context.Context) ([]*models.Player, error) {
	rows, err := q.exec.QueryContext(ctx, `SELECT id, name, created_at FROM players ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	return scanPlayers(rows)
}

func (q *postgresQueries) CountPlayers(ctx context.Context) (int, error) {
	var count int
	if err := q.exec.QueryRowContext(ctx, `SELECT COUNT(*) FROM players`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count players: %w", err)
	}
	return count, nil
}

func (q *postgresQueries) ClearPlayers(ctx context.Context) error {
	// enrollments and matches go with them (ON DELETE CASCADE)
	return q.clear(ctx, "players", `DELETE FROM players`)
}

func scanPlayers(rows *sql.Rows) ([]*models.Player, error) {
	defer rows.Close()

	players := make([]*models.Player, 0)
	for rows.Next() {
		var p models.Player
		if err := rows.Scan(&p.ID, &p.Name, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan player row: %w", err)
		}
		players = append(players, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating player rows: %w", err)
	}
	return players, nil
}
