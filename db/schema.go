package db

import (
	"context"
	"database/sql"
	"fmt"
)

// schemaStatements create the tournament schema. All statements are idempotent.
// Matches reference enrollments, so clearing players, tournaments or
// enrollments cascades to the matches that depend on them.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS players (
		id         serial      PRIMARY KEY,
		name       text        NOT NULL,
		created_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS tournaments (
		id         serial      PRIMARY KEY,
		name       text        NOT NULL,
		created_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS enrollments (
		seq           bigserial   NOT NULL,
		tournament_id integer     NOT NULL,
		player_id     integer     NOT NULL,
		enrolled_at   timestamptz NOT NULL DEFAULT now(),
		CONSTRAINT enrollments_pkey PRIMARY KEY (tournament_id, player_id),
		CONSTRAINT enrollments_tournament_id_fkey FOREIGN KEY (tournament_id)
			REFERENCES tournaments (id) ON DELETE CASCADE,
		CONSTRAINT enrollments_player_id_fkey FOREIGN KEY (player_id)
			REFERENCES players (id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS matches (
		id            serial      PRIMARY KEY,
		tournament_id integer     NOT NULL,
		player_a_id   integer     NOT NULL,
		player_b_id   integer     NOT NULL,
		winner_id     integer     NULL,
		reported_at   timestamptz NOT NULL DEFAULT now(),
		CONSTRAINT matches_tournament_id_fkey FOREIGN KEY (tournament_id)
			REFERENCES tournaments (id) ON DELETE CASCADE,
		CONSTRAINT matches_player_a_enrollment_fkey FOREIGN KEY (tournament_id, player_a_id)
			REFERENCES enrollments (tournament_id, player_id) ON DELETE CASCADE,
		CONSTRAINT matches_player_b_enrollment_fkey FOREIGN KEY (tournament_id, player_b_id)
			REFERENCES enrollments (tournament_id, player_id) ON DELETE CASCADE,
		CONSTRAINT chk_match_distinct_players CHECK (player_a_id <> player_b_id),
		CONSTRAINT chk_match_winner CHECK (winner_id IS NULL OR winner_id IN (player_a_id, player_b_id))
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS matches_unordered_pair_key
		ON matches (tournament_id, LEAST(player_a_id, player_b_id), GREATEST(player_a_id, player_b_id))`,
	`CREATE INDEX IF NOT EXISTS idx_enrollments_tournament_seq ON enrollments (tournament_id, seq)`,
}

// Migrate creates the schema inside a single transaction.
func Migrate(ctx context.Context, conn *sql.DB) (err error) {
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin migration transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
			return
		}
		if cErr := tx.Commit(); cErr != nil {
			err = fmt.Errorf("failed to commit migration: %w", cErr)
		}
	}()

	for i, stmt := range schemaStatements {
		if _, err = tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration statement %d failed: %w", i+1, err)
		}
	}
	return nil
}
