package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type postgresRepository struct {
	postgresQueries
	db *sql.DB
}

// NewPostgresRepository wraps an open connection pool (see db.Connect).
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{
		postgresQueries: postgresQueries{exec: db},
		db:              db,
	}
}

// postgresQueries runs every query against exec, which is either the pool or
// an open *sql.Tx.
type postgresQueries struct {
	exec SQLExecutor
	inTx bool
}

func (r *postgresRepository) RunInTx(ctx context.Context, opts TxOptions, fn func(q Queries) error) (err error) {
	txOpts := &sql.TxOptions{Isolation: sql.LevelReadCommitted}
	if opts.ReadOnly {
		// A single snapshot for every statement of the read.
		txOpts = &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}
	}

	tx, err := r.db.BeginTx(ctx, txOpts)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				err = fmt.Errorf("%w (rollback also failed: %v)", err, rbErr)
			}
		} else if cErr := tx.Commit(); cErr != nil {
			err = fmt.Errorf("failed to commit transaction: %w", cErr)
		}
	}()

	return fn(&postgresQueries{exec: tx, inTx: true})
}

func (r *postgresRepository) Close() error {
	return r.db.Close()
}

func (q *postgresQueries) LockTournament(ctx context.Context, id int) error {
	if !q.inTx {
		return ErrTransactionRequired
	}
	var locked int
	err := q.exec.QueryRowContext(ctx, `SELECT id FROM tournaments WHERE id = $1 FOR UPDATE`, id).Scan(&locked)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrTournamentNotFound
		}
		return fmt.Errorf("failed to lock tournament %d: %w", id, err)
	}
	return nil
}

func (q *postgresQueries) clear(ctx context.Context, what, query string, args ...interface{}) error {
	if _, err := q.exec.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to clear %s: %w", what, err)
	}
	return nil
}
