package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/swiss-tournament/models"
)

type SQLExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

var (
	ErrPlayerNotFound      = errors.New("player not found")
	ErrTournamentNotFound  = errors.New("tournament not found")
	ErrAlreadyEnrolled     = errors.New("player is already enrolled in this tournament")
	ErrMatchPairConflict   = errors.New("match between these players already exists in this tournament")
	ErrMatchSelfPlay       = errors.New("match players must be distinct")
	ErrMatchWinnerInvalid  = errors.New("match winner must be one of the players")
	ErrMatchNotEnrolled    = errors.New("match player is not enrolled in this tournament")
	ErrTransactionRequired = errors.New("operation requires a transaction")
)

// Queries is the typed persistence contract used by the services. Every method
// works both on the root repository and inside RunInTx.
//
// Error semantics:
//   - ErrPlayerNotFound / ErrTournamentNotFound: referenced record does not exist
//   - ErrAlreadyEnrolled: (player, tournament) enrollment already exists
//   - ErrMatchPairConflict: storage-level backstop for a rematch in the same tournament
//   - other errors: infrastructure failures, returned wrapped and never retried
type Queries interface {
	CreatePlayer(ctx context.Context, name string) (*models.Player, error)
	GetPlayer(ctx context.Context, id int) (*models.Player, error)
	ListPlayers(ctx context.Context) ([]*models.Player, error)
	CountPlayers(ctx context.Context) (int, error)

	CreateTournament(ctx context.Context, name string) (*models.Tournament, error)
	GetTournament(ctx context.Context, id int) (*models.Tournament, error)
	ListTournaments(ctx context.Context) ([]*models.Tournament, error)
	// LockTournament takes the per-tournament write lock for the rest of the
	// transaction. Outside a transaction it fails with ErrTransactionRequired.
	LockTournament(ctx context.Context, id int) error

	Enroll(ctx context.Context, playerID, tournamentID int) error
	IsEnrolled(ctx context.Context, playerID, tournamentID int) (bool, error)
	// EnrolledPlayers returns the players of a tournament in enrollment order.
	EnrolledPlayers(ctx context.Context, tournamentID int) ([]*models.Player, error)

	InsertMatch(ctx context.Context, match *models.Match) error
	// MatchExists checks the unordered pair {playerA, playerB}.
	MatchExists(ctx context.Context, tournamentID, playerA, playerB int) (bool, error)
	// MatchesForTournament returns matches in reporting order.
	MatchesForTournament(ctx context.Context, tournamentID int) ([]*models.Match, error)

	// ClearMatches removes the matches of one tournament, or all of them when tournamentID is nil.
	ClearMatches(ctx context.Context, tournamentID *int) error
	// ClearEnrollments removes the enrollments of one tournament, or all of them when tournamentID is nil.
	ClearEnrollments(ctx context.Context, tournamentID *int) error
	ClearPlayers(ctx context.Context) error
	ClearTournaments(ctx context.Context) error
}

type TxOptions struct {
	ReadOnly bool
}

// Repository is the handle injected into services. There is no package-level
// connection state.
type Repository interface {
	Queries
	// RunInTx runs fn against a transactional view. The transaction commits when
	// fn returns nil and rolls back otherwise; fn's error is returned unchanged.
	RunInTx(ctx context.Context, opts TxOptions, fn func(q Queries) error) error
	Close() error
}
