package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/Dosada05/swiss-tournament/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type seeded struct {
	repo       Repository
	tournament *models.Tournament
	players    []*models.Player
}

func seed(t *testing.T, names ...string) seeded {
	t.Helper()
	ctx := context.Background()
	repo := NewMemoryRepository()
	tournament, err := repo.CreateTournament(ctx, "Seeded")
	require.NoError(t, err)

	players := make([]*models.Player, len(names))
	for i, name := range names {
		players[i], err = repo.CreatePlayer(ctx, name)
		require.NoError(t, err)
		require.NoError(t, repo.Enroll(ctx, players[i].ID, tournament.ID))
	}
	return seeded{repo: repo, tournament: tournament, players: players}
}

func TestMemory_RollbackOnError(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	boom := errors.New("boom")

	err := repo.RunInTx(ctx, TxOptions{}, func(q Queries) error {
		if _, err := q.CreatePlayer(ctx, "Ghost"); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	count, err := repo.CountPlayers(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestMemory_CommitIsVisible(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	var created *models.Player
	require.NoError(t, repo.RunInTx(ctx, TxOptions{}, func(q Queries) error {
		var err error
		created, err = q.CreatePlayer(ctx, "Ana")
		return err
	}))

	got, err := repo.GetPlayer(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.Name)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestMemory_ReadOnlyRejectsWrites(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	err := repo.RunInTx(ctx, TxOptions{ReadOnly: true}, func(q Queries) error {
		_, err := q.CreateTournament(ctx, "nope")
		return err
	})
	assert.ErrorIs(t, err, ErrReadOnlyTransaction)
}

func TestMemory_LockTournament(t *testing.T) {
	ctx := context.Background()
	s := seed(t)

	assert.ErrorIs(t, s.repo.LockTournament(ctx, s.tournament.ID), ErrTransactionRequired)

	err := s.repo.RunInTx(ctx, TxOptions{}, func(q Queries) error {
		return q.LockTournament(ctx, 404)
	})
	assert.ErrorIs(t, err, ErrTournamentNotFound)

	assert.NoError(t, s.repo.RunInTx(ctx, TxOptions{}, func(q Queries) error {
		return q.LockTournament(ctx, s.tournament.ID)
	}))
}

func TestMemory_EnrollmentOrderAndErrors(t *testing.T) {
	ctx := context.Background()
	s := seed(t, "first", "second", "third")

	players, err := s.repo.EnrolledPlayers(ctx, s.tournament.ID)
	require.NoError(t, err)
	require.Len(t, players, 3)
	for i, p := range players {
		assert.Equal(t, s.players[i].ID, p.ID)
	}

	assert.ErrorIs(t, s.repo.Enroll(ctx, s.players[0].ID, s.tournament.ID), ErrAlreadyEnrolled)
	assert.ErrorIs(t, s.repo.Enroll(ctx, 99, s.tournament.ID), ErrPlayerNotFound)
	assert.ErrorIs(t, s.repo.Enroll(ctx, s.players[0].ID, 99), ErrTournamentNotFound)

	ok, err := s.repo.IsEnrolled(ctx, s.players[1].ID, s.tournament.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = s.repo.IsEnrolled(ctx, s.players[1].ID, 99)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemory_InsertMatchBackstops(t *testing.T) {
	ctx := context.Background()
	s := seed(t, "a", "b", "c")
	outsider, err := s.repo.CreatePlayer(ctx, "outsider")
	require.NoError(t, err)
	a, b, c := s.players[0].ID, s.players[1].ID, s.players[2].ID
	tid := s.tournament.ID

	require.NoError(t, s.repo.InsertMatch(ctx, &models.Match{TournamentID: tid, PlayerAID: a, PlayerBID: b, WinnerID: &a}))

	tests := []struct {
		name  string
		match models.Match
		want  error
	}{
		{"self play", models.Match{TournamentID: tid, PlayerAID: c, PlayerBID: c}, ErrMatchSelfPlay},
		{"winner outside", models.Match{TournamentID: tid, PlayerAID: b, PlayerBID: c, WinnerID: &a}, ErrMatchWinnerInvalid},
		{"not enrolled", models.Match{TournamentID: tid, PlayerAID: c, PlayerBID: outsider.ID}, ErrMatchNotEnrolled},
		{"reversed pair", models.Match{TournamentID: tid, PlayerAID: b, PlayerBID: a}, ErrMatchPairConflict},
		{"unknown tournament", models.Match{TournamentID: 99, PlayerAID: a, PlayerBID: c}, ErrTournamentNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := tt.match
			assert.ErrorIs(t, s.repo.InsertMatch(ctx, &m), tt.want)
		})
	}

	exists, err := s.repo.MatchExists(ctx, tid, b, a)
	require.NoError(t, err)
	assert.True(t, exists)

	matches, err := s.repo.MatchesForTournament(ctx, tid)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, a, *matches[0].WinnerID)
}

func TestMemory_ReturnedMatchesAreCopies(t *testing.T) {
	ctx := context.Background()
	s := seed(t, "a", "b")
	a, b := s.players[0].ID, s.players[1].ID
	require.NoError(t, s.repo.InsertMatch(ctx, &models.Match{TournamentID: s.tournament.ID, PlayerAID: a, PlayerBID: b, WinnerID: &a}))

	matches, err := s.repo.MatchesForTournament(ctx, s.tournament.ID)
	require.NoError(t, err)
	*matches[0].WinnerID = b

	matches, err = s.repo.MatchesForTournament(ctx, s.tournament.ID)
	require.NoError(t, err)
	assert.Equal(t, a, *matches[0].WinnerID)
}

func TestMemory_ClearCascades(t *testing.T) {
	ctx := context.Background()
	s := seed(t, "a", "b")
	other, err := s.repo.CreateTournament(ctx, "Other")
	require.NoError(t, err)
	for _, p := range s.players {
		require.NoError(t, s.repo.Enroll(ctx, p.ID, other.ID))
	}
	a, b := s.players[0].ID, s.players[1].ID
	require.NoError(t, s.repo.InsertMatch(ctx, &models.Match{TournamentID: s.tournament.ID, PlayerAID: a, PlayerBID: b}))
	require.NoError(t, s.repo.InsertMatch(ctx, &models.Match{TournamentID: other.ID, PlayerAID: a, PlayerBID: b}))

	require.NoError(t, s.repo.ClearEnrollments(ctx, &s.tournament.ID))

	players, err := s.repo.EnrolledPlayers(ctx, s.tournament.ID)
	require.NoError(t, err)
	assert.Empty(t, players)
	matches, err := s.repo.MatchesForTournament(ctx, s.tournament.ID)
	require.NoError(t, err)
	assert.Empty(t, matches)
	matches, err = s.repo.MatchesForTournament(ctx, other.ID)
	require.NoError(t, err)
	assert.Len(t, matches, 1)

	require.NoError(t, s.repo.ClearTournaments(ctx))
	tournaments, err := s.repo.ListTournaments(ctx)
	require.NoError(t, err)
	assert.Empty(t, tournaments)
	count, err := s.repo.CountPlayers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestMemory_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewMemoryRepository().RunInTx(ctx, TxOptions{}, func(q Queries) error {
		t.Fatal("fn must not run")
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}
