package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePlayer_RequiresName(t *testing.T) {
	env := newTestEnv(t, nil)

	for _, name := range []string{"", "   "} {
		_, err := env.registration.CreatePlayer(context.Background(), CreatePlayerInput{Name: name})
		assert.ErrorIs(t, err, ErrNameRequired)
	}
	_, err := env.registration.CreateTournament(context.Background(), CreateTournamentInput{Name: "\t"})
	assert.ErrorIs(t, err, ErrNameRequired)
}

func TestCreatePlayer_NamesNeedNotBeUnique(t *testing.T) {
	env := newTestEnv(t, nil)

	first, err := env.registration.CreatePlayer(context.Background(), CreatePlayerInput{Name: "Alex"})
	require.NoError(t, err)
	second, err := env.registration.CreatePlayer(context.Background(), CreatePlayerInput{Name: " Alex "})
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, "Alex", second.Name)

	count, err := env.registration.CountPlayers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestCreatePlayer_EnrollsInListedTournaments(t *testing.T) {
	env := newTestEnv(t, nil)
	first := env.tournament(t, "First")
	second := env.tournament(t, "Second")

	player, err := env.registration.CreatePlayer(context.Background(), CreatePlayerInput{
		Name: "Kim", TournamentIDs: []int{first.ID, second.ID},
	})
	require.NoError(t, err)

	for _, id := range []int{first.ID, second.ID} {
		players, err := env.registration.EnrolledPlayers(context.Background(), id)
		require.NoError(t, err)
		require.Len(t, players, 1)
		assert.Equal(t, player.ID, players[0].ID)
	}
}

func TestCreatePlayer_UnknownTournamentRollsBack(t *testing.T) {
	env := newTestEnv(t, nil)
	tournament := env.tournament(t, "Real")

	_, err := env.registration.CreatePlayer(context.Background(), CreatePlayerInput{
		Name: "Ghost", TournamentIDs: []int{tournament.ID, 999},
	})
	require.ErrorIs(t, err, ErrTournamentNotFound)

	count, err := env.registration.CountPlayers(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)

	players, err := env.registration.EnrolledPlayers(context.Background(), tournament.ID)
	require.NoError(t, err)
	assert.Empty(t, players)
}

func TestEnroll_Errors(t *testing.T) {
	env := newTestEnv(t, nil)
	tournament := env.tournament(t, "Cup")
	player := env.enrolledPlayers(t, tournament.ID, "Sam")[0]

	assert.ErrorIs(t, env.registration.Enroll(context.Background(), player.ID, tournament.ID), ErrAlreadyEnrolled)
	assert.ErrorIs(t, env.registration.Enroll(context.Background(), 999, tournament.ID), ErrPlayerNotFound)
	assert.ErrorIs(t, env.registration.Enroll(context.Background(), player.ID, 999), ErrTournamentNotFound)
}

func TestEnrolledPlayers_EnrollmentOrder(t *testing.T) {
	env := newTestEnv(t, nil)
	tournament := env.tournament(t, "Order")
	late, err := env.registration.CreatePlayer(context.Background(), CreatePlayerInput{Name: "Created first"})
	require.NoError(t, err)
	early := env.enrolledPlayers(t, tournament.ID, "Enrolled first")[0]
	require.NoError(t, env.registration.Enroll(context.Background(), late.ID, tournament.ID))

	players, err := env.registration.EnrolledPlayers(context.Background(), tournament.ID)
	require.NoError(t, err)
	require.Len(t, players, 2)
	assert.Equal(t, early.ID, players[0].ID)
	assert.Equal(t, late.ID, players[1].ID)
}

func TestClearOperations(t *testing.T) {
	env := newTestEnv(t, nil)
	first := env.tournament(t, "First")
	second := env.tournament(t, "Second")
	a := env.enrolledPlayers(t, first.ID, "A", "B")
	b := env.enrolledPlayers(t, second.ID, "C", "D")
	env.report(t, first.ID, a[0], a[1], nil)
	env.report(t, second.ID, b[0], b[1], b[0])

	require.NoError(t, env.registration.ClearMatches(context.Background(), &first.ID))
	matches, err := env.matches.ListMatches(context.Background(), first.ID)
	require.NoError(t, err)
	assert.Empty(t, matches)
	matches, err = env.matches.ListMatches(context.Background(), second.ID)
	require.NoError(t, err)
	assert.Len(t, matches, 1)

	require.NoError(t, env.registration.ClearEnrollments(context.Background(), &second.ID))
	rows, err := env.standings.Standings(context.Background(), second.ID)
	require.NoError(t, err)
	assert.Empty(t, rows)
	matches, err = env.matches.ListMatches(context.Background(), second.ID)
	require.NoError(t, err)
	assert.Empty(t, matches)

	require.NoError(t, env.registration.ClearPlayers(context.Background()))
	count, err := env.registration.CountPlayers(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)

	require.NoError(t, env.registration.ClearTournaments(context.Background()))
	tournaments, err := env.registration.ListTournaments(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tournaments)
}
