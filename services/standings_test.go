package services

import (
	"context"
	"testing"

	"github.com/Dosada05/swiss-tournament/models"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeStandings_NoMatches(t *testing.T) {
	players := []*models.Player{{ID: 3, Name: "Carol"}, {ID: 1, Name: "Alice"}}

	rows := ComputeStandings(players, nil)

	want := []models.StandingRow{
		{PlayerID: 3, Name: "Carol"},
		{PlayerID: 1, Name: "Alice"},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("standings mismatch (-want +got):\n%s", diff)
	}
}

func TestComputeStandings_IgnoresForeignPlayers(t *testing.T) {
	players := []*models.Player{{ID: 1, Name: "Alice"}, {ID: 2, Name: "Bob"}}
	matches := []*models.Match{
		{PlayerAID: 1, PlayerBID: 2, WinnerID: intPtr(2)},
		{PlayerAID: 1, PlayerBID: 9, WinnerID: intPtr(1)},
	}

	rows := ComputeStandings(players, matches)

	want := []models.StandingRow{
		{PlayerID: 1, Name: "Alice", Wins: 1, MatchesPlayed: 2},
		{PlayerID: 2, Name: "Bob", Wins: 1, MatchesPlayed: 1},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("standings mismatch (-want +got):\n%s", diff)
	}
}

func TestStandings_FreshTournamentHasAllEnrolledPlayers(t *testing.T) {
	env := newTestEnv(t, nil)
	tournament := env.tournament(t, "Spring Open")
	players := env.randomPlayers(t, tournament.ID, 5)
	other := env.tournament(t, "Other")
	env.randomPlayers(t, other.ID, 2)

	rows, err := env.standings.Standings(context.Background(), tournament.ID)
	require.NoError(t, err)
	require.Len(t, rows, len(players))

	for i, row := range rows {
		assert.Equal(t, players[i].ID, row.PlayerID)
		assert.Equal(t, players[i].Name, row.Name)
		assert.Zero(t, row.Wins)
		assert.Zero(t, row.Draws)
		assert.Zero(t, row.MatchesPlayed)
	}
}

func TestStandings_WinCountsOnlyInItsTournament(t *testing.T) {
	env := newTestEnv(t, nil)
	first := env.tournament(t, "First")
	second := env.tournament(t, "Second")
	players := env.randomPlayers(t, first.ID, 2)
	for _, p := range players {
		require.NoError(t, env.registration.Enroll(context.Background(), p.ID, second.ID))
	}

	env.report(t, first.ID, players[0], players[1], players[0])

	rows, err := env.standings.Standings(context.Background(), first.ID)
	require.NoError(t, err)
	assert.Equal(t, players[0].ID, rows[0].PlayerID)
	assert.Equal(t, 1, rows[0].Wins)
	assert.Equal(t, 2, rows[0].Points())

	rows, err = env.standings.Standings(context.Background(), second.ID)
	require.NoError(t, err)
	for _, row := range rows {
		assert.Zero(t, row.Wins)
		assert.Zero(t, row.MatchesPlayed)
	}
}

func TestStandings_DrawCountsForBoth(t *testing.T) {
	env := newTestEnv(t, nil)
	tournament := env.tournament(t, "Draws")
	players := env.randomPlayers(t, tournament.ID, 2)

	env.report(t, tournament.ID, players[0], players[1], nil)

	rows, err := env.standings.Standings(context.Background(), tournament.ID)
	require.NoError(t, err)
	for _, row := range rows {
		assert.Equal(t, 0, row.Wins)
		assert.Equal(t, 1, row.Draws)
		assert.Equal(t, 1, row.MatchesPlayed)
		assert.Equal(t, 1, row.Points())
	}
}

func TestStandings_FourPlayerScenario(t *testing.T) {
	env := newTestEnv(t, nil)
	tournament := env.tournament(t, "Four")
	p := env.enrolledPlayers(t, tournament.ID, "P1", "P2", "P3", "P4")

	env.report(t, tournament.ID, p[0], p[1], p[0])
	env.report(t, tournament.ID, p[2], p[3], p[2])

	rows, err := env.standings.Standings(context.Background(), tournament.ID)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.ElementsMatch(t, []int{p[0].ID, p[2].ID}, []int{rows[0].PlayerID, rows[1].PlayerID})
	assert.ElementsMatch(t, []int{p[1].ID, p[3].ID}, []int{rows[2].PlayerID, rows[3].PlayerID})

	pairings, err := env.pairings.SwissPairings(context.Background(), tournament.ID)
	require.NoError(t, err)
	require.Len(t, pairings, 2)
	assert.ElementsMatch(t, []int{p[0].ID, p[2].ID}, []int{pairings[0].Player1ID, pairings[0].Player2ID})
	assert.ElementsMatch(t, []int{p[1].ID, p[3].ID}, []int{pairings[1].Player1ID, pairings[1].Player2ID})
}

func TestStandings_SixPlayerTrace(t *testing.T) {
	env := newTestEnv(t, nil)
	tournament := env.tournament(t, "Six")
	p := env.enrolledPlayers(t, tournament.ID, "A", "B", "C", "D", "E", "F")
	a, b, c, d, e, f := p[0], p[1], p[2], p[3], p[4], p[5]

	env.report(t, tournament.ID, a, b, a)
	env.report(t, tournament.ID, c, d, c)
	env.report(t, tournament.ID, e, f, nil)
	env.report(t, tournament.ID, c, f, nil)
	env.report(t, tournament.ID, b, c, nil)
	env.report(t, tournament.ID, b, f, b)

	rows, err := env.standings.Standings(context.Background(), tournament.ID)
	require.NoError(t, err)

	want := []models.StandingRow{
		{PlayerID: c.ID, Name: "C", Wins: 1, Draws: 2, MatchesPlayed: 3},
		{PlayerID: b.ID, Name: "B", Wins: 1, Draws: 1, MatchesPlayed: 3},
		{PlayerID: a.ID, Name: "A", Wins: 1, Draws: 0, MatchesPlayed: 1},
		{PlayerID: f.ID, Name: "F", Wins: 0, Draws: 2, MatchesPlayed: 3},
		{PlayerID: e.ID, Name: "E", Wins: 0, Draws: 1, MatchesPlayed: 1},
		{PlayerID: d.ID, Name: "D", Wins: 0, Draws: 0, MatchesPlayed: 1},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("standings mismatch (-want +got):\n%s", diff)
	}
}

func TestStandings_UnknownTournament(t *testing.T) {
	env := newTestEnv(t, nil)

	_, err := env.standings.Standings(context.Background(), 404)
	assert.ErrorIs(t, err, ErrTournamentNotFound)
}
