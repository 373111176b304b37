package services

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/Dosada05/swiss-tournament/brackets"
	"github.com/Dosada05/swiss-tournament/metrics"
	"github.com/Dosada05/swiss-tournament/models"
	"github.com/Dosada05/swiss-tournament/repositories"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeNotifier struct {
	PublishStandingsFunc func(tournamentID int, payload interface{})
}

func (f *fakeNotifier) PublishStandings(tournamentID int, payload interface{}) {
	if f.PublishStandingsFunc != nil {
		f.PublishStandingsFunc(tournamentID, payload)
	}
}

type testEnv struct {
	repo         repositories.Repository
	registration RegistrationService
	standings    StandingsService
	pairings     PairingService
	matches      MatchService
}

func newTestEnv(t *testing.T, notifier StandingsNotifier) *testEnv {
	t.Helper()
	repo := repositories.NewMemoryRepository()
	t.Cleanup(func() { _ = repo.Close() })

	logger := discardLogger()
	recorder := metrics.NewNoop()
	standings := NewStandingsService(repo, recorder, logger)
	return &testEnv{
		repo:         repo,
		registration: NewRegistrationService(repo, recorder, logger),
		standings:    standings,
		pairings:     NewPairingService(repo, brackets.NewSwissGenerator(), recorder, logger),
		matches:      NewMatchService(repo, standings, notifier, recorder, logger),
	}
}

func (e *testEnv) tournament(t *testing.T, name string) *models.Tournament {
	t.Helper()
	tournament, err := e.registration.CreateTournament(context.Background(), CreateTournamentInput{Name: name})
	require.NoError(t, err)
	return tournament
}

// enrolledPlayers creates players with the given names and enrolls them in order.
func (e *testEnv) enrolledPlayers(t *testing.T, tournamentID int, names ...string) []*models.Player {
	t.Helper()
	players := make([]*models.Player, len(names))
	for i, name := range names {
		p, err := e.registration.CreatePlayer(context.Background(), CreatePlayerInput{Name: name, TournamentIDs: []int{tournamentID}})
		require.NoError(t, err)
		players[i] = p
	}
	return players
}

func (e *testEnv) randomPlayers(t *testing.T, tournamentID, n int) []*models.Player {
	t.Helper()
	faker := gofakeit.New(42)
	names := make([]string, n)
	for i := range names {
		names[i] = faker.Name()
	}
	return e.enrolledPlayers(t, tournamentID, names...)
}

func (e *testEnv) report(t *testing.T, tournamentID int, a, b *models.Player, winner *models.Player) {
	t.Helper()
	report := MatchReport{TournamentID: tournamentID, PlayerAID: a.ID, PlayerBID: b.ID}
	if winner != nil {
		report.WinnerID = &winner.ID
	}
	_, err := e.matches.ReportMatch(context.Background(), report)
	require.NoError(t, err)
}

func intPtr(v int) *int { return &v }
