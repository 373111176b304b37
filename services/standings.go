package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/Dosada05/swiss-tournament/metrics"
	"github.com/Dosada05/swiss-tournament/models"
	"github.com/Dosada05/swiss-tournament/repositories"
)

// ComputeStandings ranks the enrolled players by wins, then draws. Ties keep
// enrollment order, so players must be passed in enrollment order. Matches
// involving players outside the list are ignored.
func ComputeStandings(players []*models.Player, matches []*models.Match) []models.StandingRow {
	rows := make([]models.StandingRow, len(players))
	index := make(map[int]int, len(players))
	for i, p := range players {
		rows[i] = models.StandingRow{PlayerID: p.ID, Name: p.Name}
		index[p.ID] = i
	}

	for _, m := range matches {
		for _, playerID := range []int{m.PlayerAID, m.PlayerBID} {
			i, ok := index[playerID]
			if !ok {
				continue
			}
			rows[i].MatchesPlayed++
			switch {
			case m.IsDraw():
				rows[i].Draws++
			case *m.WinnerID == playerID:
				rows[i].Wins++
			}
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Wins != rows[j].Wins {
			return rows[i].Wins > rows[j].Wins
		}
		return rows[i].Draws > rows[j].Draws
	})
	return rows
}

type StandingsService interface {
	Standings(ctx context.Context, tournamentID int) ([]models.StandingRow, error)
}

type standingsService struct {
	repo    repositories.Repository
	metrics metrics.Recorder
	logger  *slog.Logger
}

func NewStandingsService(repo repositories.Repository, recorder metrics.Recorder, logger *slog.Logger) StandingsService {
	return &standingsService{repo: repo, metrics: recorder, logger: logger}
}

func (s *standingsService) Standings(ctx context.Context, tournamentID int) ([]models.StandingRow, error) {
	var rows []models.StandingRow
	err := s.repo.RunInTx(ctx, repositories.TxOptions{ReadOnly: true}, func(q repositories.Queries) error {
		var err error
		rows, err = timedStandings(ctx, q, tournamentID, s.metrics)
		return err
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// loadStandings reads players and matches from q and computes the rows. It
// is shared by every read that must see standings from one snapshot.
func loadStandings(ctx context.Context, q repositories.Queries, tournamentID int) ([]models.StandingRow, error) {
	if _, err := q.GetTournament(ctx, tournamentID); err != nil {
		return nil, fmt.Errorf("standings for tournament %d: %w", tournamentID, mapRepositoryError(err))
	}
	players, err := q.EnrolledPlayers(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load players of tournament %d: %w", tournamentID, err)
	}
	matches, err := q.MatchesForTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load matches of tournament %d: %w", tournamentID, err)
	}
	return ComputeStandings(players, matches), nil
}

// timedStandings wraps loadStandings with the standings metrics.
func timedStandings(ctx context.Context, q repositories.Queries, tournamentID int, recorder metrics.Recorder) ([]models.StandingRow, error) {
	start := time.Now()
	rows, err := loadStandings(ctx, q, tournamentID)
	if err != nil {
		return nil, err
	}
	recorder.StandingsComputed(len(rows), time.Since(start))
	return rows, nil
}
