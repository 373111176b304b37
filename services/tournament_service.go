package services

import (
	"context"
	"log/slog"

	"github.com/Dosada05/swiss-tournament/models"
	"golang.org/x/sync/errgroup"
)

// TournamentOverview is everything the tournament page shows at once.
type TournamentOverview struct {
	Tournament *models.Tournament   `json:"tournament"`
	Standings  []models.StandingRow `json:"standings"`
	Matches    []*models.Match      `json:"matches"`
}

type TournamentService interface {
	Overview(ctx context.Context, tournamentID int) (*TournamentOverview, error)
}

type tournamentService struct {
	registration RegistrationService
	standings    StandingsService
	matches      MatchService
	logger       *slog.Logger
}

func NewTournamentService(
	registration RegistrationService,
	standings StandingsService,
	matches MatchService,
	logger *slog.Logger,
) TournamentService {
	return &tournamentService{
		registration: registration,
		standings:    standings,
		matches:      matches,
		logger:       logger,
	}
}

// Overview loads the parts concurrently. Standings and matches come from
// separate reads, so a match reported in between may show up in one only.
func (s *tournamentService) Overview(ctx context.Context, tournamentID int) (*TournamentOverview, error) {
	overview := &TournamentOverview{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		tournament, err := s.registration.GetTournament(gctx, tournamentID)
		overview.Tournament = tournament
		return err
	})
	g.Go(func() error {
		rows, err := s.standings.Standings(gctx, tournamentID)
		overview.Standings = rows
		return err
	})
	g.Go(func() error {
		matches, err := s.matches.ListMatches(gctx, tournamentID)
		overview.Matches = matches
		return err
	})

	if err := g.Wait(); err != nil {
		s.logger.DebugContext(ctx, "tournament overview failed", slog.Int("tournament_id", tournamentID), slog.Any("error", err))
		return nil, err
	}
	return overview, nil
}
