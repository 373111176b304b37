package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Dosada05/swiss-tournament/brackets"
	"github.com/Dosada05/swiss-tournament/metrics"
	"github.com/Dosada05/swiss-tournament/models"
	"github.com/Dosada05/swiss-tournament/repositories"
)

type PairingService interface {
	// SwissPairings pairs the current standings of a tournament for the next
	// round. An odd number of enrolled players yields ErrOddPlayerCount.
	SwissPairings(ctx context.Context, tournamentID int) ([]models.Pairing, error)
}

type pairingService struct {
	repo      repositories.Repository
	generator brackets.PairingGenerator
	metrics   metrics.Recorder
	logger    *slog.Logger
}

func NewPairingService(repo repositories.Repository, generator brackets.PairingGenerator, recorder metrics.Recorder, logger *slog.Logger) PairingService {
	return &pairingService{repo: repo, generator: generator, metrics: recorder, logger: logger}
}

func (s *pairingService) SwissPairings(ctx context.Context, tournamentID int) ([]models.Pairing, error) {
	var standings []models.StandingRow
	err := s.repo.RunInTx(ctx, repositories.TxOptions{ReadOnly: true}, func(q repositories.Queries) error {
		var err error
		standings, err = timedStandings(ctx, q, tournamentID, s.metrics)
		return err
	})
	if err != nil {
		return nil, err
	}

	pairings, err := s.generator.GeneratePairings(ctx, standings)
	if err != nil {
		s.logger.WarnContext(ctx, "pairing rejected",
			slog.Int("tournament_id", tournamentID),
			slog.String("generator", s.generator.GetName()),
			slog.Any("error", err))
		return nil, fmt.Errorf("tournament %d: %w", tournamentID, err)
	}
	return pairings, nil
}
