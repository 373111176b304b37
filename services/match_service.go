package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Dosada05/swiss-tournament/metrics"
	"github.com/Dosada05/swiss-tournament/models"
	"github.com/Dosada05/swiss-tournament/repositories"
)

// StandingsNotifier receives fresh standings after a match is stored.
type StandingsNotifier interface {
	PublishStandings(tournamentID int, payload interface{})
}

type MatchService interface {
	// ReportMatch validates and stores a result in one transaction holding the
	// tournament's write lock.
	ReportMatch(ctx context.Context, report MatchReport) (*models.Match, error)
	ListMatches(ctx context.Context, tournamentID int) ([]*models.Match, error)
}

type matchService struct {
	repo      repositories.Repository
	standings StandingsService
	notifier  StandingsNotifier
	metrics   metrics.Recorder
	logger    *slog.Logger
}

// NewMatchService builds the service. notifier may be nil.
func NewMatchService(
	repo repositories.Repository,
	standings StandingsService,
	notifier StandingsNotifier,
	recorder metrics.Recorder,
	logger *slog.Logger,
) MatchService {
	return &matchService{
		repo:      repo,
		standings: standings,
		notifier:  notifier,
		metrics:   recorder,
		logger:    logger,
	}
}

func (s *matchService) ReportMatch(ctx context.Context, report MatchReport) (*models.Match, error) {
	if err := checkReportShape(report); err != nil {
		s.reject(ctx, report, err)
		return nil, err
	}

	match := &models.Match{
		TournamentID: report.TournamentID,
		PlayerAID:    report.PlayerAID,
		PlayerBID:    report.PlayerBID,
		WinnerID:     report.WinnerID,
	}
	err := s.repo.RunInTx(ctx, repositories.TxOptions{}, func(q repositories.Queries) error {
		if err := q.LockTournament(ctx, report.TournamentID); err != nil {
			return fmt.Errorf("%w: id %d", mapRepositoryError(err), report.TournamentID)
		}
		if err := ValidateMatch(ctx, q, report); err != nil {
			return err
		}
		if err := q.InsertMatch(ctx, match); err != nil {
			return fmt.Errorf("%w: storing match", mapRepositoryError(err))
		}
		return nil
	})
	if err != nil {
		s.reject(ctx, report, err)
		return nil, err
	}

	s.metrics.MatchReported(match.IsDraw())
	s.logger.InfoContext(ctx, "match reported",
		slog.Int("match_id", match.ID),
		slog.Int("tournament_id", match.TournamentID),
		slog.Int("player_a_id", match.PlayerAID),
		slog.Int("player_b_id", match.PlayerBID),
		slog.Bool("draw", match.IsDraw()))

	s.publish(ctx, match.TournamentID)
	return match, nil
}

func (s *matchService) ListMatches(ctx context.Context, tournamentID int) ([]*models.Match, error) {
	var matches []*models.Match
	err := s.repo.RunInTx(ctx, repositories.TxOptions{ReadOnly: true}, func(q repositories.Queries) error {
		if _, err := q.GetTournament(ctx, tournamentID); err != nil {
			return fmt.Errorf("%w: id %d", mapRepositoryError(err), tournamentID)
		}
		var err error
		matches, err = q.MatchesForTournament(ctx, tournamentID)
		if err != nil {
			return fmt.Errorf("failed to list matches of tournament %d: %w", tournamentID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if matches == nil {
		return []*models.Match{}, nil
	}
	return matches, nil
}

// publish pushes the new standings to subscribers. A failure here never fails
// the report, the match is already committed.
func (s *matchService) publish(ctx context.Context, tournamentID int) {
	if s.notifier == nil || s.standings == nil {
		return
	}
	rows, err := s.standings.Standings(ctx, tournamentID)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to load standings for notification",
			slog.Int("tournament_id", tournamentID),
			slog.Any("error", err))
		return
	}
	s.notifier.PublishStandings(tournamentID, rows)
}

func (s *matchService) reject(ctx context.Context, report MatchReport, err error) {
	reason := rejectionReason(err)
	if reason == "" {
		s.logger.ErrorContext(ctx, "match report failed",
			slog.Int("tournament_id", report.TournamentID),
			slog.Any("error", err))
		return
	}
	s.metrics.MatchRejected(reason)
	s.logger.WarnContext(ctx, "match report rejected",
		slog.Int("tournament_id", report.TournamentID),
		slog.Int("player_a_id", report.PlayerAID),
		slog.Int("player_b_id", report.PlayerBID),
		slog.String("reason", reason))
}

// rejectionReason labels validation failures; infrastructure errors get "".
func rejectionReason(err error) string {
	switch {
	case errors.Is(err, ErrSelfMatch):
		return "self_match"
	case errors.Is(err, ErrInvalidWinner):
		return "invalid_winner"
	case errors.Is(err, ErrNotEnrolled):
		return "not_enrolled"
	case errors.Is(err, ErrDuplicatePairing):
		return "duplicate_pairing"
	case errors.Is(err, ErrTournamentNotFound):
		return "tournament_not_found"
	default:
		return ""
	}
}
