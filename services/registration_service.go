package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Dosada05/swiss-tournament/metrics"
	"github.com/Dosada05/swiss-tournament/models"
	"github.com/Dosada05/swiss-tournament/repositories"
)

type CreatePlayerInput struct {
	Name          string `json:"name"`
	TournamentIDs []int  `json:"tournament_ids,omitempty"`
}

type CreateTournamentInput struct {
	Name string `json:"name"`
}

// RegistrationService owns players, tournaments and enrollments.
type RegistrationService interface {
	// CreatePlayer stores a player and enrolls them in every listed tournament.
	// Either everything is stored or nothing is.
	CreatePlayer(ctx context.Context, input CreatePlayerInput) (*models.Player, error)
	CreateTournament(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error)
	Enroll(ctx context.Context, playerID, tournamentID int) error

	GetTournament(ctx context.Context, tournamentID int) (*models.Tournament, error)
	ListPlayers(ctx context.Context) ([]*models.Player, error)
	CountPlayers(ctx context.Context) (int, error)
	ListTournaments(ctx context.Context) ([]*models.Tournament, error)
	EnrolledPlayers(ctx context.Context, tournamentID int) ([]*models.Player, error)

	ClearMatches(ctx context.Context, tournamentID *int) error
	ClearEnrollments(ctx context.Context, tournamentID *int) error
	ClearPlayers(ctx context.Context) error
	ClearTournaments(ctx context.Context) error
}

type registrationService struct {
	repo    repositories.Repository
	metrics metrics.Recorder
	logger  *slog.Logger
}

func NewRegistrationService(repo repositories.Repository, recorder metrics.Recorder, logger *slog.Logger) RegistrationService {
	return &registrationService{repo: repo, metrics: recorder, logger: logger}
}

func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrNameRequired
	}
	return name, nil
}

func (s *registrationService) CreatePlayer(ctx context.Context, input CreatePlayerInput) (*models.Player, error) {
	name, err := normalizeName(input.Name)
	if err != nil {
		return nil, err
	}

	var player *models.Player
	err = s.repo.RunInTx(ctx, repositories.TxOptions{}, func(q repositories.Queries) error {
		var err error
		player, err = q.CreatePlayer(ctx, name)
		if err != nil {
			return fmt.Errorf("failed to create player: %w", err)
		}
		for _, tournamentID := range input.TournamentIDs {
			if err := q.Enroll(ctx, player.ID, tournamentID); err != nil {
				return fmt.Errorf("%w: enrolling new player in tournament %d", mapRepositoryError(err), tournamentID)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for range input.TournamentIDs {
		s.metrics.PlayerEnrolled()
	}
	s.logger.InfoContext(ctx, "player created",
		slog.Int("player_id", player.ID),
		slog.Any("tournament_ids", input.TournamentIDs))
	return player, nil
}

func (s *registrationService) CreateTournament(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error) {
	name, err := normalizeName(input.Name)
	if err != nil {
		return nil, err
	}
	tournament, err := s.repo.CreateTournament(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to create tournament: %w", err)
	}
	s.logger.InfoContext(ctx, "tournament created", slog.Int("tournament_id", tournament.ID))
	return tournament, nil
}

func (s *registrationService) Enroll(ctx context.Context, playerID, tournamentID int) error {
	if err := s.repo.Enroll(ctx, playerID, tournamentID); err != nil {
		return fmt.Errorf("%w: player %d, tournament %d", mapRepositoryError(err), playerID, tournamentID)
	}
	s.metrics.PlayerEnrolled()
	s.logger.InfoContext(ctx, "player enrolled",
		slog.Int("player_id", playerID),
		slog.Int("tournament_id", tournamentID))
	return nil
}

func (s *registrationService) GetTournament(ctx context.Context, tournamentID int) (*models.Tournament, error) {
	tournament, err := s.repo.GetTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("%w: id %d", mapRepositoryError(err), tournamentID)
	}
	return tournament, nil
}

func (s *registrationService) ListPlayers(ctx context.Context) ([]*models.Player, error) {
	players, err := s.repo.ListPlayers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	if players == nil {
		return []*models.Player{}, nil
	}
	return players, nil
}

func (s *registrationService) CountPlayers(ctx context.Context) (int, error) {
	count, err := s.repo.CountPlayers(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count players: %w", err)
	}
	return count, nil
}

func (s *registrationService) ListTournaments(ctx context.Context) ([]*models.Tournament, error) {
	tournaments, err := s.repo.ListTournaments(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	if tournaments == nil {
		return []*models.Tournament{}, nil
	}
	return tournaments, nil
}

func (s *registrationService) EnrolledPlayers(ctx context.Context, tournamentID int) ([]*models.Player, error) {
	var players []*models.Player
	err := s.repo.RunInTx(ctx, repositories.TxOptions{ReadOnly: true}, func(q repositories.Queries) error {
		if _, err := q.GetTournament(ctx, tournamentID); err != nil {
			return fmt.Errorf("%w: id %d", mapRepositoryError(err), tournamentID)
		}
		var err error
		players, err = q.EnrolledPlayers(ctx, tournamentID)
		if err != nil {
			return fmt.Errorf("failed to list players of tournament %d: %w", tournamentID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if players == nil {
		return []*models.Player{}, nil
	}
	return players, nil
}

func (s *registrationService) ClearMatches(ctx context.Context, tournamentID *int) error {
	if err := s.repo.ClearMatches(ctx, tournamentID); err != nil {
		return fmt.Errorf("failed to clear matches: %w", err)
	}
	s.logger.InfoContext(ctx, "matches cleared", slog.Any("tournament_id", tournamentID))
	return nil
}

// ClearEnrollments also removes the matches that referenced the enrollments.
func (s *registrationService) ClearEnrollments(ctx context.Context, tournamentID *int) error {
	if err := s.repo.ClearEnrollments(ctx, tournamentID); err != nil {
		return fmt.Errorf("failed to clear enrollments: %w", err)
	}
	s.logger.InfoContext(ctx, "enrollments cleared", slog.Any("tournament_id", tournamentID))
	return nil
}

func (s *registrationService) ClearPlayers(ctx context.Context) error {
	if err := s.repo.ClearPlayers(ctx); err != nil {
		return fmt.Errorf("failed to clear players: %w", err)
	}
	s.logger.InfoContext(ctx, "players cleared")
	return nil
}

func (s *registrationService) ClearTournaments(ctx context.Context) error {
	if err := s.repo.ClearTournaments(ctx); err != nil {
		return fmt.Errorf("failed to clear tournaments: %w", err)
	}
	s.logger.InfoContext(ctx, "tournaments cleared")
	return nil
}
