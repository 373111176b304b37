package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/Dosada05/swiss-tournament/models"
	"github.com/Dosada05/swiss-tournament/storage"
)

// StandingsSnapshot is the document written by an export.
type StandingsSnapshot struct {
	TournamentID int                  `json:"tournament_id"`
	Tournament   string               `json:"tournament"`
	ExportedAt   time.Time            `json:"exported_at"`
	Standings    []models.StandingRow `json:"standings"`
}

type ExportResult struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

type ExportService interface {
	ExportStandings(ctx context.Context, tournamentID int) (*ExportResult, error)
}

type exportService struct {
	registration RegistrationService
	standings    StandingsService
	uploader     storage.FileUploader
	now          func() time.Time
	logger       *slog.Logger
}

// NewExportService builds the service. With a nil uploader every export
// fails with ErrExportUnavailable.
func NewExportService(registration RegistrationService, standings StandingsService, uploader storage.FileUploader, logger *slog.Logger) ExportService {
	return &exportService{
		registration: registration,
		standings:    standings,
		uploader:     uploader,
		now:          time.Now,
		logger:       logger,
	}
}

func exportKey(tournamentID int, at time.Time) string {
	return fmt.Sprintf("standings/tournament_%d/%s.json", tournamentID, at.UTC().Format("20060102T150405Z"))
}

func (s *exportService) ExportStandings(ctx context.Context, tournamentID int) (*ExportResult, error) {
	if s.uploader == nil {
		return nil, ErrExportUnavailable
	}

	tournament, err := s.registration.GetTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	rows, err := s.standings.Standings(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	snapshot := StandingsSnapshot{
		TournamentID: tournament.ID,
		Tournament:   tournament.Name,
		ExportedAt:   s.now().UTC(),
		Standings:    rows,
	}
	body, err := json.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to encode standings snapshot: %w", err)
	}

	key := exportKey(tournamentID, snapshot.ExportedAt)
	result, err := s.uploader.Upload(ctx, key, "application/json", bytes.NewReader(body))
	if err != nil {
		s.logger.ErrorContext(ctx, "standings export failed", slog.Int("tournament_id", tournamentID), slog.Any("error", err))
		return nil, fmt.Errorf("failed to upload standings: %w", err)
	}

	s.logger.InfoContext(ctx, "standings exported", slog.Int("tournament_id", tournamentID), slog.String("key", result.Key))
	return &ExportResult{Key: result.Key, URL: result.Location}, nil
}
