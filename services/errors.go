package services

import (
	"errors"

	"github.com/Dosada05/swiss-tournament/brackets"
	"github.com/Dosada05/swiss-tournament/repositories"
)

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	// Ошибки валидации матча
	ErrSelfMatch        = errors.New("a player cannot play against themselves")
	ErrInvalidWinner    = errors.New("winner must be one of the two players")
	ErrNotEnrolled      = errors.New("both players must be enrolled in the tournament")
	ErrDuplicatePairing = errors.New("these players have already played in this tournament")

	// Ошибки паринга
	ErrOddPlayerCount = brackets.ErrOddPlayerCount

	// Ошибки регистрации
	ErrAlreadyEnrolled = errors.New("player is already enrolled in this tournament")
	ErrNameRequired    = errors.New("name is required")

	ErrValidationFailed   = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrExportUnavailable  = errors.New("standings export is not configured")

	ErrPlayerNotFound     = errors.New("player not found")
	ErrTournamentNotFound = errors.New("tournament not found")
)

// mapRepositoryError translates repository sentinels into service sentinels.
// Anything else is returned unchanged.
func mapRepositoryError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrPlayerNotFound):
		return ErrPlayerNotFound
	case errors.Is(err, repositories.ErrTournamentNotFound):
		return ErrTournamentNotFound
	case errors.Is(err, repositories.ErrAlreadyEnrolled):
		return ErrAlreadyEnrolled
	case errors.Is(err, repositories.ErrMatchPairConflict):
		return ErrDuplicatePairing
	case errors.Is(err, repositories.ErrMatchSelfPlay):
		return ErrSelfMatch
	case errors.Is(err, repositories.ErrMatchWinnerInvalid):
		return ErrInvalidWinner
	case errors.Is(err, repositories.ErrMatchNotEnrolled):
		return ErrNotEnrolled
	default:
		return err
	}
}
