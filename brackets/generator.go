package brackets

import (
	"context"
	"errors"

	"github.com/Dosada05/swiss-tournament/models"
)

// ErrOddPlayerCount is returned when standings cannot be split into pairs.
// No bye is generated.
var ErrOddPlayerCount = errors.New("odd number of players enrolled, cannot pair")

// PairingGenerator turns ordered standings into next-round pairings.
type PairingGenerator interface {
	GeneratePairings(ctx context.Context, standings []models.StandingRow) ([]models.Pairing, error)

	GetName() string
}
