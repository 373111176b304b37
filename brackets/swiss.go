package brackets

import (
	"context"
	"fmt"

	"github.com/Dosada05/swiss-tournament/models"
)

type SwissGenerator struct{}

func NewSwissGenerator() PairingGenerator {
	return &SwissGenerator{}
}

func (g *SwissGenerator) GetName() string {
	return "Swiss"
}

// GeneratePairings pairs neighbours in the standings: (0,1), (2,3), ...
// Players who already met in this tournament can be paired again; rematches
// are not checked here.
func (g *SwissGenerator) GeneratePairings(ctx context.Context, standings []models.StandingRow) ([]models.Pairing, error) {
	if len(standings)%2 != 0 {
		return nil, fmt.Errorf("%w (found %d)", ErrOddPlayerCount, len(standings))
	}

	pairings := make([]models.Pairing, 0, len(standings)/2)
	for i := 0; i < len(standings); i += 2 {
		first, second := standings[i], standings[i+1]
		pairings = append(pairings, models.Pairing{
			Player1ID:   first.PlayerID,
			Player1Name: first.Name,
			Player2ID:   second.PlayerID,
			Player2Name: second.Name,
		})
	}
	return pairings, nil
}
