package services

import (
	"context"
	"fmt"

	"github.com/Dosada05/swiss-tournament/repositories"
)

// MatchReport is a result submitted for two players of a tournament.
// A nil WinnerID records a draw.
type MatchReport struct {
	TournamentID int  `json:"-"`
	PlayerAID    int  `json:"player_a_id"`
	PlayerBID    int  `json:"player_b_id"`
	WinnerID     *int `json:"winner_id"`
}

// checkReportShape runs the checks that do not need storage.
func checkReportShape(report MatchReport) error {
	if report.PlayerAID == report.PlayerBID {
		return ErrSelfMatch
	}
	if report.WinnerID != nil && *report.WinnerID != report.PlayerAID && *report.WinnerID != report.PlayerBID {
		return fmt.Errorf("%w: winner %d is not in match %d vs %d", ErrInvalidWinner, *report.WinnerID, report.PlayerAID, report.PlayerBID)
	}
	return nil
}

// ValidateMatch checks a report against the stored state, in this order:
// distinct players, winner in the pair, both players enrolled, pair not yet
// played. The first failing check wins. q should be the transaction the match
// will be inserted in.
func ValidateMatch(ctx context.Context, q repositories.Queries, report MatchReport) error {
	if err := checkReportShape(report); err != nil {
		return err
	}

	for _, playerID := range []int{report.PlayerAID, report.PlayerBID} {
		enrolled, err := q.IsEnrolled(ctx, playerID, report.TournamentID)
		if err != nil {
			return fmt.Errorf("failed to check enrollment of player %d: %w", playerID, err)
		}
		if !enrolled {
			return fmt.Errorf("%w: player %d in tournament %d", ErrNotEnrolled, playerID, report.TournamentID)
		}
	}

	exists, err := q.MatchExists(ctx, report.TournamentID, report.PlayerAID, report.PlayerBID)
	if err != nil {
		return fmt.Errorf("failed to check existing match: %w", err)
	}
	if exists {
		return fmt.Errorf("%w: players %d and %d in tournament %d", ErrDuplicatePairing, report.PlayerAID, report.PlayerBID, report.TournamentID)
	}
	return nil
}
