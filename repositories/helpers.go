package repositories

import (
	"errors"

	"github.com/lib/pq"
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
	pqCheckViolation      = "23514"
)

// mapConstraintError translates a constraint violation into the matching
// sentinel. Unknown errors are returned unchanged.
func mapConstraintError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}
	switch pqErr.Code {
	case pqUniqueViolation:
		switch pqErr.Constraint {
		case "enrollments_pkey":
			return ErrAlreadyEnrolled
		case "matches_unordered_pair_key":
			return ErrMatchPairConflict
		}
	case pqForeignKeyViolation:
		switch pqErr.Constraint {
		case "enrollments_player_id_fkey":
			return ErrPlayerNotFound
		case "enrollments_tournament_id_fkey", "matches_tournament_id_fkey":
			return ErrTournamentNotFound
		case "matches_player_a_enrollment_fkey", "matches_player_b_enrollment_fkey":
			return ErrMatchNotEnrolled
		}
	case pqCheckViolation:
		switch pqErr.Constraint {
		case "chk_match_distinct_players":
			return ErrMatchSelfPlay
		case "chk_match_winner":
			return ErrMatchWinnerInvalid
		}
	}
	return err
}

// orderedPair returns the pair with the smaller id first.
func orderedPair(a, b int) (int, int) {
	if a > b {
		return b, a
	}
	return a, b
}
