package repositories

import (
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestMapConstraintError(t *testing.T) {
	plain := errors.New("connection reset")
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"duplicate enrollment", &pq.Error{Code: pqUniqueViolation, Constraint: "enrollments_pkey"}, ErrAlreadyEnrolled},
		{"rematch", &pq.Error{Code: pqUniqueViolation, Constraint: "matches_unordered_pair_key"}, ErrMatchPairConflict},
		{"unknown player", &pq.Error{Code: pqForeignKeyViolation, Constraint: "enrollments_player_id_fkey"}, ErrPlayerNotFound},
		{"unknown tournament", &pq.Error{Code: pqForeignKeyViolation, Constraint: "matches_tournament_id_fkey"}, ErrTournamentNotFound},
		{"not enrolled", &pq.Error{Code: pqForeignKeyViolation, Constraint: "matches_player_b_enrollment_fkey"}, ErrMatchNotEnrolled},
		{"self play", &pq.Error{Code: pqCheckViolation, Constraint: "chk_match_distinct_players"}, ErrMatchSelfPlay},
		{"bad winner", &pq.Error{Code: pqCheckViolation, Constraint: "chk_match_winner"}, ErrMatchWinnerInvalid},
		{"plain error", plain, plain},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, mapConstraintError(tt.err), tt.want)
		})
	}

	other := &pq.Error{Code: pqUniqueViolation, Constraint: "something_else"}
	assert.Same(t, other, mapConstraintError(other))
}

func TestOrderedPair(t *testing.T) {
	low, high := orderedPair(9, 2)
	assert.Equal(t, 2, low)
	assert.Equal(t, 9, high)
}
