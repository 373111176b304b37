package models

import "time"

// Match is an append-only result record. A nil WinnerID means a draw.
type Match struct {
	ID           int       `json:"id" db:"id"`
	TournamentID int       `json:"tournament_id" db:"tournament_id"`
	PlayerAID    int       `json:"player_a_id" db:"player_a_id"`
	PlayerBID    int       `json:"player_b_id" db:"player_b_id"`
	WinnerID     *int      `json:"winner_id" db:"winner_id"`
	ReportedAt   time.Time `json:"reported_at" db:"reported_at"`
}

// IsDraw reports whether the match ended without a winner.
func (m *Match) IsDraw() bool {
	return m.WinnerID == nil
}

// Involves reports whether the player took part in the match.
func (m *Match) Involves(playerID int) bool {
	return m.PlayerAID == playerID || m.PlayerBID == playerID
}
