package models

import "encoding/json"

// StandingRow is derived from the match set on every request and never persisted.
type StandingRow struct {
	PlayerID      int    `json:"player_id"`
	Name          string `json:"name"`
	Wins          int    `json:"wins"`
	Draws         int    `json:"draws"`
	MatchesPlayed int    `json:"matches_played"`
}

// Points returns 2 per win and 1 per draw.
func (s StandingRow) Points() int {
	return 2*s.Wins + s.Draws
}

func (s StandingRow) MarshalJSON() ([]byte, error) {
	type row StandingRow
	return json.Marshal(struct {
		row
		Points int `json:"points"`
	}{row: row(s), Points: s.Points()})
}

// Pairing is one next-round matchup.
type Pairing struct {
	Player1ID   int    `json:"player1_id"`
	Player1Name string `json:"player1_name"`
	Player2ID   int    `json:"player2_id"`
	Player2Name string `json:"player2_name"`
}
