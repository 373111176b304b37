package models

import "time"

// Tournament представляет турнир. Игроки связываются с ним только через Enrollment.
type Tournament struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Enrollment связывает игрока с турниром. Пара (PlayerID, TournamentID) уникальна.
type Enrollment struct {
	PlayerID     int       `json:"player_id" db:"player_id"`
	TournamentID int       `json:"tournament_id" db:"tournament_id"`
	EnrolledAt   time.Time `json:"enrolled_at" db:"enrolled_at"`
}
