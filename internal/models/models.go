package models

import (
	"database/sql"
	"time"
)

// Player represents a registered user.
type Player struct {
	ID           int          `db:"id" json:"id"`
	PhoneNumber  string       `db:"phone_number" json:"phone_number"`
	DisplayName  string       `db:"display_name" json:"display_name"`
	PinHash      string       `db:"pin_hash" json:"-"`
	IsAdmin      bool         `db:"is_admin" json:"is_admin"`
	CreatedAt    time.Time    `db:"created_at" json:"created_at"`
	FramesPlayed int          `db:"frames_played" json:"frames_played"`
	FramesWon    int          `db:"frames_won" json:"frames_won"`
	HighestBreak int          `db:"highest_break" json:"highest_break"`
	LastActive   sql.NullTime `db:"last_active" json:"last_active,omitempty"`
}

// Session represents one online match between two players. Only the outcome
// is stored; per-shot history is not persisted.
type Session struct {
	ID          int            `db:"id" json:"id"`
	MatchToken  string         `db:"match_token" json:"match_token"`
	Player1ID   int            `db:"player1_id" json:"player1_id"`
	Player2ID   sql.NullInt64  `db:"player2_id" json:"player2_id,omitempty"`
	Status      string         `db:"status" json:"status"`
	WinnerID    sql.NullInt64  `db:"winner_id" json:"winner_id,omitempty"`
	WinType     sql.NullString `db:"win_type" json:"win_type,omitempty"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
	StartedAt   sql.NullTime   `db:"started_at" json:"started_at,omitempty"`
	CompletedAt sql.NullTime   `db:"completed_at" json:"completed_at,omitempty"`
	ExpiryTime  time.Time      `db:"expiry_time" json:"expiry_time"`
}

// BreakEntry is one leaderboard row.
type BreakEntry struct {
	DisplayName  string `db:"display_name" json:"display_name"`
	HighestBreak int    `db:"highest_break" json:"highest_break"`
}
