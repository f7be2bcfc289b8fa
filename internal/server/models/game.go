package models

import "time"

// Game is a quiz record. Questions are stored as a single JSONB document:
// the quiz is only ever created, read or deleted whole, never patched.
type Game struct {
	ID        string     `db:"id" json:"id"`
	Title     string     `db:"title" json:"title"`
	Icon      string     `db:"icon" json:"icon,omitempty"`
	StartText string     `db:"start_text" json:"startText,omitempty"`
	EndText   string     `db:"end_text" json:"endText,omitempty"`
	Order     int        `db:"menu_order" json:"order"`
	Questions []Question `db:"questions" json:"questions"`
	CreatedAt time.Time  `db:"created_at" json:"createdAt"`
}

// Question is a value object owned by a Game.
type Question struct {
	Order   int      `json:"order"`
	Content string   `json:"content"`
	Answers []Answer `json:"answers"`
}

// Answer is one choice of a multiple-choice question.
type Answer struct {
	Content string `json:"content"`
	Correct bool   `json:"correct"`
}
