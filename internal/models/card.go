package models

import "time"

// Card is a single unit of study material together with its SM-2
// scheduling state.
type Card struct {
	ID           string     `json:"id"`
	Topic        string     `json:"topic"`
	Question     string     `json:"question"`
	Answer       string     `json:"answer"`
	Interval     int        `json:"interval"`
	Repetition   int        `json:"repetition"`
	EFactor      float64    `json:"efactor"`
	DueDate      time.Time  `json:"dueDate"`
	LastReviewed *time.Time `json:"lastReviewed"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// AddCardData carries the caller-supplied fields for a new card.
// DueDate overrides the default of "due today" when set.
type AddCardData struct {
	Topic    string     `json:"topic"`
	Question string     `json:"question"`
	Answer   string     `json:"answer"`
	DueDate  *time.Time `json:"dueDate,omitempty"`
}

// CardPatch is a partial update for an existing card. Nil fields are
// left untouched, so clearing the due date in a form preserves the
// existing one. Patches never touch the scheduling fields.
type CardPatch struct {
	Topic    *string    `json:"topic,omitempty"`
	Question *string    `json:"question,omitempty"`
	Answer   *string    `json:"answer,omitempty"`
	DueDate  *time.Time `json:"dueDate,omitempty"`
}
