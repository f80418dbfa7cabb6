package models

import "time"

// Expense is a single spending record. UserID is set at creation from the
// authenticated caller and never reassigned.
type Expense struct {
	ID       int       `json:"id"`
	Title    string    `json:"title"`
	Amount   float64   `json:"amount"`
	Category string    `json:"category"`
	Date     time.Time `json:"date"`
	UserID   int       `json:"-"`
}
