package models

import "time"

// Fine defines the fine model based on the 'fines' table.
// Amounts are set externally; no amount computation exists in the system.
type Fine struct {
	ID           int64     `json:"id" db:"id" example:"1"`
	IssuedBookID int64     `json:"issuedBookId" db:"issued_book_id" example:"1"`
	Amount       float64   `json:"amount" db:"amount" example:"12.50"`
	Date         time.Time `json:"date" db:"date"`

	// Relation (populated when needed)
	IssuedBook *IssuedBook `json:"issuedBook,omitempty"`
}
