package models

import "time"

// IssuedBook defines a loan record based on the 'issued_books' table.
// ReturnDate is set exactly when IsReturned becomes true; DueDate is
// always IssueDate plus the fixed loan period.
type IssuedBook struct {
	ID         int64      `json:"id" db:"id" example:"1"`
	StudentID  int64      `json:"studentId" db:"student_id" example:"1"`
	BookID     int64      `json:"bookId" db:"book_id" example:"1"`
	IssueDate  time.Time  `json:"issueDate" db:"issue_date"`
	DueDate    time.Time  `json:"dueDate" db:"due_date"`
	ReturnDate *time.Time `json:"returnDate,omitempty" db:"return_date"`
	IsReturned bool       `json:"isReturned" db:"is_returned" example:"false"`
	CreatedAt  time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time  `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	Student *Student `json:"student,omitempty"`
	Book    *Book    `json:"book,omitempty"`
}
