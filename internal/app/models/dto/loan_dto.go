package dto

// IssueBookRequest identifies the book to issue. The borrowing student
// is always the authenticated caller.
type IssueBookRequest struct {
	BookID int64 `json:"bookId" binding:"required,min=1"`
}
