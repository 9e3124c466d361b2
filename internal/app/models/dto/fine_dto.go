package dto

// CreateFineRequest represents a fine creation request. Amounts are
// decided externally; the system only records them.
type CreateFineRequest struct {
	IssuedBookID int64   `json:"issuedBookId" binding:"required,min=1"`
	Amount       float64 `json:"amount" binding:"required,gt=0"`
}
