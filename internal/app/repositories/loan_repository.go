package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/okandemir/librarium/internal/app/models"
	"github.com/okandemir/librarium/internal/db"
	"github.com/okandemir/librarium/internal/pkg/apperrors"
)

// LendingTx is the set of row operations available inside a lending
// transaction. All reads lock the touched rows so that concurrent
// issue/return calls on the same book or loan serialize at the store.
type LendingTx interface {
	BookForUpdate(ctx context.Context, bookID int64) (*models.Book, error)
	HasActiveLoan(ctx context.Context, studentID, bookID int64) (bool, error)
	AdjustBookQuantity(ctx context.Context, bookID int64, delta int) error
	CreateLoan(ctx context.Context, loan *models.IssuedBook) error
	LoanForUpdate(ctx context.Context, loanID int64) (*models.IssuedBook, error)
	MarkReturned(ctx context.Context, loanID int64, returnedAt time.Time) error
}

// LendingStore runs lending operations inside a single database
// transaction: either every effect of fn commits or none do.
type LendingStore interface {
	WithinTransaction(ctx context.Context, fn func(tx LendingTx) error) error
}

// LoanFilter holds the optional filters for loan listings
type LoanFilter struct {
	StudentID  int64  // exact match on borrower, 0 means any
	Student    string // substring match on borrower username
	Book       string // substring match on book title
	ActiveOnly bool   // only loans with is_returned = false
}

// LoanRepository handles database operations for issued books
type LoanRepository struct {
	database *db.PostgresDB
	sb       squirrel.StatementBuilderType
}

// NewLoanRepository creates a new loan repository
func NewLoanRepository(database *db.PostgresDB) *LoanRepository {
	return &LoanRepository{
		database: database,
		sb:       squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// WithinTransaction implements LendingStore over a pgx transaction
func (r *LoanRepository) WithinTransaction(ctx context.Context, fn func(tx LendingTx) error) error {
	return r.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return fn(&lendingTx{tx: tx})
	})
}

// lendingTx implements LendingTx against an open pgx transaction
type lendingTx struct {
	tx pgx.Tx
}

// BookForUpdate loads a book row and locks it for the duration of the
// transaction, serializing concurrent quantity checks on the same book.
func (t *lendingTx) BookForUpdate(ctx context.Context, bookID int64) (*models.Book, error) {
	query := `
		SELECT id, author_id, category_id, title, publication_date, quantity,
		       image_url, created_at, updated_at
		FROM books
		WHERE id = $1
		FOR UPDATE
	`

	var book models.Book
	err := t.tx.QueryRow(ctx, query, bookID).Scan(
		&book.ID, &book.AuthorID, &book.CategoryID, &book.Title, &book.PublicationDate,
		&book.Quantity, &book.ImageURL, &book.CreatedAt, &book.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrBookNotFound
		}
		return nil, fmt.Errorf("error locking book row: %w", err)
	}

	return &book, nil
}

func (t *lendingTx) HasActiveLoan(ctx context.Context, studentID, bookID int64) (bool, error) {
	var exists bool
	err := t.tx.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM issued_books
			WHERE student_id = $1 AND book_id = $2 AND is_returned = FALSE
		)`, studentID, bookID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking active loan: %w", err)
	}
	return exists, nil
}

// AdjustBookQuantity changes the shelf count by delta. The quantity
// CHECK constraint backstops the service-level precondition.
func (t *lendingTx) AdjustBookQuantity(ctx context.Context, bookID int64, delta int) error {
	cmdTag, err := t.tx.Exec(ctx,
		`UPDATE books SET quantity = quantity + $1, updated_at = NOW() WHERE id = $2`,
		delta, bookID)
	if err != nil {
		return fmt.Errorf("error adjusting book quantity: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrBookNotFound
	}
	return nil
}

func (t *lendingTx) CreateLoan(ctx context.Context, loan *models.IssuedBook) error {
	query := `
		INSERT INTO issued_books (student_id, book_id, issue_date, due_date, is_returned)
		VALUES ($1, $2, $3, $4, FALSE)
		RETURNING id, created_at, updated_at
	`

	err := t.tx.QueryRow(ctx, query,
		loan.StudentID, loan.BookID, loan.IssueDate, loan.DueDate).
		Scan(&loan.ID, &loan.CreatedAt, &loan.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating loan: %w", err)
	}

	return nil
}

// LoanForUpdate loads a loan row and locks it, serializing concurrent
// return attempts on the same loan.
func (t *lendingTx) LoanForUpdate(ctx context.Context, loanID int64) (*models.IssuedBook, error) {
	query := `
		SELECT id, student_id, book_id, issue_date, due_date, return_date,
		       is_returned, created_at, updated_at
		FROM issued_books
		WHERE id = $1
		FOR UPDATE
	`

	var loan models.IssuedBook
	err := t.tx.QueryRow(ctx, query, loanID).Scan(
		&loan.ID, &loan.StudentID, &loan.BookID, &loan.IssueDate, &loan.DueDate,
		&loan.ReturnDate, &loan.IsReturned, &loan.CreatedAt, &loan.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrLoanNotFound
		}
		return nil, fmt.Errorf("error locking loan row: %w", err)
	}

	return &loan, nil
}

func (t *lendingTx) MarkReturned(ctx context.Context, loanID int64, returnedAt time.Time) error {
	cmdTag, err := t.tx.Exec(ctx, `
		UPDATE issued_books
		SET is_returned = TRUE, return_date = $1, updated_at = NOW()
		WHERE id = $2 AND is_returned = FALSE`,
		returnedAt, loanID)
	if err != nil {
		return fmt.Errorf("error marking loan returned: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrLoanAlreadyReturned
	}
	return nil
}

// GetByID retrieves a loan with its student and book joined in
func (r *LoanRepository) GetByID(ctx context.Context, id int64) (*models.IssuedBook, error) {
	query := `
		SELECT l.id, l.student_id, l.book_id, l.issue_date, l.due_date, l.return_date,
		       l.is_returned, l.created_at, l.updated_at,
		       s.username, s.email, s.enrollment_number,
		       b.title, b.quantity
		FROM issued_books l
		JOIN students s ON s.id = l.student_id
		JOIN books b ON b.id = l.book_id
		WHERE l.id = $1
	`

	loan, err := scanLoanRow(r.database.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrLoanNotFound
		}
		return nil, fmt.Errorf("error retrieving loan: %w", err)
	}

	return loan, nil
}

// List retrieves loans matching the filter, paginated, newest first
func (r *LoanRepository) List(ctx context.Context, filter LoanFilter, offset uint64, limit int) ([]*models.IssuedBook, int64, error) {
	applyFilter := func(b squirrel.SelectBuilder) squirrel.SelectBuilder {
		if filter.StudentID > 0 {
			b = b.Where(squirrel.Eq{"l.student_id": filter.StudentID})
		}
		if filter.Student != "" {
			b = b.Where(squirrel.ILike{"s.username": "%" + filter.Student + "%"})
		}
		if filter.Book != "" {
			b = b.Where(squirrel.ILike{"b.title": "%" + filter.Book + "%"})
		}
		if filter.ActiveOnly {
			b = b.Where(squirrel.Eq{"l.is_returned": false})
		}
		return b
	}

	from := func(b squirrel.SelectBuilder) squirrel.SelectBuilder {
		return b.From("issued_books l").
			Join("students s ON s.id = l.student_id").
			Join("books b ON b.id = l.book_id")
	}

	countSQL, countArgs, err := applyFilter(from(r.sb.Select("COUNT(*)"))).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build loan count query: %w", err)
	}

	var total int64
	if err := r.database.Pool.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting loans: %w", err)
	}

	listSQL, listArgs, err := applyFilter(from(r.sb.Select(
		"l.id", "l.student_id", "l.book_id", "l.issue_date", "l.due_date", "l.return_date",
		"l.is_returned", "l.created_at", "l.updated_at",
		"s.username", "s.email", "s.enrollment_number",
		"b.title", "b.quantity",
	))).OrderBy("l.issue_date DESC", "l.id DESC").Offset(offset).Limit(uint64(limit)).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build loan list query: %w", err)
	}

	rows, err := r.database.Pool.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing loans: %w", err)
	}
	defer rows.Close()

	var loans []*models.IssuedBook
	for rows.Next() {
		loan, err := scanLoanRow(rows)
		if err != nil {
			return nil, 0, err
		}
		loans = append(loans, loan)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return loans, total, nil
}

func scanLoanRow(row pgx.Row) (*models.IssuedBook, error) {
	var loan models.IssuedBook
	var student models.Student
	var book models.Book
	err := row.Scan(
		&loan.ID, &loan.StudentID, &loan.BookID, &loan.IssueDate, &loan.DueDate,
		&loan.ReturnDate, &loan.IsReturned, &loan.CreatedAt, &loan.UpdatedAt,
		&student.Username, &student.Email, &student.EnrollmentNumber,
		&book.Title, &book.Quantity,
	)
	if err != nil {
		return nil, err
	}
	student.ID = loan.StudentID
	book.ID = loan.BookID
	loan.Student = &student
	loan.Book = &book
	return &loan, nil
}
