package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okandemir/librarium/internal/app/models"
	"github.com/okandemir/librarium/internal/app/repositories"
	"github.com/okandemir/librarium/internal/pkg/apperrors"
)

// fakeLendingStore is an in-memory LendingStore. Transactions are
// serialized by a mutex-free copy-on-write scheme: fn operates on a
// staged copy that only replaces the state when fn succeeds, which
// mirrors commit/rollback semantics.
type fakeLendingStore struct {
	books  map[int64]*models.Book
	loans  map[int64]*models.IssuedBook
	nextID int64
}

func newFakeLendingStore() *fakeLendingStore {
	return &fakeLendingStore{
		books:  make(map[int64]*models.Book),
		loans:  make(map[int64]*models.IssuedBook),
		nextID: 1,
	}
}

func (s *fakeLendingStore) addBook(id int64, title string, quantity int) {
	s.books[id] = &models.Book{ID: id, Title: title, Quantity: quantity}
}

func (s *fakeLendingStore) WithinTransaction(_ context.Context, fn func(tx repositories.LendingTx) error) error {
	staged := &fakeLendingTx{store: s.clone()}
	if err := fn(staged); err != nil {
		return err
	}
	*s = *staged.store
	return nil
}

func (s *fakeLendingStore) clone() *fakeLendingStore {
	c := newFakeLendingStore()
	c.nextID = s.nextID
	for id, b := range s.books {
		copied := *b
		c.books[id] = &copied
	}
	for id, l := range s.loans {
		copied := *l
		c.loans[id] = &copied
	}
	return c
}

type fakeLendingTx struct {
	store *fakeLendingStore
}

func (t *fakeLendingTx) BookForUpdate(_ context.Context, bookID int64) (*models.Book, error) {
	book, ok := t.store.books[bookID]
	if !ok {
		return nil, apperrors.ErrBookNotFound
	}
	copied := *book
	return &copied, nil
}

func (t *fakeLendingTx) HasActiveLoan(_ context.Context, studentID, bookID int64) (bool, error) {
	for _, loan := range t.store.loans {
		if loan.StudentID == studentID && loan.BookID == bookID && !loan.IsReturned {
			return true, nil
		}
	}
	return false, nil
}

func (t *fakeLendingTx) AdjustBookQuantity(_ context.Context, bookID int64, delta int) error {
	book, ok := t.store.books[bookID]
	if !ok {
		return apperrors.ErrBookNotFound
	}
	book.Quantity += delta
	if book.Quantity < 0 {
		return errors.New("quantity check constraint violated")
	}
	return nil
}

func (t *fakeLendingTx) CreateLoan(_ context.Context, loan *models.IssuedBook) error {
	loan.ID = t.store.nextID
	t.store.nextID++
	copied := *loan
	t.store.loans[loan.ID] = &copied
	return nil
}

func (t *fakeLendingTx) LoanForUpdate(_ context.Context, loanID int64) (*models.IssuedBook, error) {
	loan, ok := t.store.loans[loanID]
	if !ok {
		return nil, apperrors.ErrLoanNotFound
	}
	copied := *loan
	return &copied, nil
}

func (t *fakeLendingTx) MarkReturned(_ context.Context, loanID int64, returnedAt time.Time) error {
	loan, ok := t.store.loans[loanID]
	if !ok {
		return apperrors.ErrLoanNotFound
	}
	if loan.IsReturned {
		return apperrors.ErrLoanAlreadyReturned
	}
	loan.IsReturned = true
	loan.ReturnDate = &returnedAt
	return nil
}

func newTestLendingService(store *fakeLendingStore, at time.Time) *lendingServiceImpl {
	return &lendingServiceImpl{
		store: store,
		now:   func() time.Time { return at },
	}
}

func TestIssueBook_DecrementsQuantityAndSetsDueDate(t *testing.T) {
	store := newFakeLendingStore()
	store.addBook(1, "The Dispossessed", 3)
	issuedAt := time.Date(2026, 3, 10, 15, 4, 5, 0, time.UTC)
	svc := newTestLendingService(store, issuedAt)

	loan, err := svc.IssueBook(context.Background(), 42, 1)
	require.NoError(t, err)

	assert.Equal(t, int64(42), loan.StudentID)
	assert.Equal(t, int64(1), loan.BookID)
	assert.False(t, loan.IsReturned)
	assert.Nil(t, loan.ReturnDate)

	wantIssue := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, wantIssue, loan.IssueDate, "issue date is truncated to the calendar day")
	assert.Equal(t, wantIssue.AddDate(0, 0, 10), loan.DueDate, "due date is ten days after issue")

	assert.Equal(t, 2, store.books[1].Quantity)
}

func TestIssueBook_UnknownBook(t *testing.T) {
	store := newFakeLendingStore()
	svc := newTestLendingService(store, time.Now())

	_, err := svc.IssueBook(context.Background(), 42, 99)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestIssueBook_NoCopiesAvailable(t *testing.T) {
	store := newFakeLendingStore()
	store.addBook(1, "Rare Book", 0)
	svc := newTestLendingService(store, time.Now())

	_, err := svc.IssueBook(context.Background(), 42, 1)
	assert.ErrorIs(t, err, apperrors.ErrBookUnavailable)
	assert.Empty(t, store.loans, "failed issue must not create a loan")
	assert.Equal(t, 0, store.books[1].Quantity)
}

func TestIssueBook_DuplicateActiveLoan(t *testing.T) {
	store := newFakeLendingStore()
	store.addBook(1, "Popular Book", 5)
	svc := newTestLendingService(store, time.Now())

	_, err := svc.IssueBook(context.Background(), 42, 1)
	require.NoError(t, err)

	_, err = svc.IssueBook(context.Background(), 42, 1)
	assert.ErrorIs(t, err, apperrors.ErrLoanAlreadyActive)
	assert.Equal(t, 4, store.books[1].Quantity, "conflicting issue must not decrement again")
}

func TestIssueBook_SameBookDifferentStudents(t *testing.T) {
	store := newFakeLendingStore()
	store.addBook(1, "Popular Book", 2)
	svc := newTestLendingService(store, time.Now())

	_, err := svc.IssueBook(context.Background(), 1, 1)
	require.NoError(t, err)
	_, err = svc.IssueBook(context.Background(), 2, 1)
	require.NoError(t, err)

	assert.Equal(t, 0, store.books[1].Quantity)
}

func TestIssueBook_LastCopyRace(t *testing.T) {
	// The store serializes transactions, so of two students going for
	// the last copy exactly one wins.
	store := newFakeLendingStore()
	store.addBook(1, "Last Copy", 1)
	svc := newTestLendingService(store, time.Now())

	_, err1 := svc.IssueBook(context.Background(), 1, 1)
	_, err2 := svc.IssueBook(context.Background(), 2, 1)

	require.NoError(t, err1)
	assert.ErrorIs(t, err2, apperrors.ErrBookUnavailable)
	assert.Equal(t, 0, store.books[1].Quantity)
	assert.Len(t, store.loans, 1)
}

func TestIssueBook_ReissueAfterReturn(t *testing.T) {
	store := newFakeLendingStore()
	store.addBook(1, "Round Trip", 1)
	svc := newTestLendingService(store, time.Now())

	loan, err := svc.IssueBook(context.Background(), 42, 1)
	require.NoError(t, err)

	_, err = svc.ReturnBook(context.Background(), loan.ID)
	require.NoError(t, err)

	// The same student can borrow the same book again once returned
	_, err = svc.IssueBook(context.Background(), 42, 1)
	assert.NoError(t, err)
}

func TestReturnBook_RestoresQuantity(t *testing.T) {
	store := newFakeLendingStore()
	store.addBook(1, "The Dispossessed", 1)
	issuedAt := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc := newTestLendingService(store, issuedAt)

	loan, err := svc.IssueBook(context.Background(), 42, 1)
	require.NoError(t, err)
	require.Equal(t, 0, store.books[1].Quantity)

	returnedAt := time.Date(2026, 3, 15, 18, 30, 0, 0, time.UTC)
	svc.now = func() time.Time { return returnedAt }

	returned, err := svc.ReturnBook(context.Background(), loan.ID)
	require.NoError(t, err)

	assert.True(t, returned.IsReturned)
	require.NotNil(t, returned.ReturnDate)
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), *returned.ReturnDate)
	assert.Equal(t, 1, store.books[1].Quantity)
}

func TestReturnBook_DoubleReturn(t *testing.T) {
	store := newFakeLendingStore()
	store.addBook(1, "The Dispossessed", 1)
	svc := newTestLendingService(store, time.Now())

	loan, err := svc.IssueBook(context.Background(), 42, 1)
	require.NoError(t, err)

	_, err = svc.ReturnBook(context.Background(), loan.ID)
	require.NoError(t, err)

	_, err = svc.ReturnBook(context.Background(), loan.ID)
	assert.ErrorIs(t, err, apperrors.ErrLoanAlreadyReturned)
	assert.Equal(t, 1, store.books[1].Quantity, "double return must not increment again")
}

func TestReturnBook_UnknownLoan(t *testing.T) {
	store := newFakeLendingStore()
	svc := newTestLendingService(store, time.Now())

	_, err := svc.ReturnBook(context.Background(), 99)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

// Whoever hands the book over at the desk closes the loan, so a return
// is not tied to the borrowing student's identity.
func TestReturnBook_AnyCallerClosesLoan(t *testing.T) {
	store := newFakeLendingStore()
	store.addBook(1, "The Dispossessed", 1)
	svc := newTestLendingService(store, time.Now())

	loan, err := svc.IssueBook(context.Background(), 42, 1)
	require.NoError(t, err)

	returned, err := svc.ReturnBook(context.Background(), loan.ID)
	require.NoError(t, err)
	assert.True(t, returned.IsReturned)
	assert.Equal(t, int64(42), returned.StudentID)
	assert.Equal(t, 1, store.books[1].Quantity)
}

func TestReturnBook_ClosedLoanStaysClosed(t *testing.T) {
	store := newFakeLendingStore()
	store.addBook(1, "The Dispossessed", 1)
	svc := newTestLendingService(store, time.Now())

	loan, err := svc.IssueBook(context.Background(), 42, 1)
	require.NoError(t, err)

	_, err = svc.ReturnBook(context.Background(), loan.ID)
	require.NoError(t, err)

	// A later attempt against the same loan reports the conflict, not
	// a permission problem, regardless of who asks.
	_, err = svc.ReturnBook(context.Background(), loan.ID)
	assert.ErrorIs(t, err, apperrors.ErrLoanAlreadyReturned)
	assert.NotErrorIs(t, err, apperrors.ErrPermissionDenied)
	assert.Equal(t, 1, store.books[1].Quantity)
}

func TestIssueBook_MissingStudentIdentity(t *testing.T) {
	store := newFakeLendingStore()
	store.addBook(1, "The Dispossessed", 1)
	svc := newTestLendingService(store, time.Now())

	_, err := svc.IssueBook(context.Background(), 0, 1)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}
