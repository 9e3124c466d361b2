package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/okandemir/librarium/internal/app/models"
	"github.com/okandemir/librarium/internal/pkg/apperrors"
	"github.com/okandemir/librarium/internal/pkg/dberrors"
)

// FineRepository handles database operations for fines
type FineRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewFineRepository creates a new fine repository
func NewFineRepository(db *pgxpool.Pool) *FineRepository {
	return &FineRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new fine for a loan
func (r *FineRepository) Create(ctx context.Context, fine *models.Fine) error {
	query := `
		INSERT INTO fines (issued_book_id, amount, date)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query, fine.IssuedBookID, fine.Amount, fine.Date).
		Scan(&fine.ID)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrLoanNotFound
		}
		return fmt.Errorf("error creating fine: %w", err)
	}

	return nil
}

// GetByID retrieves a fine by its ID
func (r *FineRepository) GetByID(ctx context.Context, id int64) (*models.Fine, error) {
	query := `
		SELECT id, issued_book_id, amount, date
		FROM fines
		WHERE id = $1
	`

	var fine models.Fine
	err := r.db.QueryRow(ctx, query, id).Scan(
		&fine.ID, &fine.IssuedBookID, &fine.Amount, &fine.Date,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrFineNotFound
		}
		return nil, fmt.Errorf("error retrieving fine: %w", err)
	}

	return &fine, nil
}

// List retrieves fines, optionally limited to a single loan, paginated
func (r *FineRepository) List(ctx context.Context, issuedBookID *int64, offset uint64, limit int) ([]*models.Fine, int64, error) {
	applyFilter := func(b squirrel.SelectBuilder) squirrel.SelectBuilder {
		if issuedBookID != nil {
			b = b.Where(squirrel.Eq{"issued_book_id": *issuedBookID})
		}
		return b
	}

	countSQL, countArgs, err := applyFilter(r.sb.Select("COUNT(*)").From("fines")).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build fine count query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting fines: %w", err)
	}

	listSQL, listArgs, err := applyFilter(r.sb.Select("id", "issued_book_id", "amount", "date").
		From("fines")).
		OrderBy("date DESC", "id DESC").
		Offset(offset).Limit(uint64(limit)).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build fine list query: %w", err)
	}

	rows, err := r.db.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing fines: %w", err)
	}
	defer rows.Close()

	var fines []*models.Fine
	for rows.Next() {
		var fine models.Fine
		if err := rows.Scan(&fine.ID, &fine.IssuedBookID, &fine.Amount, &fine.Date); err != nil {
			return nil, 0, err
		}
		fines = append(fines, &fine)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return fines, total, nil
}
