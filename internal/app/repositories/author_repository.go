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

// AuthorRepository handles database operations for authors
type AuthorRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewAuthorRepository creates a new author repository
func NewAuthorRepository(db *pgxpool.Pool) *AuthorRepository {
	return &AuthorRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create creates a new author
func (r *AuthorRepository) Create(ctx context.Context, author *models.Author) error {
	query := `
		INSERT INTO authors (name, email, birth_date, nationality)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query, author.Name, author.Email, author.BirthDate, author.Nationality).
		Scan(&author.ID, &author.CreatedAt, &author.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "authors_email_key") {
			return apperrors.ErrAuthorAlreadyExists
		}
		return fmt.Errorf("error creating author: %w", err)
	}

	return nil
}

// GetByID retrieves an author by ID
func (r *AuthorRepository) GetByID(ctx context.Context, id int64) (*models.Author, error) {
	query := `
		SELECT id, name, email, birth_date, nationality, created_at, updated_at
		FROM authors
		WHERE id = $1
	`

	var author models.Author
	err := r.db.QueryRow(ctx, query, id).Scan(
		&author.ID,
		&author.Name,
		&author.Email,
		&author.BirthDate,
		&author.Nationality,
		&author.CreatedAt,
		&author.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("error retrieving author: %w", err)
	}

	return &author, nil
}

// List retrieves authors filtered by an optional name substring, paginated.
// Returns the page of authors and the total matching count.
func (r *AuthorRepository) List(ctx context.Context, nameFilter string, offset uint64, limit int) ([]*models.Author, int64, error) {
	base := r.sb.Select("id", "name", "email", "birth_date", "nationality", "created_at", "updated_at").
		From("authors")
	countBase := r.sb.Select("COUNT(*)").From("authors")

	if nameFilter != "" {
		pattern := "%" + nameFilter + "%"
		base = base.Where(squirrel.ILike{"name": pattern})
		countBase = countBase.Where(squirrel.ILike{"name": pattern})
	}

	countSQL, countArgs, err := countBase.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build author count query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting authors: %w", err)
	}

	listSQL, listArgs, err := base.OrderBy("name ASC").Offset(offset).Limit(uint64(limit)).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build author list query: %w", err)
	}

	rows, err := r.db.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing authors: %w", err)
	}
	defer rows.Close()

	var authors []*models.Author
	for rows.Next() {
		var author models.Author
		if err := rows.Scan(
			&author.ID,
			&author.Name,
			&author.Email,
			&author.BirthDate,
			&author.Nationality,
			&author.CreatedAt,
			&author.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		authors = append(authors, &author)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return authors, total, nil
}

// Update updates an existing author
func (r *AuthorRepository) Update(ctx context.Context, author *models.Author) error {
	query := `
		UPDATE authors
		SET name = $1, email = $2, birth_date = $3, nationality = $4, updated_at = NOW()
		WHERE id = $5
	`

	cmdTag, err := r.db.Exec(ctx, query,
		author.Name, author.Email, author.BirthDate, author.Nationality, author.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "authors_email_key") {
			return apperrors.ErrAuthorAlreadyExists
		}
		return fmt.Errorf("error updating author: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAuthorNotFound
	}

	return nil
}

// Delete deletes an author by ID
func (r *AuthorRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM authors WHERE id = $1`, id)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.NewConflictError("author has associated books and cannot be deleted")
		}
		return fmt.Errorf("error deleting author: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAuthorNotFound
	}

	return nil
}
