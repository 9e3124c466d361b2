package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/okandemir/librarium/internal/app/models"
	"github.com/okandemir/librarium/internal/pkg/apperrors"
	"github.com/okandemir/librarium/internal/pkg/dberrors"
)

// BookFilter holds the optional filters for book listings
type BookFilter struct {
	Title         string     // substring match on book title
	Author        string     // substring match on author name
	Category      string     // substring match on category name
	PublishedFrom *time.Time // inclusive lower bound on publication date
	PublishedTo   *time.Time // inclusive upper bound on publication date
	MinQuantity   *int       // minimum copies on the shelf
}

// BookRepository handles database operations for books
type BookRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewBookRepository creates a new book repository
func NewBookRepository(db *pgxpool.Pool) *BookRepository {
	return &BookRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create creates a new book
func (r *BookRepository) Create(ctx context.Context, book *models.Book) error {
	query := `
		INSERT INTO books (author_id, category_id, title, publication_date, quantity, image_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		book.AuthorID, book.CategoryID, book.Title, book.PublicationDate, book.Quantity, book.ImageURL).
		Scan(&book.ID, &book.CreatedAt, &book.UpdatedAt)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return fmt.Errorf("%w: unknown author or category", apperrors.ErrValidationFailed)
		}
		return fmt.Errorf("error creating book: %w", err)
	}

	return nil
}

// GetByID retrieves a book by ID with its author and category
func (r *BookRepository) GetByID(ctx context.Context, id int64) (*models.Book, error) {
	query := `
		SELECT b.id, b.author_id, b.category_id, b.title, b.publication_date, b.quantity,
		       b.image_url, b.created_at, b.updated_at,
		       a.id, a.name, a.email, a.birth_date, a.nationality, a.created_at, a.updated_at,
		       c.id, c.name, c.description, c.created_at, c.updated_at
		FROM books b
		JOIN authors a ON a.id = b.author_id
		JOIN categories c ON c.id = b.category_id
		WHERE b.id = $1
	`

	var book models.Book
	var author models.Author
	var category models.Category
	err := r.db.QueryRow(ctx, query, id).Scan(
		&book.ID, &book.AuthorID, &book.CategoryID, &book.Title, &book.PublicationDate, &book.Quantity,
		&book.ImageURL, &book.CreatedAt, &book.UpdatedAt,
		&author.ID, &author.Name, &author.Email, &author.BirthDate, &author.Nationality, &author.CreatedAt, &author.UpdatedAt,
		&category.ID, &category.Name, &category.Description, &category.CreatedAt, &category.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrBookNotFound
		}
		return nil, fmt.Errorf("error retrieving book: %w", err)
	}

	book.Author = &author
	book.Category = &category
	return &book, nil
}

// List retrieves books matching the filter, paginated, with authors and
// categories joined in.
func (r *BookRepository) List(ctx context.Context, filter BookFilter, offset uint64, limit int) ([]*models.Book, int64, error) {
	applyFilter := func(b squirrel.SelectBuilder) squirrel.SelectBuilder {
		if filter.Title != "" {
			b = b.Where(squirrel.ILike{"b.title": "%" + filter.Title + "%"})
		}
		if filter.Author != "" {
			b = b.Where(squirrel.ILike{"a.name": "%" + filter.Author + "%"})
		}
		if filter.Category != "" {
			b = b.Where(squirrel.ILike{"c.name": "%" + filter.Category + "%"})
		}
		if filter.PublishedFrom != nil {
			b = b.Where(squirrel.GtOrEq{"b.publication_date": *filter.PublishedFrom})
		}
		if filter.PublishedTo != nil {
			b = b.Where(squirrel.LtOrEq{"b.publication_date": *filter.PublishedTo})
		}
		if filter.MinQuantity != nil {
			b = b.Where(squirrel.GtOrEq{"b.quantity": *filter.MinQuantity})
		}
		return b
	}

	from := func(b squirrel.SelectBuilder) squirrel.SelectBuilder {
		return b.From("books b").
			Join("authors a ON a.id = b.author_id").
			Join("categories c ON c.id = b.category_id")
	}

	countSQL, countArgs, err := applyFilter(from(r.sb.Select("COUNT(*)"))).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build book count query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting books: %w", err)
	}

	listSQL, listArgs, err := applyFilter(from(r.sb.Select(
		"b.id", "b.author_id", "b.category_id", "b.title", "b.publication_date", "b.quantity",
		"b.image_url", "b.created_at", "b.updated_at",
		"a.id", "a.name", "a.email", "a.birth_date", "a.nationality", "a.created_at", "a.updated_at",
		"c.id", "c.name", "c.description", "c.created_at", "c.updated_at",
	))).OrderBy("b.title ASC").Offset(offset).Limit(uint64(limit)).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build book list query: %w", err)
	}

	rows, err := r.db.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing books: %w", err)
	}
	defer rows.Close()

	var books []*models.Book
	for rows.Next() {
		var book models.Book
		var author models.Author
		var category models.Category
		if err := rows.Scan(
			&book.ID, &book.AuthorID, &book.CategoryID, &book.Title, &book.PublicationDate, &book.Quantity,
			&book.ImageURL, &book.CreatedAt, &book.UpdatedAt,
			&author.ID, &author.Name, &author.Email, &author.BirthDate, &author.Nationality, &author.CreatedAt, &author.UpdatedAt,
			&category.ID, &category.Name, &category.Description, &category.CreatedAt, &category.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		book.Author = &author
		book.Category = &category
		books = append(books, &book)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return books, total, nil
}

// Update updates an existing book. Quantity is managed by the lending
// transactions and is not touched here unless explicitly provided.
func (r *BookRepository) Update(ctx context.Context, book *models.Book) error {
	query := `
		UPDATE books
		SET author_id = $1, category_id = $2, title = $3, publication_date = $4,
		    quantity = $5, image_url = $6, updated_at = NOW()
		WHERE id = $7
	`

	cmdTag, err := r.db.Exec(ctx, query,
		book.AuthorID, book.CategoryID, book.Title, book.PublicationDate,
		book.Quantity, book.ImageURL, book.ID)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return fmt.Errorf("%w: unknown author or category", apperrors.ErrValidationFailed)
		}
		return fmt.Errorf("error updating book: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrBookNotFound
	}

	return nil
}

// Delete deletes a book by ID
func (r *BookRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.NewConflictError("book has loan records and cannot be deleted")
		}
		return fmt.Errorf("error deleting book: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrBookNotFound
	}

	return nil
}
