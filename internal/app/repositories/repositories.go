package repositories

import (
	"github.com/okandemir/librarium/internal/db"
)

// Repositories holds all the repository instances
type Repositories struct {
	AuthorRepository   *AuthorRepository
	CategoryRepository *CategoryRepository
	BookRepository     *BookRepository
	CourseRepository   *CourseRepository
	StudentRepository  *StudentRepository
	LoanRepository     *LoanRepository
	FineRepository     *FineRepository
	TokenRepository    *TokenRepository
}

// NewRepositories initializes all repositories
func NewRepositories(database *db.PostgresDB) *Repositories {
	pool := database.Pool
	return &Repositories{
		AuthorRepository:   NewAuthorRepository(pool),
		CategoryRepository: NewCategoryRepository(pool),
		BookRepository:     NewBookRepository(pool),
		CourseRepository:   NewCourseRepository(pool),
		StudentRepository:  NewStudentRepository(pool),
		LoanRepository:     NewLoanRepository(database),
		FineRepository:     NewFineRepository(pool),
		TokenRepository:    NewTokenRepository(pool),
	}
}
