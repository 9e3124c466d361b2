package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okandemir/librarium/internal/db"
)

func TestNewRepositories(t *testing.T) {
	repos := NewRepositories(&db.PostgresDB{})
	require.NotNil(t, repos)

	assert.NotNil(t, repos.AuthorRepository)
	assert.NotNil(t, repos.CategoryRepository)
	assert.NotNil(t, repos.BookRepository)
	assert.NotNil(t, repos.CourseRepository)
	assert.NotNil(t, repos.StudentRepository)
	assert.NotNil(t, repos.LoanRepository)
	assert.NotNil(t, repos.FineRepository)
	assert.NotNil(t, repos.TokenRepository)
}
