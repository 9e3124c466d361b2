// Package seed creates the default admin account and reference data on
// startup. Every insert is idempotent so restarts are safe.
package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/okandemir/librarium/internal/pkg/auth"
)

// DefaultAdminEmail is the login of the seeded admin account. The
// password must be changed after first login.
const (
	DefaultAdminEmail    = "admin@librarium.local"
	DefaultAdminPassword = "admin12345"
)

// CreateDefaultData seeds the admin account and a starter set of
// categories and courses if they don't exist.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default data...")
	var finalErr error

	if err := seedAdmin(ctx, dbPool, lgr); err != nil {
		lgr.Error().Err(err).Msg("Error creating default admin")
		finalErr = errors.Join(finalErr, err)
	}

	if err := seedCategories(ctx, dbPool, lgr); err != nil {
		lgr.Error().Err(err).Msg("Error creating default categories")
		finalErr = errors.Join(finalErr, err)
	}

	if err := seedCourses(ctx, dbPool, lgr); err != nil {
		lgr.Error().Err(err).Msg("Error creating default courses")
		finalErr = errors.Join(finalErr, err)
	}

	return finalErr
}

func seedAdmin(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	var exists bool
	err := dbPool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM students WHERE is_superuser = TRUE)`).Scan(&exists)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	hashed, err := auth.HashPassword(DefaultAdminPassword)
	if err != nil {
		return err
	}

	_, err = dbPool.Exec(ctx, `
		INSERT INTO students (username, email, password, enrollment_number, phone_number,
		                      is_active, is_staff, is_superuser)
		VALUES ('admin', $1, $2, 'ADM0001', '+900000000000', TRUE, TRUE, TRUE)
		ON CONFLICT (username) DO NOTHING`,
		DefaultAdminEmail, hashed)
	if err != nil {
		return err
	}

	lgr.Info().Str("email", DefaultAdminEmail).Msg("Default admin account created, change the password")
	return nil
}

func seedCategories(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	categories := []string{"Fiction", "Non-fiction", "Science", "History", "Engineering"}
	for _, name := range categories {
		_, err := dbPool.Exec(ctx,
			`INSERT INTO categories (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, name)
		if err != nil {
			return err
		}
	}
	lgr.Debug().Int("count", len(categories)).Msg("Default categories ensured")
	return nil
}

func seedCourses(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	courses := []struct {
		name string
		year int
	}{
		{"Computer Engineering", 1},
		{"Electrical Engineering", 1},
		{"Literature", 2},
	}
	for _, c := range courses {
		_, err := dbPool.Exec(ctx, `
			INSERT INTO courses (name, description, year) VALUES ($1, '', $2)
			ON CONFLICT (name) DO NOTHING`, c.name, c.year)
		if err != nil {
			return err
		}
	}
	lgr.Debug().Int("count", len(courses)).Msg("Default courses ensured")
	return nil
}
