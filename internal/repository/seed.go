package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type SeedRepository struct {
	db *sqlx.DB
}

func NewSeedRepository(db *sqlx.DB) *SeedRepository {
	return &SeedRepository{db: db}
}

// Seed inserts a minimal sample catalog and two members in one transaction.
func (r *SeedRepository) Seed(ctx context.Context) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	statements := []struct {
		query string
		args  []any
	}{
		{
			`INSERT INTO books (title, author_or_editor, isbn, pages) VALUES ($1, $2, $3, $4)`,
			[]any{"Clean Architecture", "R. Martin", "978-0134494166", 450},
		},
		{
			`INSERT INTO magazines (title, author_or_editor, issue_number) VALUES ($1, $2, $3)`,
			[]any{"ACM Queue", "ACM", 182},
		},
		{
			`INSERT INTO videos (title, author_or_editor, duration_minutes, format) VALUES ($1, $2, $3, $4)`,
			[]any{"Agile Conference Talk", "J. Doe", 75, "DVD"},
		},
		{
			`INSERT INTO members (name, premium) VALUES ($1, $2)`,
			[]any{"Ana Perez", true},
		},
		{
			`INSERT INTO members (name, premium) VALUES ($1, $2)`,
			[]any{"Juan Diaz", false},
		},
	}

	for _, st := range statements {
		if _, err := tx.ExecContext(ctx, st.query, st.args...); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
	}

	return tx.Commit()
}
