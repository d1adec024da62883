package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"library-fees/internal/domain"
)

type LoanRepository struct {
	db *sqlx.DB
}

func NewLoanRepository(db *sqlx.DB) *LoanRepository {
	return &LoanRepository{db: db}
}

type loanRow struct {
	ID            int64       `db:"id"`
	MemberID      int64       `db:"member_id"`
	MaterialID    int64       `db:"material_id"`
	MaterialType  string      `db:"material_type"`
	StartDate     domain.Date `db:"start_date"`
	DueDate       domain.Date `db:"due_date"`
	ReturnDate    domain.Date `db:"return_date"`
	MemberName    string      `db:"member_name"`
	MemberPremium bool        `db:"member_premium"`
}

func (r loanRow) toDomain() domain.Loan {
	return domain.Loan{
		ID:       r.ID,
		MemberID: r.MemberID,
		Member: &domain.Member{
			ID:      r.MemberID,
			Name:    r.MemberName,
			Premium: r.MemberPremium,
		},
		MaterialID:   r.MaterialID,
		MaterialType: domain.MaterialType(r.MaterialType),
		StartDate:    r.StartDate,
		DueDate:      r.DueDate,
		ReturnDate:   r.ReturnDate,
	}
}

func (r *LoanRepository) FindByID(ctx context.Context, id int64) (domain.Loan, error) {
	query := `
		SELECT
			l.id,
			l.member_id,
			l.material_id,
			l.material_type,
			l.start_date,
			l.due_date,
			l.return_date,
			m.name    AS member_name,
			m.premium AS member_premium
		FROM loans l
		JOIN members m ON m.id = l.member_id
		WHERE l.id = $1
	`

	var row loanRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Loan{}, fmt.Errorf("loan %d: %w", id, ErrNotFound)
		}
		return domain.Loan{}, err
	}

	return row.toDomain(), nil
}

// Create inserts the loan and returns its generated id.
func (r *LoanRepository) Create(ctx context.Context, l domain.Loan) (int64, error) {
	query := `
		INSERT INTO loans (member_id, material_id, material_type, start_date, due_date, return_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowxContext(ctx, query,
		l.MemberID,
		l.MaterialID,
		string(l.MaterialType),
		l.StartDate,
		l.DueDate,
		l.ReturnDate,
	).Scan(&id)
	if err != nil {
		return 0, err
	}

	return id, nil
}

func (r *LoanRepository) MarkReturned(ctx context.Context, id int64, date domain.Date) error {
	res, err := r.db.ExecContext(ctx, `UPDATE loans SET return_date = $1 WHERE id = $2`, date, id)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("loan %d: %w", id, ErrNotFound)
	}

	return nil
}
