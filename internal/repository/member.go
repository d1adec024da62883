package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"library-fees/internal/domain"
)

type MemberRepository struct {
	db *sqlx.DB
}

func NewMemberRepository(db *sqlx.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

func (r *MemberRepository) FindByID(ctx context.Context, id int64) (domain.Member, error) {
	var m domain.Member
	err := r.db.GetContext(ctx, &m, `SELECT id, name, premium FROM members WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Member{}, fmt.Errorf("member %d: %w", id, ErrNotFound)
		}
		return domain.Member{}, err
	}
	return m, nil
}
