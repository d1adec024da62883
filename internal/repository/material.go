package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"library-fees/internal/domain"
)

type MaterialRepository struct {
	db *sqlx.DB
}

func NewMaterialRepository(db *sqlx.DB) *MaterialRepository {
	return &MaterialRepository{db: db}
}

func (r *MaterialRepository) ListBooks(ctx context.Context) ([]domain.Book, error) {
	var out []domain.Book
	err := r.db.SelectContext(ctx, &out, `
		SELECT id, title, author_or_editor, isbn, pages
		FROM books
		ORDER BY id
	`)
	return out, err
}

func (r *MaterialRepository) ListMagazines(ctx context.Context) ([]domain.Magazine, error) {
	var out []domain.Magazine
	err := r.db.SelectContext(ctx, &out, `
		SELECT id, title, author_or_editor, issue_number
		FROM magazines
		ORDER BY id
	`)
	return out, err
}

func (r *MaterialRepository) ListVideos(ctx context.Context) ([]domain.Video, error) {
	var out []domain.Video
	err := r.db.SelectContext(ctx, &out, `
		SELECT id, title, author_or_editor, duration_minutes, format
		FROM videos
		ORDER BY id
	`)
	return out, err
}

// ListAll returns the whole catalog in book, magazine, video order.
func (r *MaterialRepository) ListAll(ctx context.Context) ([]domain.Material, error) {
	books, err := r.ListBooks(ctx)
	if err != nil {
		return nil, err
	}
	magazines, err := r.ListMagazines(ctx)
	if err != nil {
		return nil, err
	}
	videos, err := r.ListVideos(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Material, 0, len(books)+len(magazines)+len(videos))
	for _, b := range books {
		out = append(out, b)
	}
	for _, m := range magazines {
		out = append(out, m)
	}
	for _, v := range videos {
		out = append(out, v)
	}
	return out, nil
}
