package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"library-fees/internal/domain"
	"library-fees/internal/repository"
)

type fakeLoans struct {
	mu        sync.Mutex
	loans     map[int64]domain.Loan
	nextID    int64
	createErr error
}

func newFakeLoans(loans ...domain.Loan) *fakeLoans {
	f := &fakeLoans{loans: map[int64]domain.Loan{}, nextID: 100}
	for _, l := range loans {
		f.loans[l.ID] = l
	}
	return f
}

func (f *fakeLoans) FindByID(_ context.Context, id int64) (domain.Loan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.loans[id]
	if !ok {
		return domain.Loan{}, fmt.Errorf("loan %d: %w", id, repository.ErrNotFound)
	}
	return l, nil
}

func (f *fakeLoans) Create(_ context.Context, l domain.Loan) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return 0, f.createErr
	}
	f.nextID++
	l.ID = f.nextID
	f.loans[l.ID] = l
	return l.ID, nil
}

func (f *fakeLoans) MarkReturned(_ context.Context, id int64, date domain.Date) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.loans[id]
	if !ok {
		return fmt.Errorf("loan %d: %w", id, repository.ErrNotFound)
	}
	l.ReturnDate = date
	f.loans[id] = l
	return nil
}

type fakeMembers map[int64]domain.Member

func (f fakeMembers) FindByID(_ context.Context, id int64) (domain.Member, error) {
	m, ok := f[id]
	if !ok {
		return domain.Member{}, fmt.Errorf("member %d: %w", id, repository.ErrNotFound)
	}
	return m, nil
}

type fakeMaterials struct {
	books     []domain.Book
	magazines []domain.Magazine
	videos    []domain.Video
	err       error
}

func (f fakeMaterials) ListBooks(context.Context) ([]domain.Book, error) { return f.books, f.err }

func (f fakeMaterials) ListMagazines(context.Context) ([]domain.Magazine, error) {
	return f.magazines, f.err
}

func (f fakeMaterials) ListVideos(context.Context) ([]domain.Video, error) { return f.videos, f.err }

func (f fakeMaterials) ListAll(ctx context.Context) ([]domain.Material, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.Material
	for _, b := range f.books {
		out = append(out, b)
	}
	for _, m := range f.magazines {
		out = append(out, m)
	}
	for _, v := range f.videos {
		out = append(out, v)
	}
	return out, nil
}

func strp(s string) *string { return &s }

func sampleCatalog() fakeMaterials {
	return fakeMaterials{
		books: []domain.Book{
			{ID: 1, Title: "Clean Architecture", AuthorOrEditor: strp("R. Martin"), ISBN: strp("978-0134494166"), Pages: 450},
		},
		magazines: []domain.Magazine{
			{ID: 1, Title: "ACM Queue", AuthorOrEditor: strp("ACM"), IssueNumber: 182},
		},
		videos: []domain.Video{
			{ID: 1, Title: "Agile Conference Talk", AuthorOrEditor: strp("J. Doe"), DurationMinutes: 75, Format: strp("DVD")},
		},
	}
}

var errBoom = errors.New("boom")
