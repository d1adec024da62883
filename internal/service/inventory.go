package service

import (
	"context"
	"fmt"

	"library-fees/internal/domain"
)

type MaterialLister interface {
	ListBooks(ctx context.Context) ([]domain.Book, error)
	ListMagazines(ctx context.Context) ([]domain.Magazine, error)
	ListVideos(ctx context.Context) ([]domain.Video, error)
	ListAll(ctx context.Context) ([]domain.Material, error)
}

type InventoryRow struct {
	Type  domain.MaterialType `json:"type"`
	Title string              `json:"title"`
	Meta  string              `json:"meta"`
}

type BookStats struct {
	Total        int     `json:"total"`
	TotalPages   int     `json:"paginas_totales"`
	AveragePages float64 `json:"paginas_promedio"`
}

type MagazineStats struct {
	Total int `json:"total"`
}

type VideoStats struct {
	Total           int `json:"total"`
	DurationMinutes int `json:"duracion_total_min"`
}

type TotalStats struct {
	Materials int `json:"materiales"`
}

type InventoryStats struct {
	Books     BookStats     `json:"libros"`
	Magazines MagazineStats `json:"revistas"`
	Videos    VideoStats    `json:"videos"`
	Totals    TotalStats    `json:"totales"`
}

type InventoryService struct {
	materials MaterialLister
}

func NewInventoryService(materials MaterialLister) *InventoryService {
	return &InventoryService{materials: materials}
}

func (s *InventoryService) Summary(ctx context.Context) ([]InventoryRow, error) {
	all, err := s.materials.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}

	v := &summaryVisitor{rows: make([]InventoryRow, 0, len(all))}
	for _, m := range all {
		m.Accept(v)
	}
	return v.rows, nil
}

func (s *InventoryService) Stats(ctx context.Context) (InventoryStats, error) {
	all, err := s.materials.ListAll(ctx)
	if err != nil {
		return InventoryStats{}, fmt.Errorf("list materials: %w", err)
	}

	v := &statsVisitor{}
	for _, m := range all {
		m.Accept(v)
	}
	return v.result(), nil
}

type summaryVisitor struct {
	rows []InventoryRow
}

func (v *summaryVisitor) VisitBook(b domain.Book) {
	v.rows = append(v.rows, InventoryRow{Type: domain.MaterialBook, Title: b.Title, Meta: "ISBN=" + deref(b.ISBN)})
}

func (v *summaryVisitor) VisitMagazine(m domain.Magazine) {
	v.rows = append(v.rows, InventoryRow{Type: domain.MaterialMagazine, Title: m.Title, Meta: fmt.Sprintf("issue=%d", m.IssueNumber)})
}

func (v *summaryVisitor) VisitVideo(vid domain.Video) {
	v.rows = append(v.rows, InventoryRow{Type: domain.MaterialVideo, Title: vid.Title, Meta: fmt.Sprintf("duration=%d", vid.DurationMinutes)})
}

// statsVisitor counts negative pages and durations as zero.
type statsVisitor struct {
	books, magazines, videos int
	pages, minutes           int
}

func (v *statsVisitor) VisitBook(b domain.Book) {
	v.books++
	v.pages += max(0, b.Pages)
}

func (v *statsVisitor) VisitMagazine(domain.Magazine) {
	v.magazines++
}

func (v *statsVisitor) VisitVideo(vid domain.Video) {
	v.videos++
	v.minutes += max(0, vid.DurationMinutes)
}

func (v *statsVisitor) result() InventoryStats {
	var avg float64
	if v.books > 0 {
		avg = float64(v.pages) / float64(v.books)
	}
	return InventoryStats{
		Books:     BookStats{Total: v.books, TotalPages: v.pages, AveragePages: avg},
		Magazines: MagazineStats{Total: v.magazines},
		Videos:    VideoStats{Total: v.videos, DurationMinutes: v.minutes},
		Totals:    TotalStats{Materials: v.books + v.magazines + v.videos},
	}
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
