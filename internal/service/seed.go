package service

import (
	"context"
	"fmt"
	"log"
)

type Seeder interface {
	Seed(ctx context.Context) error
}

type SeedService struct {
	repo Seeder
}

func NewSeedService(repo Seeder) *SeedService {
	return &SeedService{repo: repo}
}

func (s *SeedService) Seed(ctx context.Context) error {
	if err := s.repo.Seed(ctx); err != nil {
		return fmt.Errorf("seed sample data: %w", err)
	}
	log.Printf("[SEED] sample catalog and members inserted")
	return nil
}
