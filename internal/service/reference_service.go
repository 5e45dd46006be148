package service

import (
	"context"

	"garage/internal/domain"
	"garage/internal/models"
)

// ReferenceService отдаёт справочные таблицы каталога.
type ReferenceService struct {
	repo domain.Repository
}

func NewReferenceService(repo domain.Repository) *ReferenceService {
	return &ReferenceService{repo: repo}
}

// Sync идемпотентно наливает строки справочников при старте.
func (s *ReferenceService) Sync(ctx context.Context, data models.ReferenceData) error {
	return s.repo.SyncReferences(ctx, data)
}

func (s *ReferenceService) ListBodyTypes(ctx context.Context) ([]models.BodyType, error) {
	return s.repo.GetBodyTypes(ctx)
}

func (s *ReferenceService) ListClasses(ctx context.Context) ([]models.CarClass, error) {
	return s.repo.GetClasses(ctx)
}

func (s *ReferenceService) ListFuelTypes(ctx context.Context) ([]models.FuelType, error) {
	return s.repo.GetFuelTypes(ctx)
}

func (s *ReferenceService) ListStatuses(ctx context.Context) ([]models.Status, error) {
	return s.repo.GetStatuses(ctx)
}
