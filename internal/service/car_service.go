package service

import (
	"context"
	"strings"

	"garage/internal/domain"
	"garage/internal/models"
)

type CarService struct {
	repo domain.Repository
}

func NewCarService(repo domain.Repository) *CarService {
	return &CarService{repo: repo}
}

// QueryCars возвращает страницу каталога со связанными справочниками.
func (s *CarService) QueryCars(ctx context.Context, q models.CarQuery) ([]*models.Car, error) {
	return s.repo.QueryCars(ctx, q)
}

func (s *CarService) GetCar(ctx context.Context, id int64) (*models.Car, error) {
	return s.repo.GetCar(ctx, id)
}

func validateCarInput(input models.CarInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return invalidInput("car name is required")
	}
	if strings.TrimSpace(input.Color) == "" {
		return invalidInput("car color is required")
	}
	if input.PricePerDay <= 0 {
		return invalidInput("price per day must be positive")
	}
	return nil
}

func (s *CarService) CreateCar(ctx context.Context, input models.CarInput) (*models.Car, error) {
	if err := validateCarInput(input); err != nil {
		return nil, err
	}
	return s.repo.CreateCar(ctx, input)
}

func (s *CarService) UpdateCar(ctx context.Context, id int64, input models.CarInput) (*models.Car, error) {
	if err := validateCarInput(input); err != nil {
		return nil, err
	}
	return s.repo.UpdateCar(ctx, id, input)
}

func (s *CarService) DeleteCar(ctx context.Context, id int64) error {
	return s.repo.DeleteCar(ctx, id)
}
