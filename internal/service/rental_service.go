package service

import (
	"context"
	"errors"
	"time"

	"garage/internal/database"
	"garage/internal/domain"
	"garage/internal/events"
	"garage/internal/metrics"
	"garage/internal/models"

	"github.com/rs/zerolog"
)

type RentalService struct {
	repo     domain.Repository
	eventBus domain.EventPublisher
	logger   *zerolog.Logger
}

func NewRentalService(repo domain.Repository, eventBus domain.EventPublisher, logger *zerolog.Logger) *RentalService {
	return &RentalService{repo: repo, eventBus: eventBus, logger: logger}
}

// ValidateDateRange требует start < end.
func ValidateDateRange(start, end time.Time) error {
	if start.IsZero() || end.IsZero() || !start.Before(end) {
		return database.ErrInvalidDateRange
	}
	return nil
}

// CheckAvailability возвращает все интервалы, конфликтующие с запросом.
// Чистое чтение; пустой результат означает, что даты свободны.
func (s *RentalService) CheckAvailability(ctx context.Context, carID int64, start, end time.Time) ([]models.DateRange, error) {
	if err := ValidateDateRange(start, end); err != nil {
		return nil, err
	}
	return s.repo.GetOverlappingRentals(ctx, carID, start, end, 0)
}

// CreateRental бронирует автомобиль для clientID. Стоимость считается
// сервером из price_per_day; значение клиента не используется.
// Проверка пересечений повторяется внутри транзакции вставки, так что из
// конкурентных пересекающихся заявок фиксируется ровно одна.
func (s *RentalService) CreateRental(ctx context.Context, clientID, carID int64, start, end time.Time) (*models.Rental, error) {
	if err := ValidateDateRange(start, end); err != nil {
		return nil, err
	}

	car, err := s.repo.GetCar(ctx, carID)
	if err != nil {
		return nil, err
	}

	rental := &models.Rental{
		ClientID:   clientID,
		CarID:      carID,
		StartDate:  start,
		EndDate:    end,
		TotalPrice: float64(models.RentalDays(start, end)) * car.PricePerDay,
	}

	if err := s.repo.CreateRentalWithLock(ctx, rental); err != nil {
		if errors.Is(err, database.ErrCarUnavailable) {
			metrics.IncBookingConflict()
		}
		return nil, err
	}

	metrics.IncRentalCreated()
	s.publishRentalEvent(events.EventRentalCreated, rental, car.Name, clientID)
	return rental, nil
}

// RentalPatch допускает частичное изменение дат.
type RentalPatch struct {
	StartDate *time.Time
	EndDate   *time.Time
}

// UpdateRental меняет даты аренды. Разрешено владельцу или администратору.
// Проверка пересечений выполняется заново, исключая саму запись.
func (s *RentalService) UpdateRental(ctx context.Context, callerID int64, isAdmin bool, rentalID int64, patch RentalPatch) (*models.Rental, error) {
	rental, err := s.repo.GetRental(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if rental.ClientID != callerID && !isAdmin {
		return nil, ErrForbidden
	}

	start, end := rental.StartDate, rental.EndDate
	if patch.StartDate != nil {
		start = *patch.StartDate
	}
	if patch.EndDate != nil {
		end = *patch.EndDate
	}
	if err := ValidateDateRange(start, end); err != nil {
		return nil, err
	}

	car, err := s.repo.GetCar(ctx, rental.CarID)
	if err != nil {
		return nil, err
	}
	totalPrice := float64(models.RentalDays(start, end)) * car.PricePerDay

	if err := s.repo.UpdateRentalWithLock(ctx, rentalID, start, end, totalPrice); err != nil {
		if errors.Is(err, database.ErrCarUnavailable) {
			metrics.IncBookingConflict()
		}
		return nil, err
	}

	updated, err := s.repo.GetRental(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	s.publishRentalEvent(events.EventRentalUpdated, updated, car.Name, callerID)
	return updated, nil
}

// DeleteRental удаляет аренду. Разрешено владельцу или администратору.
func (s *RentalService) DeleteRental(ctx context.Context, callerID int64, isAdmin bool, rentalID int64) error {
	rental, err := s.repo.GetRental(ctx, rentalID)
	if err != nil {
		return err
	}
	if rental.ClientID != callerID && !isAdmin {
		return ErrForbidden
	}

	if err := s.repo.DeleteRental(ctx, rentalID); err != nil {
		return err
	}
	s.publishRentalEvent(events.EventRentalDeleted, rental, "", callerID)
	return nil
}

// ListRentals: администратор видит все аренды, остальные только свои.
// Фильтрация выполняется на сервере, не на клиенте.
func (s *RentalService) ListRentals(ctx context.Context, callerID int64, isAdmin bool) ([]*models.Rental, error) {
	if isAdmin {
		return s.repo.GetAllRentals(ctx)
	}
	return s.repo.GetClientRentals(ctx, callerID)
}

// GetRentalsByDateRange возвращает аренды периода для отчётов.
func (s *RentalService) GetRentalsByDateRange(ctx context.Context, from, to time.Time) ([]*models.Rental, error) {
	if err := ValidateDateRange(from, to); err != nil {
		return nil, err
	}
	return s.repo.GetRentalsByDateRange(ctx, from, to)
}

func (s *RentalService) publishRentalEvent(eventType string, rental *models.Rental, carName string, changedBy int64) {
	if s.eventBus == nil {
		return
	}

	payload := events.RentalEventPayload{
		RentalID:   rental.ID,
		ClientID:   rental.ClientID,
		CarID:      rental.CarID,
		CarName:    carName,
		StartDate:  rental.StartDate,
		EndDate:    rental.EndDate,
		TotalPrice: rental.TotalPrice,
		ChangedBy:  changedBy,
	}

	if err := s.eventBus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Int64("rental_id", rental.ID).Msg("publish event error")
	}
}
