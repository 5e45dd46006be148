package service

import (
	"context"
	"strings"
	"time"

	"garage/internal/domain"
	"garage/internal/events"
	"garage/internal/models"

	"github.com/rs/zerolog"
)

type ReviewService struct {
	repo     domain.Repository
	eventBus domain.EventPublisher
	logger   *zerolog.Logger
}

func NewReviewService(repo domain.Repository, eventBus domain.EventPublisher, logger *zerolog.Logger) *ReviewService {
	return &ReviewService{repo: repo, eventBus: eventBus, logger: logger}
}

// CreateReview сохраняет отзыв. Имя автомобиля снимается как снапшот и
// при последующих переименованиях не обновляется.
func (s *ReviewService) CreateReview(ctx context.Context, clientID, carID int64, comment string) (*models.Review, error) {
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return nil, invalidInput("comment is required")
	}

	car, err := s.repo.GetCar(ctx, carID)
	if err != nil {
		return nil, err
	}

	review := &models.Review{
		ClientID:   clientID,
		CarID:      carID,
		CarName:    car.Name,
		Comment:    comment,
		ReviewDate: time.Now(),
	}
	if err := s.repo.CreateReview(ctx, review); err != nil {
		return nil, err
	}

	if s.eventBus != nil {
		payload := events.ReviewEventPayload{
			ReviewID: review.ID,
			ClientID: clientID,
			CarID:    carID,
			CarName:  car.Name,
		}
		if err := s.eventBus.PublishJSON(events.EventReviewCreated, payload); err != nil {
			s.logger.Error().Err(err).Int64("review_id", review.ID).Msg("publish event error")
		}
	}

	return review, nil
}

func (s *ReviewService) ListCarReviews(ctx context.Context, carID int64) ([]*models.Review, error) {
	return s.repo.GetCarReviews(ctx, carID)
}

// DeleteReview удаляет отзыв. Разрешено только автору или администратору.
func (s *ReviewService) DeleteReview(ctx context.Context, callerID int64, isAdmin bool, reviewID int64) error {
	review, err := s.repo.GetReview(ctx, reviewID)
	if err != nil {
		return err
	}
	if review.ClientID != callerID && !isAdmin {
		return ErrForbidden
	}
	return s.repo.DeleteReview(ctx, reviewID)
}
